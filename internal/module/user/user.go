package user

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"facility-work-tracker/internal/global/jwt"
	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/module/common"
	"facility-work-tracker/internal/store"
	"facility-work-tracker/tools"

	"github.com/gin-gonic/gin"
)

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResp struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	RoleID int    `json:"role_id"`
}

// Login 邮箱密码登录，签发 JWT
func (u *ModuleUser) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	user, err := u.Stores.Users.ByEmail(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// 不区分账号不存在与密码错误
		log.Warn("用户不存在", "email", req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "email", req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	token, err := jwt.CreateToken(jwt.Payload{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RoleID: user.RoleID,
	})
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	log.Info("用户登录成功", "email", user.Email, "role_id", user.RoleID)
	response.Success(c, loginResp{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RoleID: user.RoleID,
	})
}

func (u *ModuleUser) Me(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	user, err := u.Stores.Users.Get(c.Request.Context(), payload.UserID)
	if err != nil {
		log.Error("查询用户失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, common.StoreError(err))
		return
	}
	response.Success(c, user)
}

// ValidatePassword 至少 8 位，且同时包含字母与数字
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("密码长度必须至少8字符")
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return errors.New("密码必须包含至少一个字母")
	}
	if !hasDigit {
		return errors.New("密码必须包含至少一个数字")
	}
	return nil
}

// Create 创建登录账号，命令行 create-user 使用
func Create(ctx context.Context, users store.Users, email, name, password string, roleID int) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(name) == "" {
		return nil, errors.New("邮箱和姓名不能为空")
	}
	if roleID < model.UserRoleEmployee || roleID > model.UserRoleAdmin {
		return nil, errors.New("权限等级只能是 0、1、2")
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := tools.PasswordHash(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{Email: email, Name: strings.TrimSpace(name), Password: hash, RoleID: roleID}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
