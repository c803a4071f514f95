package middleware

import (
	"strings"

	"facility-work-tracker/internal/global/jwt"
	"facility-work-tracker/internal/global/response"

	"github.com/gin-gonic/gin"
)

// Auth 校验 Bearer token，并要求权限等级不低于 minRoleID
func Auth(minRoleID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if header == "" {
			response.Fail(c, response.ErrUnauthorized)
			c.Abort()
			return
		}
		if !ok {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}

		payload, valid := jwt.ParseToken(strings.TrimSpace(token))
		if !valid {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}
		if payload.RoleID < minRoleID {
			response.Fail(c, response.ErrForbidden)
			c.Abort()
			return
		}
		c.Set(jwt.PayloadKey, payload)
		c.Next()
	}
}
