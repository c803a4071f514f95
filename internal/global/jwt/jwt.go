package jwt

import (
	"time"

	"facility-work-tracker/config"

	jwtlib "github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	RoleID int    `json:"role_id"`
	jwtlib.StandardClaims
}

type Payload struct {
	UserID string
	Email  string
	Name   string
	RoleID int
}

// CreateToken 签发 HS256 令牌，有效期取自配置
func CreateToken(p Payload) (string, error) {
	cfg := config.Get().JWT
	now := time.Now()
	claims := Claims{
		UserID: p.UserID,
		Email:  p.Email,
		Name:   p.Name,
		RoleID: p.RoleID,
		StandardClaims: jwtlib.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(cfg.AccessExpire) * time.Second).Unix(),
			Subject:   p.UserID,
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		return "", errors.Wrap(err, "签发 token 失败")
	}
	return token, nil
}

// ParseToken 校验签名与有效期
func ParseToken(token string) (*Claims, bool) {
	secret := []byte(config.Get().JWT.AccessSecret)
	parsed, err := jwtlib.ParseWithClaims(token, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	claims, ok := parsed.Claims.(*Claims)
	return claims, ok
}
