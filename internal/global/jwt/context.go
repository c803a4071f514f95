package jwt

import (
	"github.com/gin-gonic/gin"
)

const PayloadKey = "payload"

func GetUserPayload(c *gin.Context) (userPayload *Claims, exist bool) {
	payload, _ := c.Get(PayloadKey)
	userPayload, exist = payload.(*Claims)
	return
}

// Operator 当前操作人，用于审计记录
func Operator(c *gin.Context) string {
	if p, ok := GetUserPayload(c); ok {
		return p.Email
	}
	return ""
}
