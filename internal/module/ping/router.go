package ping

import (
	"time"

	"facility-work-tracker/internal/global/response"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

var startedAt = time.Now()

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, map[string]any{
			"message": "pong",
			"version": version,
			"uptime":  time.Since(startedAt).Round(time.Second).String(),
		})
	})
}
