package response

import (
	"errors"
	"fmt"
	"runtime/debug"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/global/logger"
	"facility-work-tracker/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Origin string `json:"origin,omitempty"`
	Data   any    `json:"data"`
}

func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Code: 200, Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.JSON(200, body)
}

// Fail 返回错误响应，5xx 错误上报 sentry
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}
	c.Set(ErrorContextKey, e)
	sentry.CaptureException(c, e)

	body := ResponseBody{Code: e.Code, Msg: e.Message}
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}
	c.JSON(e.HTTPStatus(), body)
}

// Recovery 配合 defer 使用，把 panic 转成 500 响应
func Recovery(c *gin.Context) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", r)
	}
	logger.Get().Error("请求处理发生 panic", "error", err, "path", c.Request.URL.Path, "stack", string(debug.Stack()))
	Fail(c, ErrServerInternal.WithOrigin(err))
	c.Abort()
}
