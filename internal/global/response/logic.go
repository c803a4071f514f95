package response

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorContextKey gin.Context 中保存错误对象的键
const ErrorContextKey = "error"

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Error 业务错误：错误码、提示信息、原始错误链与堆栈
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
	Origin  string `json:"origin"`
	cause   error
	stack   pkgerrors.StackTrace
}

func newError(code int32, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Message)
}

// GetCode 供 sentry 判断是否上报
func (e *Error) GetCode() int32 {
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Is 错误码与提示信息都相同视为同一错误
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithOrigin 附带原始错误，debug 模式下 origin 字段返回给前端
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}
	wrapped := err
	if _, ok := err.(stackTracer); !ok {
		wrapped = pkgerrors.WithStack(err)
	}
	out := &Error{
		Code:    e.Code,
		Message: e.Message,
		Origin:  fmt.Sprintf("%+v", wrapped),
		cause:   wrapped,
	}
	if st, ok := wrapped.(stackTracer); ok {
		out.stack = st.StackTrace()
	}
	return out
}

// WithTips 追加提示信息，release 模式也可见
func (e *Error) WithTips(details ...string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message + " " + fmt.Sprintf("%v", details),
		Origin:  e.Origin,
		cause:   e.cause,
		stack:   e.stack,
	}
}

// HTTPStatus 错误码即 HTTP 状态码
func (e *Error) HTTPStatus() int {
	if e.Code >= 400 && e.Code < 600 {
		return int(e.Code)
	}
	return 200
}
