package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/global/jwt"
	"facility-work-tracker/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Setup 测试用配置：UTC 时区、固定 JWT 密钥、不启用 redis 与 sentry
func Setup(t *testing.T) *config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Prefix:   "api",
		Mode:     config.ModeRelease,
		Location: "UTC",
		JWT:      config.JWT{AccessSecret: "test-secret", AccessExpire: 3600},
		Stats: config.Stats{
			EmployeeCount: config.EmployeeCountActual,
			TrendMonths:   6,
		},
	}
	config.Set(cfg)
	return cfg
}

// Token 签发指定权限等级的令牌
func Token(t *testing.T, roleID int) string {
	t.Helper()
	token, err := jwt.CreateToken(jwt.Payload{UserID: "u-test", Email: "tester@example.com", Name: "tester", RoleID: roleID})
	require.NoError(t, err)
	return token
}

// Do 通过路由发起请求，body 为 nil 时不带请求体
func Do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// DoJSON 发起请求并解析统一响应体
func DoJSON(t *testing.T, r http.Handler, method, path, token string, body any) (resp response.ResponseBody) {
	t.Helper()
	w := Do(t, r, method, path, token, body)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp), w.Body.String())
	return
}

// DoRequest 直接调用单个 handler
func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any) (resp response.ResponseBody) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	requestBytes, err := json.Marshal(request)
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(requestBytes))
	c.Request.Header.Set("Content-Type", "application/json")
	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}
