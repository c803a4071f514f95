package test

import (
	"encoding/json"
	"testing"

	"facility-work-tracker/internal/global/response"

	"github.com/stretchr/testify/require"
)

func ErrorEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	t.Helper()
	require.Equal(t, expected.Code, resp.Code)
	require.Equal(t, expected.Message, resp.Msg)
}

func NoError(t *testing.T, resp response.ResponseBody) {
	t.Helper()
	require.Equal(t, int32(200), resp.Code, resp.Msg+" "+resp.Origin)
}

// Data 把响应中的 data 解码到 dst
func Data(t *testing.T, resp response.ResponseBody, dst any) {
	t.Helper()
	NoError(t, resp)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dst))
}
