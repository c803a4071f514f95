package user

import (
	"context"
	"net/http"
	"testing"

	"facility-work-tracker/internal/global/response"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/module/common"
	"facility-work-tracker/internal/store"
	"facility-work-tracker/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*gin.Engine, *store.Stores) {
	test.Setup(t)
	stores := store.NewMemoryStores()
	m := &ModuleUser{Deps: common.Deps{Stores: stores}}
	m.Init()
	r := gin.New()
	m.InitRouter(r.Group("/api"))
	return r, stores
}

func TestLoginAndMe(t *testing.T) {
	r, stores := setup(t)
	_, err := Create(context.Background(), stores.Users, "Admin@College.edu", "Admin", "secret123", model.UserRoleAdmin)
	require.NoError(t, err)

	var login loginResp
	test.Data(t, test.DoJSON(t, r, http.MethodPost, "/api/user/login", "", map[string]string{
		"email": "admin@college.edu", "password": "secret123",
	}), &login)
	require.NotEmpty(t, login.Token)
	require.Equal(t, model.UserRoleAdmin, login.RoleID)

	var me model.User
	test.Data(t, test.DoJSON(t, r, http.MethodGet, "/api/user/me", login.Token, nil), &me)
	require.Equal(t, "admin@college.edu", me.Email)
	require.Empty(t, me.Password)
}

func TestLoginFailures(t *testing.T) {
	r, stores := setup(t)
	_, err := Create(context.Background(), stores.Users, "a@b.io", "A", "secret123", 0)
	require.NoError(t, err)

	resp := test.DoJSON(t, r, http.MethodPost, "/api/user/login", "", map[string]string{"email": "a@b.io", "password": "wrong-pass1"})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)

	resp = test.DoJSON(t, r, http.MethodPost, "/api/user/login", "", map[string]string{"email": "x@b.io", "password": "secret123"})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)

	resp = test.DoJSON(t, r, http.MethodPost, "/api/user/login", "", map[string]string{"email": "a@b.io"})
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)

	resp = test.DoJSON(t, r, http.MethodGet, "/api/user/me", "", nil)
	test.ErrorEqual(t, response.ErrUnauthorized, resp)
}

func TestCreateValidation(t *testing.T) {
	users := store.NewMemoryStores().Users
	ctx := context.Background()

	_, err := Create(ctx, users, "a@b.io", "A", "short1", 0)
	require.Error(t, err)
	_, err = Create(ctx, users, "a@b.io", "A", "lettersonly", 0)
	require.Error(t, err)
	_, err = Create(ctx, users, "a@b.io", "A", "12345678", 0)
	require.Error(t, err)
	_, err = Create(ctx, users, "a@b.io", "A", "secret123", 5)
	require.Error(t, err)
	_, err = Create(ctx, users, "", "A", "secret123", 0)
	require.Error(t, err)

	_, err = Create(ctx, users, "a@b.io", "A", "secret123", 0)
	require.NoError(t, err)
	_, err = Create(ctx, users, "A@B.io", "A", "secret123", 0)
	require.ErrorIs(t, err, store.ErrDuplicate)
}
