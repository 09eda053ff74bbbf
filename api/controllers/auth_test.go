package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/artesanos-backend/internal/auth"
	"github.com/angelmondragon/artesanos-backend/internal/users"
	"github.com/angelmondragon/artesanos-backend/pkg/config"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	loginFn  func(ctx context.Context, req auth.LoginRequest, role enums.Role) (*auth.LoginResponse, error)
	logoutFn func(ctx context.Context, sessionID string) error
}

func (s stubAuth) Login(ctx context.Context, req auth.LoginRequest, role enums.Role) (*auth.LoginResponse, error) {
	return s.loginFn(ctx, req, role)
}

func (s stubAuth) Logout(ctx context.Context, sessionID string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, sessionID)
}

type stubRegister struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error)
}

func (s stubRegister) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return s.registerFn(ctx, req)
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:        "secret",
		TTLMinutes:    60,
		CookieName:    "artesanos_session",
		LoginPath:     "/login/",
		BuyerLoginURL: "/compradores/login/",
	}
}

func TestAuthLoginSetsCookieAndFollowsNext(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC()
	svc := stubAuth{
		loginFn: func(ctx context.Context, req auth.LoginRequest, role enums.Role) (*auth.LoginResponse, error) {
			assert.Equal(t, enums.RoleBuyer, role)
			return &auth.LoginResponse{
				Token:     "signed-token",
				ExpiresAt: expires,
				User:      &users.UserDTO{ID: uuid.New(), Username: req.Username},
			}, nil
		},
	}

	body := map[string]string{"username": "ana", "password": "secreto123"}
	req := newRequest(t, http.MethodPost, "/compradores/login/?next=%2Fcompradores%2Ffavorites%2F", body, types.Actor{}, nil)
	resp := httptest.NewRecorder()
	AuthLogin(svc, enums.RoleBuyer, testSessionConfig(), nil).ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	cookies := resp.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "artesanos_session", cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	env := decodeAction(t, resp)
	assert.Equal(t, "Bienvenido ana", env.Data.Message)
	assert.Equal(t, "/compradores/favorites/", env.Data.RedirectTo)
}

func TestAuthLoginDefaultsPerRole(t *testing.T) {
	svc := stubAuth{
		loginFn: func(ctx context.Context, req auth.LoginRequest, role enums.Role) (*auth.LoginResponse, error) {
			return &auth.LoginResponse{Token: "t", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	body := map[string]string{"username": "taller", "password": "secreto123"}

	resp := httptest.NewRecorder()
	AuthLogin(svc, enums.RoleArtisan, testSessionConfig(), nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/login/?next=https://evil.test/", body, types.Actor{}, nil))
	assert.Equal(t, "/mi_tienda/", decodeAction(t, resp).Data.RedirectTo)

	resp = httptest.NewRecorder()
	AuthLogin(svc, enums.RoleBuyer, testSessionConfig(), nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/compradores/login/", body, types.Actor{}, nil))
	assert.Equal(t, catalogPath, decodeAction(t, resp).Data.RedirectTo)
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := stubAuth{
		loginFn: func(ctx context.Context, req auth.LoginRequest, role enums.Role) (*auth.LoginResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Usuario o contraseña incorrectos.")
		},
	}
	body := map[string]string{"username": "ana", "password": "mal"}
	resp := httptest.NewRecorder()
	AuthLogin(svc, enums.RoleBuyer, testSessionConfig(), nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", body, types.Actor{}, nil))

	require.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Empty(t, resp.Result().Cookies())
	assert.Equal(t, "Usuario o contraseña incorrectos.", decodeError(t, resp).Error.Message)
}

func TestAuthLogoutClearsCookie(t *testing.T) {
	resp := httptest.NewRecorder()
	AuthLogout(stubAuth{}, enums.RoleBuyer, testSessionConfig(), nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", nil, types.Actor{}, nil))

	require.Equal(t, http.StatusOK, resp.Code)
	cookies := resp.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	env := decodeAction(t, resp)
	assert.Equal(t, "Has cerrado sesión correctamente.", env.Data.Message)
	assert.Equal(t, "/compradores/login/", env.Data.RedirectTo)
}

func TestAuthRegisterAssignsRouteRole(t *testing.T) {
	svc := stubRegister{
		registerFn: func(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
			assert.Equal(t, enums.RoleArtisan, req.Role)
			return &users.UserDTO{ID: uuid.New(), Username: req.Username}, nil
		},
	}
	body := map[string]string{
		"username":         "taller",
		"email":            "taller@example.com",
		"password":         "secreto123",
		"password_confirm": "secreto123",
	}

	resp := httptest.NewRecorder()
	AuthRegister(svc, enums.RoleArtisan, testSessionConfig(), nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/registro/", body, types.Actor{}, nil))

	require.Equal(t, http.StatusCreated, resp.Code)
	env := decodeAction(t, resp)
	assert.Equal(t, "Registro exitoso. Ahora puedes iniciar sesión.", env.Data.Message)
	assert.Equal(t, "/login/", env.Data.RedirectTo)
}

func TestAuthRegisterLeavesFieldChecksToService(t *testing.T) {
	called := false
	svc := stubRegister{
		registerFn: func(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
			called = true
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed")
		},
	}

	resp := httptest.NewRecorder()
	AuthRegister(svc, enums.RoleBuyer, testSessionConfig(), nil).ServeHTTP(resp, newRequest(t, http.MethodPost, "/", map[string]string{}, types.Actor{}, nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
