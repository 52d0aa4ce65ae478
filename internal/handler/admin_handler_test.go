package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"classpoll/config"
	"classpoll/internal/handler"
	"classpoll/internal/services"
	"classpoll/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminRouter(t *testing.T) (*gin.Engine, *services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth, err := services.NewAuthService(&config.Config{
		AdminUsername:    "teacher",
		AdminPassword:    "s3cret",
		SessionSecret:    "test-signing-key",
		SessionExpiryMin: 60,
	})
	require.NoError(t, err)

	ah := handler.NewAdminHandler(auth)
	r := gin.New()
	r.POST("/api/admin/login", ah.Login)
	r.POST("/api/admin/logout", ah.Logout)
	r.GET("/api/admin/check", ah.Check)
	return r, auth
}

func TestAdminLogin(t *testing.T) {
	r, auth := newAdminRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/login",
		`{"username":"teacher","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body httpdto.LoginResponse
	decodeBody(t, w, &body)
	assert.True(t, body.Success)
	require.NotEmpty(t, body.Token)

	claims, err := auth.ParseToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "teacher", claims.Subject)

	// The session cookie carries the same token.
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == httpdto.AdminCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, body.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newAdminRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/login",
		`{"username":"teacher","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body httpdto.ErrorResponse
	decodeBody(t, w, &body)
	assert.Equal(t, "invalid credentials", body.Error)
}

func TestAdminCheck(t *testing.T) {
	r, auth := newAdminRouter(t)

	token, err := auth.Login("teacher", "s3cret")
	require.NoError(t, err)

	// Anonymous.
	w := doJSON(t, r, http.MethodGet, "/api/admin/check", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body httpdto.CheckResponse
	decodeBody(t, w, &body)
	assert.False(t, body.LoggedIn)

	// Cookie session.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/check", nil)
	req.AddCookie(&http.Cookie{Name: httpdto.AdminCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	assert.True(t, body.LoggedIn)

	// Bearer header works too.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/check", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	assert.True(t, body.LoggedIn)
}

func TestAdminLogoutClearsCookie(t *testing.T) {
	r, _ := newAdminRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == httpdto.AdminCookie {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
