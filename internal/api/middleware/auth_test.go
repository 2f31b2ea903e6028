package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autohaus-crm/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var testAuthLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authConfig(enabled bool) config.AuthConfig {
	return config.AuthConfig{Enabled: enabled, JWTSecret: testSecret}
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	mw := AuthMiddleware(authConfig(true), testAuthLogger)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareSetsPrincipal(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub":      float64(7),
		"username": "verkauf",
		"name":     "Hans Huber",
		"role":     "user",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	var got Principal
	mw := AuthMiddleware(authConfig(true), testAuthLogger)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		got = p
	}))

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "verkauf", got.Username)
	assert.Equal(t, "user", got.Role)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"username": "verkauf",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	mw := AuthMiddleware(authConfig(true), testAuthLogger)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareDisabledPassesThrough(t *testing.T) {
	mw := AuthMiddleware(authConfig(false), testAuthLogger)
	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))

	assert.True(t, called)
}

func TestRequireAdminForbidsRegularUser(t *testing.T) {
	mw := RequireAdmin(testAuthLogger)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/users/3", nil)
	req = req.WithContext(ContextWithPrincipal(req.Context(), Principal{Username: "verkauf", Role: "user"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	mw := RequireAdmin(testAuthLogger)
	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodDelete, "/users/3", nil)
	req = req.WithContext(ContextWithPrincipal(req.Context(), Principal{Username: "chef", Role: "admin"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
