package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcac/timecards-backend/internal/timecards/auth"
	"github.com/wcac/timecards-backend/pkg/config"
	"github.com/wcac/timecards-backend/pkg/httputil"
	"github.com/wcac/timecards-backend/pkg/logger"
)

const testSecret = "test-secret"

func newVerifier(disabled bool) *auth.Verifier {
	cfg := &config.AuthConfig{Secret: testSecret, Disabled: disabled}
	return auth.NewVerifier(cfg, logger.New("auth-test", "test"))
}

func signToken(t *testing.T, secret string, expiry time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "uid-42",
		ExpiresAt: jwt.NewNumericDate(expiry),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedHandler(gotUID *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUID = httputil.GetAuthUID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_MissingTokenIs401(t *testing.T) {
	var uid string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timecards", nil)

	newVerifier(false).Middleware(protectedHandler(&uid)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized: No token provided")
}

func TestMiddleware_MalformedHeaderIs401(t *testing.T) {
	var uid string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timecards", nil)
	req.Header.Set("Authorization", "Token abc")

	newVerifier(false).Middleware(protectedHandler(&uid)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_InvalidTokenIs403(t *testing.T) {
	var uid string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timecards", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", time.Now().Add(time.Hour)))

	newVerifier(false).Middleware(protectedHandler(&uid)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMiddleware_ExpiredTokenIs403(t *testing.T) {
	var uid string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timecards", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, time.Now().Add(-time.Hour)))

	newVerifier(false).Middleware(protectedHandler(&uid)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMiddleware_ValidTokenSetsAuthUID(t *testing.T) {
	var uid string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timecards", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, time.Now().Add(time.Hour)))

	newVerifier(false).Middleware(protectedHandler(&uid)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-42", uid)
}

func TestMiddleware_DisabledPassesThrough(t *testing.T) {
	var uid string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timecards", nil)

	newVerifier(true).Middleware(protectedHandler(&uid)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, uid)
}
