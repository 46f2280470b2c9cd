package api_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sunridge-rentals/rental-api/api"
)

func TestIssueAndVerifyToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	token, err := api.IssueToken("64a000000000000000000001", "admin@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	sess, err := api.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "64a000000000000000000001", sess.AdminID)
	assert.Equal(t, "admin@example.com", sess.Email)
}

func TestIssueTokenWithoutSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "")

	_, err := api.IssueToken("64a000000000000000000001", "admin@example.com")
	assert.Error(t, err)
}

func TestVerifyTokenWithoutSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "")

	// a token HMAC'd with the empty key must not verify when the secret
	// is missing
	claims := jwt.MapClaims{
		"sub": "64a000000000000000000001",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	assert.NoError(t, err)

	_, err = api.VerifyToken(token)
	assert.EqualError(t, err, "invalid session")
}

func TestVerifyTokenGarbage(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	_, err := api.VerifyToken("not-a-token")
	assert.EqualError(t, err, "invalid session")
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	token, err := api.IssueToken("64a000000000000000000001", "admin@example.com")
	assert.NoError(t, err)

	os.Setenv("JWT_SECRET", "different-secret")
	_, err = api.VerifyToken(token)
	assert.EqualError(t, err, "invalid session")
}

func TestTokenFromRequestPrefersCookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: api.SessionCookieName, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "cookie-token", api.TokenFromRequest(req))
}

func TestTokenFromRequestBearerFallback(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "header-token", api.TokenFromRequest(req))
}

func TestTokenFromRequestEmpty(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/auth/me", nil)

	assert.Equal(t, "", api.TokenFromRequest(req))
}

func TestSessionMiddlewareRejectsMissingToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	handler := api.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached without a session")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cars", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error": "unauthorized"}`, rr.Body.String())
}

func TestSessionMiddlewareStoresSession(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	token, err := api.IssueToken("64a000000000000000000001", "admin@example.com")
	assert.NoError(t, err)

	var got *api.AdminSession
	handler := api.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = api.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/cars", nil)
	req.AddCookie(&http.Cookie{Name: api.SessionCookieName, Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, got)
	assert.Equal(t, "64a000000000000000000001", got.AdminID)
}
