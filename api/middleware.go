package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie the admin session token travels in
const SessionCookieName = "session"

// SessionLifetime is the fixed validity of an issued session token. There is
// no refresh and no revocation list; logout only clears the cookie.
const SessionLifetime = 7 * 24 * time.Hour

type contextKey string

const sessionContextKey contextKey = "adminSession"

// AdminSession is the decoded identity carried by a verified session token
type AdminSession struct {
	AdminID string
	Email   string
}

var errInvalidSession = errors.New("invalid session")

// Session wraps protected routes. Missing, malformed and expired tokens are
// all rejected the same way so the response leaks nothing about the token.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		sess, err := VerifyRequest(r)
		if err != nil {
			zap.S().Debugw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the admin session stored by the Session middleware
func SessionFromContext(ctx context.Context) *AdminSession {
	sess, _ := ctx.Value(sessionContextKey).(*AdminSession)
	return sess
}

// TokenFromRequest extracts the session token from the cookie, falling back
// to an Authorization bearer header
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return token
	}
	return ""
}

// VerifyRequest verifies the session token carried by the request
func VerifyRequest(r *http.Request) (*AdminSession, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, errInvalidSession
	}
	return VerifyToken(token)
}

// VerifyToken checks the token signature and expiry against the shared secret
// and decodes the admin identity
func VerifyToken(tokenString string) (*AdminSession, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return nil, errors.New("JWT_SECRET is not set")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidSession
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, errInvalidSession
	}

	return &AdminSession{AdminID: sub, Email: email}, nil
}

// IssueToken signs a session token for the given admin identity
func IssueToken(adminID, email string) (string, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return "", errors.New("JWT_SECRET is not set")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   adminID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(SessionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
