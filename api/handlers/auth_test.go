package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/sunridge-rentals/rental-api/api"
	"github.com/sunridge-rentals/rental-api/api/handlers"
	"github.com/sunridge-rentals/rental-api/databases"
	dbmocks "github.com/sunridge-rentals/rental-api/databases/mocks"
	"github.com/sunridge-rentals/rental-api/models"
)

func loginBody(t *testing.T, email, password string) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	assert.NoError(t, err)
	return bytes.NewReader(payload)
}

func TestAuth_LoginHandlerSetsSessionCookie(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	assert.NoError(t, err)
	adminID := primitive.NewObjectID()

	req, err := http.NewRequest("POST", "/api/auth/login", loginBody(t, "Admin@Example.com", "correct horse battery"))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	adminsConn := &dbmocks.CollectionHelper{}
	adminResult := &dbmocks.SingleResultHelper{}

	adminResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Admin)
		arg.ID = adminID
		arg.Email = "admin@example.com"
		arg.Name = "Site Admin"
		arg.PasswordHash = string(hash)
	})
	// email is lowercased and trimmed before the lookup
	adminsConn.On("FindOne", mock.Anything, bson.M{"email": "admin@example.com"}).Return(adminResult)
	db.On("Collection", "admins").Return(adminsConn)

	h := handlers.Auth{ADB: databases.NewAdminDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.LoginHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == api.SessionCookieName {
			sessionCookie = c
		}
	}
	assert.NotNil(t, sessionCookie, "login must set the session cookie")
	assert.True(t, sessionCookie.HttpOnly)
	assert.NotEmpty(t, sessionCookie.Value)

	sess, err := api.VerifyToken(sessionCookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, adminID.Hex(), sess.AdminID)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
}

func TestAuth_LoginHandlerWrongPassword(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("the real password"), bcrypt.MinCost)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/api/auth/login", loginBody(t, "admin@example.com", "a wrong guess"))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	adminsConn := &dbmocks.CollectionHelper{}
	adminResult := &dbmocks.SingleResultHelper{}

	adminResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Admin)
		arg.Email = "admin@example.com"
		arg.PasswordHash = string(hash)
	})
	adminsConn.On("FindOne", mock.Anything, mock.Anything).Return(adminResult)
	db.On("Collection", "admins").Return(adminsConn)

	h := handlers.Auth{ADB: databases.NewAdminDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.LoginHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error": "invalid credentials"}`, rr.Body.String())
}

func TestAuth_LoginHandlerUnknownEmailSameResponse(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	req, err := http.NewRequest("POST", "/api/auth/login", loginBody(t, "nobody@example.com", "whatever else"))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	adminsConn := &dbmocks.CollectionHelper{}
	missingResult := &dbmocks.SingleResultHelper{}

	missingResult.On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	adminsConn.On("FindOne", mock.Anything, mock.Anything).Return(missingResult)
	db.On("Collection", "admins").Return(adminsConn)

	h := handlers.Auth{ADB: databases.NewAdminDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.LoginHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error": "invalid credentials"}`, rr.Body.String())
}

func TestAuth_LoginHandlerBadPayload(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/auth/login", loginBody(t, "not-an-email", ""))
	if err != nil {
		t.Fatal(err)
	}

	h := handlers.Auth{ADB: databases.NewAdminDatabase(&MockDatabaseHelper{})}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.LoginHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuth_MeHandlerWithoutSession(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/auth/me", nil)
	if err != nil {
		t.Fatal(err)
	}

	h := handlers.Auth{ADB: databases.NewAdminDatabase(&MockDatabaseHelper{})}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.MeHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_LogoutHandlerClearsCookie(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/auth/logout", nil)
	if err != nil {
		t.Fatal(err)
	}

	h := handlers.Auth{}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.LogoutHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == api.SessionCookieName {
			sessionCookie = c
		}
	}
	assert.NotNil(t, sessionCookie)
	assert.Equal(t, "", sessionCookie.Value)
	assert.Equal(t, -1, sessionCookie.MaxAge)
}
