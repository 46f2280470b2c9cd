package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sunridge-rentals/rental-api/api"
	"github.com/sunridge-rentals/rental-api/config"
	"github.com/sunridge-rentals/rental-api/databases"
	"github.com/sunridge-rentals/rental-api/models"
	templates "github.com/sunridge-rentals/rental-api/templates/html"
)

var validate = validator.New()

// Auth handles admin session endpoints
type Auth struct {
	ADB databases.AdminDatabase
	RDB databases.AdminResetDatabase
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
	Admin struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"admin"`
}

// LoginHandler checks the admin credentials and issues a session token as an
// HTTP-only cookie. Unknown email and wrong password are indistinguishable.
func (h Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("email and password required", http.StatusBadRequest, w, err)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	admin, err := h.ADB.FindOne(r.Context(), bson.M{"email": email})
	if err != nil {
		writeUnauthorized(w)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		writeUnauthorized(w)
		return
	}

	token, err := api.IssueToken(admin.ID.Hex(), admin.Email)
	if err != nil {
		config.ErrorStatus("failed to issue session token", http.StatusInternalServerError, w, err)
		return
	}

	setSessionCookie(w, token)

	var resp loginResponse
	resp.Token = token
	resp.Admin.ID = admin.ID.Hex()
	resp.Admin.Email = admin.Email
	resp.Admin.Name = admin.Name

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// LogoutHandler clears the session cookie. Issued tokens stay valid until
// they expire; there is no server-side revocation.
func (h Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	http.SetCookie(w, &http.Cookie{
		Name:     api.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("ENVIRONMENT") == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
}

// MeHandler returns the identity behind the current session. Unlike the other
// protected routes this re-fetches the admin record, so a deleted admin gets
// a 401 even with a token that still verifies.
func (h Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	sess := api.SessionFromContext(r.Context())
	if sess == nil {
		writeUnauthorized(w)
		return
	}

	id, err := primitive.ObjectIDFromHex(sess.AdminID)
	if err != nil {
		writeUnauthorized(w)
		return
	}
	admin, err := h.ADB.FindOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		writeUnauthorized(w)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"id":    admin.ID.Hex(),
		"email": admin.Email,
		"name":  admin.Name,
	})
}

type forgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordHandler sends a reset link if the admin exists; the response
// is identical either way.
func (h Auth) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req forgotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("email required", http.StatusBadRequest, w, err)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	admin, err := h.ADB.FindOne(r.Context(), bson.M{"email": email})
	if err == nil {
		plain, hashHex, genErr := generateResetToken()
		if genErr == nil {
			_, _ = h.RDB.InsertOne(r.Context(), models.AdminPasswordReset{
				AdminID:   admin.ID,
				TokenHash: hashHex,
				ExpiresAt: time.Now().Add(1 * time.Hour),
				CreatedAt: time.Now(),
			})
			if mailErr := sendResetEmail(email, buildResetLink(os.Getenv("BASE_URL"), plain)); mailErr != nil {
				zap.S().Errorw("failed to send reset email", "error", mailErr)
			}
		}
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "If that admin email exists, a reset link has been sent."})
}

type resetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ResetPasswordHandler consumes a one-time reset token and stores a new
// bcrypt hash.
func (h Auth) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("token and password required", http.StatusBadRequest, w, err)
		return
	}

	reset, err := h.RDB.FindOne(r.Context(), bson.M{
		"tokenHash": hashToken(strings.TrimSpace(req.Token)),
		"usedAt":    bson.M{"$exists": false},
		"expiresAt": bson.M{"$gt": time.Now()},
	})
	if err != nil {
		config.ErrorStatus("invalid or expired token", http.StatusBadRequest, w, err)
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("could not update password", http.StatusInternalServerError, w, err)
		return
	}

	err = h.ADB.UpdateOne(r.Context(), bson.M{"_id": reset.AdminID}, bson.M{"$set": bson.M{
		"passwordHash": string(newHash),
		"updatedAt":    time.Now(),
	}})
	if err != nil {
		config.ErrorStatus("could not update password", http.StatusInternalServerError, w, err)
		return
	}
	_ = h.RDB.UpdateOne(r.Context(), bson.M{"_id": reset.ID}, bson.M{"$set": bson.M{"usedAt": time.Now()}})

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "password updated"})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     api.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("ENVIRONMENT") == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(api.SessionLifetime.Seconds()),
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
}

func generateResetToken() (plain string, hashHex string, err error) {
	b := make([]byte, 32)
	_, err = rand.Read(b)
	if err != nil {
		return "", "", err
	}
	pln := hex.EncodeToString(b)
	return pln, hashToken(pln), nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func buildResetLink(baseURL, token string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = "https://www.sunridge-rentals.com"
	}
	return base + "/admin/reset-password?token=" + token
}

func sendResetEmail(toEmail, resetLink string) error {
	from := mail.NewEmail("Sunridge Rentals", "no-reply@sunridge-rentals.com")
	subject := "Admin Password Reset"
	to := mail.NewEmail("", toEmail)
	plain := "Reset your admin password using this link: " + resetLink
	html := templates.RenderAdminPasswordReset(resetLink)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	_, err := client.Send(msg)
	return err
}
