package config

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sunridge-rentals/rental-api/models"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Environment  string
}

// New sets up all config related services
func New() *Config {
	// load a local .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	environment := os.Getenv("ENVIRONMENT")

	logger, err := setLogger(environment)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         os.Getenv("PORT"),
		Environment:  environment,
	}
}

func setLogger(environment string) (*zap.Logger, error) {
	switch environment {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err. In production the raw error detail is redacted
// from the response body; it is always logged.
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)

	detail := ""
	if err != nil {
		detail = err.Error()
	}
	if os.Getenv("ENVIRONMENT") == "production" {
		detail = "internal error"
	}

	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: detail}})
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
