package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkwellhq/inkwell/internal/common/constants"
	commonerrors "github.com/inkwellhq/inkwell/internal/common/errors"
)

type Config struct {
	HTTPPort       string
	JWTSecret      string
	AccessTokenTTL time.Duration
	RequestTimeout time.Duration

	OpenAIAPIKey  string
	AssistModel   string
	AssistTimeout time.Duration

	LogDir   string
	LogLevel string
}

// Load reads configuration from the environment, first merging a .env file
// from the working directory when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}

	if len(jwtSecret) < constants.JWTSecretMinLength {
		return Config{}, fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidJWTSecret, len(jwtSecret))
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		JWTSecret:      jwtSecret,
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		AssistModel:    getEnv("ASSIST_MODEL", constants.DefaultAssistModel),
		AssistTimeout:  getDurationEnv("ASSIST_TIMEOUT", constants.DefaultAssistTimeout),
		LogDir:         getEnv("LOG_DIR", ""),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
