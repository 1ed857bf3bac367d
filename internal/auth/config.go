package auth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// MinSecretLen is the minimum accepted length for the signing secret.
const MinSecretLen = 32

const defaultTokenTTL = 24 * time.Hour

type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// ConfigFromEnv reads the signing secret and token lifetime from the
// environment. It fails instead of defaulting the secret: a guessable
// secret silently breaks every ownership guarantee downstream.
func ConfigFromEnv() (Config, error) {
	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		return Config{}, errors.New("AUTH_SECRET environment variable is not set")
	}
	if len(secret) < MinSecretLen {
		return Config{}, fmt.Errorf("AUTH_SECRET must be at least %d characters, got %d", MinSecretLen, len(secret))
	}

	ttl := defaultTokenTTL
	if v := os.Getenv("AUTH_TOKEN_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("AUTH_TOKEN_TTL_HOURS must be a positive integer, got %q", v)
		}
		ttl = time.Duration(hours) * time.Hour
	}

	return Config{Secret: secret, TokenTTL: ttl}, nil
}
