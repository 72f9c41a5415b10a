// Package config loads immutable process configuration from the
// environment once at startup. Components receive the values they need
// explicitly; nothing reads the environment after this point.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Network
	Port string `envconfig:"PORT" default:"8080"`
	// Store
	DatabasePath string `envconfig:"DATABASE_PATH" default:"chargefinder.db"`
	// Auth. The signing secret has no fallback: rotating it invalidates
	// every outstanding token, and shipping a literal default would let
	// anyone forge tokens.
	JWTSecret  string `envconfig:"JWT_SECRET" required:"true"`
	BcryptCost int    `envconfig:"BCRYPT_COST" default:"12"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}
	if len(c.JWTSecret) < 32 {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	return c, nil
}
