package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the server reads from its environment.
// ADMIN_PASSWORD_HASH may legitimately be empty; authentication then
// fails with a configuration error until the operator sets it.
type Config struct {
	ListenAddr        string
	DBPath            string
	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
}

// Load reads configuration from the environment, applying defaults for
// everything that is safe to default.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", "data/badger")
	v.SetDefault("admin_username", "admin")
	v.SetDefault("jwt_secret", "change-this-jwt-secret")
	v.SetDefault("token_ttl", "168h")
	v.AutomaticEnv()

	ttl, err := time.ParseDuration(v.GetString("token_ttl"))
	if err != nil {
		return nil, fmt.Errorf("parse TOKEN_TTL: %w", err)
	}

	return &Config{
		ListenAddr:        v.GetString("listen_addr"),
		DBPath:            v.GetString("db_path"),
		AdminUsername:     v.GetString("admin_username"),
		AdminPasswordHash: v.GetString("admin_password_hash"),
		JWTSecret:         v.GetString("jwt_secret"),
		TokenTTL:          ttl,
	}, nil
}
