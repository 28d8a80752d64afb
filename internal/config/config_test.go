package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "k3N9vQ2xR7mZ5pW8tY1uA4sD6fG0hJcL"

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Password: "local-dev-password"},
		Gate: GateConfig{
			AuthKey:    testSecret,
			AuthSalt:   testSecret,
			APIKeySalt: testSecret,
		},
		JWT: JWTConfig{Secret: testSecret},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRequiresSecrets(t *testing.T) {
	tests := []struct {
		name  string
		unset func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = "" }},
		{"db password", func(c *Config) { c.Database.Password = "" }},
		{"auth key", func(c *Config) { c.Gate.AuthKey = "" }},
		{"auth salt", func(c *Config) { c.Gate.AuthSalt = "" }},
		{"api key salt", func(c *Config) { c.Gate.APIKeySalt = "" }},
		{"jwt secret", func(c *Config) { c.JWT.Secret = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.unset(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateRejectsShortAPIKeySalt(t *testing.T) {
	cfg := validConfig()
	cfg.Gate.APIKeySalt = "short"

	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsLowEntropyAPIKeySalt(t *testing.T) {
	cfg := validConfig()
	cfg.Gate.APIKeySalt = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	assert.Error(t, cfg.Validate())
}

func TestHasMinimumEntropy(t *testing.T) {
	assert.True(t, hasMinimumEntropy(testSecret))
	assert.False(t, hasMinimumEntropy("password"))
	assert.False(t, hasMinimumEntropy("abababababababababababababababab"))
}
