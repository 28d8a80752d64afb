package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envGateAuthKey           = "GATE_AUTH_KEY"
	envGateAuthSalt          = "GATE_AUTH_SALT"
	envGateCookieName        = "GATE_COOKIE_NAME"
	envGateCookiePath        = "GATE_COOKIE_PATH"
	envGatePublicTypes       = "GATE_PUBLIC_TYPES"
	envAPIKeySalt            = "API_KEY_SALT"
	envJWTSecret             = "JWT_SECRET"
	envJWTExpiry             = "JWT_EXPIRY_MINUTES"
	envAWSRegion             = "REGION"
	envAWSAccessKeyID        = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	envAttachmentBucket      = "ATTACHMENT_BUCKET"
	envAttachmentURLExpiry   = "ATTACHMENT_URL_TIME_LIMIT"
	envPaginationPageSize    = "PAGINATION_PAGE_SIZE"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "contentgate"
	defaultDBUser             = "contentgate_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultCookieName         = "gate_token"
	defaultCookiePath         = "/"
	defaultPublicTypes        = "post,page"
	defaultJWTExpiry          = 60 * time.Minute
	defaultAttachmentExpiry   = 15 * time.Minute
	defaultPageSize           = 100
	minSecretLength           = 32
	minUniqueCharsInSecret    = 16
	minRepeatedCharThreshold  = 4
	maxRepeatedChars          = 2

	errPortRequiredFmt         = "PORT must be set"
	errDBPasswordRequiredFmt   = "DB_PASSWORD must be set"
	errGateAuthKeyRequiredFmt  = "GATE_AUTH_KEY must be set"
	errGateAuthSaltRequiredFmt = "GATE_AUTH_SALT must be set"
	errAPIKeySaltRequiredFmt   = "API_KEY_SALT must be set"
	errJWTSecretRequiredFmt    = "JWT_SECRET must be set"
	errSecretMinLengthFmt      = "%s must be at least %d characters"
	errSecretLowEntropyFmt     = "%s has insufficient entropy (appears non-random). Use a cryptographically secure random string."
	errInvalidConfigurationFmt = "invalid configuration: %w"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gate     GateConfig
	JWT      JWTConfig
	AWS      AWSConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

// GateConfig holds the server-held secrets the signing key is derived from
// and the cookie policy the transport layer applies when issuing credentials.
// Both are injected explicitly rather than read from process globals.
type GateConfig struct {
	AuthKey     string
	AuthSalt    string
	CookieName  string
	CookiePath  string
	PublicTypes []string
	APIKeySalt  string
}

type JWTConfig struct {
	Secret         string
	ExpiryDuration time.Duration
}

type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	AttachmentBucket string
}

type AppConfig struct {
	AttachmentURLExpiry time.Duration
	PageSize            int
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Database: DatabaseConfig{
			Host:     getEnv(envDBHost, defaultDBHost),
			Port:     getIntEnv(envDBPort, defaultDBPort),
			Database: getEnv(envDBName, defaultDBName),
			User:     getEnv(envDBUser, defaultDBUser),
			Password: os.Getenv(envDBPassword),
			SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		Gate: GateConfig{
			AuthKey:     os.Getenv(envGateAuthKey),
			AuthSalt:    os.Getenv(envGateAuthSalt),
			CookieName:  getEnv(envGateCookieName, defaultCookieName),
			CookiePath:  getEnv(envGateCookiePath, defaultCookiePath),
			PublicTypes: splitList(getEnv(envGatePublicTypes, defaultPublicTypes)),
			APIKeySalt:  os.Getenv(envAPIKeySalt),
		},
		JWT: JWTConfig{
			Secret:         os.Getenv(envJWTSecret),
			ExpiryDuration: getDurationEnv(envJWTExpiry, defaultJWTExpiry),
		},
		AWS: AWSConfig{
			Region:           os.Getenv(envAWSRegion),
			AccessKeyID:      os.Getenv(envAWSAccessKeyID),
			SecretAccessKey:  os.Getenv(envAWSSecretAccessKey),
			AttachmentBucket: os.Getenv(envAttachmentBucket),
		},
		App: AppConfig{
			AttachmentURLExpiry: getDurationEnv(envAttachmentURLExpiry, defaultAttachmentExpiry),
			PageSize:            getIntEnv(envPaginationPageSize, defaultPageSize),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.Database.Password == "" {
		return fmt.Errorf(errDBPasswordRequiredFmt)
	}

	if c.Gate.AuthKey == "" {
		return fmt.Errorf(errGateAuthKeyRequiredFmt)
	}

	if c.Gate.AuthSalt == "" {
		return fmt.Errorf(errGateAuthSaltRequiredFmt)
	}

	if c.Gate.APIKeySalt == "" {
		return fmt.Errorf(errAPIKeySaltRequiredFmt)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf(errJWTSecretRequiredFmt)
	}

	for name, secret := range map[string]string{
		envGateAuthKey:  c.Gate.AuthKey,
		envGateAuthSalt: c.Gate.AuthSalt,
		envAPIKeySalt:   c.Gate.APIKeySalt,
		envJWTSecret:    c.JWT.Secret,
	} {
		if len(secret) < minSecretLength {
			return fmt.Errorf(errSecretMinLengthFmt, name, minSecretLength)
		}
		if !hasMinimumEntropy(secret) {
			return fmt.Errorf(errSecretLowEntropyFmt, name)
		}
	}

	return nil
}

func hasMinimumEntropy(secret string) bool {
	if len(secret) < minSecretLength {
		return false
	}

	charCounts := make(map[rune]int)
	for _, char := range secret {
		charCounts[char]++
	}

	uniqueChars := len(charCounts)
	if uniqueChars < minUniqueCharsInSecret {
		return false
	}

	repeatedChars := 0
	for _, count := range charCounts {
		if count > len(secret)/minRepeatedCharThreshold {
			repeatedChars++
		}
	}

	return repeatedChars <= maxRepeatedChars
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// AttachmentsEnabled reports whether presigned attachment URLs can be built.
func (c *AWSConfig) AttachmentsEnabled() bool {
	return c.AttachmentBucket != "" && c.Region != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
