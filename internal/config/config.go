// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Admin       AdminConfig
	PayPal      PayPalConfig
	Email       EmailConfig
	Upload      UploadConfig
	AWS         AWSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type AdminConfig struct {
	Password     string
	PasswordHash string // bcrypt; takes precedence over Password when set
	JWTSecret    string
	SessionTTL   int // in hours
}

type PayPalConfig struct {
	DefaultMode     string // sandbox or live; settings override at runtime
	SandboxClientID string
	SandboxSecret   string
	LiveClientID    string
	LiveSecret      string
	BrandName       string
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

type UploadConfig struct {
	Dir           string
	PublicBaseURL string
	MaxSizeBytes  int64
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "letmemugyou"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Admin: AdminConfig{
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("ADMIN_JWT_SECRET", "dev-key-change-me"),
			SessionTTL:   getEnvAsInt("ADMIN_SESSION_TTL", 12),
		},
		PayPal: PayPalConfig{
			DefaultMode:     getEnv("PAYPAL_MODE", "sandbox"),
			SandboxClientID: getEnv("PAYPAL_SANDBOX_CLIENT_ID", ""),
			SandboxSecret:   getEnv("PAYPAL_SANDBOX_SECRET", ""),
			LiveClientID:    getEnv("PAYPAL_LIVE_CLIENT_ID", ""),
			LiveSecret:      getEnv("PAYPAL_LIVE_SECRET", ""),
			BrandName:       getEnv("PAYPAL_BRAND_NAME", "Let Me Mug You"),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "orders@letmemugyou.com"),
			FromName:     getEnv("FROM_NAME", "Let Me Mug You"),
		},
		Upload: UploadConfig{
			Dir:           getEnv("UPLOAD_DIR", "./uploads/logos"),
			PublicBaseURL: getEnv("UPLOAD_PUBLIC_BASE_URL", "/uploads/logos"),
			MaxSizeBytes:  int64(getEnvAsInt("UPLOAD_MAX_SIZE_MB", 5)) * 1024 * 1024,
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "letmemugyou-assets"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Admin.JWTSecret == "dev-key-change-me" && c.Environment == "production" {
		return fmt.Errorf("admin JWT secret must be changed in production")
	}

	if c.Admin.Password == "" && c.Admin.PasswordHash == "" && c.Environment == "production" {
		return fmt.Errorf("admin password is required in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if mode := c.PayPal.DefaultMode; mode != "sandbox" && mode != "live" {
		return fmt.Errorf("invalid PayPal mode %q", mode)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
