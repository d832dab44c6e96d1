package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backend selection for photo payloads and menu images.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type S3Config struct {
	Endpoint        string `env:"S3_ENDPOINT"`
	Region          string `env:"S3_REGION" envDefault:"auto"`
	Bucket          string `env:"S3_BUCKET"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	PublicURL       string `env:"S3_PUBLIC_URL"`
}

type EmailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromAddress  string `env:"EMAIL_FROM_ADDRESS" envDefault:"no-reply@menubook.local"`
	FromName     string `env:"EMAIL_FROM_NAME" envDefault:"MenuBook"`
}

type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"menubook"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"168h"`

	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"24h"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"60"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	MaxUploadBytes int `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"5m"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"local"`
	UploadsDir     string `env:"UPLOADS_DIR" envDefault:"./uploads"`

	S3    S3Config
	Email EmailConfig
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	// .env is optional: production sets real environment variables
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.JWTSecret = "dev-only-insecure-secret"
	}
	switch c.StorageBackend {
	case StorageLocal:
	case StorageS3:
		if c.S3.Bucket == "" || c.S3.AccessKeyID == "" || c.S3.SecretAccessKey == "" {
			return errors.New("S3 storage selected but S3_BUCKET/S3_ACCESS_KEY_ID/S3_SECRET_ACCESS_KEY are not set")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}
