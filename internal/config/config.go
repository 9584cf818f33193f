package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names an optional YAML file that is read before environment variables.
const ConfigPathEnv = "NEWSHUB_CONFIG"

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `yaml:"host"`
	Port               string `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Name               string `yaml:"name"`
	SSLMode            string `yaml:"sslmode"`
	MaxOpenConns       int    `yaml:"maxOpenConns"`
	MaxIdleConns       int    `yaml:"maxIdleConns"`
	ConnMaxLifetimeSec int    `yaml:"connMaxLifetimeSec"`
}

// MinIOConfig holds object storage settings for publisher logos.
type MinIOConfig struct {
	Endpoint      string        `yaml:"endpoint"`
	AccessKey     string        `yaml:"accessKey"`
	SecretKey     string        `yaml:"secretKey"`
	Bucket        string        `yaml:"bucket"`
	UseSSL        bool          `yaml:"useSSL"`
	PresignExpiry time.Duration `yaml:"presignExpiry"`
}

// AuthConfig configures bearer token verification.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwtSecret"`
	Issuer    string        `yaml:"issuer"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`
}

// PaymentConfig configures the card-payment gateway.
type PaymentConfig struct {
	StripeSecretKey string `yaml:"stripeSecretKey"`
	Currency        string `yaml:"currency"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from an optional YAML file and then environment variables.
type AppConfig struct {
	Port     string         `yaml:"port"`
	Timezone string         `yaml:"timezone"`
	LogLevel string         `yaml:"logLevel"`
	Database DatabaseConfig `yaml:"database"`
	MinIO    MinIOConfig    `yaml:"minio"`
	Auth     AuthConfig     `yaml:"auth"`
	Payment  PaymentConfig  `yaml:"payment"`
}

// Location resolves Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from the YAML file named by NEWSHUB_CONFIG (if any)
// and then from environment variables, which take precedence.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() (*AppConfig, error) {
	base := defaults()
	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := loadFile(path, base); err != nil {
			return nil, err
		}
	}
	return overlayEnv(base), nil
}

func defaults() *AppConfig {
	return &AppConfig{
		Port:     "8080",
		Timezone: "UTC",
		LogLevel: "info",
		Database: DatabaseConfig{
			Port:               "5432",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
		},
		MinIO: MinIOConfig{
			PresignExpiry: 24 * time.Hour,
		},
		Auth: AuthConfig{
			Issuer:   "newshub",
			TokenTTL: time.Hour,
		},
		Payment: PaymentConfig{
			Currency: "usd",
		},
	}
}

func loadFile(path string, into *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func overlayEnv(c *AppConfig) *AppConfig {
	c.Port = getEnv("PORT", c.Port)
	c.Timezone = getEnv("TZ_NAME", c.Timezone)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetimeSec = getEnvInt("DB_CONN_MAX_LIFETIME_SEC", c.Database.ConnMaxLifetimeSec)

	c.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", c.MinIO.Endpoint)
	c.MinIO.AccessKey = getEnv("MINIO_ACCESS_KEY", c.MinIO.AccessKey)
	c.MinIO.SecretKey = getEnv("MINIO_SECRET_KEY", c.MinIO.SecretKey)
	c.MinIO.Bucket = getEnv("MINIO_BUCKET", c.MinIO.Bucket)
	c.MinIO.UseSSL = getEnvBool("MINIO_USE_SSL", c.MinIO.UseSSL)
	c.MinIO.PresignExpiry = getEnvDuration("MINIO_PRESIGN_EXPIRY", c.MinIO.PresignExpiry)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.Issuer = getEnv("JWT_ISSUER", c.Auth.Issuer)
	c.Auth.TokenTTL = getEnvDuration("JWT_TOKEN_TTL", c.Auth.TokenTTL)

	c.Payment.StripeSecretKey = getEnv("STRIPE_SECRET_KEY", c.Payment.StripeSecretKey)
	c.Payment.Currency = getEnv("PAYMENT_CURRENCY", c.Payment.Currency)
	return c
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
