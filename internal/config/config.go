package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	CORS    CORSConfig
	Email   EmailConfig
	Export  ExportConfig
	Billing BillingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for export uploads.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds submission notification settings.
type EmailConfig struct {
	Provider      string `mapstructure:"provider"`
	Region        string `mapstructure:"region"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	NotifyAddress string `mapstructure:"notify_address"`
}

// ExportConfig holds document export settings.
type ExportConfig struct {
	KeyPrefix string `mapstructure:"key_prefix"`
	BatchSize int    `mapstructure:"batch_size"`
}

// BillingConfig holds the header defaults applied to new documents.
type BillingConfig struct {
	DefaultAutoRoundOff bool   `mapstructure:"default_auto_round_off"`
	DefaultDiscountMode string `mapstructure:"default_discount_mode"`
}

// Load reads configuration from environment variables with the KHATA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KHATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "khata")
	v.SetDefault("db.password", "khata_secret")
	v.SetDefault("db.name", "khata_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.max_lifetime", "30m")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "khata-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@khata.app")
	v.SetDefault("email.from_name", "Khata")
	v.SetDefault("email.notify_address", "")

	// Export defaults
	v.SetDefault("export.key_prefix", "exports")
	v.SetDefault("export.batch_size", 500)

	// Billing defaults
	v.SetDefault("billing.default_auto_round_off", true)
	v.SetDefault("billing.default_discount_mode", "percentage")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "KHATA_SERVER_PORT",
		"server.read_timeout":            "KHATA_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "KHATA_SERVER_WRITE_TIMEOUT",
		"server.environment":             "KHATA_SERVER_ENVIRONMENT",
		"db.host":                        "KHATA_DB_HOST",
		"db.port":                        "KHATA_DB_PORT",
		"db.user":                        "KHATA_DB_USER",
		"db.password":                    "KHATA_DB_PASSWORD",
		"db.name":                        "KHATA_DB_NAME",
		"db.sslmode":                     "KHATA_DB_SSLMODE",
		"db.max_open":                    "KHATA_DB_MAX_OPEN",
		"db.max_idle":                    "KHATA_DB_MAX_IDLE",
		"db.max_lifetime":                "KHATA_DB_MAX_LIFETIME",
		"s3.region":                      "KHATA_S3_REGION",
		"s3.bucket":                      "KHATA_S3_BUCKET",
		"s3.endpoint":                    "KHATA_S3_ENDPOINT",
		"s3.access_key":                  "KHATA_S3_ACCESS_KEY",
		"s3.secret_key":                  "KHATA_S3_SECRET_KEY",
		"s3.presign_expiry":              "KHATA_S3_PRESIGN_EXPIRY",
		"cors.allowed_origins":           "KHATA_CORS_ALLOWED_ORIGINS",
		"email.provider":                 "KHATA_EMAIL_PROVIDER",
		"email.region":                   "KHATA_EMAIL_REGION",
		"email.from_address":             "KHATA_EMAIL_FROM_ADDRESS",
		"email.from_name":                "KHATA_EMAIL_FROM_NAME",
		"email.notify_address":           "KHATA_EMAIL_NOTIFY_ADDRESS",
		"export.key_prefix":              "KHATA_EXPORT_KEY_PREFIX",
		"export.batch_size":              "KHATA_EXPORT_BATCH_SIZE",
		"billing.default_auto_round_off": "KHATA_BILLING_DEFAULT_AUTO_ROUND_OFF",
		"billing.default_discount_mode":  "KHATA_BILLING_DEFAULT_DISCOUNT_MODE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if KHATA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("KHATA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		MaxLifetime: v.GetDuration("db.max_lifetime"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:      v.GetString("email.provider"),
		Region:        v.GetString("email.region"),
		FromAddress:   v.GetString("email.from_address"),
		FromName:      v.GetString("email.from_name"),
		NotifyAddress: v.GetString("email.notify_address"),
	}

	cfg.Export = ExportConfig{
		KeyPrefix: strings.Trim(v.GetString("export.key_prefix"), "/"),
		BatchSize: v.GetInt("export.batch_size"),
	}
	if cfg.Export.BatchSize <= 0 {
		cfg.Export.BatchSize = 500
	}

	mode := v.GetString("billing.default_discount_mode")
	if mode != "percentage" && mode != "fixed" {
		return nil, fmt.Errorf("invalid billing.default_discount_mode %q: must be percentage or fixed", mode)
	}
	cfg.Billing = BillingConfig{
		DefaultAutoRoundOff: v.GetBool("billing.default_auto_round_off"),
		DefaultDiscountMode: mode,
	}

	return cfg, nil
}
