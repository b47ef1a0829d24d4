package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// minSessionSecretLength is the shortest accepted cookie signing key.
const minSessionSecretLength = 32

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	S3       S3Config
	Coupons  CouponsConfig
	Redis    RedisConfig
	Stripe   StripeConfig
	Email    EmailConfig
	Pricing  PricingConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
	AutoMigrate     bool
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey        string
	SessionSecret string
	SecureCookies bool
	// SessionHeader lets clients name their session with X-Session-ID
	// instead of the signed cookie. Development and tests only.
	SessionHeader bool
	JWTSecret     string
	AdminEmails   []string
}

// S3Config holds AWS S3 configuration for coupon files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "coupons/")
}

// CouponsConfig lists the coupon table files merged over the built-in coupons.
type CouponsConfig struct {
	FilePaths       []string
	IncludeDefaults bool
}

// RedisConfig holds the session storage settings. Sessions live in process
// memory when Redis is disabled.
type RedisConfig struct {
	Enabled   bool
	Addr      string
	Password  string
	DB        int
	PoolSize  int
	KeyPrefix string
	TTL       time.Duration
}

// StripeConfig holds payment processor settings. Without a secret key the
// in-memory processor is used.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	DemoScaling   bool
}

// EmailConfig holds transactional email settings.
type EmailConfig struct {
	Provider     string // "smtp", "resend" or "log"
	From         string
	ContactInbox string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	ResendAPIKey string
}

// PricingConfig holds currency display settings.
type PricingConfig struct {
	Locale   string
	Currency string
	Symbol   string
}

// Load loads configuration from environment variables, after applying a
// .env file from the working directory when one exists.
func Load() (*Config, error) {
	// Variables already set in the environment take precedence.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "tasdrives"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey:        getEnv("API_KEY", ""),
			SessionSecret: getEnv("SESSION_SECRET", ""),
			SecureCookies: getEnvAsBool("SESSION_SECURE_COOKIES", false),
			SessionHeader: getEnvAsBool("SESSION_HEADER_ENABLED", false),
			JWTSecret:     getEnv("JWT_SECRET", ""),
			AdminEmails:   getEnvAsList("ADMIN_EMAILS"),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "coupons/"),
		},
		Coupons: CouponsConfig{
			FilePaths:       getEnvAsList("COUPON_FILES"),
			IncludeDefaults: getEnvAsBool("COUPON_INCLUDE_DEFAULTS", true),
		},
		Redis: RedisConfig{
			Enabled:   getEnvAsBool("REDIS_ENABLED", false),
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			PoolSize:  getEnvAsInt("REDIS_POOL_SIZE", 10),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "tasdrives:session:"),
			TTL:       getEnvAsDuration("SESSION_TTL", 30*24*time.Hour),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			Currency:      strings.ToLower(getEnv("STRIPE_CURRENCY", "mxn")),
			DemoScaling:   getEnvAsBool("PAYMENT_DEMO_SCALING", true),
		},
		Email: EmailConfig{
			Provider:     getEnv("EMAIL_PROVIDER", "log"),
			From:         getEnv("EMAIL_FROM", "TasDrives <no-reply@tasdrives.com>"),
			ContactInbox: getEnv("CONTACT_INBOX", "contacto@tasdrives.com"),
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		},
		Pricing: PricingConfig{
			Locale:   getEnv("PRICING_LOCALE", "es-MX"),
			Currency: getEnv("PRICING_CURRENCY", "MXN"),
			Symbol:   getEnv("PRICING_SYMBOL", "$"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if len(c.Auth.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("session secret must be at least %d characters", minSessionSecretLength)
	}

	if len(c.Auth.AdminEmails) > 0 && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required when admin emails are set")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required when redis is enabled")
	}

	if len(c.Stripe.Currency) != 3 {
		return fmt.Errorf("invalid stripe currency: %q", c.Stripe.Currency)
	}
	if c.Pricing.Currency != "" && !strings.EqualFold(c.Stripe.Currency, c.Pricing.Currency) {
		return fmt.Errorf("stripe currency %q must match pricing currency %q", c.Stripe.Currency, c.Pricing.Currency)
	}

	switch c.Email.Provider {
	case "log":
	case "smtp":
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("SMTP host is required when the smtp email provider is used")
		}
	case "resend":
		if c.Email.ResendAPIKey == "" {
			return fmt.Errorf("resend API key is required when the resend email provider is used")
		}
	default:
		return fmt.Errorf("invalid email provider: %s (must be smtp, resend, or log)", c.Email.Provider)
	}

	if c.Email.Provider != "log" && c.Email.From == "" {
		return fmt.Errorf("email sender address is required")
	}

	if c.Pricing.Locale == "" || c.Pricing.Currency == "" {
		return fmt.Errorf("pricing locale and currency are required")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		sslMode,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty entries.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
