// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Datastore drivers
const (
	DriverSheets   = "sheets"
	DriverPostgres = "postgres"
)

// Config holds all configuration for our application
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	Datastore DatastoreConfig
	POS       POSConfig
	External  ExternalConfig
	Logging   LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	KeyPrefix    string
}

// JWTConfig contains terminal session token configuration
type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
	// ShiftClosePINHash is a bcrypt hash; empty disables the PIN check.
	ShiftClosePINHash string
}

// DatastoreConfig selects and configures the tabular backend
type DatastoreConfig struct {
	Driver        string
	SpreadsheetID string
	Sheets        SheetNames
	// DefaultCashier is recorded on sales when no e-mail can be resolved.
	DefaultCashier string
}

// SheetNames are the five tables of the datastore. They must match the
// spreadsheet tab titles exactly.
type SheetNames struct {
	Categories  string
	Products    string
	Sides       string
	Sales       string
	SaleDetails string
}

// POSConfig contains point-of-sale presentation and reporting settings
type POSConfig struct {
	BusinessName   string
	CurrencySymbol string
	TimeZone       string
	DateLayout     string
	TimeLayout     string
	TrendSize      int
	TopSize        int
	HistoryLimit   int
	ReportTopSize  int
}

// ExternalConfig contains external service configurations
type ExternalConfig struct {
	Email EmailConfig
}

// EmailConfig contains SMTP configuration for shift reports
type EmailConfig struct {
	FromEmail     string
	FromName      string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPUseTLS    bool
	ShiftReportTo []string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Restaurant POS"),
			Version:     getEnv("APP_VERSION", "2.3.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "pos_db"),
			User:         getEnv("DB_USER", "pos_user"),
			Password:     getEnv("DB_PASSWORD", "pos_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "register:1:"),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-terminal-secret-in-production"),
			SessionExpiry: getEnvAsDuration("JWT_SESSION_EXPIRE", 12*time.Hour),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 600),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
			ShiftClosePINHash:  getEnv("SHIFT_CLOSE_PIN_HASH", ""),
		},
		Datastore: DatastoreConfig{
			Driver:        getEnv("DATASTORE_DRIVER", DriverSheets),
			SpreadsheetID: getEnv("GOOGLE_SHEET_ID", ""),
			Sheets: SheetNames{
				Categories:  getEnv("SHEET_CATEGORIES", "Categorias"),
				Products:    getEnv("SHEET_PRODUCTS", "Productos"),
				Sides:       getEnv("SHEET_SIDES", "Acompañamientos"),
				Sales:       getEnv("SHEET_SALES", "Ventas"),
				SaleDetails: getEnv("SHEET_SALE_DETAILS", "Detalle_Ventas"),
			},
			DefaultCashier: getEnv("DEFAULT_CASHIER", "sistema"),
		},
		POS: POSConfig{
			BusinessName:   getEnv("POS_BUSINESS_NAME", "Pollos & Milanesas"),
			CurrencySymbol: getEnv("POS_CURRENCY_SYMBOL", "Bs."),
			TimeZone:       getEnv("POS_TIME_ZONE", "America/La_Paz"),
			DateLayout:     getEnv("POS_DATE_LAYOUT", "2/1/2006"),
			TimeLayout:     getEnv("POS_TIME_LAYOUT", "15:04:05"),
			TrendSize:      getEnvAsInt("POS_TREND_SIZE", 20),
			TopSize:        getEnvAsInt("POS_TOP_SIZE", 10),
			HistoryLimit:   getEnvAsInt("POS_HISTORY_LIMIT", 50),
			ReportTopSize:  getEnvAsInt("POS_REPORT_TOP_SIZE", 5),
		},
		External: ExternalConfig{
			Email: EmailConfig{
				FromEmail:     getEnv("FROM_EMAIL", "pos@example.com"),
				FromName:      getEnv("FROM_NAME", "Restaurant POS"),
				SMTPHost:      getEnv("SMTP_HOST", ""),
				SMTPPort:      getEnvAsInt("SMTP_PORT", 587),
				SMTPUsername:  getEnv("SMTP_USERNAME", ""),
				SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
				SMTPUseTLS:    getEnvAsBool("SMTP_USE_TLS", false),
				ShiftReportTo: getEnvAsSlice("EMAIL_SHIFT_REPORT_TO", []string{}),
			},
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "debug"),
			Format:     getEnv("LOG_FORMAT", "json"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	switch c.Datastore.Driver {
	case DriverSheets:
		if c.Datastore.SpreadsheetID == "" {
			return fmt.Errorf("GOOGLE_SHEET_ID is required for the sheets driver")
		}
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("DB_USER is required")
		}
	default:
		return fmt.Errorf("unsupported DATASTORE_DRIVER: %q", c.Datastore.Driver)
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	if _, err := time.LoadLocation(c.POS.TimeZone); err != nil {
		return fmt.Errorf("invalid POS_TIME_ZONE %q: %w", c.POS.TimeZone, err)
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Location returns the configured POS time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.POS.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

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
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
