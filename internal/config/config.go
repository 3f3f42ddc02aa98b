package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	JWT           JWTConfig           `yaml:"jwt"`
	Sendgrid      SendgridConfig      `yaml:"sendgrid"`
	Log           LogConfig           `yaml:"log"`
	Pricing       PricingConfig       `yaml:"pricing"`
	Assignment    AssignmentConfig    `yaml:"assignment"`
	Collaborators CollaboratorsConfig `yaml:"collaborators"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// SendgridConfig contains the notification sink settings
type SendgridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// PricingConfig contains the fee engine rates. Amounts are cents.
type PricingConfig struct {
	FreeDeliveryRadiusKm     float64 `yaml:"free_delivery_radius_km"`
	DeliveryRatePerKmCents   int64   `yaml:"delivery_rate_per_km_cents"`
	GraceMinutes             int     `yaml:"grace_minutes"`
	OvertimeRatePerHourCents int64   `yaml:"overtime_rate_per_hour_cents"`
	DamageFeeCents           int64   `yaml:"damage_fee_cents"`
	CleaningFeeCents         int64   `yaml:"cleaning_fee_cents"`
}

// AssignmentConfig bounds how many active bookings one person may carry.
type AssignmentConfig struct {
	MaxConcurrentPerPerson int64 `yaml:"max_concurrent_per_person"`
}

// CollaboratorsConfig points at the two external read collaborators.
type CollaboratorsConfig struct {
	DistanceEstimatorURL string `yaml:"distance_estimator_url"`
	UserDirectoryURL     string `yaml:"user_directory_url"`
	TimeoutSeconds       int    `yaml:"timeout_seconds"`
}

// SchedulerConfig contains cron specs for the reminder jobs
type SchedulerConfig struct {
	SendPickupReminders string `yaml:"send_pickup_reminders"`
	SendReturnReminders string `yaml:"send_return_reminders"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Sendgrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Sendgrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.Sendgrid.FromEmail = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Collaborators
	if val := os.Getenv("DISTANCE_ESTIMATOR_URL"); val != "" {
		c.Collaborators.DistanceEstimatorURL = val
	}
	if val := os.Getenv("USER_DIRECTORY_URL"); val != "" {
		c.Collaborators.UserDirectoryURL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Collaborators
	if c.Collaborators.UserDirectoryURL == "" {
		return fmt.Errorf("user directory URL is required")
	}
	if c.Collaborators.DistanceEstimatorURL == "" {
		return fmt.Errorf("distance estimator URL is required")
	}
	if c.Collaborators.TimeoutSeconds <= 0 {
		c.Collaborators.TimeoutSeconds = 5
	}

	// Pricing defaults
	if c.Pricing.DeliveryRatePerKmCents <= 0 {
		return fmt.Errorf("delivery rate per km is required")
	}
	if c.Pricing.OvertimeRatePerHourCents <= 0 {
		return fmt.Errorf("overtime rate per hour is required")
	}
	if c.Pricing.GraceMinutes < 0 {
		return fmt.Errorf("grace minutes cannot be negative")
	}

	// Assignment defaults
	if c.Assignment.MaxConcurrentPerPerson == 0 {
		c.Assignment.MaxConcurrentPerPerson = 3
	}

	// Scheduler defaults
	if c.Scheduler.SendPickupReminders == "" {
		c.Scheduler.SendPickupReminders = "0 0 8 * * *" // 8 AM UTC
	}
	if c.Scheduler.SendReturnReminders == "" {
		c.Scheduler.SendReturnReminders = "0 0 9 * * *" // 9 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
