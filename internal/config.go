package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Churn         ChurnConfig         `mapstructure:"churn"`
	Procurement   ProcurementConfig   `mapstructure:"procurement"`
	Notification  NotificationConfig  `mapstructure:"notification"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

// ChurnConfig points at the external churn model service. The engine only
// consumes predictions; training lives elsewhere.
type ChurnConfig struct {
	ModelAPIURL       string        `mapstructure:"model_api_url"`
	APIKey            string        `mapstructure:"api_key"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	HighRiskThreshold float64       `mapstructure:"high_risk_threshold"`
}

// ProcurementConfig carries the forecasting knobs exposed to callers.
type ProcurementConfig struct {
	RefreshAgeYears    int     `mapstructure:"refresh_age_years"`
	ReturnGraceDays    int     `mapstructure:"return_grace_days"`
	ForecastMonths     int     `mapstructure:"forecast_months"`
	SafetyStockPercent float64 `mapstructure:"safety_stock_percent"`
}

type NotificationConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromEmail    string `mapstructure:"from_email"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// Defaults mirror the numeric knobs the engine exposes.
const (
	DefaultRefreshAgeYears    = 3
	DefaultReturnGraceDays    = 7
	DefaultForecastMonths     = 6
	DefaultSafetyStockPercent = 0.20
	DefaultHighRiskThreshold  = 0.70
)

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config from environment variables for
// container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_SERVER_PORT", 8080),
			BaseURL:           getEnv("HTTP_SERVER_BASE_URL", "http://localhost:8080"),
			AllowedOrigins:    getEnv("HTTP_SERVER_ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
			Source:          getEnv("DATABASE_SOURCE", ""),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOGGING_LEVEL", "info"),
				Format: getEnv("LOGGING_FORMAT", "json"),
			},
		},
		Churn: ChurnConfig{
			ModelAPIURL:       getEnv("CHURN_MODEL_API_URL", ""),
			APIKey:            getEnv("CHURN_API_KEY", ""),
			RequestTimeout:    10 * time.Second,
			HighRiskThreshold: getEnvAsFloat("CHURN_HIGH_RISK_THRESHOLD", DefaultHighRiskThreshold),
		},
		Procurement: ProcurementConfig{
			RefreshAgeYears:    getEnvAsInt("PROCUREMENT_REFRESH_AGE_YEARS", DefaultRefreshAgeYears),
			ReturnGraceDays:    getEnvAsInt("PROCUREMENT_RETURN_GRACE_DAYS", DefaultReturnGraceDays),
			ForecastMonths:     getEnvAsInt("PROCUREMENT_FORECAST_MONTHS", DefaultForecastMonths),
			SafetyStockPercent: getEnvAsFloat("PROCUREMENT_SAFETY_STOCK_PERCENT", DefaultSafetyStockPercent),
		},
		Notification: NotificationConfig{
			Enabled:      getEnvAsBool("NOTIFICATION_ENABLED", false),
			SMTPHost:     getEnv("NOTIFICATION_SMTP_HOST", ""),
			SMTPPort:     getEnvAsInt("NOTIFICATION_SMTP_PORT", 587),
			SMTPUser:     getEnv("NOTIFICATION_SMTP_USER", ""),
			SMTPPassword: getEnv("NOTIFICATION_SMTP_PASSWORD", ""),
			FromEmail:    getEnv("NOTIFICATION_FROM_EMAIL", ""),
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Churn.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("churn config: %v", err))
	}

	if err := c.Procurement.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("procurement config: %v", err))
	}

	if err := c.Notification.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("notification config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *ChurnConfig) Validate() error {
	if c.ModelAPIURL != "" {
		if _, err := url.Parse(c.ModelAPIURL); err != nil {
			return fmt.Errorf("invalid model_api_url: %w", err)
		}
	}
	if c.HighRiskThreshold < 0 || c.HighRiskThreshold > 1 {
		return errors.New("high_risk_threshold must be between 0 and 1")
	}
	return nil
}

func (c *ProcurementConfig) Validate() error {
	if c.RefreshAgeYears < 0 {
		return errors.New("refresh_age_years cannot be negative")
	}
	if c.ReturnGraceDays < 0 {
		return errors.New("return_grace_days cannot be negative")
	}
	if c.SafetyStockPercent < 0 {
		return errors.New("safety_stock_percent cannot be negative")
	}
	return nil
}

func (c *NotificationConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.SMTPHost == "" || c.FromEmail == "" {
		return errors.New("smtp_host and from_email are required when notifications are enabled")
	}
	return nil
}

// ApplyDefaults fills zero-valued procurement and churn knobs.
func (c *Config) ApplyDefaults() {
	if c.Procurement.RefreshAgeYears == 0 {
		c.Procurement.RefreshAgeYears = DefaultRefreshAgeYears
	}
	if c.Procurement.ReturnGraceDays == 0 {
		c.Procurement.ReturnGraceDays = DefaultReturnGraceDays
	}
	if c.Procurement.ForecastMonths == 0 {
		c.Procurement.ForecastMonths = DefaultForecastMonths
	}
	if c.Procurement.SafetyStockPercent == 0 {
		c.Procurement.SafetyStockPercent = DefaultSafetyStockPercent
	}
	if c.Churn.HighRiskThreshold == 0 {
		c.Churn.HighRiskThreshold = DefaultHighRiskThreshold
	}
	if c.Churn.RequestTimeout == 0 {
		c.Churn.RequestTimeout = 10 * time.Second
	}
}
