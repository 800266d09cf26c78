package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseURL        = "hvac.db"
	defaultPort               = "8080"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultJWTTTL             = "24h"
	defaultCompanyCode        = "ARC"
	defaultDBTimeout          = "5s"
	defaultDBMaxOpenConns     = "20"
	defaultDBMaxIdleConns     = "5"
	defaultCookieName         = "session"
	defaultCookieSecure       = "false"
	defaultServiceRequestRate = "10"
	defaultLogLevel           = "info"
	defaultLogFormat          = "text"
)

var companyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

type Config struct {
	AppEnv             string
	DatabaseURL        string
	Port               string
	JWTSecret          string
	JWTTTL             time.Duration
	CompanyCode        string
	DBTimeout          time.Duration
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	CookieName         string
	CookieSecure       bool
	CORSAllowedOrigins []string
	// ServiceRequestRate is the number of public form submissions allowed per
	// client IP per minute.
	ServiceRequestRate int
	LogLevel           string
	LogFormat          string
}

// Load reads .env.<APP_ENV> (or .env) when present and then the process
// environment. Missing files are not an error: deployed environments set
// variables directly.
func Load() (*Config, error) {
	appEnv := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	if appEnv == "" {
		appEnv = "dev"
	}

	envFile := fmt.Sprintf(".env.%s", appEnv)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file found, using process environment")
		}
	} else {
		slog.Debug("loaded configuration file", "file", envFile)
	}

	return FromEnv(appEnv)
}

// FromEnv builds a Config from the current process environment only.
func FromEnv(appEnv string) (*Config, error) {
	cfg := &Config{AppEnv: appEnv}

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.CompanyCode = strings.ToUpper(strings.TrimSpace(getEnv("COMPANY_CODE", defaultCompanyCode)))
	cfg.CookieName = strings.TrimSpace(getEnv("COOKIE_NAME", defaultCookieName))
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat)))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.DBTimeout, err = parseDurationEnv("DB_TIMEOUT", defaultDBTimeout)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxOpenConns, err = parseIntEnv("DB_MAX_OPEN_CONNS", defaultDBMaxOpenConns)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxIdleConns, err = parseIntEnv("DB_MAX_IDLE_CONNS", defaultDBMaxIdleConns)
	if err != nil {
		return nil, err
	}
	cfg.ServiceRequestRate, err = parseIntEnv("SERVICE_REQUEST_RATE", defaultServiceRequestRate)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether secrets and cookie settings must be hardened.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.DBTimeout <= 0 {
		return fmt.Errorf("DB_TIMEOUT must be > 0")
	}
	if cfg.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}
	if cfg.DBMaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be >= 0")
	}
	if cfg.ServiceRequestRate <= 0 {
		return fmt.Errorf("SERVICE_REQUEST_RATE must be > 0")
	}
	if !companyCodePattern.MatchString(cfg.CompanyCode) {
		return fmt.Errorf("COMPANY_CODE must be three letters, got %q", cfg.CompanyCode)
	}
	if cfg.CookieName == "" {
		return fmt.Errorf("COOKIE_NAME must not be empty")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
