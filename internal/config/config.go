package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultDatabaseURL       = "consultancy.db"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultSessionTTL        = "24h"
	defaultBackendTimeout    = "10s"
	defaultUploadsDir        = "./uploads"
	defaultStaticURLBase     = "/static/uploads"
	defaultSiteURL           = "http://localhost:5173"
	defaultBusinessName      = "DecodersHQ"
	defaultBusinessLocation  = "DecodersHQ Office, Kwara State, Nigeria"
	defaultBusinessDomain    = "decodershq.com"
	defaultTimezone          = "Africa/Lagos"
	defaultBookingSessionTTL = "2h"
	defaultBookingReqTime    = "true"
	defaultRateLimitRPS      = "1"
	defaultRateLimitBurst    = "5"
	defaultLogLevel          = "info"
)

type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	DatabaseURL string
	RedisURL    string

	JWTSecret      string
	SessionTTL     time.Duration
	BackendTimeout time.Duration

	UploadsDir    string
	StaticURLBase string

	SiteURL               string
	PasswordResetRedirect string
	CORSAllowedOrigins    []string

	BusinessName     string
	BusinessLocation string
	BusinessDomain   string
	Timezone         string
	Location         *time.Location

	ServicesFile       string
	BookingSessionTTL  time.Duration
	BookingRequireTime bool

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(getEnv("APP_ENV", ""))
	if appEnv == "" {
		appEnv = strings.TrimSpace(getEnv("ENV", "dev"))
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.RedisURL = strings.TrimSpace(getEnv("REDIS_URL", ""))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.UploadsDir = strings.TrimSpace(getEnv("UPLOADS_DIR", defaultUploadsDir))
	cfg.StaticURLBase = strings.TrimRight(strings.TrimSpace(getEnv("STATIC_URL_BASE", defaultStaticURLBase)), "/")
	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(getEnv("SITE_URL", defaultSiteURL)), "/")
	cfg.PasswordResetRedirect = strings.TrimSpace(getEnv("PASSWORD_RESET_REDIRECT", cfg.SiteURL+"/auth"))
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", ""))
	cfg.BusinessName = strings.TrimSpace(getEnv("BUSINESS_NAME", defaultBusinessName))
	cfg.BusinessLocation = strings.TrimSpace(getEnv("BUSINESS_LOCATION", defaultBusinessLocation))
	cfg.BusinessDomain = strings.TrimSpace(getEnv("BUSINESS_DOMAIN", defaultBusinessDomain))
	cfg.Timezone = strings.TrimSpace(getEnv("TIMEZONE", defaultTimezone))
	cfg.ServicesFile = strings.TrimSpace(getEnv("SERVICES_FILE", ""))
	cfg.BookingRequireTime = parseBoolEnv("BOOKING_REQUIRE_TIME", defaultBookingReqTime)

	var err error
	if cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.BackendTimeout, err = parseDurationEnv("BACKEND_TIMEOUT", defaultBackendTimeout); err != nil {
		return nil, err
	}
	if cfg.BookingSessionTTL, err = parseDurationEnv("BOOKING_SESSION_TTL", defaultBookingSessionTTL); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = parseFloatEnv("RATE_LIMIT_RPS", defaultRateLimitRPS); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = parseIntEnv("RATE_LIMIT_BURST", defaultRateLimitBurst); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProdLike() bool { return isProdLike(c.AppEnv) }

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.BackendTimeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be > 0")
	}
	if cfg.BookingSessionTTL <= 0 {
		return fmt.Errorf("BOOKING_SESSION_TTL must be > 0")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}
	if cfg.UploadsDir == "" {
		return fmt.Errorf("UPLOADS_DIR must not be empty")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if len(cfg.JWTSecret) < 32 {
			return fmt.Errorf("in prod/release JWT_SECRET must be at least 32 characters")
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

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
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
