package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultDatabaseURL      = "puretask.db"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultJWTTTL           = "24h"
	defaultBusinessTimezone = "UTC"
	defaultMinInstantUSD    = "10"
	defaultMinWeeklyUSD     = "20"
	defaultInstantFeePct    = "0.05"
	defaultWeeklyDay        = "friday"
	defaultWeeklyHour       = "9"
	defaultWeeklyHold       = "0s"
	defaultLockTTL          = "30s"
	defaultPayoutScheduler  = "on"
)

// PayoutPolicy is the single source of payout thresholds and fees.
type PayoutPolicy struct {
	MinInstantUSD decimal.Decimal
	MinWeeklyUSD  decimal.Decimal
	InstantFeePct decimal.Decimal
	WeeklyDay     time.Weekday
	WeeklyHour    int
	// WeeklyHold keeps earnings younger than the hold out of a weekly batch.
	WeeklyHold time.Duration
}

func DefaultPayoutPolicy() PayoutPolicy {
	return PayoutPolicy{
		MinInstantUSD: decimal.NewFromInt(10),
		MinWeeklyUSD:  decimal.NewFromInt(20),
		InstantFeePct: decimal.RequireFromString("0.05"),
		WeeklyDay:     time.Friday,
		WeeklyHour:    9,
	}
}

type Config struct {
	AppEnv           string
	HTTPAddr         string
	DatabaseURL      string
	JWTSecret        string
	JWTTTL           time.Duration
	BusinessLocation *time.Location
	Payout           PayoutPolicy
	LockTTL          time.Duration
	RedisAddr        string
	InternalJobToken string
	// CORSAllowedOrigins is a comma separated list added to the local defaults.
	CORSAllowedOrigins string
	// PayoutScheduler runs the weekly batch inside the API process. Turn it
	// off when an external cron calls cmd/weekly_payout instead.
	PayoutScheduler bool
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.InternalJobToken = strings.TrimSpace(os.Getenv("INTERNAL_JOB_TOKEN"))
	cfg.CORSAllowedOrigins = strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.LockTTL, err = parseDurationEnv("PAYOUT_LOCK_TTL", defaultLockTTL)
	if err != nil {
		return nil, err
	}

	cfg.PayoutScheduler, err = parseSwitchEnv("PAYOUT_SCHEDULER", defaultPayoutScheduler)
	if err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(getEnv("BUSINESS_TIMEZONE", defaultBusinessTimezone))
	cfg.BusinessLocation, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE value %q: %w", tz, err)
	}

	cfg.Payout, err = loadPayoutPolicy()
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("level=info msg=\"config loaded\" env=%s tz=%s min_instant=%s min_weekly=%s instant_fee_pct=%s weekly_day=%s scheduler=%t",
		cfg.AppEnv, cfg.BusinessLocation, cfg.Payout.MinInstantUSD, cfg.Payout.MinWeeklyUSD, cfg.Payout.InstantFeePct, cfg.Payout.WeeklyDay, cfg.PayoutScheduler)

	return cfg, nil
}

func loadPayoutPolicy() (PayoutPolicy, error) {
	var p PayoutPolicy
	var err error

	if p.MinInstantUSD, err = parseDecimalEnv("PAYOUT_MIN_INSTANT_USD", defaultMinInstantUSD); err != nil {
		return p, err
	}
	if p.MinWeeklyUSD, err = parseDecimalEnv("PAYOUT_MIN_WEEKLY_USD", defaultMinWeeklyUSD); err != nil {
		return p, err
	}
	if p.InstantFeePct, err = parseDecimalEnv("PAYOUT_INSTANT_FEE_PCT", defaultInstantFeePct); err != nil {
		return p, err
	}
	if p.WeeklyDay, err = parseWeekday(getEnv("PAYOUT_WEEKLY_DAY", defaultWeeklyDay)); err != nil {
		return p, err
	}
	hour := strings.TrimSpace(getEnv("PAYOUT_WEEKLY_HOUR", defaultWeeklyHour))
	if p.WeeklyHour, err = strconv.Atoi(hour); err != nil {
		return p, fmt.Errorf("invalid PAYOUT_WEEKLY_HOUR value %q: %w", hour, err)
	}
	if p.WeeklyHold, err = parseDurationEnv("PAYOUT_WEEKLY_HOLD", defaultWeeklyHold); err != nil {
		return p, err
	}
	return p, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.LockTTL <= 0 {
		return fmt.Errorf("PAYOUT_LOCK_TTL must be > 0")
	}
	if err := ValidatePayoutPolicy(cfg.Payout); err != nil {
		return err
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.InternalJobToken == "" {
			return fmt.Errorf("in prod/release INTERNAL_JOB_TOKEN must be set")
		}
	}

	return nil
}

func ValidatePayoutPolicy(p PayoutPolicy) error {
	if p.MinInstantUSD.IsNegative() {
		return fmt.Errorf("PAYOUT_MIN_INSTANT_USD must be >= 0")
	}
	if p.MinWeeklyUSD.IsNegative() {
		return fmt.Errorf("PAYOUT_MIN_WEEKLY_USD must be >= 0")
	}
	if p.InstantFeePct.IsNegative() || p.InstantFeePct.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("PAYOUT_INSTANT_FEE_PCT must be in [0, 1)")
	}
	if p.WeeklyHour < 0 || p.WeeklyHour > 23 {
		return fmt.Errorf("PAYOUT_WEEKLY_HOUR must be in [0, 23]")
	}
	if p.WeeklyHold < 0 {
		return fmt.Errorf("PAYOUT_WEEKLY_HOLD must be >= 0")
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

func parseDecimalEnv(name, fallback string) (decimal.Decimal, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseSwitchEnv(name, fallback string) (bool, error) {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	switch value {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid %s value %q: want on or off", name, value)
}

func parseWeekday(value string) (time.Weekday, error) {
	v := strings.TrimSpace(value)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), v) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid PAYOUT_WEEKLY_DAY value %q", value)
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
