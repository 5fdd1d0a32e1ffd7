package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Shared key-value store (scheduler locks + response cache)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Admin surface auth
	JWTSecret string
	JWTIssuer string

	// Upstream rate source
	SourceBaseURL    string
	SourceAuthKey    string
	SourceDataCode   string
	SourceTimeout    time.Duration
	SourceMaxRetries int
	SourceRetryDelay time.Duration

	// Backfill pacing and staging
	BackfillCallDelay time.Duration
	ServiceStartDate  time.Time

	// Retention sweeps
	RateRetentionDays    int
	HistoryRetentionDays int

	// Scheduler
	RefreshTimes  []string // "HH:MM" local times for the twice-daily refresh
	PurgeTime     string
	ExpandTime    string
	InitCheckTime string
	LockTTL       time.Duration

	// Response cache
	RateCacheTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "exchange-rate-app")
	viper.SetDefault("RATE_SOURCE_BASE_URL", "https://www.koreaexim.go.kr/site/program/financial/exchangeJSON")
	viper.SetDefault("RATE_SOURCE_AUTH_KEY", "")
	viper.SetDefault("RATE_SOURCE_DATA_CODE", "AP01")
	viper.SetDefault("RATE_SOURCE_TIMEOUT", "10s")
	viper.SetDefault("RATE_SOURCE_MAX_RETRIES", 3)
	viper.SetDefault("RATE_SOURCE_RETRY_DELAY", "2s")
	viper.SetDefault("BACKFILL_CALL_DELAY", "1s")
	viper.SetDefault("SERVICE_START_DATE", "2025-01-01")
	viper.SetDefault("RATE_RETENTION_DAYS", 30)
	viper.SetDefault("HISTORY_RETENTION_DAYS", 90)
	viper.SetDefault("REFRESH_TIMES", "11:10,15:10")
	viper.SetDefault("PURGE_TIME", "03:00")
	viper.SetDefault("EXPAND_TIME", "02:00")
	viper.SetDefault("INIT_CHECK_TIME", "01:30")
	viper.SetDefault("SCHEDULER_LOCK_TTL", "5m")
	viper.SetDefault("RATE_CACHE_TTL", "10m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.SourceBaseURL = viper.GetString("RATE_SOURCE_BASE_URL")
	cfg.SourceAuthKey = viper.GetString("RATE_SOURCE_AUTH_KEY")
	if cfg.SourceAuthKey == "" {
		log.Println("Warning: RATE_SOURCE_AUTH_KEY not set. Upstream fetches will be rejected.")
	}
	cfg.SourceDataCode = viper.GetString("RATE_SOURCE_DATA_CODE")
	cfg.SourceTimeout = durationOrDefault("RATE_SOURCE_TIMEOUT", 10*time.Second)
	cfg.SourceMaxRetries = viper.GetInt("RATE_SOURCE_MAX_RETRIES")
	cfg.SourceRetryDelay = durationOrDefault("RATE_SOURCE_RETRY_DELAY", 2*time.Second)

	cfg.BackfillCallDelay = durationOrDefault("BACKFILL_CALL_DELAY", time.Second)

	startDateStr := viper.GetString("SERVICE_START_DATE")
	startDate, err := time.ParseInLocation("2006-01-02", startDateStr, time.Local)
	if err != nil {
		startDate = time.Now().Truncate(24 * time.Hour)
		log.Printf("Warning: Invalid value for SERVICE_START_DATE ('%s'). Defaulting to today.\n", startDateStr)
	}
	cfg.ServiceStartDate = startDate

	cfg.RateRetentionDays = viper.GetInt("RATE_RETENTION_DAYS")
	cfg.HistoryRetentionDays = viper.GetInt("HISTORY_RETENTION_DAYS")

	cfg.RefreshTimes = splitTimes(viper.GetString("REFRESH_TIMES"))
	if len(cfg.RefreshTimes) == 0 {
		cfg.RefreshTimes = []string{"11:10", "15:10"}
		log.Println("Warning: REFRESH_TIMES empty or invalid. Defaulting to 11:10,15:10.")
	}
	cfg.PurgeTime = viper.GetString("PURGE_TIME")
	cfg.ExpandTime = viper.GetString("EXPAND_TIME")
	cfg.InitCheckTime = viper.GetString("INIT_CHECK_TIME")
	cfg.LockTTL = durationOrDefault("SCHEDULER_LOCK_TTL", 5*time.Minute)

	cfg.RateCacheTTL = durationOrDefault("RATE_CACHE_TTL", 10*time.Minute)

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}

func splitTimes(raw string) []string {
	var times []string
	for _, part := range splitAndTrim(raw, ",") {
		if _, err := time.Parse("15:04", part); err == nil {
			times = append(times, part)
		} else {
			log.Printf("Warning: Ignoring invalid schedule time '%s'.\n", part)
		}
	}
	return times
}

func splitAndTrim(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
