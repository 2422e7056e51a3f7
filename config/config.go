package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// BayConfig describes one simulator bay as enumerated in configuration.
// The order of entries is the assignment priority order.
type BayConfig struct {
	ID          string `mapstructure:"id"`
	DisplayName string `mapstructure:"displayName"`
	CalendarID  string `mapstructure:"calendarId"`
}

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB (booking store).
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Google Calendar (external calendar service).
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	CalendarTimeoutSec    int    `mapstructure:"CALENDAR_TIMEOUT_SEC"`

	// Business parameters for slot computation.
	BusinessTimezone string `mapstructure:"BUSINESS_TIMEZONE"`
	OpeningHour      int    `mapstructure:"OPENING_HOUR"`
	ClosingHour      int    `mapstructure:"CLOSING_HOUR"`
	MaxSlotHours     int    `mapstructure:"MAX_SLOT_HOURS"`
	MinUsableMinutes int    `mapstructure:"MIN_USABLE_MINUTES"`
	SlotStepMinutes  int    `mapstructure:"SLOT_STEP_MINUTES"`
	SlotCacheTTLSec  int    `mapstructure:"SLOT_CACHE_TTL_SEC"`

	// Calendar sync reconciliation tuning.
	SyncMaxRetries      int    `mapstructure:"SYNC_MAX_RETRIES"`
	SyncBaseDelayMs     int    `mapstructure:"SYNC_BASE_DELAY_MS"`
	SyncConcurrency     int    `mapstructure:"SYNC_CONCURRENCY"`
	SyncBatchCooldownMs int    `mapstructure:"SYNC_BATCH_COOLDOWN_MS"`
	SyncSweepInterval   string `mapstructure:"SYNC_SWEEP_INTERVAL"`
	SyncSweepBatchLimit int    `mapstructure:"SYNC_SWEEP_BATCH_LIMIT"`

	// Simulator bays, in assignment priority order.
	Bays []BayConfig `mapstructure:"BAYS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "fairway")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "service-account.json")
	viper.SetDefault("CALENDAR_TIMEOUT_SEC", 10)
	viper.SetDefault("BUSINESS_TIMEZONE", "Asia/Bangkok")
	viper.SetDefault("OPENING_HOUR", 10)
	viper.SetDefault("CLOSING_HOUR", 23)
	viper.SetDefault("MAX_SLOT_HOURS", 5)
	viper.SetDefault("MIN_USABLE_MINUTES", 15)
	viper.SetDefault("SLOT_STEP_MINUTES", 60)
	viper.SetDefault("SLOT_CACHE_TTL_SEC", 60)
	viper.SetDefault("SYNC_MAX_RETRIES", 3)
	viper.SetDefault("SYNC_BASE_DELAY_MS", 1000)
	viper.SetDefault("SYNC_CONCURRENCY", 3)
	viper.SetDefault("SYNC_BATCH_COOLDOWN_MS", 500)
	viper.SetDefault("SYNC_SWEEP_INTERVAL", "@every 5m")
	viper.SetDefault("SYNC_SWEEP_BATCH_LIMIT", 50)
	viper.SetDefault("BAYS", []map[string]string{
		{"id": "bay-1", "displayName": "Bay 1", "calendarId": "bay1@group.calendar.google.com"},
		{"id": "bay-2", "displayName": "Bay 2", "calendarId": "bay2@group.calendar.google.com"},
		{"id": "bay-3", "displayName": "Bay 3", "calendarId": "bay3@group.calendar.google.com"},
	})

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BusinessLocation resolves the configured business timezone. Slot times and
// the same-day lead-time rule are always evaluated in this location.
func BusinessLocation() *time.Location {
	loc, err := time.LoadLocation(AppConfig.BusinessTimezone)
	if err != nil {
		log.Fatalf("Invalid BUSINESS_TIMEZONE %q: %v", AppConfig.BusinessTimezone, err)
	}
	return loc
}
