package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	Version     string
	APIKey      string // API key for authentication

	// Store selection
	StoreDriver  string // postgres, mongo or memory
	StoreTimeout time.Duration

	// Postgres
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Mongo
	MongoURI string
	MongoDB  string

	// Event dedupe; Redis is used when RedisAddr is set, otherwise an in-process LRU.
	RedisAddr       string
	DedupeWindow    time.Duration
	DedupeCacheSize int

	// Discord
	DiscordToken       string
	DiscordAppID       string
	AllowedChannelID   string
	AdminUserIDs       []int64
	ForceCommandUpdate bool

	// Retention
	MessageRetentionDays  int
	ActivityRetentionDays int
	CleanupSchedule       string
	WorkerCount           int

	// External rate APIs
	FXRatesAPIKey       string
	CoinMarketCapAPIKey string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		APIKey:      getEnv("API_KEY", ""),

		StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		StoreTimeout: getEnvAsDuration("STORE_TIMEOUT", DefaultStoreTimeout),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "chatterbot"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		MongoURI: getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGODB_DB", "chatterbot"),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		DedupeWindow:    getEnvAsDuration("DEDUPE_WINDOW", DefaultDedupeWindow),
		DedupeCacheSize: getEnvAsInt("DEDUPE_CACHE_SIZE", DefaultDedupeCacheSize),

		DiscordToken:       getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:       getEnv("DISCORD_APP_ID", ""),
		AllowedChannelID:   getEnv("ALLOWED_CHANNEL_ID", ""),
		ForceCommandUpdate: getEnv("DISCORD_FORCE_COMMAND_UPDATE", "") == "true",

		MessageRetentionDays:  getEnvAsInt("MESSAGE_RETENTION_DAYS", DefaultMessageRetentionDays),
		ActivityRetentionDays: getEnvAsInt("ACTIVITY_RETENTION_DAYS", 0),
		CleanupSchedule:       getEnv("CLEANUP_SCHEDULE", DefaultCleanupSchedule),
		WorkerCount:           getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),

		FXRatesAPIKey:       getEnv("FXRATES_API_KEY", ""),
		CoinMarketCapAPIKey: getEnv("COINMARKETCAP_API_KEY", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	admins, err := parseIDList(getEnv("ADMIN_USER_IDS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_USER_IDS value: %w", err)
	}
	cfg.AdminUserIDs = admins

	switch cfg.StoreDriver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: expected %s, %s or %s",
			cfg.StoreDriver, DriverPostgres, DriverMongo, DriverMemory)
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// IsAdmin reports whether userID is listed in ADMIN_USER_IDS.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// MessageRetention returns the message retention window, zero when disabled.
func (c *Config) MessageRetention() time.Duration {
	return days(c.MessageRetentionDays)
}

// ActivityRetention returns the activity retention window, zero when activity is kept forever.
func (c *Config) ActivityRetention() time.Duration {
	return days(c.ActivityRetentionDays)
}

func days(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * 24 * time.Hour
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer environment variable, falling back on absence or parse failure
func getEnvAsInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a time.Duration environment variable, falling back on absence or parse failure
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
