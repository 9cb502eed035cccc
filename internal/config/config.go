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
	Port           int
	APIKey         string // API key for authentication
	TrustedProxies []string

	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// StorageBackend selects where commands, balances, roles and cooldowns live
	StorageBackend  string
	SlotsConfigPath string
	SpinDelay       time.Duration
	LedgerTimeout   time.Duration
	BotIdentity     string

	WorkerCount     int
	WorkerQueueSize int
	SweepInterval   time.Duration
	RoleCacheTTL    time.Duration
	RoleCacheSize   int

	ChatRatePerSec float64
	ChatBurst      int

	StreamerbotURL      string
	StreamerbotPassword string
	DiscordToken        string
	NATSURL             string

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", DefaultDBName),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),

		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		StorageBackend:  strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		SlotsConfigPath: getEnv("SLOTS_CONFIG_PATH", ""),
		SpinDelay:       getEnvAsDuration("SPIN_DELAY", DefaultSpinDelay),
		LedgerTimeout:   getEnvAsDuration("LEDGER_TIMEOUT", DefaultLedgerTimeout),
		BotIdentity:     getEnv("BOT_IDENTITY", DefaultBotIdentity),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		SweepInterval:   getEnvAsDuration("SWEEP_INTERVAL", DefaultSweepInterval),
		RoleCacheTTL:    getEnvAsDuration("ROLE_CACHE_TTL", DefaultRoleCacheTTL),
		RoleCacheSize:   getEnvAsInt("ROLE_CACHE_SIZE", DefaultRoleCacheSize),

		ChatRatePerSec: getEnvAsFloat("CHAT_RATE_PER_SEC", 0),
		ChatBurst:      getEnvAsInt("CHAT_BURST", DefaultChatBurst),

		StreamerbotURL:      getEnv("STREAMERBOT_URL", ""),
		StreamerbotPassword: getEnv("STREAMERBOT_PASSWORD", ""),
		DiscordToken:        getEnv("DISCORD_TOKEN", ""),
		NATSURL:             getEnv("NATS_URL", ""),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.StorageBackend != StorageMemory && cfg.StorageBackend != StoragePostgres {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: must be %s or %s", cfg.StorageBackend, StorageMemory, StoragePostgres)
	}

	return cfg, nil
}

// UsesPostgres reports whether stores are backed by the database
func (c *Config) UsesPostgres() bool {
	return c.StorageBackend == StoragePostgres
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
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
