package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ledger backends selectable via DANWATCH_LEDGER_BACKEND.
const (
	LedgerSQLite = "sqlite"
	LedgerRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Marketplace
	BaseURL     string        // search site base URL
	HTTPTimeout time.Duration // per-request timeout for fetches

	// Telegram
	TelegramToken  string   // bot token (required)
	TelegramAPIURL string   // override for tests, default https://api.telegram.org
	DefaultChatIDs []string // chats notified when a request names none

	// Watch lifecycle
	PollInterval     time.Duration // sleep between poll iterations (default 20s)
	RecoveryInterval time.Duration // sleep after an unexpected iteration error (default 5s)
	EpochOffset      time.Duration // subtracted from process start to pre-date the epoch (testing)
	PresetFile       string        // optional YAML of watches to start at boot

	// Ledger
	LedgerBackend string // "sqlite" | "redis"
	LedgerPath    string // sqlite file path

	// Redis (required only when LedgerBackend == "redis")
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	// Local development reads a .env file; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("DANWATCH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("DANWATCH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("DANWATCH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DANWATCH_PRETTY_LOG", false),

		// Marketplace
		BaseURL:     getenv("DANWATCH_BASE_URL", "https://www.daangn.com"),
		HTTPTimeout: mustDuration("DANWATCH_HTTP_TIMEOUT", 15*time.Second),

		// Telegram
		TelegramToken:  requireEnv("DANWATCH_TELEGRAM_BOT_TOKEN"),
		TelegramAPIURL: getenv("DANWATCH_TELEGRAM_API_URL", "https://api.telegram.org"),
		DefaultChatIDs: splitAndTrim(getenv("DANWATCH_TELEGRAM_CHAT_IDS", "")),

		// Watch lifecycle
		PollInterval:     mustDuration("DANWATCH_POLL_INTERVAL", 20*time.Second),
		RecoveryInterval: mustDuration("DANWATCH_RECOVERY_INTERVAL", 5*time.Second),
		EpochOffset:      mustDuration("DANWATCH_EPOCH_OFFSET", 0),
		PresetFile:       getenv("DANWATCH_PRESET_FILE", ""),

		// Ledger
		LedgerBackend: getenv("DANWATCH_LEDGER_BACKEND", LedgerSQLite),
		LedgerPath:    getenv("DANWATCH_LEDGER_PATH", "danwatch.db"),

		// Redis settings
		RedisAddr:           getenv("DANWATCH_REDIS_ADDR", ""),
		RedisUser:           getenv("DANWATCH_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("DANWATCH_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("DANWATCH_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	if cfg.LedgerBackend != LedgerSQLite && cfg.LedgerBackend != LedgerRedis {
		panic(fmt.Sprintf("❌ FATAL: Unknown DANWATCH_LEDGER_BACKEND %q (want %q or %q)",
			cfg.LedgerBackend, LedgerSQLite, LedgerRedis))
	}
	if cfg.LedgerBackend == LedgerRedis && cfg.RedisAddr == "" {
		panic("❌ FATAL: DANWATCH_REDIS_ADDR is required when DANWATCH_LEDGER_BACKEND=redis")
	}
	if cfg.PollInterval <= 0 {
		panic("❌ FATAL: DANWATCH_POLL_INTERVAL must be positive")
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
