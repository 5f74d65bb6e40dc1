package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Issuer         string // Optional: issuer claim for session tokens (default: gemterm)
	KeyStorageMode string // Optional: key storage mode (ephemeral, persistent) (default: persistent)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./terminal.db)

	AdminIdentity   string   // Optional: identity that may log in with the master code (default: admin@gem.io)
	AdminMasterCode string   // Optional: master code for AdminIdentity; admin login is disabled when empty
	SeedCodes       []string // Optional: lifetime codes inserted when the ledger is empty (comma separated)

	SessionTTL          time.Duration // Optional: session lifetime (default: 365 days)
	SessionExpiryPolicy string        // Optional: fixed or code (default: fixed)

	PollInterval    time.Duration // Optional: terminal chain poll interval (default: 60s)
	SearchDebounce  time.Duration // Optional: terminal search debounce window (default: 1200ms)
	ProviderTimeout time.Duration // Optional: per-request provider timeout (default: 15s)

	DexScreenerBaseURL string  // Optional: DexScreener API root
	DexScreenerRPS     float64 // Optional: outbound request limit, 0 disables (default: 4)
	GeminiAPIKey       string  // Optional: analysis falls back to a canned result when empty
	GeminiModel        string  // Optional: generative model name
	SolanaRPCEndpoint  string  // Optional: enables the on-chain solana whale feed with WhaleWalletsFile
	WhaleWalletsFile   string  // Optional: YAML wallet catalogue for the on-chain whale feed

	AllowedOrigins []string // Optional: websocket origins; empty allows any (comma separated)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:         getEnvOrDefault("TERMINAL_ISSUER", "gemterm"),
		KeyStorageMode: getEnvOrDefault("TERMINAL_KEY_STORAGE_MODE", "persistent"),
		DatabaseFile:   getEnvOrDefault("TERMINAL_DATABASE_FILE", "terminal.db"),

		AdminIdentity:   getEnvOrDefault("TERMINAL_ADMIN_IDENTITY", "admin@gem.io"),
		AdminMasterCode: os.Getenv("TERMINAL_ADMIN_MASTER_CODE"),
		SeedCodes:       getEnvListOrDefault("TERMINAL_SEED_CODES", nil),

		SessionTTL:          getEnvDurationOrDefault("TERMINAL_SESSION_TTL", 365*24*time.Hour),
		SessionExpiryPolicy: getEnvOrDefault("TERMINAL_SESSION_EXPIRY_POLICY", "fixed"),

		PollInterval:    getEnvDurationOrDefault("TERMINAL_POLL_INTERVAL", 60*time.Second),
		SearchDebounce:  getEnvDurationOrDefault("TERMINAL_SEARCH_DEBOUNCE", 1200*time.Millisecond),
		ProviderTimeout: getEnvDurationOrDefault("TERMINAL_PROVIDER_TIMEOUT", 15*time.Second),

		DexScreenerBaseURL: os.Getenv("DEXSCREENER_BASE_URL"),
		DexScreenerRPS:     getEnvFloatOrDefault("DEXSCREENER_RPS", 4),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        os.Getenv("GEMINI_MODEL"),
		SolanaRPCEndpoint:  os.Getenv("SOLANA_RPC_ENDPOINT"),
		WhaleWalletsFile:   os.Getenv("TERMINAL_WHALE_WALLETS_FILE"),

		AllowedOrigins: getEnvListOrDefault("TERMINAL_ALLOWED_ORIGINS", nil),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes, e.g. HOUSEKEEPING_INTERVAL=30.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
