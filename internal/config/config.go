package config

import (
	"os"
	"strconv"
	"time"
)

// AppConfig holds environment driven configuration values. Sensitive data
// must be provided via the environment or a .env file loaded at boot.
type AppConfig struct {
	AppPort     string
	GinMode     string
	DatabaseURL string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
	// Read-side caches
	ThreadCacheTTL time.Duration
	DetailCacheTTL time.Duration
}

var cfg AppConfig
var loaded bool

// Load reads the application configuration from environment variables. It
// should be called once during boot, after godotenv has run.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	cfg = AppConfig{
		AppPort:        getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "release"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPath:        os.Getenv("LOG_PATH"),
		LogMaxSizeMB:   getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:  getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:  getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:    getEnvBool("LOG_COMPRESS", false),
		ThreadCacheTTL: getEnvDuration("THREAD_CACHE_TTL", time.Minute),
		DetailCacheTTL: getEnvDuration("DETAIL_CACHE_TTL", 5*time.Minute),
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
