// Package config provides centralized default values for sitecraft
package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

// loadEnvFile applies .env overrides. Variables already set in the
// environment win.
func loadEnvFile() {
	envLoaded.Do(func() {
		err := godotenv.Load()
		switch {
		case err == nil:
			log.Println("Loaded configuration overrides from .env file")
		case !errors.Is(err, fs.ErrNotExist):
			log.Printf("Ignoring unreadable .env file: %v", err)
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	// Tenancy
	MultiTenant bool

	// Storage locations
	TenantsDir     string
	UploadsDir     string
	UploadsURLPath string
	MaxUploadBytes int64

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int
	SlowQueryThreshold       time.Duration

	// Cache
	SiteConfigTTL   time.Duration
	CleanupInterval time.Duration

	// Logging
	LogLevel  string
	LogFormat string
	LogDir    string
	LogSource bool

	// Realtime
	WebSocketWriteTimeout time.Duration
	PreviewPingInterval   time.Duration

	// Counter animation
	CounterDuration     time.Duration
	CounterTickInterval time.Duration

	// Admin auth
	JWTExpiry time.Duration

	// Email
	DefaultEmailFrom string

	// Operator endpoints
	SysopPassword string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"})

	MultiTenant = getEnvBool("ENABLE_MULTI_TENANT", false)
	TenantsDir = getEnvString("TENANTS_DIR", "tenants")
	UploadsDir = getEnvString("UPLOADS_DIR", "media")
	UploadsURLPath = getEnvString("UPLOADS_URL_PATH", "/media")
	MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 250*time.Millisecond)

	SiteConfigTTL = time.Duration(getEnvInt("SITE_CONFIG_TTL_MINUTES", 60)) * time.Minute
	CleanupInterval = time.Duration(getEnvInt("CACHE_CLEANUP_INTERVAL_MINUTES", 10)) * time.Minute

	LogLevel = getEnvString("LOG_LEVEL", "info")
	LogFormat = getEnvString("LOG_FORMAT", "text")
	LogDir = getEnvString("LOG_DIR", "")
	LogSource = getEnvBool("LOG_SOURCE", false)

	WebSocketWriteTimeout = getEnvDuration("WS_WRITE_TIMEOUT", 10*time.Second)
	PreviewPingInterval = getEnvDuration("PREVIEW_PING_INTERVAL", 30*time.Second)

	CounterDuration = getEnvDuration("COUNTER_DURATION", 2000*time.Millisecond)
	CounterTickInterval = getEnvDuration("COUNTER_TICK_INTERVAL", 16*time.Millisecond)

	JWTExpiry = time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour

	DefaultEmailFrom = getEnvString("EMAIL_FROM", "sitecraft <noreply@sitecraft.local>")

	SysopPassword = getEnvString("SYSOP_PASSWORD", "")
}
