// Package logging provides structured logging channels for sitecraft
// operations with per-tenant context.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Channel represents a logical logging channel for a system component
type Channel string

const (
	ChannelSystem   Channel = "system"
	ChannelStartup  Channel = "startup"
	ChannelShutdown Channel = "shutdown"

	ChannelAuth    Channel = "auth"
	ChannelSite    Channel = "site"    // configuration, composition and rendering
	ChannelConsent Channel = "consent" // cookie-consent state changes
	ChannelMedia   Channel = "media"
	ChannelEmail   Channel = "email"
	ChannelCache   Channel = "cache"

	ChannelDatabase Channel = "database"
	ChannelTenant   Channel = "tenant"
	ChannelRealtime Channel = "realtime" // websocket hubs and counter streams

	ChannelPerf      Channel = "performance"
	ChannelSlowQuery Channel = "slow-query"
)

var allChannels = []Channel{
	ChannelSystem, ChannelStartup, ChannelShutdown,
	ChannelAuth, ChannelSite, ChannelConsent, ChannelMedia, ChannelEmail, ChannelCache,
	ChannelDatabase, ChannelTenant, ChannelRealtime,
	ChannelPerf, ChannelSlowQuery,
}

// ChanneledLogger provides structured logging with multiple channels
type ChanneledLogger struct {
	channels map[Channel]*slog.Logger
	config   *LoggerConfig
	files    []*os.File
	mu       sync.RWMutex
}

// LoggerConfig contains configuration options for the channeled logger
type LoggerConfig struct {
	Output        io.Writer              `json:"-"`
	LogDirectory  string                 `json:"logDirectory"` // empty disables per-channel files
	JSONFormat    bool                   `json:"jsonFormat"`
	IncludeSource bool                   `json:"includeSource"`
	DefaultLevel  slog.Level             `json:"defaultLevel"`
	ChannelLevels map[Channel]slog.Level `json:"channelLevels"`
}

// DefaultLoggerConfig returns a console-only configuration at info level
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Output:        os.Stdout,
		DefaultLevel:  slog.LevelInfo,
		ChannelLevels: make(map[Channel]slog.Level),
	}
}

// ConfigFromEnv builds a LoggerConfig from the process settings. Per-channel
// overrides are read from LOG_LEVEL_<CHANNEL>, e.g. LOG_LEVEL_DATABASE=debug.
func ConfigFromEnv(level, format, dir string, source bool) *LoggerConfig {
	cfg := DefaultLoggerConfig()
	cfg.DefaultLevel = ParseLevel(level)
	cfg.JSONFormat = strings.EqualFold(format, "json")
	cfg.LogDirectory = dir
	cfg.IncludeSource = source

	for _, ch := range allChannels {
		key := "LOG_LEVEL_" + strings.ToUpper(strings.ReplaceAll(string(ch), "-", "_"))
		if v := os.Getenv(key); v != "" {
			cfg.ChannelLevels[ch] = ParseLevel(v)
		}
	}
	return cfg
}

// ParseLevel maps a textual level to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewChanneledLogger creates a new channeled logger with the given configuration
func NewChanneledLogger(config *LoggerConfig) (*ChanneledLogger, error) {
	if config == nil {
		config = DefaultLoggerConfig()
	}
	if config.ChannelLevels == nil {
		config.ChannelLevels = make(map[Channel]slog.Level)
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}

	if config.LogDirectory != "" {
		if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	cl := &ChanneledLogger{
		channels: make(map[Channel]*slog.Logger, len(allChannels)),
		config:   config,
	}

	for _, channel := range allChannels {
		channelLogger, err := cl.createChannelLogger(channel)
		if err != nil {
			cl.Close()
			return nil, fmt.Errorf("failed to create logger for channel %s: %w", channel, err)
		}
		cl.channels[channel] = channelLogger
	}

	return cl, nil
}

// NewNopLogger returns a logger that discards everything. Used by tests and
// by CLI commands that only care about their own output.
func NewNopLogger() *ChanneledLogger {
	cfg := DefaultLoggerConfig()
	cfg.Output = io.Discard
	cl, _ := NewChanneledLogger(cfg)
	return cl
}

func (cl *ChanneledLogger) createChannelLogger(channel Channel) (*slog.Logger, error) {
	level := cl.config.DefaultLevel
	if channelLevel, exists := cl.config.ChannelLevels[channel]; exists {
		level = channelLevel
	}

	writer := cl.config.Output
	if cl.config.LogDirectory != "" {
		path := filepath.Join(cl.config.LogDirectory, string(channel)+".log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		cl.files = append(cl.files, file)
		writer = io.MultiWriter(writer, file)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cl.config.IncludeSource,
	}

	var handler slog.Handler
	if cl.config.JSONFormat {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	return slog.New(handler).With(slog.String("channel", string(channel))), nil
}

func (cl *ChanneledLogger) get(channel Channel) *slog.Logger {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	if l, ok := cl.channels[channel]; ok {
		return l
	}
	return cl.channels[ChannelSystem]
}

func (cl *ChanneledLogger) System() *slog.Logger    { return cl.get(ChannelSystem) }
func (cl *ChanneledLogger) Startup() *slog.Logger   { return cl.get(ChannelStartup) }
func (cl *ChanneledLogger) Shutdown() *slog.Logger  { return cl.get(ChannelShutdown) }
func (cl *ChanneledLogger) Auth() *slog.Logger      { return cl.get(ChannelAuth) }
func (cl *ChanneledLogger) Site() *slog.Logger      { return cl.get(ChannelSite) }
func (cl *ChanneledLogger) Consent() *slog.Logger   { return cl.get(ChannelConsent) }
func (cl *ChanneledLogger) Media() *slog.Logger     { return cl.get(ChannelMedia) }
func (cl *ChanneledLogger) Email() *slog.Logger     { return cl.get(ChannelEmail) }
func (cl *ChanneledLogger) Cache() *slog.Logger     { return cl.get(ChannelCache) }
func (cl *ChanneledLogger) Database() *slog.Logger  { return cl.get(ChannelDatabase) }
func (cl *ChanneledLogger) Tenant() *slog.Logger    { return cl.get(ChannelTenant) }
func (cl *ChanneledLogger) Realtime() *slog.Logger  { return cl.get(ChannelRealtime) }
func (cl *ChanneledLogger) Perf() *slog.Logger      { return cl.get(ChannelPerf) }
func (cl *ChanneledLogger) SlowQuery() *slog.Logger { return cl.get(ChannelSlowQuery) }

// GetChannel returns a logger for a specific channel
func (cl *ChanneledLogger) GetChannel(channel Channel) *slog.Logger {
	return cl.get(channel)
}

// WithTenant returns a logger with tenant context
func (cl *ChanneledLogger) WithTenant(channel Channel, tenantID string) *slog.Logger {
	return cl.get(channel).With(slog.String("tenantId", tenantID))
}

// LogSlowQuery logs a slow database query
func (cl *ChanneledLogger) LogSlowQuery(query string, duration time.Duration, tenantID string) {
	cl.SlowQuery().Warn("Slow query detected",
		slog.String("query", sanitizeQuery(query)),
		slog.Duration("duration", duration),
		slog.String("tenantId", tenantID),
	)
}

// LogCacheOperation logs cache operations at debug level
func (cl *ChanneledLogger) LogCacheOperation(operation, key string, hit bool, tenantID string) {
	logger := cl.Cache().With(
		slog.String("operation", operation),
		slog.String("key", key),
		slog.String("tenantId", tenantID),
	)
	if hit {
		logger.Debug("Cache hit")
	} else {
		logger.Debug("Cache miss")
	}
}

// LogAuthOperation logs authentication attempts with a masked subject
func (cl *ChanneledLogger) LogAuthOperation(operation, tenantID, subject string, success bool) {
	logger := cl.Auth().With(
		slog.String("operation", operation),
		slog.String("tenantId", tenantID),
		slog.String("subject", maskID(subject)),
		slog.Bool("success", success),
	)
	if success {
		logger.Info("Authentication operation completed")
	} else {
		logger.Warn("Authentication operation failed")
	}
}

// LogStartupPhase logs application startup phases
func (cl *ChanneledLogger) LogStartupPhase(phase string, duration time.Duration, success bool) {
	logger := cl.Startup().With(
		slog.String("phase", phase),
		slog.Duration("duration", duration),
		slog.Bool("success", success),
	)
	if success {
		logger.Info("Startup phase completed")
	} else {
		logger.Error("Startup phase failed")
	}
}

func sanitizeQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > 500 {
		query = query[:500] + "..."
	}
	return query
}

func maskID(id string) string {
	if len(id) <= 4 {
		return "****"
	}
	return id[:2] + "****" + id[len(id)-2:]
}

// SetChannelLevel dynamically sets the log level for a specific channel
func (cl *ChanneledLogger) SetChannelLevel(channel Channel, level slog.Level) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.channels[channel]; !exists {
		return fmt.Errorf("channel %s does not exist", channel)
	}
	cl.config.ChannelLevels[channel] = level

	newLogger, err := cl.createChannelLogger(channel)
	if err != nil {
		return fmt.Errorf("failed to recreate logger for channel %s: %w", channel, err)
	}
	cl.channels[channel] = newLogger
	return nil
}

// GetChannelLevels returns the current log levels for all channels.
func (cl *ChanneledLogger) GetChannelLevels() map[string]string {
	cl.mu.RLock()
	defer cl.mu.RUnlock()

	levels := make(map[string]string, len(cl.channels))
	for channel := range cl.channels {
		if level, ok := cl.config.ChannelLevels[channel]; ok {
			levels[string(channel)] = level.String()
		} else {
			levels[string(channel)] = cl.config.DefaultLevel.String()
		}
	}
	return levels
}

// Close releases any per-channel log files.
func (cl *ChanneledLogger) Close() error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	var firstErr error
	for _, f := range cl.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	cl.files = nil
	return firstErr
}
