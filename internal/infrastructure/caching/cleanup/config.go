package cleanup

import (
	"time"

	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
)

// Config holds cleanup worker configuration, sourced from the central config package.
type Config struct {
	CleanupInterval  time.Duration
	VerboseReporting bool
}

// NewConfig reads values from the already-initialized variables in /pkg/config.
func NewConfig() *Config {
	return &Config{
		CleanupInterval:  config.CleanupInterval,
		VerboseReporting: config.LogLevel == "debug",
	}
}
