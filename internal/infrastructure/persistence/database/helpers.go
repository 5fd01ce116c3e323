package database

import (
	"strings"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
)

// CheckAndLogSlowQuery logs query on the slow query channel when duration
// exceeds the configured threshold. Connection setup gets a 3x allowance.
func CheckAndLogSlowQuery(logger *logging.ChanneledLogger, query string, duration time.Duration, tenantID string) {
	threshold := config.SlowQueryThreshold
	if strings.HasPrefix(query, "DATABASE_") {
		threshold *= 3
	}
	if duration > threshold {
		logger.LogSlowQuery(query, duration, tenantID)
	}
}
