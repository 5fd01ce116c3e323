// Package tenant provides database abstraction for multi-tenant support.
package tenant

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/persistence/database"
	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
)

var (
	connectionPools = make(map[string]*sql.DB)
	poolMutex       = &sync.RWMutex{}
)

type Database struct {
	Conn     *sql.DB
	TenantID string
	UseTurso bool
	isPooled bool
}

// NewDatabase returns a pooled connection for the tenant, opening libsql when
// Turso is configured and the local sqlite file otherwise.
func NewDatabase(cfg *Config, logger *logging.ChanneledLogger) (*Database, error) {
	poolKey := getPoolKey(cfg)

	poolMutex.Lock()
	defer poolMutex.Unlock()

	if pooledConn, exists := connectionPools[poolKey]; exists {
		if err := pooledConn.Ping(); err == nil {
			return &Database{
				Conn:     pooledConn,
				TenantID: cfg.TenantID,
				UseTurso: cfg.UseTurso(),
				isPooled: true,
			}, nil
		}
		pooledConn.Close()
		delete(connectionPools, poolKey)
	}

	var db *database.DB
	var err error
	if cfg.UseTurso() {
		db, err = database.OpenTurso(cfg.TursoDatabase, cfg.TursoToken, logger)
		if err != nil {
			return nil, fmt.Errorf("tenant %s degraded: turso connection failed: %w", cfg.TenantID, err)
		}
	} else {
		db, err = database.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection failed: %w", err)
		}
	}

	conn := db.DB
	conn.SetMaxOpenConns(config.DBMaxOpenConns)
	conn.SetMaxIdleConns(config.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
	conn.SetConnMaxIdleTime(time.Duration(config.DBConnMaxIdleMinutes) * time.Minute)

	connectionPools[poolKey] = conn

	return &Database{
		Conn:     conn,
		TenantID: cfg.TenantID,
		UseTurso: cfg.UseTurso(),
		isPooled: true,
	}, nil
}

func getPoolKey(cfg *Config) string {
	if cfg.UseTurso() {
		return fmt.Sprintf("turso:%s", cfg.TenantID)
	}
	return fmt.Sprintf("sqlite:%s", cfg.SQLitePath)
}

// Close is a no-op for pooled connections; see ClosePools.
func (db *Database) Close() error {
	if db.isPooled {
		return nil
	}
	if db.Conn != nil {
		return db.Conn.Close()
	}
	return nil
}

func (db *Database) GetConnectionInfo() string {
	poolStatus := ""
	if db.isPooled {
		poolStatus = " (pooled)"
	}
	if db.UseTurso {
		return fmt.Sprintf("Turso (tenant: %s)%s", db.TenantID, poolStatus)
	}
	return fmt.Sprintf("SQLite (tenant: %s)%s", db.TenantID, poolStatus)
}

// DatabaseType is the registry label of the connection.
func (db *Database) DatabaseType() string {
	if db.UseTurso {
		return "turso"
	}
	return database.DriverSQLite
}

// CleanupStaleConnections closes pooled connections that no longer answer.
func CleanupStaleConnections(logger *logging.ChanneledLogger) int {
	poolMutex.Lock()
	defer poolMutex.Unlock()

	removed := 0
	for key, conn := range connectionPools {
		if err := conn.Ping(); err != nil {
			conn.Close()
			delete(connectionPools, key)
			removed++
			logger.Database().Warn("Database pool cleanup removed dead connection", "pool", key, "error", err)
		}
	}
	return removed
}

// ClosePools closes every pooled connection. Used at shutdown.
func ClosePools() {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	for key, conn := range connectionPools {
		conn.Close()
		delete(connectionPools, key)
	}
}

func GetConnectionPoolInfo() map[string]map[string]any {
	poolMutex.RLock()
	defer poolMutex.RUnlock()

	info := make(map[string]map[string]any)
	for key, conn := range connectionPools {
		stats := conn.Stats()
		info[key] = map[string]any{
			"healthy": conn.Ping() == nil,
			"maxOpen": stats.MaxOpenConnections,
			"open":    stats.OpenConnections,
			"inUse":   stats.InUse,
			"idle":    stats.Idle,
		}
	}
	return info
}
