// Package history records size comparison runs in an optional database.
package history

import (
	"fmt"
	"sync"

	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/schema"
)

// Table names for run history.
const (
	runsTable       = "sizewatch_runs"
	fileSizesTable  = "sizewatch_file_sizes"
	migrationsTable = "sizewatch_schema_migrations"
)

// StoreManager guards the process-wide HistoryStore.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.HistoryStore
}

// GetStore returns the configured HistoryStore, or nil before Init.
func (mgr *StoreManager) GetStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// Init opens the global history store. It runs at most once per process.
func Init(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		store, err := NewStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize history store: %w", err)
			return
		}
		Manager.Lock()
		Manager.store = store
		Manager.Unlock()
	})

	return initErr
}

// Close releases the global history store.
func Close() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// driverFor returns the database/sql driver name registered for a backend.
func driverFor(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported history backend: %s", backend)
	}
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}
