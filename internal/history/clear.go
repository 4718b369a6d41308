package history

import (
	"fmt"
	"os"

	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/schema"
)

// ClearHistory removes all recorded runs for the specified backend.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it drops the history tables and the migration version table.
// For the none backend, it does nothing.
func ClearHistory(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		db, err := openDB(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		for _, table := range []string{fileSizesTable, runsTable, migrationsTable} {
			query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
			if _, err := db.Exec(query); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}
		return nil

	case schema.NoneBackend, "":
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}
