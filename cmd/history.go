package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/internal/history"
	"github.com/huangsam/sizewatch/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyConfig loads the minimal configuration needed for history operations.
func historyConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("history-backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetupWrapper opens the store for history commands without the full shared setup.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	if err := historyConfig(); err != nil {
		return err
	}
	if err := history.Init(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historyMigrateSetupWrapper does NOT open the store, so migrations can run on a fresh database.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyConfig()
}

// historyCmd focused on run history management.
//
// Note: History subcommands skip sharedSetup. They need neither a git repository
// nor the build configuration.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the recorded history of size comparisons",
	Long: `Manage the run history written by 'sizewatch compare' when --history-backend is set.

Each run stores its refs, compression, totals and the size of every file, which
lets you chart bundle growth over time.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := history.Manager.GetStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		if err := history.PrintHistoryStatus(os.Stdout, status); err != nil {
			contract.LogFatal("Failed to print history status", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all stored runs and file sizes.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

WARNING: This action cannot be undone. Consider exporting data first.`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history to Parquet for BI tools and analytics",
	Long: `Export all stored runs and file sizes to Parquet.

Requires: --output-file parameter, used as the prefix of two files:
  <prefix>.runs.parquet        one row per comparison run
  <prefix>.file_sizes.parquet  one row per file per run

Examples:
  sizewatch history export --output-file sizes
  duckdb -c "SELECT head_ref, total_size FROM read_parquet('sizes.runs.parquet')"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(history.Manager.GetStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  sizewatch history migrate --history-backend sqlite

  # Rollback to initial state
  sizewatch history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion, os.Stdout); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
