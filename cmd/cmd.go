// Package cmd defines the command-line interface for sizewatch.
package cmd

import (
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(sizesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("pattern", contract.DefaultPattern, "Glob of build outputs to measure")
	rootCmd.PersistentFlags().String("exclude", contract.DefaultExclude, "Glob of files to leave out")
	rootCmd.PersistentFlags().String("strip-hash", "", "Regular expression matching content hashes in filenames")
	rootCmd.PersistentFlags().String("compression", string(schema.GzipCompression), "Compression used for measuring: gzip or brotli or zstd or lz4 or none")
	rootCmd.PersistentFlags().Int64("minimum-change-threshold", contract.DefaultMinimumChangeThreshold, "Changes smaller than this many bytes count as unchanged")
	rootCmd.PersistentFlags().String("show-total", "", "Show the total size change (yes/no)")
	rootCmd.PersistentFlags().String("collapse-unchanged", "", "Collapse unchanged files into a hidden section (yes/no)")
	rootCmd.PersistentFlags().String("omit-unchanged", "", "Leave unchanged files out of the report (yes/no)")
	rootCmd.PersistentFlags().String("order-by", "", "Row order as Column:direction, e.g. Change:desc")
	rootCmd.PersistentFlags().String("cwd", ".", "Directory where the build runs and outputs are collected")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or csv or markdown")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored changes in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql history (e.g., user:pass@tcp(host:port)/dbname)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("base-ref", "", "Base revision (defaults to the pull request base)")
	compareCmd.Flags().String("head-ref", contract.DefaultHeadRef, "Head revision label")
	compareCmd.Flags().String("build-script", contract.DefaultBuildScript, "Package script or shell command that builds the outputs")
	compareCmd.Flags().String("install-script", contract.AutoInstallScript, "Install command: auto, none, or a script")
	compareCmd.Flags().String("clean-script", "", "Optional script run before installing")
	compareCmd.Flags().String("comment-key", "", "Key that separates multiple reports on one pull request")
	compareCmd.Flags().String("use-check", "", "Publish a check run instead of a comment (yes/no)")
	compareCmd.Flags().String("repo-token", "", "GitHub token (prefer the GITHUB_TOKEN env var)")
	compareCmd.Flags().String("github-api-url", contract.DefaultGitHubAPIURL, "GitHub REST API base URL")
	compareCmd.Flags().Bool("dry-run", false, "Print the report without publishing it")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
