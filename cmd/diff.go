package cmd

import (
	"time"

	"github.com/huangsam/sizewatch/core"
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/internal/outwriter"
	"github.com/spf13/cobra"
)

// diffCmd renders the report for two size maps collected earlier.
var diffCmd = &cobra.Command{
	Use:   "diff <base-sizes.json> <head-sizes.json>",
	Short: "Report the difference between two saved size maps",
	Long: `Render the size report for two size maps written by 'sizewatch sizes --output json'.
Nothing is built or published.

Examples:
  sizewatch sizes --output json --output-file base.json
  git checkout feature && npm run build
  sizewatch sizes --output json --output-file head.json
  sizewatch diff base.json head.json --output markdown`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, func(in *contract.ConfigRawInput) {
			in.BaseSizesPath = args[0]
			in.HeadSizesPath = args[1]
		})
	},
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		report, err := core.ExecuteDiff(outputContext(rootCtx), cfg)
		if err != nil {
			contract.LogFatal("Cannot diff sizes", err)
		}
		if err := outwriter.PrintDiffResult(report, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot print results", err)
		}
	},
}
