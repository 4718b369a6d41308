package cmd

import (
	"github.com/huangsam/sizewatch/core"
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/internal/outwriter"
	"github.com/huangsam/sizewatch/internal/sizes"
	"github.com/spf13/cobra"
)

// sizesCmd measures one build tree without building it.
var sizesCmd = &cobra.Command{
	Use:   "sizes [dir]",
	Short: "Measure the compressed size of build outputs in a directory",
	Long: `Measure every file matching --pattern under a directory (default: --cwd).

JSON output is a size map that 'sizewatch diff' accepts.

Examples:
  # Show sizes of the current build
  sizewatch sizes

  # Save brotli sizes for a later diff
  sizewatch sizes ./packages/app --compression brotli --output json --output-file head.json`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, func(in *contract.ConfigRawInput) {
			if len(args) == 1 {
				in.Cwd = args[0]
			}
		})
	},
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.ExecuteSizes(outputContext(rootCtx), cfg, sizes.NewCollector(cfg))
		if err != nil {
			contract.LogFatal("Cannot collect sizes", err)
		}
		if err := outwriter.PrintSizeMap(result, cfg); err != nil {
			contract.LogFatal("Cannot print results", err)
		}
	},
}
