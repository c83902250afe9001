package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})
)

var rootCmd = &cobra.Command{
	Use:   "kisvg",
	Short: "kisvg - KiCad symbol to SVG converter",
	Long: `kisvg renders KiCad 6 symbol libraries (.kicad_sym) into SVG
fragments usable by netlistsvg-style schematic visualizers.

Examples:
  kisvg info Device.kicad_sym           # List symbols in a library
  kisvg info Device.kicad_sym R         # Show details for symbol R
  kisvg svg Device.kicad_sym R          # Render symbol R to SVG
  kisvg svg Device.kicad_sym R --symtx HR --out r.svg`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SilenceErrors = true
}
