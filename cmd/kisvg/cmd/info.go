package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/circuitsmith/kisvg/pkg/symbol"
)

var infoCmd = &cobra.Command{
	Use:   "info <library_file> [symbol]",
	Short: "Show symbol library information",
	Long: `Display information about a KiCad symbol library file.

Without symbol argument: lists the symbols in the library
With symbol argument: shows details for that specific symbol`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	parts, err := symbol.ParseLibraryFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing library: %w", err)
	}

	if len(args) >= 2 {
		return showSymbolDetails(parts, args[1])
	}

	showLibrarySummary(parts, filename)
	return nil
}

func showLibrarySummary(parts []*symbol.Part, filename string) {
	fmt.Printf("Library: %s\n", filename)
	fmt.Printf("Symbols: %d\n", len(parts))
	fmt.Println()

	names := make([]string, 0, len(parts))
	byName := make(map[string]*symbol.Part, len(parts))
	for _, p := range parts {
		names = append(names, p.Name)
		byName[p.Name] = p
	}
	sort.Strings(names)

	for _, name := range names {
		p := byName[name]
		fmt.Printf("  %-24s ref=%-4s units=%d pins=%d\n",
			p.Name, p.Ref, len(p.Units), len(p.Pins()))
	}
}

func showSymbolDetails(parts []*symbol.Part, name string) error {
	part := symbol.FindPart(parts, name)
	if part == nil {
		return fmt.Errorf("symbol %q not found", name)
	}

	fmt.Printf("Symbol: %s\n", part.Name)
	fmt.Printf("Reference: %s\n", part.Ref)
	fmt.Printf("Units: %d\n", len(part.Units))
	fmt.Println()

	for _, unit := range part.Units {
		fmt.Printf("Unit %d: %d drawing commands, %d pins\n",
			unit.Num, len(unit.DrawCmds), len(unit.Pins))
		for _, pin := range unit.Pins {
			fmt.Printf("  pin %-4s %-12s at (%g, %g) rot=%g len=%g\n",
				pin.Num, pin.Name, pin.X, pin.Y, pin.Rotation, pin.Length)
		}
	}
	return nil
}
