package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/circuitsmith/kisvg/internal/config"
	"github.com/circuitsmith/kisvg/pkg/symbol"
)

var (
	svgSymTx      string
	svgStubs      []string
	svgOutPath    string
	svgConfigPath string
	svgShowBBox   bool
)

var svgCmd = &cobra.Command{
	Use:   "svg <library_file> <symbol>",
	Short: "Render a symbol to SVG",
	Long: `Render every unit of a library symbol into SVG groups.

The --symtx flag orients the symbol with mirror/rotation operators:
H (mirror horizontally), V (mirror vertically), R (rotate 90 degrees
clockwise), L (rotate 270), or a combination such as HR.

The --stubs flag names nets whose pins carry stub labels; rendering
with stubs scopes the emitted symbol geometry to this part instance.`,
	Args: cobra.ExactArgs(2),
	RunE: runSvg,
}

func init() {
	rootCmd.AddCommand(svgCmd)
	svgCmd.Flags().StringVar(&svgSymTx, "symtx", "", "mirror/rotation operators (e.g. HR)")
	svgCmd.Flags().StringSliceVar(&svgStubs, "stubs", nil, "net names rendered as pin stubs")
	svgCmd.Flags().StringVarP(&svgOutPath, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().StringVarP(&svgConfigPath, "config", "c", "", "TOML render configuration file")
	svgCmd.Flags().BoolVar(&svgShowBBox, "show-bbox", false, "draw diagnostic bounding boxes")
}

func runSvg(cmd *cobra.Command, args []string) error {
	for _, op := range svgSymTx {
		if !strings.ContainsRune("HVLR", op) {
			return fmt.Errorf("invalid symtx operator %q (valid: H, V, L, R)", op)
		}
	}

	cfg := config.Default()
	if svgConfigPath != "" {
		var err error
		cfg, err = config.Load(svgConfigPath)
		if err != nil {
			return err
		}
		logger.Debug("loaded configuration", "path", svgConfigPath)
	}
	opts := cfg.Options()
	if svgShowBBox {
		opts.ShowBBox = true
	}

	libFile, symName := args[0], args[1]
	parts, err := symbol.ParseLibraryFile(libFile)
	if err != nil {
		return fmt.Errorf("error parsing library: %w", err)
	}
	logger.Debug("parsed library", "path", libFile, "symbols", len(parts))

	part := symbol.FindPart(parts, symName)
	if part == nil {
		return fmt.Errorf("symbol %q not found in %s", symName, libFile)
	}

	// Stub nets from the command line attach to every pin whose name
	// matches, which is enough to exercise instance-scoped naming
	// without a full netlist.
	var stubs []*symbol.Net
	for _, name := range svgStubs {
		net := &symbol.Net{Name: name}
		stubs = append(stubs, net)
		for _, pin := range part.Pins() {
			if pin.Name == name || pin.Num == name {
				pin.Nets = append(pin.Nets, net)
			}
		}
	}

	svg, err := symbol.GenerateSymbolSVG(part, svgSymTx, stubs, opts)
	if err != nil {
		return err
	}

	if svgOutPath == "" {
		fmt.Print(svg)
		return nil
	}
	if err := os.WriteFile(svgOutPath, []byte(svg), 0o644); err != nil {
		return err
	}
	logger.Info("wrote SVG", "path", svgOutPath, "units", len(part.Units))
	return nil
}
