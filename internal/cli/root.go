// Package cli provides the command-line interface for plotcolor.
package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/soma-tiles/plotcolor/internal/render"
	"github.com/soma-tiles/plotcolor/pkg/colormap"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the plotcolor command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "plotcolor",
		Short: "Color conversion and colormaps for plotting",
		Long: `plotcolor converts between hex and RGB color codes, lists the bundled
qualitative and sequential palettes, and refines a few anchor colors into a
smooth colormap with an optional alpha ramp.`,
		SilenceUsage: true,
	}

	root.AddCommand(newPalettesCmd())
	root.AddCommand(newPaletteCmd())
	root.AddCommand(newHexToRGBCmd())
	root.AddCommand(newRGBToHexCmd())
	root.AddCommand(newRefineCmd())
	root.AddCommand(newColorbarCmd())
	return root
}

func newPalettesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List bundled palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tSIZE")
			for _, p := range colormap.Palettes() {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", p.Name, p.Kind, len(p.Colors))
			}
			return tw.Flush()
		},
	}
}

func newPaletteCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "palette <name>",
		Short: "Print the colors of a palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := colormap.Palette(args[0])
			if !ok {
				return fmt.Errorf("unknown palette %q", args[0])
			}
			var lines []string
			switch format {
			case "hex":
				lines = p.Colors
			case "css":
				css, err := colormap.HexToCSSs(p.Colors)
				if err != nil {
					return err
				}
				lines = css
			case "rgb":
				rgb, err := colormap.HexToRGBs(p.Colors)
				if err != nil {
					return err
				}
				for _, c := range rgb {
					lines = append(lines, fmt.Sprintf("%d %d %d", c.R, c.G, c.B))
				}
			default:
				return fmt.Errorf("unknown format %q (want hex, css or rgb)", format)
			}
			return printLines(cmd, lines)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "hex", "output format (hex, css, rgb)")
	return cmd
}

func newHexToRGBCmd() *cobra.Command {
	var css bool
	cmd := &cobra.Command{
		Use:   "hex2rgb <hex>...",
		Short: "Convert hex codes to RGB",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if css {
				out, err := colormap.HexToCSSs(args)
				if err != nil {
					return err
				}
				return printLines(cmd, out)
			}
			rgb, err := colormap.HexToRGBs(args)
			if err != nil {
				return err
			}
			lines := make([]string, len(rgb))
			for i, c := range rgb {
				lines[i] = fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
			}
			return printLines(cmd, lines)
		},
	}
	cmd.Flags().BoolVar(&css, "css", true, "print rgb(R, G, B) strings instead of integer triples")
	return cmd
}

func newRGBToHexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rgb2hex <rgb(R, G, B)>...",
		Short: "Convert CSS rgb() strings to hex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := colormap.RGBToHexes(args)
			if err != nil {
				return err
			}
			return printLines(cmd, out)
		},
	}
}

type rampFlags struct {
	stages int
	alpha  float64
}

func (f *rampFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.stages, "stages", "s", colormap.DefaultStages, "number of samples")
	cmd.Flags().Float64VarP(&f.alpha, "alpha", "a", 0, "alpha scale; 0 keeps the map opaque")
}

func (f *rampFlags) build(build func(stages int) (*colormap.LinearColormap, error)) (*colormap.LinearColormap, error) {
	m, err := build(f.stages)
	if err != nil {
		return nil, err
	}
	if f.alpha > 0 {
		return colormap.WithAlpha(m, f.alpha)
	}
	return m, nil
}

func newRefineCmd() *cobra.Command {
	var flags rampFlags
	cmd := &cobra.Command{
		Use:   "refine <hex>...",
		Short: "Interpolate anchor colors into a colormap and print its stages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.build(func(stages int) (*colormap.LinearColormap, error) {
				return colormap.RefineHex(args, stages)
			})
			if err != nil {
				return err
			}
			lines := make([]string, 0, m.Len())
			for _, s := range m.Samples() {
				lines = append(lines, fmt.Sprintf("%.6f %.6f %.6f %.6f", s.R, s.G, s.B, s.A))
			}
			return printLines(cmd, lines)
		},
	}
	flags.register(cmd)
	return cmd
}

func newColorbarCmd() *cobra.Command {
	var (
		flags         rampFlags
		out           string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "colorbar <colormap|palette|hex,hex,...>",
		Short: "Render a colormap to a PNG colorbar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.build(func(stages int) (*colormap.LinearColormap, error) {
				return resolveColormap(args[0], stages)
			})
			if err != nil {
				return err
			}
			data, err := render.NewRenderer(render.Config{}).RenderColorbar(m, width, height)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0644)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&width, "width", 256, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 24, "image height in pixels")
	return cmd
}

// resolveColormap accepts a built-in colormap, a palette name or a comma
// separated list of hex codes.
func resolveColormap(arg string, stages int) (*colormap.LinearColormap, error) {
	if m, ok := colormap.Builtin(arg); ok && m.Len() == stages {
		return m, nil
	}
	if p, ok := colormap.Palette(arg); ok {
		return colormap.RefineHex(p.Colors, stages)
	}
	if strings.Contains(arg, ",") || strings.HasPrefix(arg, "#") {
		return colormap.RefineHex(strings.Split(arg, ","), stages)
	}
	return nil, fmt.Errorf("unknown colormap %q", arg)
}

func printLines(cmd *cobra.Command, lines []string) error {
	w := cmd.OutOrStdout()
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
