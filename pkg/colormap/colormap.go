// Package colormap provides color schemes for visualization.
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultStages is the sample count used when no resolution is requested.
	DefaultStages = 256
	// MaxStages bounds the resolution callers of the server and CLI can request.
	MaxStages = 4096
)

var (
	// ErrEmptyPalette is returned when a colormap is requested from no colors.
	ErrEmptyPalette = errors.New("palette has no colors")
	// ErrTooFewStages is returned when a colormap would have fewer than two samples.
	ErrTooFewStages = errors.New("colormap needs at least 2 stages")
)

// Colormap maps normalized values [0, 1] to colors.
type Colormap interface {
	At(t float64) color.Color
	AtIndex(i int) color.Color
}

// Sample is one colormap sample with float channels in [0, 1].
type Sample struct {
	colorful.Color
	A float64
}

// NRGBA converts the sample to 8-bit non-premultiplied form.
func (c Sample) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// RGBA implements color.Color, honouring A.
func (c Sample) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LinearColormap is a linear interpolation colormap over a fixed number
// of precomputed stages. It is never modified after construction.
type LinearColormap struct {
	samples []Sample
}

// Len returns the number of stages.
func (c *LinearColormap) Len() int {
	return len(c.samples)
}

// Samples returns a copy of the stages in order.
func (c *LinearColormap) Samples() []Sample {
	out := make([]Sample, len(c.samples))
	copy(out, c.samples)
	return out
}

// Eval returns the color at position t (0-1), interpolating between the
// two nearest stages. t is clamped to [0, 1].
// The zero LinearColormap evaluates to a transparent black sample.
func (c *LinearColormap) Eval(t float64) Sample {
	n := len(c.samples)
	if n == 0 {
		return Sample{}
	}
	if t <= 0 || math.IsNaN(t) {
		return c.samples[0]
	}
	if t >= 1 {
		return c.samples[n-1]
	}

	idx := t * float64(n-1)
	lower := int(idx)
	if lower >= n-1 {
		return c.samples[n-1]
	}
	frac := idx - float64(lower)
	lo, hi := c.samples[lower], c.samples[lower+1]
	return Sample{
		Color: lo.Color.BlendRgb(hi.Color, frac),
		A:     lerp(lo.A, hi.A, frac),
	}
}

// At returns the color at position t (0-1).
func (c *LinearColormap) At(t float64) color.Color {
	return c.Eval(t).NRGBA()
}

// AtIndex returns the stage at index i (wraps around).
func (c *LinearColormap) AtIndex(i int) color.Color {
	n := len(c.samples)
	if n == 0 {
		return color.NRGBA{}
	}
	return c.samples[((i%n)+n)%n].NRGBA()
}

// Refine builds a colormap of the given number of stages from CSS colors
// ("rgb(R, G, B)"). Anchors are spread evenly over [0, 1] and each channel
// is interpolated linearly between neighbouring anchors. A single anchor
// yields a constant colormap.
func Refine(palette []string, stages int) (*LinearColormap, error) {
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if stages < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewStages, stages)
	}

	anchors := make([]colorful.Color, len(palette))
	for i, s := range palette {
		c, err := ParseNormalizedRGB(s)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		anchors[i] = c
	}

	samples := make([]Sample, stages)
	for k := range samples {
		samples[k] = Sample{Color: interpolateAnchors(anchors, k, stages-1), A: 1}
	}
	return &LinearColormap{samples: samples}, nil
}

// interpolateAnchors evaluates the anchor ramp at position k/den.
// The anchor coordinate is computed as k*(n-1)/den so that stages falling
// on an anchor hit it exactly.
func interpolateAnchors(anchors []colorful.Color, k, den int) colorful.Color {
	n := len(anchors)
	if n == 1 {
		return anchors[0]
	}

	pos := float64(k*(n-1)) / float64(den)
	j := int(pos)
	if j >= n-1 {
		return anchors[n-1]
	}
	return anchors[j].BlendRgb(anchors[j+1], pos-float64(j))
}

// RefineHex is Refine for hex codes.
func RefineHex(palette []string, stages int) (*LinearColormap, error) {
	css, err := HexToCSSs(palette)
	if err != nil {
		return nil, err
	}
	return Refine(css, stages)
}

// MustRefineHex is like RefineHex but panics on error. It is meant for
// package-level colormaps built from literal tables.
func MustRefineHex(palette []string, stages int) *LinearColormap {
	m, err := RefineHex(palette, stages)
	if err != nil {
		panic("colormap: " + err.Error())
	}
	return m
}

// DefaultAlphaScale controls how fast WithAlpha reaches full opacity.
const DefaultAlphaScale = 20

// WithAlpha returns a copy of m whose opacity rises along the map as
// 1 - exp(-alphaScale*x), starting fully transparent at x = 0.
// Colors are unchanged.
func WithAlpha(m *LinearColormap, alphaScale float64) (*LinearColormap, error) {
	if m == nil || len(m.samples) < 2 {
		n := 0
		if m != nil {
			n = len(m.samples)
		}
		return nil, fmt.Errorf("%w: got %d", ErrTooFewStages, n)
	}

	n := len(m.samples)
	samples := make([]Sample, n)
	for k, s := range m.samples {
		x := float64(k) / float64(n-1)
		samples[k] = Sample{Color: s.Color, A: 1 - math.Exp(-alphaScale*x)}
	}
	return &LinearColormap{samples: samples}, nil
}

// Built-in sequential colormaps, refined from their anchor tables.
var (
	Viridis = MustRefineHex(viridis, DefaultStages)
	Plasma  = MustRefineHex(plasma, DefaultStages)
	Inferno = MustRefineHex(inferno, DefaultStages)
	Magma   = MustRefineHex(magma, DefaultStages)
	// Seurat is the light grey to red ramp of Seurat's FeaturePlot.
	Seurat = MustRefineHex(seurat, DefaultStages)
)

var builtins = map[string]*LinearColormap{
	"viridis": Viridis,
	"plasma":  Plasma,
	"inferno": Inferno,
	"magma":   Magma,
	"seurat":  Seurat,
}

// Builtin returns a built-in colormap by name.
func Builtin(name string) (*LinearColormap, bool) {
	m, ok := builtins[name]
	return m, ok
}

// BuiltinNames returns the built-in colormap names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoricalColormap provides distinct colors for categories.
type CategoricalColormap struct {
	colors []color.RGBA
}

// NewCategorical builds a categorical colormap from hex codes.
func NewCategorical(palette []string) (CategoricalColormap, error) {
	if len(palette) == 0 {
		return CategoricalColormap{}, ErrEmptyPalette
	}
	rgb, err := HexToRGBs(palette)
	if err != nil {
		return CategoricalColormap{}, err
	}
	colors := make([]color.RGBA, len(rgb))
	for i, c := range rgb {
		colors[i] = color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
	}
	return CategoricalColormap{colors: colors}, nil
}

// Len returns the number of distinct colors.
func (c CategoricalColormap) Len() int {
	return len(c.colors)
}

// At returns color at position t.
func (c CategoricalColormap) At(t float64) color.Color {
	idx := int(t * float64(len(c.colors)))
	if idx >= len(c.colors) {
		idx = len(c.colors) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return c.colors[idx]
}

// AtIndex returns color at index.
func (c CategoricalColormap) AtIndex(i int) color.Color {
	n := len(c.colors)
	return c.colors[((i%n)+n)%n]
}

// Categorical colormap with 20 distinct colors
var Categorical = mustCategorical(tab20)

func mustCategorical(palette []string) CategoricalColormap {
	c, err := NewCategorical(palette)
	if err != nil {
		panic("colormap: " + err.Error())
	}
	return c
}
