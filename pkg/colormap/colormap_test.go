package colormap

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lucasb-eyer/go-colorful"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestSeuratColormapEndpoints(t *testing.T) {
	t.Parallel()

	c0, ok := Seurat.At(0).(color.NRGBA)
	if !ok {
		t.Fatalf("expected color.NRGBA at t=0")
	}
	if c0 != (color.NRGBA{R: 211, G: 211, B: 211, A: 255}) {
		t.Fatalf("unexpected Seurat.At(0): %#v", c0)
	}

	c1, ok := Seurat.At(1).(color.NRGBA)
	if !ok {
		t.Fatalf("expected color.NRGBA at t=1")
	}
	if c1 != (color.NRGBA{R: 255, G: 0, B: 0, A: 255}) {
		t.Fatalf("unexpected Seurat.At(1): %#v", c1)
	}
}

func TestRefineRedToBlue(t *testing.T) {
	t.Parallel()

	m, err := Refine([]string{"rgb(255,0,0)", "rgb(0,0,255)"}, 3)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	want := []Sample{
		{Color: colorful.Color{R: 1, G: 0, B: 0}, A: 1},
		{Color: colorful.Color{R: 0.5, G: 0, B: 0.5}, A: 1},
		{Color: colorful.Color{R: 0, G: 0, B: 1}, A: 1},
	}
	if diff := cmp.Diff(want, m.Samples(), approx); diff != "" {
		t.Fatalf("samples mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(want[1], m.Eval(0.5), approx); diff != "" {
		t.Fatalf("Eval(0.5) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Sample{Color: colorful.Color{R: 0.75, B: 0.25}, A: 1}, m.Eval(0.25), approx); diff != "" {
		t.Fatalf("Eval(0.25) mismatch (-want +got):\n%s", diff)
	}
}

func TestRefineHitsAnchors(t *testing.T) {
	t.Parallel()

	palette := []string{"rgb(10, 20, 30)", "rgb(200, 100, 0)", "rgb(0, 255, 128)", "rgb(255, 255, 255)"}
	m, err := Refine(palette, DefaultStages)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if m.Len() != DefaultStages {
		t.Fatalf("expected %d stages, got %d", DefaultStages, m.Len())
	}

	n := len(palette)
	for i, s := range palette {
		want, err := ParseNormalizedRGB(s)
		if err != nil {
			t.Fatalf("ParseNormalizedRGB(%q): %v", s, err)
		}
		pos := float64(i) / float64(n-1)
		got := m.Eval(pos)
		if diff := cmp.Diff(want, got.Color, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("anchor %d at %v (-want +got):\n%s", i, pos, diff)
		}
	}

	// Endpoints are exact.
	first, _ := ParseNormalizedRGB(palette[0])
	last, _ := ParseNormalizedRGB(palette[n-1])
	if m.Eval(0).Color != first {
		t.Errorf("Eval(0) = %v, want %v", m.Eval(0).Color, first)
	}
	if m.Eval(1).Color != last {
		t.Errorf("Eval(1) = %v, want %v", m.Eval(1).Color, last)
	}
}

func TestRefineMisalignedAnchors(t *testing.T) {
	t.Parallel()

	// With 3 anchors and 256 stages the middle anchor falls between stages.
	m, err := Refine([]string{"rgb(0, 0, 0)", "rgb(255, 255, 255)", "rgb(0, 0, 0)"}, DefaultStages)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	mid := m.Eval(0.5)
	if mid.R == 1 {
		t.Fatalf("expected the middle anchor to be missed between stages")
	}
	// Each channel moves by at most 2 per anchor interval, so the error is
	// bounded by the slope times half a stage on each side.
	bound := 2.0 / float64(DefaultStages-1)
	for _, v := range []float64{mid.R, mid.G, mid.B} {
		if math.Abs(v-1) > bound {
			t.Errorf("middle anchor channel %v off by more than %v", v, bound)
		}
	}
	if m.Eval(0).Color != (colorful.Color{}) || m.Eval(1).Color != (colorful.Color{}) {
		t.Errorf("endpoints must stay exact")
	}
}

func TestZeroLinearColormap(t *testing.T) {
	t.Parallel()

	var m LinearColormap
	if got := m.Eval(0.5); got != (Sample{}) {
		t.Errorf("Eval on empty map = %+v", got)
	}
	if got := m.AtIndex(3); got != (color.NRGBA{}) {
		t.Errorf("AtIndex on empty map = %#v", got)
	}
	if got := m.At(0.2); got != (color.NRGBA{}) {
		t.Errorf("At on empty map = %#v", got)
	}
}

func TestRefineClampsQueries(t *testing.T) {
	t.Parallel()

	m, err := Refine([]string{"rgb(0, 0, 0)", "rgb(255, 255, 255)"}, 16)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if m.Eval(-3) != m.Eval(0) {
		t.Errorf("expected negative query to clamp to 0")
	}
	if m.Eval(7) != m.Eval(1) {
		t.Errorf("expected query above 1 to clamp to 1")
	}
}

func TestRefineDegenerate(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		if _, err := Refine(nil, 10); !errors.Is(err, ErrEmptyPalette) {
			t.Fatalf("expected ErrEmptyPalette, got %v", err)
		}
	})

	t.Run("tooFewStages", func(t *testing.T) {
		if _, err := Refine([]string{"rgb(1, 2, 3)", "rgb(4, 5, 6)"}, 1); !errors.Is(err, ErrTooFewStages) {
			t.Fatalf("expected ErrTooFewStages, got %v", err)
		}
	})

	t.Run("singleColor", func(t *testing.T) {
		m, err := Refine([]string{"rgb(51, 102, 153)"}, 5)
		if err != nil {
			t.Fatalf("Refine: %v", err)
		}
		want := Sample{Color: colorful.Color{R: 0.2, G: 0.4, B: 0.6}, A: 1}
		for i, s := range m.Samples() {
			if diff := cmp.Diff(want, s, approx); diff != "" {
				t.Errorf("sample %d (-want +got):\n%s", i, diff)
			}
		}
	})

	t.Run("malformedColor", func(t *testing.T) {
		if _, err := Refine([]string{"rgb(1, 2, 3)", "#FFFFFF"}, 4); !errors.Is(err, ErrMalformedRGB) {
			t.Fatalf("expected ErrMalformedRGB, got %v", err)
		}
	})
}

func TestRefineHex(t *testing.T) {
	t.Parallel()

	m, err := RefineHex([]string{"#000", "#FFFFFF"}, 256)
	if err != nil {
		t.Fatalf("RefineHex: %v", err)
	}
	mid := m.AtIndex(255).(color.NRGBA)
	if mid != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("unexpected last stage: %#v", mid)
	}

	if _, err := RefineHex([]string{"#12"}, 256); !errors.Is(err, ErrMalformedHex) {
		t.Fatalf("expected ErrMalformedHex, got %v", err)
	}
}

func TestWithAlpha(t *testing.T) {
	t.Parallel()

	base, err := Refine([]string{"rgb(255, 0, 0)", "rgb(0, 0, 255)"}, 64)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}

	for _, scale := range []float64{1, DefaultAlphaScale, 50} {
		m, err := WithAlpha(base, scale)
		if err != nil {
			t.Fatalf("WithAlpha(%v): %v", scale, err)
		}
		if m.Len() != base.Len() {
			t.Fatalf("expected %d stages, got %d", base.Len(), m.Len())
		}
		if a := m.Eval(0).A; a != 0 {
			t.Errorf("scale %v: alpha at 0 = %v, want 0", scale, a)
		}
		if a, want := m.Eval(1).A, 1-math.Exp(-scale); a != want {
			t.Errorf("scale %v: alpha at 1 = %v, want %v", scale, a, want)
		}

		prev := -1.0
		for i, s := range m.Samples() {
			if s.A < prev {
				t.Fatalf("scale %v: alpha decreased at stage %d", scale, i)
			}
			prev = s.A
			if s.Color != base.samples[i].Color {
				t.Fatalf("scale %v: stage %d color changed", scale, i)
			}
		}
	}

	// The input keeps its opacity.
	for i, s := range base.Samples() {
		if s.A != 1 {
			t.Fatalf("input stage %d alpha modified to %v", i, s.A)
		}
	}
}

func TestWithAlphaTooFewStages(t *testing.T) {
	t.Parallel()

	if _, err := WithAlpha(nil, DefaultAlphaScale); !errors.Is(err, ErrTooFewStages) {
		t.Fatalf("expected ErrTooFewStages for nil map, got %v", err)
	}
	one := &LinearColormap{samples: []Sample{{A: 1}}}
	if _, err := WithAlpha(one, DefaultAlphaScale); !errors.Is(err, ErrTooFewStages) {
		t.Fatalf("expected ErrTooFewStages, got %v", err)
	}
}

func TestBuiltins(t *testing.T) {
	t.Parallel()

	names := BuiltinNames()
	want := []string{"inferno", "magma", "plasma", "seurat", "viridis"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("builtin names (-want +got):\n%s", diff)
	}
	for _, name := range names {
		m, ok := Builtin(name)
		if !ok || m.Len() != DefaultStages {
			t.Fatalf("builtin %q missing or wrong size", name)
		}
		p, _ := Palette(name)
		first, _ := HexToRGB(p.Colors[0])
		if got := m.At(0).(color.NRGBA); got.R != uint8(first.R) || got.G != uint8(first.G) || got.B != uint8(first.B) {
			t.Errorf("%s.At(0) = %#v, want %v", name, got, first)
		}
	}
	if _, ok := Builtin("jet"); ok {
		t.Fatalf("unexpected builtin jet")
	}
}

func TestCategorical(t *testing.T) {
	t.Parallel()

	if Categorical.Len() != 20 {
		t.Fatalf("expected 20 categorical colors, got %d", Categorical.Len())
	}
	blue := color.RGBA{R: 31, G: 119, B: 180, A: 255}
	if got := Categorical.AtIndex(0); got != blue {
		t.Fatalf("AtIndex(0) = %#v", got)
	}
	if got := Categorical.AtIndex(20); got != blue {
		t.Fatalf("AtIndex(20) should wrap, got %#v", got)
	}
	if got := Categorical.At(1); got != Categorical.AtIndex(19) {
		t.Fatalf("At(1) should be the last color, got %#v", got)
	}

	if _, err := NewCategorical(nil); !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("expected ErrEmptyPalette, got %v", err)
	}
}
