package colormap

import (
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func TestPalettesWellFormed(t *testing.T) {
	t.Parallel()

	for _, p := range Palettes() {
		if len(p.Colors) == 0 {
			t.Errorf("palette %q is empty", p.Name)
		}
		if p.Kind != Qualitative && p.Kind != Sequential {
			t.Errorf("palette %q has unknown kind %q", p.Name, p.Kind)
		}
		for i, c := range p.Colors {
			if !hexPattern.MatchString(c) {
				t.Errorf("palette %q color %d: %q is not #RRGGBB", p.Name, i, c)
			}
		}
	}
}

func TestPaletteSizes(t *testing.T) {
	t.Parallel()

	sizes := map[string]int{
		"godsnot_102":            102,
		"iwanthue_alphabet_hard": 26,
		"iwanthue_answer_hard":   42,
		"iwanthue_102_hard":      102,
		"iwanthue_32_soft":       32,
		"prism_light":            10,
		"prism_dark":             10,
		"prism_1960s":            6,
		"prism_2000s":            8,
		"accent":                 8,
		"tab20":                  20,
	}
	for name, want := range sizes {
		p, ok := Palette(name)
		if !ok {
			t.Errorf("missing palette %q", name)
			continue
		}
		if len(p.Colors) != want {
			t.Errorf("palette %q: expected %d colors, got %d", name, want, len(p.Colors))
		}
	}
}

func TestPaletteReturnsCopy(t *testing.T) {
	t.Parallel()

	p, _ := Palette("accent")
	p.Colors[0] = "#000000"

	again, _ := Palette("accent")
	if again.Colors[0] != "#7fc97f" {
		t.Fatalf("palette table was mutated through a returned slice: %q", again.Colors[0])
	}
}

func TestPaletteOrder(t *testing.T) {
	t.Parallel()

	light, _ := Palette("prism_light")
	dark, _ := Palette("prism_dark")
	// Prism Dark is Prism Light rotated by five.
	for i := range light.Colors {
		if light.Colors[i] != dark.Colors[(i+5)%len(dark.Colors)] {
			t.Fatalf("unexpected prism order at %d", i)
		}
	}

	if _, ok := Palette("unknown"); ok {
		t.Fatalf("expected unknown palette to be missing")
	}
	names := PaletteNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
