package service

import (
	"fmt"

	"github.com/soma-tiles/plotcolor/internal/cache"
	"github.com/soma-tiles/plotcolor/pkg/colormap"
)

// PaletteSummary describes a palette without its colors.
type PaletteSummary struct {
	Name string               `json:"name"`
	Kind colormap.PaletteKind `json:"kind"`
	Size int                  `json:"size"`
}

// PaletteFormat selects how palette colors are rendered.
type PaletteFormat string

const (
	FormatHex PaletteFormat = "hex"
	FormatCSS PaletteFormat = "css"
	FormatRGB PaletteFormat = "rgb"
)

// PaletteResponse is a palette with colors in the requested format.
type PaletteResponse struct {
	Name   string               `json:"name"`
	Kind   colormap.PaletteKind `json:"kind"`
	Format PaletteFormat        `json:"format"`
	Colors interface{}          `json:"colors"`
}

// ListPalettes returns every static palette.
func (s *ColormapService) ListPalettes() []PaletteSummary {
	all := colormap.Palettes()
	out := make([]PaletteSummary, len(all))
	for i, p := range all {
		out[i] = PaletteSummary{Name: p.Name, Kind: p.Kind, Size: len(p.Colors)}
	}
	return out
}

// Palette returns the named palette converted to format.
func (s *ColormapService) Palette(name string, format PaletteFormat) (*PaletteResponse, error) {
	p, ok := colormap.Palette(name)
	if !ok {
		return nil, fmt.Errorf("palette %q: %w", name, ErrNotFound)
	}

	resp := &PaletteResponse{Name: p.Name, Kind: p.Kind, Format: format}
	var err error
	switch format {
	case FormatHex, "":
		resp.Format = FormatHex
		resp.Colors = p.Colors
	case FormatCSS:
		resp.Colors, err = colormap.HexToCSSs(p.Colors)
	case FormatRGB:
		resp.Colors, err = s.HexToRGB(p.Colors, false)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidParam, format)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Swatch returns a PNG strip of the named palette's colors.
func (s *ColormapService) Swatch(name string, size int) ([]byte, error) {
	p, ok := colormap.Palette(name)
	if !ok {
		return nil, fmt.Errorf("palette %q: %w", name, ErrNotFound)
	}
	if size == 0 {
		size = s.renderer.Config().SwatchSize
	}
	if size < 1 || size > MaxImageSize || size*len(p.Colors) > MaxImageSize*4 {
		return nil, fmt.Errorf("%w: swatch size %d", ErrInvalidParam, size)
	}

	key := cache.SwatchKey(name, size)
	if data, ok := s.cache.GetImage(key); ok {
		return data, nil
	}

	rgb, err := colormap.HexToRGBs(p.Colors)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.RenderSwatches(rgb, size)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetImage(key, data); err != nil {
		s.logger.Warn("failed to cache swatch", "key", key, "error", err)
	}
	return data, nil
}

// HexToRGB converts hex codes, either to CSS strings or to integer triples.
func (s *ColormapService) HexToRGB(codes []string, css bool) (interface{}, error) {
	if css {
		return colormap.HexToCSSs(codes)
	}
	rgb, err := colormap.HexToRGBs(codes)
	if err != nil {
		return nil, err
	}
	return toTriples(rgb), nil
}

func toTriples(rgb []colormap.RGB) [][3]int {
	triples := make([][3]int, len(rgb))
	for i, c := range rgb {
		triples[i] = [3]int{c.R, c.G, c.B}
	}
	return triples
}

// RGBToHex converts CSS colors to "#RRGGBB".
func (s *ColormapService) RGBToHex(codes []string) ([]string, error) {
	return colormap.RGBToHexes(codes)
}
