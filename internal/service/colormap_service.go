// Package service provides business logic for the plotcolor server.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"
	"github.com/soma-tiles/plotcolor/internal/cache"
	"github.com/soma-tiles/plotcolor/internal/render"
	"github.com/soma-tiles/plotcolor/pkg/colormap"
)

var (
	// ErrNotFound is returned for unknown colormap or palette names.
	ErrNotFound = errors.New("not found")
	// ErrInvalidParam is returned for parameters outside their usable range.
	ErrInvalidParam = errors.New("invalid parameter")
)

const (
	// MaxStages bounds the resolution a caller can request.
	MaxStages = colormap.MaxStages
	// MaxImageSize bounds either side of a rendered image in pixels.
	MaxImageSize = 4096
)

// CustomName is the colormap name reported for anchor lists given by the caller.
const CustomName = "custom"

// ColormapServiceConfig contains colormap service configuration.
type ColormapServiceConfig struct {
	Cache           *cache.Manager
	Renderer        *render.Renderer
	Logger          hclog.Logger
	DefaultColormap string
	DefaultStages   int
	AlphaScale      float64
}

// ColormapService resolves, samples and renders colormaps and palettes.
type ColormapService struct {
	cache           *cache.Manager
	renderer        *render.Renderer
	logger          hclog.Logger
	defaultColormap string
	defaultStages   int
	alphaScale      float64
}

// NewColormapService creates a new colormap service.
func NewColormapService(cfg ColormapServiceConfig) *ColormapService {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	defaultColormap := cfg.DefaultColormap
	if _, ok := colormap.Builtin(defaultColormap); !ok {
		defaultColormap = "viridis"
	}
	stages := cfg.DefaultStages
	if stages < 2 {
		stages = colormap.DefaultStages
	}
	alphaScale := cfg.AlphaScale
	if alphaScale <= 0 {
		alphaScale = colormap.DefaultAlphaScale
	}

	return &ColormapService{
		cache:           cfg.Cache,
		renderer:        cfg.Renderer,
		logger:          logger.Named("colormap"),
		defaultColormap: defaultColormap,
		defaultStages:   stages,
		alphaScale:      alphaScale,
	}
}

// CacheStats reports the occupancy of the image and query caches.
func (s *ColormapService) CacheStats() map[string]interface{} {
	return s.cache.Stats()
}

// DefaultColormap returns the colormap used when no name is given.
func (s *ColormapService) DefaultColormap() string {
	return s.defaultColormap
}

// AlphaScale returns the alpha scale used when a caller asks for alpha
// without choosing a scale.
func (s *ColormapService) AlphaScale() float64 {
	return s.alphaScale
}

// normalize fills in defaults and canonicalizes custom anchors so that
// equivalent requests share a cache entry.
func (s *ColormapService) normalize(p cache.Params) (cache.Params, error) {
	if p.Stages == 0 {
		p.Stages = s.defaultStages
	}
	if p.Alpha < 0 || math.IsNaN(p.Alpha) || math.IsInf(p.Alpha, 0) {
		return p, fmt.Errorf("%w: alpha scale %v", ErrInvalidParam, p.Alpha)
	}
	if p.Stages > MaxStages {
		return p, fmt.Errorf("%w: stages %d exceeds %d", ErrInvalidParam, p.Stages, MaxStages)
	}
	if len(p.Colors) > 0 {
		colors := make([]string, len(p.Colors))
		for i, c := range p.Colors {
			h, err := colormap.NormalizeHex(c)
			if err != nil {
				return p, fmt.Errorf("color %d: %w", i, err)
			}
			colors[i] = h
		}
		p.Colors = colors
		p.Name = CustomName
		return p, nil
	}
	if p.Name == "" {
		p.Name = s.defaultColormap
	}
	return p, nil
}

// Resolve builds the colormap described by p.
func (s *ColormapService) Resolve(p cache.Params) (*colormap.LinearColormap, error) {
	p, err := s.normalize(p)
	if err != nil {
		return nil, err
	}
	return s.resolve(p)
}

func (s *ColormapService) resolve(p cache.Params) (*colormap.LinearColormap, error) {
	var (
		m   *colormap.LinearColormap
		err error
	)
	switch {
	case len(p.Colors) > 0:
		m, err = colormap.RefineHex(p.Colors, p.Stages)
	default:
		if b, ok := colormap.Builtin(p.Name); ok && p.Stages == b.Len() {
			m = b
			break
		}
		pal, ok := colormap.Palette(p.Name)
		if !ok {
			return nil, fmt.Errorf("colormap %q: %w", p.Name, ErrNotFound)
		}
		m, err = colormap.RefineHex(pal.Colors, p.Stages)
	}
	if err != nil {
		return nil, err
	}

	if p.Alpha > 0 {
		return colormap.WithAlpha(m, p.Alpha)
	}
	return m, nil
}

// SamplesResponse is the JSON form of a sampled colormap.
type SamplesResponse struct {
	Name    string       `json:"name"`
	Stages  int          `json:"stages"`
	Alpha   float64      `json:"alpha_scale,omitempty"`
	Anchors []string     `json:"anchors,omitempty"`
	Samples [][4]float64 `json:"samples"`
	Hex     []string     `json:"hex"`
}

// Samples returns the JSON encoded stages of the colormap described by p.
func (s *ColormapService) Samples(p cache.Params) ([]byte, error) {
	p, err := s.normalize(p)
	if err != nil {
		return nil, err
	}

	key := cache.SamplesKey(p)
	if data, ok := s.cache.GetQuery(key); ok {
		return data, nil
	}

	m, err := s.resolve(p)
	if err != nil {
		return nil, err
	}

	samples := m.Samples()
	resp := SamplesResponse{
		Name:    p.Name,
		Stages:  len(samples),
		Alpha:   p.Alpha,
		Anchors: p.Colors,
		Samples: make([][4]float64, len(samples)),
		Hex:     make([]string, len(samples)),
	}
	for i, c := range samples {
		resp.Samples[i] = [4]float64{c.R, c.G, c.B, c.A}
		n := c.NRGBA()
		resp.Hex[i] = fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	s.cache.SetQuery(key, data)
	return data, nil
}

// Colorbar returns a PNG colorbar for the colormap described by p.
// Zero width or height use the renderer defaults.
func (s *ColormapService) Colorbar(p cache.Params, width, height int) ([]byte, error) {
	p, err := s.normalize(p)
	if err != nil {
		return nil, err
	}

	rc := s.renderer.Config()
	if width == 0 {
		width = rc.ColorbarWidth
	}
	if height == 0 {
		height = rc.ColorbarHeight
	}
	if width < 2 || height < 1 || width > MaxImageSize || height > MaxImageSize {
		return nil, fmt.Errorf("%w: colorbar size %dx%d", ErrInvalidParam, width, height)
	}

	key := cache.ColorbarKey(p, width, height)
	if data, ok := s.cache.GetImage(key); ok {
		return data, nil
	}

	m, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.RenderColorbar(m, width, height)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetImage(key, data); err != nil {
		s.logger.Warn("failed to cache colorbar", "key", key, "error", err)
	}
	s.logger.Debug("rendered colorbar", "key", key, "bytes", len(data))
	return data, nil
}
