// Package render provides colorbar and swatch rendering using fogleman/gg.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"sync"

	"github.com/fogleman/gg"
	"github.com/soma-tiles/plotcolor/pkg/colormap"
)

// Config contains renderer configuration.
type Config struct {
	ColorbarWidth  int
	ColorbarHeight int
	SwatchSize     int
}

// Renderer draws colormaps and palettes to PNG.
type Renderer struct {
	config     Config
	bufferPool sync.Pool
}

// NewRenderer creates a new renderer.
func NewRenderer(cfg Config) *Renderer {
	if cfg.ColorbarWidth < 2 {
		cfg.ColorbarWidth = 256
	}
	if cfg.ColorbarHeight <= 0 {
		cfg.ColorbarHeight = 24
	}
	if cfg.SwatchSize <= 0 {
		cfg.SwatchSize = 24
	}
	return &Renderer{
		config: cfg,
		bufferPool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 8*1024))
			},
		},
	}
}

// Config returns the renderer configuration with defaults applied.
func (r *Renderer) Config() Config {
	return r.config
}

// RenderColorbar renders a horizontal ramp, one pixel column per lookup
// of cmap at x/(width-1). Zero sizes fall back to the configured ones.
// Transparent stages stay transparent in the output.
func (r *Renderer) RenderColorbar(cmap colormap.Colormap, width, height int) ([]byte, error) {
	if cmap == nil {
		return nil, fmt.Errorf("render: nil colormap")
	}
	if width == 0 {
		width = r.config.ColorbarWidth
	}
	if height == 0 {
		height = r.config.ColorbarHeight
	}
	if width < 2 || height < 1 {
		return nil, fmt.Errorf("render: colorbar size %dx%d too small", width, height)
	}

	dc := gg.NewContext(width, height)
	h := float64(height)
	for x := 0; x < width; x++ {
		dc.SetColor(cmap.At(float64(x) / float64(width-1)))
		dc.DrawRectangle(float64(x), 0, 1, h)
		dc.Fill()
	}
	return r.encodeContext(dc)
}

// RenderSwatches renders the colors side by side as squares of the given
// size (0 uses the configured size).
func (r *Renderer) RenderSwatches(colors []colormap.RGB, size int) ([]byte, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("render: %w", colormap.ErrEmptyPalette)
	}
	if size == 0 {
		size = r.config.SwatchSize
	}
	if size < 1 {
		return nil, fmt.Errorf("render: swatch size %d too small", size)
	}

	dc := gg.NewContext(size*len(colors), size)
	s := float64(size)
	for i, c := range colors {
		dc.SetColor(color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255})
		dc.DrawRectangle(float64(i)*s, 0, s, s)
		dc.Fill()
	}
	return r.encodeContext(dc)
}

func (r *Renderer) encodeContext(dc *gg.Context) ([]byte, error) {
	buf := r.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		r.bufferPool.Put(buf)
	}()

	// Use fast PNG encoder
	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := encoder.Encode(buf, dc.Image()); err != nil {
		return nil, err
	}

	// Copy buffer contents (buffer will be reused)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
