// Package api provides HTTP handlers for the plotcolor server.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/soma-tiles/plotcolor/internal/cache"
	"github.com/soma-tiles/plotcolor/internal/service"
	"github.com/soma-tiles/plotcolor/pkg/colormap"
)

// maxBodyBytes limits conversion request bodies.
const maxBodyBytes = 1 << 20

// RouterConfig contains router configuration.
type RouterConfig struct {
	Service     *service.ColormapService
	CORSOrigins []string
	Title       string
	Logger      hclog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	h := &handlers{svc: cfg.Service, title: cfg.Title, logger: logger.Named("api")}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logger.Named("http").StandardLogger(&hclog.StandardLoggerOptions{ForceLevel: hclog.Info}),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(newCompressor().Handler)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/info", h.info)

		r.Get("/palettes", h.listPalettes)
		r.Get("/palettes/{name}", h.palette)
		r.Get("/palettes/{name}/swatch.png", h.swatch)

		r.Get("/colormaps", h.listColormaps)
		r.Get("/colormaps/{name}", h.colormapSamples)
		r.Get("/colormaps/{name}/colorbar.png", h.colormapColorbar)

		r.Get("/refine", h.refineSamples)
		r.Get("/refine/colorbar.png", h.refineColorbar)

		r.Post("/convert/hex2rgb", h.hexToRGB)
		r.Post("/convert/rgb2hex", h.rgbToHex)
	})

	return r
}

// newCompressor compresses JSON responses, preferring zstd and gzip from
// klauspost/compress over the standard library encoders.
func newCompressor() *middleware.Compressor {
	c := middleware.NewCompressor(5, "application/json", "text/plain")
	c.SetEncoder("gzip", func(w io.Writer, level int) io.Writer {
		gw, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return nil
		}
		return gw
	})
	c.SetEncoder("zstd", func(w io.Writer, level int) io.Writer {
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		if err != nil {
			return nil
		}
		return zw
	})
	return c
}

type handlers struct {
	svc    *service.ColormapService
	title  string
	logger hclog.Logger
}

func (h *handlers) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"title":            h.title,
		"default_colormap": h.svc.DefaultColormap(),
		"alpha_scale":      h.svc.AlphaScale(),
		"max_stages":       service.MaxStages,
		"cache":            h.svc.CacheStats(),
	})
}

func (h *handlers) listPalettes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.ListPalettes())
}

func (h *handlers) palette(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	format := service.PaletteFormat(r.URL.Query().Get("format"))
	resp, err := h.svc.Palette(name, format)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *handlers) swatch(w http.ResponseWriter, r *http.Request) {
	size, err := parseIntParam(r.URL.Query(), "size")
	if err != nil {
		h.writeError(w, err)
		return
	}
	data, err := h.svc.Swatch(chi.URLParam(r, "name"), size)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writePNG(w, data)
}

func (h *handlers) listColormaps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"default":   h.svc.DefaultColormap(),
		"colormaps": colormap.BuiltinNames(),
	})
}

func (h *handlers) colormapSamples(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseParams(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	p.Name = chi.URLParam(r, "name")
	h.writeSamples(w, p)
}

func (h *handlers) colormapColorbar(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseParams(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	p.Name = chi.URLParam(r, "name")
	h.writeColorbar(w, r, p)
}

func (h *handlers) refineSamples(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseCustomParams(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSamples(w, p)
}

func (h *handlers) refineColorbar(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseCustomParams(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeColorbar(w, r, p)
}

func (h *handlers) writeSamples(w http.ResponseWriter, p cache.Params) {
	data, err := h.svc.Samples(p)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *handlers) writeColorbar(w http.ResponseWriter, r *http.Request, p cache.Params) {
	q := r.URL.Query()
	width, err := parseIntParam(q, "width")
	if err != nil {
		h.writeError(w, err)
		return
	}
	height, err := parseIntParam(q, "height")
	if err != nil {
		h.writeError(w, err)
		return
	}
	data, err := h.svc.Colorbar(p, width, height)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writePNG(w, data)
}

// parseParams reads stages and alpha. "alpha" without a value (or "true")
// selects the configured alpha scale; a number selects that scale.
func (h *handlers) parseParams(q url.Values) (cache.Params, error) {
	var p cache.Params
	stages, err := parseIntParam(q, "stages")
	if err != nil {
		return p, err
	}
	p.Stages = stages

	if _, ok := q["alpha"]; ok {
		switch raw := strings.TrimSpace(q.Get("alpha")); raw {
		case "", "true":
			p.Alpha = h.svc.AlphaScale()
		case "false", "0":
		default:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return p, fmt.Errorf("%w: alpha %q", service.ErrInvalidParam, raw)
			}
			p.Alpha = v
		}
	}
	return p, nil
}

// parseCustomParams also reads the anchor list from "colors", given either
// comma separated or repeated.
func (h *handlers) parseCustomParams(q url.Values) (cache.Params, error) {
	p, err := h.parseParams(q)
	if err != nil {
		return p, err
	}
	for _, v := range q["colors"] {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				p.Colors = append(p.Colors, c)
			}
		}
	}
	if len(p.Colors) == 0 {
		return p, fmt.Errorf("%w: colors: %w", service.ErrInvalidParam, colormap.ErrEmptyPalette)
	}
	return p, nil
}

func parseIntParam(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s %q", service.ErrInvalidParam, key, raw)
	}
	return v, nil
}

type convertRequest struct {
	Codes []string `json:"codes"`
	CSS   *bool    `json:"css,omitempty"`
}

func decodeConvertRequest(r *http.Request) (convertRequest, error) {
	var req convertRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("%w: %v", service.ErrInvalidParam, err)
	}
	return req, nil
}

func (h *handlers) hexToRGB(w http.ResponseWriter, r *http.Request) {
	req, err := decodeConvertRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	css := true
	if req.CSS != nil {
		css = *req.CSS
	}
	out, err := h.svc.HexToRGB(req.Codes, css)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"colors": out})
}

func (h *handlers) rgbToHex(w http.ResponseWriter, r *http.Request) {
	req, err := decodeConvertRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out, err := h.svc.RGBToHex(req.Codes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"colors": out})
}

// statusFor maps service and codec errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidParam),
		errors.Is(err, colormap.ErrMalformedHex),
		errors.Is(err, colormap.ErrMalformedRGB),
		errors.Is(err, colormap.ErrChannelRange),
		errors.Is(err, colormap.ErrEmptyPalette),
		errors.Is(err, colormap.ErrTooFewStages):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
