package colormap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrMalformedHex is returned for hex codes that are not 3 or 6 hex digits.
	ErrMalformedHex = errors.New("malformed hex color")
	// ErrMalformedRGB is returned for CSS strings that do not hold three integers in parentheses.
	ErrMalformedRGB = errors.New("malformed rgb color")
	// ErrChannelRange is returned when a channel falls outside [0, 255] while formatting hex.
	ErrChannelRange = errors.New("rgb channel out of range")
)

// RGB is a color with one integer per channel. Values are normally in
// [0, 255] but parsing does not enforce it.
type RGB struct {
	R, G, B int
}

// CSS renders the color as "rgb(R, G, B)".
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex renders the color as "#RRGGBB" in uppercase.
// Channels outside [0, 255] yield ErrChannelRange.
func (c RGB) Hex() (string, error) {
	for _, v := range [3]int{c.R, c.G, c.B} {
		if v < 0 || v > 255 {
			return "", fmt.Errorf("%w: %s", ErrChannelRange, c.CSS())
		}
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B), nil
}

// Normalized divides every channel by 255.
func (c RGB) Normalized() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// cleanHex strips a leading '#' and expands shorthand (ABC -> AABBCC).
func cleanHex(code string) (string, error) {
	hex := strings.TrimPrefix(code, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", fmt.Errorf("%w: %q", ErrMalformedHex, code)
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return "", fmt.Errorf("%w: %q", ErrMalformedHex, code)
		}
	}
	return hex, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// NormalizeHex returns code in canonical "#RRGGBB" uppercase form.
func NormalizeHex(code string) (string, error) {
	hex, err := cleanHex(code)
	if err != nil {
		return "", err
	}
	return "#" + strings.ToUpper(hex), nil
}

// HexToRGB parses a hex code such as "#AABBCC", "aabbcc" or "#ABC".
func HexToRGB(code string) (RGB, error) {
	hex, err := cleanHex(code)
	if err != nil {
		return RGB{}, err
	}

	var ch [3]int
	for i := range ch {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrMalformedHex, code)
		}
		ch[i] = int(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// HexToRGBs parses every code in order. It stops at the first malformed code.
func HexToRGBs(codes []string) ([]RGB, error) {
	out := make([]RGB, 0, len(codes))
	for i, code := range codes {
		c, err := HexToRGB(code)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// HexToCSS converts a hex code into an "rgb(R, G, B)" string.
func HexToCSS(code string) (string, error) {
	c, err := HexToRGB(code)
	if err != nil {
		return "", err
	}
	return c.CSS(), nil
}

// HexToCSSs converts every hex code into its CSS form.
func HexToCSSs(codes []string) ([]string, error) {
	out := make([]string, 0, len(codes))
	for i, code := range codes {
		s, err := HexToCSS(code)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseRGBString reads the three comma separated integers between the
// parentheses of a CSS color such as "rgb(170, 187, 204)". Channel values
// are not range checked.
func ParseRGBString(s string) (RGB, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return RGB{}, fmt.Errorf("%w: %q", ErrMalformedRGB, s)
	}
	end := strings.IndexByte(s[open+1:], ')')
	if end < 0 {
		return RGB{}, fmt.Errorf("%w: %q", ErrMalformedRGB, s)
	}

	parts := strings.Split(s[open+1:open+1+end], ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("%w: %q: expected 3 channels, got %d", ErrMalformedRGB, s, len(parts))
	}

	var ch [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: channel %d", ErrMalformedRGB, s, i)
		}
		ch[i] = v
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ParseNormalizedRGB parses a CSS color and scales each channel to [0, 1].
// Channels above 255 produce values above 1.
func ParseNormalizedRGB(s string) (colorful.Color, error) {
	c, err := ParseRGBString(s)
	if err != nil {
		return colorful.Color{}, err
	}
	return c.Normalized(), nil
}

// RGBToHex converts a CSS color into "#RRGGBB".
func RGBToHex(s string) (string, error) {
	c, err := ParseRGBString(s)
	if err != nil {
		return "", err
	}
	return c.Hex()
}

// RGBToHexes converts every CSS color into its hex form.
func RGBToHexes(codes []string) ([]string, error) {
	out := make([]string, 0, len(codes))
	for i, code := range codes {
		h, err := RGBToHex(code)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out = append(out, h)
	}
	return out, nil
}
