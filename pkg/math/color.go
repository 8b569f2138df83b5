package math

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA color with components in 0..1.
type Color struct {
	R, G, B, A float64
}

// Predefined colors.
var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 1, 0, 1}
	Blue  = Color{0, 0, 1, 1}
)

// Gray returns an opaque gray with all channels set to v.
func Gray(v float64) Color {
	return Color{v, v, v, 1}
}

// RGB creates an opaque color from 8-bit values.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
		A: 1.0,
	}
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255.0,
		G: float64(v>>16&0xff) / 255.0,
		B: float64(v>>8&0xff) / 255.0,
		A: float64(v&0xff) / 255.0,
	}, nil
}

// Hex formats the color as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) Hex() string {
	to8 := func(f float64) uint8 { return uint8(Clamp(f, 0, 1)*255 + 0.5) }
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

// Scaled multiplies every channel, alpha included, by k.
func (c Color) Scaled(k float64) Color {
	return Color{c.R * k, c.G * k, c.B * k, c.A * k}
}

// RGB32 returns the color channels as float32 for uniform upload.
func (c Color) RGB32() [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

// Vec3 returns the RGB channels as a vector.
func (c Color) Vec3() Vec3 {
	return Vec3{c.R, c.G, c.B}
}

// MarshalText implements encoding.TextMarshaler so colors read as hex in YAML.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
