// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import (
	"fmt"
	"image/color"
	"math/rand/v2"
)

// Color is a linear RGB surface color. Each component is in the range [0, 1].
// There is no alpha channel: the renderer treats every shape as opaque.
type Color struct {
	R, G, B float32
}

// RGB creates a color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// FromColor converts a standard color.Color to Color, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with or without a leading '#'.
// Invalid input yields Black; use ParseHex to detect it.
func Hex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		return Black
	}
	return c
}

// ParseHex is like Hex but reports malformed input.
func ParseHex(hex string) (Color, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	var ok bool
	switch len(s) {
	case 3: // RGB
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b)
	}
	if !ok {
		return Black, fmt.Errorf("csg: invalid hex color %q", hex)
	}

	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
	}, nil
}

// parseHex accumulates hex digits into val and reports whether all were valid.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// RandomColor draws each component uniformly from [0, 1) using r.
func RandomColor(r *rand.Rand) Color {
	return Color{R: r.Float32(), G: r.Float32(), B: r.Float32()}
}

// Common colors
var (
	Black = RGB(0, 0, 0)
	White = RGB(1, 1, 1)
	Red   = RGB(1, 0, 0)
	Green = RGB(0, 1, 0)
	Blue  = RGB(0, 0, 1)
)
