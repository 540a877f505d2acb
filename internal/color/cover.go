// Package color picks placeholder cover colours for books without artwork.
package color

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Cover is a two-stop gradient for a book's placeholder cover.
type Cover struct {
	From string
	To   string
}

// Saturation and lightness of every cover; only the hue varies per book.
const (
	saturation = 0.55
	lightness  = 0.72
	hueShift   = 40
)

// ForBook returns the cover colours for a book. The same key always yields
// the same colours.
func ForBook(key string) Cover {
	h := fnv.New32a()
	h.Write([]byte(key)) //nolint:errcheck // hash writes never fail
	hue := float64(h.Sum32() % 360)

	return Cover{
		From: hex(hue, saturation, lightness),
		To:   hex(math.Mod(hue+hueShift, 360), saturation, lightness-0.08),
	}
}

// hex converts an HSL colour (hue in degrees, s and l in [0, 1]) to #RRGGBB.
func hex(h, s, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return fmt.Sprintf("#%02X%02X%02X", channel(r+m), channel(g+m), channel(b+m))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
