// Package colour implements the RGBA colour used to composite voxel colours
// into a single colour per map column.
package colour

import (
	"fmt"
	"image/color"

	"golang.org/x/exp/constraints"
)

// Colour is an RGBA colour with float32 channels in the range [0, 1]. The
// colour is either stored straight or premultiplied by its alpha, as
// reported by Premultiplied.
//
// The zero value is fully transparent black, stored premultiplied.
type Colour struct {
	R, G, B, A float32

	straight bool
}

// Transparent is fully transparent black.
var Transparent = Colour{}

// RGBA returns a straight (non-premultiplied) Colour from the channels passed.
func RGBA(r, g, b, a float32) Colour {
	return Colour{R: r, G: g, B: b, A: a, straight: true}
}

// Hex parses a colour in the #rrggbb or #rrggbbaa notation and returns it as a
// straight Colour.
func Hex(s string) (Colour, error) {
	var r, g, b, a uint8 = 0, 0, 0, 0xff
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		err = fmt.Errorf("invalid length %v", len(s))
	}
	if err != nil {
		return Colour{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return RGBA(float32(r)/255, float32(g)/255, float32(b)/255, float32(a)/255), nil
}

// MustHex parses a colour like Hex and panics if it is invalid.
func MustHex(s string) Colour {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Set sets all channels of c at once. If premultiplied is true, r, g and b are
// expected to already be multiplied by a.
func (c *Colour) Set(r, g, b, a float32, premultiplied bool) *Colour {
	c.R, c.G, c.B, c.A = r, g, b, a
	c.straight = !premultiplied
	return c
}

// Reset sets c back to fully transparent black.
func (c *Colour) Reset() *Colour {
	*c = Colour{}
	return c
}

// Premultiplied reports if the RGB channels of c are multiplied by its alpha.
func (c Colour) Premultiplied() bool {
	return !c.straight
}

// Premultiply returns c with its RGB channels multiplied by its alpha. If c is
// already premultiplied, it is returned unchanged.
func (c Colour) Premultiply() Colour {
	if !c.straight {
		return c
	}
	return Colour{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Straight returns c with its RGB channels divided by its alpha. A fully
// transparent colour becomes straight black.
func (c Colour) Straight() Colour {
	if c.straight {
		return c
	}
	if c.A == 0 {
		return Colour{A: 0, straight: true}
	}
	return Colour{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A, straight: true}
}

// Overlay composites src over c in place using the source-over operator on
// premultiplied channels:
//
//	c.rgb = src.rgb + c.rgb * (1 - src.a)
//	c.a   = src.a   + c.a   * (1 - src.a)
//
// Straight operands are premultiplied first. Overlaying a fully opaque src
// results in src itself.
func (c *Colour) Overlay(src Colour) *Colour {
	if c.straight {
		*c = c.Premultiply()
	}
	src = src.Premultiply()
	inv := 1 - src.A
	c.R = src.R + c.R*inv
	c.G = src.G + c.G*inv
	c.B = src.B + c.B*inv
	c.A = src.A + c.A*inv
	return c
}

// Multiply multiplies the RGB channels of c with f, leaving alpha untouched.
func (c *Colour) Multiply(f float32) *Colour {
	c.R, c.G, c.B = c.R*f, c.G*f, c.B*f
	return c
}

// RGBA implements color.Color. The values returned are alpha-premultiplied
// and clamped to [0, 0xffff].
func (c Colour) RGBA() (r, g, b, a uint32) {
	p := c.Premultiply()
	return channel16(p.R), channel16(p.G), channel16(p.B), channel16(p.A)
}

// NRGBA converts c to a straight 8-bit colour.
func (c Colour) NRGBA() color.NRGBA {
	s := c.Straight()
	return color.NRGBA{R: channel8(s.R), G: channel8(s.G), B: channel8(s.B), A: channel8(s.A)}
}

// String returns the straight colour in #rrggbbaa notation.
func (c Colour) String() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func channel16(v float32) uint32 {
	return uint32(clamp(v, 0, 1)*0xffff + 0.5)
}

func channel8(v float32) uint8 {
	return uint8(clamp(v, 0, 1)*0xff + 0.5)
}

func clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
