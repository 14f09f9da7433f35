// Package colouring turns escape counts into colours. The schemes form a
// closed, enumerable set so the shell can cycle and test them exhaustively.
package colouring

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex renders the colour as a #rrggbb string for terminal styling.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Map selects one of the built-in colour schemes.
type Map int

const (
	// Default is a full-saturation hue ramp over the iteration range.
	Default Map = iota
	// BlueBrown is the classic 16-entry blue-to-brown gradient.
	BlueBrown
	// Green is 16 shades of green.
	Green

	numMaps
)

func (m Map) String() string {
	switch m {
	case Default:
		return "default"
	case BlueBrown:
		return "blue/brown"
	case Green:
		return "green"
	default:
		return fmt.Sprintf("Map(%d)", int(m))
	}
}

// Maps lists every scheme, in cycling order.
func Maps() []Map {
	return []Map{Default, BlueBrown, Green}
}

// Next returns the following scheme, wrapping around.
func (m Map) Next() Map {
	return (m + 1) % numMaps
}

// Parse resolves a scheme name as accepted in MULTIBROT_COLOURS.
func Parse(name string) (Map, error) {
	for _, m := range Maps() {
		if m.String() == name {
			return m, nil
		}
	}
	return Default, fmt.Errorf("unknown colour map %q", name)
}

// Colour converts an escape count into a colour under the scheme. A value of
// 0 marks a point that never escaped and always renders black, or the black
// entry of a lookup table.
func (m Map) Colour(value, maxIteration int) RGB {
	switch m {
	case BlueBrown:
		if value == 0 {
			return RGB{}
		}
		return blueBrown[value%16]
	case Green:
		return greens[value%16]
	default:
		return hueRamp(value, maxIteration)
	}
}

// blueBrown is the widely used "ultra fractal" gradient,
// https://stackoverflow.com/a/16505538.
var blueBrown = [16]RGB{
	{66, 30, 15},
	{25, 7, 26},
	{9, 1, 47},
	{4, 4, 73},
	{0, 7, 100},
	{12, 44, 138},
	{24, 82, 177},
	{57, 125, 209},
	{134, 181, 229},
	{211, 236, 248},
	{241, 233, 191},
	{248, 201, 95},
	{255, 170, 0},
	{204, 128, 0},
	{153, 87, 0},
	{106, 52, 3},
}

var greens = func() [16]RGB {
	var t [16]RGB
	for n := range t {
		t[n] = RGB{G: uint8(n * 16)}
	}
	return t
}()

type rampKey struct {
	value, maxIteration int
}

// The hue ramp is the only scheme that computes rather than looks up, and the
// same (value, maxIteration) pairs recur across a frame and across frames, so
// its results are memoized. Bounded, like every cache in this program.
var rampCache, _ = lru.New[rampKey, RGB](4096)

func hueRamp(value, maxIteration int) RGB {
	if value == 0 {
		return RGB{}
	}
	k := rampKey{value: value, maxIteration: maxIteration}
	if c, ok := rampCache.Get(k); ok {
		return c
	}
	hue := 360 * float64(value) / float64(maxIteration)
	r, g, b := colorful.Hsl(hue, 1, 0.5).RGB255()
	c := RGB{R: r, G: g, B: b}
	rampCache.Add(k, c)
	return c
}
