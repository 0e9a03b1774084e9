package escape

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB holds resolved red/green/blue channels, used both for true-color
// SGR attributes and for OSC palette/dynamic-color assignments.
// Grounded on the teacher's color.go RGB type and otty-escape's
// csi/color.rs Rgb struct.
type RGB struct {
	R, G, B uint8
}

// ANSIColorsRGB is the standard 16-color ANSI palette, in ANSI index
// order. Carried over verbatim from the teacher's color.go so that
// palette-relative SGR codes (30-37, 90-97, ...) resolve to the same
// colors the teacher's GUI renderer used.
var ANSIColorsRGB = []RGB{
	{R: 0, G: 0, B: 0},
	{R: 170, G: 0, B: 0},
	{R: 0, G: 170, B: 0},
	{R: 170, G: 85, B: 0},
	{R: 0, G: 0, B: 170},
	{R: 170, G: 0, B: 170},
	{R: 0, G: 170, B: 170},
	{R: 170, G: 170, B: 170},
	{R: 85, G: 85, B: 85},
	{R: 255, G: 85, B: 85},
	{R: 85, G: 255, B: 85},
	{R: 255, G: 255, B: 85},
	{R: 85, G: 85, B: 255},
	{R: 255, G: 85, B: 255},
	{R: 85, G: 255, B: 255},
	{R: 255, G: 255, B: 255},
}

// Get256ColorRGB resolves a 256-color palette index to RGB: 0-15 are the
// named ANSI colors, 16-231 are the 6x6x6 color cube, 232-255 are a
// grayscale ramp. Ported from the teacher's Get256ColorRGB.
func Get256ColorRGB(idx int) RGB {
	switch {
	case idx < 0:
		idx = 0
	case idx > 255:
		idx = 255
	}
	switch {
	case idx < 16:
		return ANSIColorsRGB[idx]
	case idx < 232:
		idx -= 16
		b := idx % 6
		g := (idx / 6) % 6
		r := idx / 36
		return RGB{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51)}
	default:
		gray := uint8((idx-232)*10 + 8)
		return RGB{R: gray, G: gray, B: gray}
	}
}

// ColorSpecKind discriminates the way a color was specified in an SGR
// sequence, mirroring otty-escape's csi/color.rs ColorSpec enum.
type ColorSpecKind int

const (
	ColorDefault ColorSpecKind = iota
	ColorPaletteIndex
	ColorTrueColor
)

// ColorSpec is the color half of an SGR Foreground/Background/
// UnderlineColor attribute.
type ColorSpec struct {
	Kind  ColorSpecKind
	Index uint8 // valid when Kind == ColorPaletteIndex
	RGB   RGB   // valid when Kind == ColorTrueColor
}

// Resolve returns the RGB value a renderer should use for this spec,
// resolving palette indices through Get256ColorRGB. defaultRGB is
// returned unchanged for ColorDefault since the "default" color is a
// renderer/theme choice, not something the escape layer owns.
func (c ColorSpec) Resolve(defaultRGB RGB) RGB {
	switch c.Kind {
	case ColorPaletteIndex:
		return Get256ColorRGB(int(c.Index))
	case ColorTrueColor:
		return c.RGB
	default:
		return defaultRGB
	}
}

// parseXParseColor parses the two color-spec forms xterm accepts in OSC
// 4/10/11/12/17/19 color-setting sequences: "#rgb"/"#rrggbb"/"#rrrgggbbb"
// (the "legacy" X11 form) and "rgb:rrrr/gggg/bbbb" (the XParseColor
// form, any 1-4 hex digits per channel). Grounded on otty-escape's
// csi/color.rs xparse_color/parse_legacy_color/parse_rgb_color; the
// legacy "#" form is delegated to go-colorful (the pack's color math
// dependency) since colorful.Hex already implements exactly that parse,
// while the xterm-specific "rgb:" form has no equivalent in the
// ecosystem and is parsed by hand, then converted through the same
// RGB type so both forms share one quantization path afterward.
func parseXParseColor(spec string) (RGB, bool) {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "rgb:") {
		return parseRGBColonForm(spec[4:])
	}
	if strings.HasPrefix(spec, "#") {
		c, err := colorful.Hex(normalizeHex(spec))
		if err != nil {
			return RGB{}, false
		}
		r, g, b := c.RGB255()
		return RGB{R: r, G: g, B: b}, true
	}
	return RGB{}, false
}

// normalizeHex expands the legacy "#rgb"/"#rrrgggbbb" forms into the
// "#rrggbb" form colorful.Hex expects, scaling each channel down to one
// byte the same way otty's parse_legacy_color does (take the most
// significant two nibbles of each channel group).
func normalizeHex(s string) string {
	digits := s[1:]
	if len(digits) == 6 {
		return s
	}
	n := len(digits) / 3
	if n == 0 || len(digits)%3 != 0 {
		return s
	}
	chan2 := func(group string) string {
		v, err := strconv.ParseUint(group, 16, 32)
		if err != nil {
			return "00"
		}
		v <<= 4
		shift := 4 * (len(group) - 1)
		if shift > 0 {
			v >>= uint(shift)
		}
		return strconv.FormatUint(v&0xff, 16)
	}
	r := chan2(digits[0:n])
	g := chan2(digits[n : 2*n])
	b := chan2(digits[2*n : 3*n])
	pad := func(s string) string {
		if len(s) == 1 {
			return "0" + s
		}
		return s
	}
	return "#" + pad(r) + pad(g) + pad(b)
}

// parseRGBColonForm parses the "rrrr/gggg/bbbb" body of an xterm
// "rgb:" color spec (1-4 hex digits per channel, scaled rather than
// zero-padded per X11's XParseColor semantics).
func parseRGBColonForm(body string) (RGB, bool) {
	parts := strings.Split(body, "/")
	if len(parts) != 3 {
		return RGB{}, false
	}
	scale := func(in string) (uint8, bool) {
		if len(in) == 0 || len(in) > 4 {
			return 0, false
		}
		v, err := strconv.ParseUint(in, 16, 32)
		if err != nil {
			return 0, false
		}
		max := uint64(1)
		for i := 0; i < len(in); i++ {
			max *= 16
		}
		max--
		return uint8(255 * uint64(v) / max), true
	}
	r, ok := scale(parts[0])
	if !ok {
		return RGB{}, false
	}
	g, ok := scale(parts[1])
	if !ok {
		return RGB{}, false
	}
	b, ok := scale(parts[2])
	if !ok {
		return RGB{}, false
	}
	return RGB{R: r, G: g, B: b}, true
}
