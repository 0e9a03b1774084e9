package surface

import "github.com/phroun/vtsurface/escape"

// palette is the mutable 256-entry indexed color table plus the three
// dynamic colors (default foreground/background/cursor), per spec.md's
// Color data model. Entries 0-15 seed from escape.ANSIColorsRGB; 16-255
// are derived algorithmically and only materialized in the table once
// overridden by OSC 4.
type palette struct {
	overrides map[int]escape.RGB
	fg, bg    escape.RGB
	cursor    escape.RGB
	version   uint64
}

func newPalette() *palette {
	return &palette{
		overrides: make(map[int]escape.RGB),
		fg:        escape.RGB{R: 0xe5, G: 0xe5, B: 0xe5},
		bg:        escape.RGB{R: 0x00, G: 0x00, B: 0x00},
		cursor:    escape.RGB{R: 0xe5, G: 0xe5, B: 0xe5},
	}
}

func (p *palette) get(index int) escape.RGB {
	if rgb, ok := p.overrides[index]; ok {
		return rgb
	}
	return escape.Get256ColorRGB(index)
}

func (p *palette) setIndex(index int, rgb escape.RGB) {
	p.overrides[index] = rgb
	p.version++
}

func (p *palette) resetIndex(index int) {
	delete(p.overrides, index)
	p.version++
}

func (p *palette) resetAll() {
	p.overrides = make(map[int]escape.RGB)
	p.version++
}

func (p *palette) setDynamic(slot escape.DynamicColorSlot, rgb escape.RGB) {
	switch slot {
	case escape.DynamicColorForeground:
		p.fg = rgb
	case escape.DynamicColorBackground:
		p.bg = rgb
	case escape.DynamicColorCursor:
		p.cursor = rgb
	}
	p.version++
}

func (p *palette) resetDynamic(slot escape.DynamicColorSlot) {
	d := newPalette()
	switch slot {
	case escape.DynamicColorForeground:
		p.fg = d.fg
	case escape.DynamicColorBackground:
		p.bg = d.bg
	case escape.DynamicColorCursor:
		p.cursor = d.cursor
	}
	p.version++
}

// resolve returns the concrete RGB for a cell color, falling back to
// the dynamic foreground/background for ColorDefault.
func (p *palette) resolve(c escape.ColorSpec, defaultRGB escape.RGB) escape.RGB {
	switch c.Kind {
	case escape.ColorPaletteIndex:
		return p.get(int(c.Index))
	case escape.ColorTrueColor:
		return c.RGB
	default:
		return defaultRGB
	}
}
