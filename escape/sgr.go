package escape

// Intensity is the SGR bold/dim attribute. Grounded on
// otty-escape/src/csi/sgr.rs's Intensity enum.
type Intensity int

const (
	IntensityNormal Intensity = iota
	IntensityBold
	IntensityHalf
)

// Underline selects the underline style set by SGR 4 (plain) or the
// colon-extended SGR 4:n form xterm/kitty use for curly/dotted/dashed
// underlines.
type Underline int

const (
	UnderlineNone Underline = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Blink selects the SGR 5/6 blink rate.
type Blink int

const (
	BlinkNone Blink = iota
	BlinkSlow
	BlinkRapid
)

// VerticalAlign is the SGR 73/74/75 superscript/subscript attribute.
type VerticalAlign int

const (
	VerticalAlignBaseline VerticalAlign = iota
	VerticalAlignSuperscript
	VerticalAlignSubscript
)

// Font selects the SGR 10-19 alternate font attribute; 10 is the
// primary (default) font.
type Font struct {
	Alternate bool
	Index     uint8 // 1-9 when Alternate is true
}

// SGRAttributeKind discriminates which field of SGRAttribute is live,
// since Go has no tagged union to hold Intensity/Underline/.../ColorSpec
// in one slot. Mirrors otty-escape/src/csi/sgr.rs's Sgr enum variants.
type SGRAttributeKind int

const (
	SGRReset SGRAttributeKind = iota
	SGRIntensity
	SGRUnderline
	SGRUnderlineColor
	SGRBlink
	SGRItalic
	SGRInverse
	SGRInvisible
	SGRStrikeThrough
	SGRFont
	SGRForeground
	SGRBackground
	SGROverline
	SGRVerticalAlign
)

// SGRAttribute carries one decoded SGR parameter's effect. Exactly one
// of the typed fields is meaningful, selected by Kind; Bool covers the
// simple on/off attributes (italic, inverse, invisible, strikethrough,
// overline) so they don't each need their own bool field.
type SGRAttribute struct {
	Kind      SGRAttributeKind
	Bool      bool
	Intensity Intensity
	Underline Underline
	Blink     Blink
	Font      Font
	Color     ColorSpec
	VAlign    VerticalAlign
}
