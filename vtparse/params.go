package vtparse

// Bounds recovered from otty-vte/src/parser.rs: the Rust parser never
// errors on oversized input, it simply stops accumulating past these
// limits and keeps dispatching with whatever was collected so far.
const (
	// MaxParams bounds the number of CSI/DCS parameters collected before
	// further param bytes are accepted but no longer recorded.
	MaxParams = 256

	// MaxIntermediates bounds the number of intermediate bytes (0x20-0x2f)
	// collected for an escape/CSI/DCS sequence.
	MaxIntermediates = 2

	// MaxOscParams bounds the number of semicolon-separated fields recorded
	// for an OSC string.
	MaxOscParams = 32

	// maxOscRaw bounds the raw byte length retained for a single OSC field,
	// matching the teacher's defensive caps on untrusted terminal input.
	maxOscRaw = 4096
)

// Param is one CSI/DCS parameter. ECMA-48 parameters are normally decimal
// integers, but DEC-private introducers (?, <, =, >) are lexically
// intermediates that xterm promotes into the parameter list ahead of the
// numeric parameters; Marker distinguishes that case from Value.
type Param struct {
	Marker byte // non-zero: this slot holds a promoted private-mode marker
	Value  int64
	Subs   []int64 // colon-separated sub-parameters, e.g. CSI 38:2:r:g:bm
}

// IsMarker reports whether this parameter is a promoted marker byte
// rather than a numeric value.
func (p Param) IsMarker() bool { return p.Marker != 0 }

// params accumulates CSI/DCS parameters during a single sequence.
type params struct {
	list       []Param
	curVal     int64
	curMain    int64 // first (pre-colon) value of the parameter in progress
	curSubs    []int64
	inSubGroup bool // true once a ':' has been seen within the current parameter
	overflow   bool
	touched    bool // at least one param byte (digit, ';', ':', or marker) seen
}

func (p *params) reset() {
	p.list = p.list[:0]
	p.curVal = 0
	p.curMain = 0
	p.curSubs = nil
	p.inSubGroup = false
	p.overflow = false
	p.touched = false
}

// promoteMarker records a DEC-private introducer byte (?, <, =, >) as a
// leading marker parameter, ahead of any numeric parameters. Per
// otty-vte's promote_intermediates_to_params, this only ever applies to
// the first intermediate seen in CSI/DCS entry state.
func (p *params) promoteMarker(b byte) {
	p.touched = true
	if len(p.list) >= MaxParams {
		p.overflow = true
		return
	}
	p.list = append(p.list, Param{Marker: b})
}

// digit folds one ASCII digit into the parameter currently being
// accumulated.
func (p *params) digit(b byte) {
	p.touched = true
	p.curVal = p.curVal*10 + int64(b-'0')
	if p.curVal > 1<<31-1 {
		p.curVal = 1 << 31 - 1
	}
}

// subSeparator closes the current sub-parameter (colon) and starts the
// next one within the same parameter slot. The value before the first
// colon becomes the parameter's Value; everything after accumulates in
// Subs, e.g. "38:2:10:20:30" is one Param{Value: 38, Subs: [2,10,20,30]}.
func (p *params) subSeparator() {
	p.touched = true
	if !p.inSubGroup {
		p.curMain = p.curVal
		p.inSubGroup = true
	} else {
		p.curSubs = append(p.curSubs, p.curVal)
	}
	p.curVal = 0
}

// separator closes the current parameter (semicolon) and starts the
// next one.
func (p *params) separator() {
	p.touched = true
	p.finishCurrent()
}

func (p *params) finishCurrent() {
	value := p.curVal
	subs := p.curSubs
	if p.inSubGroup {
		value = p.curMain
		subs = append(subs, p.curVal)
	}
	if len(p.list) >= MaxParams {
		p.overflow = true
	} else {
		p.list = append(p.list, Param{Value: value, Subs: subs})
	}
	p.curVal = 0
	p.curMain = 0
	p.curSubs = nil
	p.inSubGroup = false
}

// finish closes out any in-progress parameter and returns the full list.
// A sequence with no param bytes at all (e.g. a bare "CSI m") yields a
// nil list rather than one implicit zero-valued parameter.
func (p *params) finish() []Param {
	if !p.touched {
		return nil
	}
	p.finishCurrent()
	return p.list
}

// intermediates accumulates intermediate bytes (0x20-0x2f) for the
// current sequence.
type intermediates struct {
	bytes    []byte
	overflow bool
}

func (i *intermediates) reset() {
	i.bytes = i.bytes[:0]
	i.overflow = false
}

func (i *intermediates) collect(b byte) {
	if len(i.bytes) >= MaxIntermediates {
		i.overflow = true
		return
	}
	i.bytes = append(i.bytes, b)
}

// oscState accumulates the semicolon-separated fields of an OSC string.
type oscState struct {
	fields   [][]byte
	cur      []byte
	overflow bool
}

func (o *oscState) reset() {
	o.fields = o.fields[:0]
	o.cur = o.cur[:0]
	o.overflow = false
}

func (o *oscState) put(b byte) {
	if b == ';' && len(o.fields) < MaxOscParams-1 {
		o.fields = append(o.fields, o.cur)
		o.cur = nil
		return
	}
	if len(o.cur) >= maxOscRaw {
		o.overflow = true
		return
	}
	o.cur = append(o.cur, b)
}

func (o *oscState) finish() [][]byte {
	o.fields = append(o.fields, o.cur)
	return o.fields
}
