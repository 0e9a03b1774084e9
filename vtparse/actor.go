package vtparse

// Actor receives the semantic events recognized by Parser. It performs no
// parsing itself: by the time any method is called, the byte stream has
// already been fully classified. escape.Interpreter is the production
// implementation; tests use small recording actors.
type Actor interface {
	// Print is called for each printable rune decoded from the ground
	// state, including multi-byte UTF-8 sequences assembled by the
	// parser.
	Print(r rune)

	// Execute is called for a single-byte C0/C1 control function (BEL,
	// BS, LF, etc).
	Execute(b byte)

	// EscDispatch is called when a two-or-more byte escape sequence
	// (not CSI/OSC/DCS/SOS/PM/APC) completes. intermediates holds any
	// 0x20-0x2f bytes collected before the final byte.
	EscDispatch(intermediates []byte, final byte)

	// CSIDispatch is called when a Control Sequence completes.
	// params[i].IsMarker() is true for a promoted DEC-private
	// introducer occupying the leading slot(s).
	CSIDispatch(params []Param, intermediates []byte, final byte)

	// Hook is called when a Device Control String begins, once its
	// parameters and intermediates are known but before any payload
	// bytes arrive.
	Hook(params []Param, intermediates []byte, final byte)

	// Put delivers one payload byte of an open DCS string.
	Put(b byte)

	// Unhook is called when a DCS string's terminator is reached.
	Unhook()

	// OscDispatch is called when an Operating System Command string's
	// terminator is reached. fields holds the semicolon-separated raw
	// byte slices between the OSC introducer and the terminator.
	OscDispatch(fields [][]byte)
}
