package vtparse

// transit is the core state-transition table. It mirrors ECMA-48's escape
// sequence grammar (and the DEC/xterm extensions layered on top of it):
// ground, escape, CSI entry/param/intermediate/ignore, DCS
// entry/param/intermediate/passthrough/ignore, OSC string, and
// SOS/PM/APC string.
//
// Each state has its own helper below so that the coverage of a given
// sequence family can be audited in isolation.
func transit(s state, b byte) (state, action) {
	switch s {
	case stateGround:
		return ground(b)
	case stateEscape:
		return escape(b)
	case stateEscapeIntermediate:
		return escapeIntermediate(b)
	case stateCSIEntry:
		return csiEntry(b)
	case stateCSIParam:
		return csiParam(b)
	case stateCSIIntermediate:
		return csiIntermediate(b)
	case stateCSIIgnore:
		return csiIgnore(b)
	case stateDCSEntry:
		return dcsEntry(b)
	case stateDCSParam:
		return dcsParam(b)
	case stateDCSIntermediate:
		return dcsIntermediate(b)
	case stateDCSPassthrough:
		return dcsPassthrough(b)
	case stateDCSIgnore:
		return dcsIgnore(b)
	case stateOSCString:
		return oscString(b)
	case stateSosPmApcString:
		return sosPmApcString(b)
	default:
		return s, actionNone
	}
}

// anywhere handles the C1 control / string-introducer bytes that are
// recognized from any state per ECMA-48.
func anywhere(s state, b byte) (state, action) {
	switch {
	case b == 0x18 || b == 0x1a || (b >= 0x80 && b <= 0x8f) || (b >= 0x91 && b <= 0x97) || b == 0x99 || b == 0x9a:
		return stateGround, actionExecute
	case b == 0x9c:
		return stateGround, actionNone
	case b == 0x1b:
		return stateEscape, actionNone
	case b == 0x98 || b == 0x9e || b == 0x9f:
		return stateSosPmApcString, actionNone
	case b == 0x90:
		return stateDCSEntry, actionNone
	case b == 0x9d:
		return stateOSCString, actionNone
	case b == 0x9b:
		return stateCSIEntry, actionNone
	default:
		return s, actionNone
	}
}

func ground(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f):
		return stateGround, actionExecute
	case b >= 0x20 && b <= 0x7f:
		return stateGround, actionPrint
	case b >= 0xc2 && b <= 0xf4:
		return stateUTF8Sequence, actionUTF8
	default:
		return anywhere(stateGround, b)
	}
}

func escape(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f):
		return stateEscape, actionExecute
	case b == 0x7f:
		return stateEscape, actionIgnore
	case b >= 0x20 && b <= 0x2f:
		return stateEscapeIntermediate, actionCollect
	case (b >= 0x30 && b <= 0x4f) || (b >= 0x51 && b <= 0x57) || b == 0x59 || b == 0x5a || b == 0x5c || (b >= 0x60 && b <= 0x7e):
		return stateGround, actionEscDispatch
	case b == 0x5b:
		return stateCSIEntry, actionNone
	case b == 0x5d:
		return stateOSCString, actionNone
	case b == 0x50:
		return stateDCSEntry, actionNone
	case b == 0x58 || b == 0x5e || b == 0x5f:
		return stateSosPmApcString, actionNone
	default:
		return anywhere(stateEscape, b)
	}
}

func escapeIntermediate(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f):
		return stateEscapeIntermediate, actionExecute
	case b >= 0x20 && b <= 0x2f:
		return stateEscapeIntermediate, actionCollect
	case b == 0x7f:
		return stateEscapeIntermediate, actionIgnore
	case b >= 0x30 && b <= 0x7e:
		return stateGround, actionEscDispatch
	default:
		return anywhere(stateEscapeIntermediate, b)
	}
}

func csiEntry(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f):
		return stateCSIEntry, actionExecute
	case b == 0x7f:
		return stateCSIEntry, actionIgnore
	case b >= 0x20 && b <= 0x2f:
		return stateCSIIntermediate, actionCollect
	case b == 0x3a:
		return stateCSIIgnore, actionNone
	case (b >= 0x30 && b <= 0x39) || b == 0x3b:
		return stateCSIParam, actionParam
	case b >= 0x3c && b <= 0x3f:
		return stateCSIParam, actionCollect
	case b >= 0x40 && b <= 0x7e:
		return stateGround, actionCSIDispatch
	default:
		return anywhere(stateCSIEntry, b)
	}
}

func csiParam(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f):
		return stateCSIParam, actionExecute
	case b >= 0x30 && b <= 0x3b:
		return stateCSIParam, actionParam
	case b == 0x7f:
		return stateCSIParam, actionIgnore
	case b >= 0x3c && b <= 0x3f:
		return stateCSIIgnore, actionNone
	case b >= 0x20 && b <= 0x2f:
		return stateCSIIntermediate, actionCollect
	case b >= 0x40 && b <= 0x7e:
		return stateGround, actionCSIDispatch
	default:
		return anywhere(stateCSIParam, b)
	}
}

func csiIntermediate(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f):
		return stateCSIIntermediate, actionExecute
	case b >= 0x20 && b <= 0x2f:
		return stateCSIIntermediate, actionCollect
	case b == 0x7f:
		return stateCSIIntermediate, actionIgnore
	case b >= 0x30 && b <= 0x3f:
		return stateCSIIntermediate, actionNone
	case b >= 0x40 && b <= 0x7e:
		return stateGround, actionCSIDispatch
	default:
		return anywhere(stateCSIIntermediate, b)
	}
}

func csiIgnore(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f):
		return stateCSIIgnore, actionExecute
	case (b >= 0x20 && b <= 0x3f) || b == 0x7f:
		return stateCSIIgnore, actionIgnore
	case b >= 0x40 && b <= 0x7e:
		return stateGround, actionNone
	default:
		return anywhere(stateCSIIgnore, b)
	}
}

func dcsEntry(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f):
		return stateDCSEntry, actionExecute
	case b == 0x7f:
		return stateDCSEntry, actionIgnore
	case b == 0x3a:
		return stateDCSIgnore, actionNone
	case b >= 0x20 && b <= 0x2f:
		return stateDCSIntermediate, actionCollect
	case (b >= 0x30 && b <= 0x39) || b == 0x3b:
		return stateDCSParam, actionParam
	case b >= 0x3c && b <= 0x3f:
		return stateDCSParam, actionCollect
	case b >= 0x40 && b <= 0x7e:
		return stateDCSPassthrough, actionNone
	default:
		return anywhere(stateDCSEntry, b)
	}
}

func dcsParam(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f) || b == 0x7f:
		return stateDCSParam, actionIgnore
	case (b >= 0x30 && b <= 0x39) || b == 0x3b:
		return stateDCSParam, actionParam
	case b == 0x3a || (b >= 0x3c && b <= 0x3f):
		return stateDCSIgnore, actionNone
	case b >= 0x20 && b <= 0x2f:
		return stateDCSIntermediate, actionCollect
	case b >= 0x40 && b <= 0x7e:
		return stateDCSPassthrough, actionNone
	default:
		return anywhere(stateDCSParam, b)
	}
}

func dcsIntermediate(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f) || b == 0x7f:
		return stateDCSIntermediate, actionIgnore
	case b >= 0x20 && b <= 0x2f:
		return stateDCSIntermediate, actionCollect
	case b >= 0x30 && b <= 0x3f:
		return stateDCSIgnore, actionNone
	case b >= 0x40 && b <= 0x7e:
		return stateDCSPassthrough, actionNone
	default:
		return anywhere(stateDCSIntermediate, b)
	}
}

func dcsPassthrough(b byte) (state, action) {
	switch {
	// String Terminator (ST) in 8-bit form.
	case b == 0x9c:
		return stateGround, actionNone
	// DCS payload is an opaque byte stream (sixel, kitty graphics, tmux
	// control frames); accept high-bit bytes as payload too so that
	// UTF-8 continuation bytes inside the passthrough are not
	// misinterpreted as C1 controls and don't prematurely end the DCS.
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f) || (b >= 0x20 && b <= 0x7e) || (b >= 0x80 && b <= 0x9b) || b >= 0x9d:
		return stateDCSPassthrough, actionPut
	case b == 0x7f:
		return stateDCSPassthrough, actionIgnore
	default:
		return anywhere(stateDCSPassthrough, b)
	}
}

func dcsIgnore(b byte) (state, action) {
	switch {
	case b == 0x9c:
		return stateGround, actionNone
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f) || (b >= 0x20 && b <= 0x7f) || (b >= 0x80 && b <= 0x9b) || b >= 0x9d:
		return stateDCSIgnore, actionIgnore
	default:
		return anywhere(stateDCSIgnore, b)
	}
}

func oscString(b byte) (state, action) {
	switch {
	case b <= 0x06 || (b >= 0x08 && b <= 0x17) || b == 0x19 || (b >= 0x1c && b <= 0x1f):
		return stateOSCString, actionIgnore
	case b == 0x07:
		return stateGround, actionIgnore
	case b >= 0x20 && b <= 0x7f:
		return stateOSCString, actionOscPut
	case b >= 0xc2 && b <= 0xf4:
		return stateUTF8Sequence, actionUTF8
	default:
		return anywhere(stateOSCString, b)
	}
}

func sosPmApcString(b byte) (state, action) {
	switch {
	case b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f) || (b >= 0x20 && b <= 0x7f):
		return stateSosPmApcString, actionIgnore
	default:
		return anywhere(stateSosPmApcString, b)
	}
}

// entryAction returns the action to perform when entering a state, before
// the byte that caused the transition is otherwise processed.
func entryAction(s state) action {
	switch s {
	case stateEscape, stateCSIEntry, stateDCSEntry:
		return actionClear
	case stateDCSPassthrough:
		return actionHook
	case stateOSCString:
		return actionOscStart
	default:
		return actionNone
	}
}

// exitAction returns the action to perform when leaving a state.
func exitAction(s state) action {
	switch s {
	case stateDCSPassthrough:
		return actionUnhook
	case stateOSCString:
		return actionOscEnd
	default:
		return actionNone
	}
}
