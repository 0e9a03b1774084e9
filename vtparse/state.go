// Package vtparse implements the table-driven VT/ANSI state machine that
// recognizes ECMA-48 and xterm/DEC escape sequences in a byte stream.
//
// The parser never fails: every byte is consumed and drives exactly one
// transition. Recognized sequences are delivered to an Actor implementation
// via print/execute/csiDispatch/escDispatch/oscDispatch/hook/put/unhook -
// the parser performs no interpretation of sequence semantics itself.
package vtparse

// state is the current position of the finite state machine.
type state int

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCSIEntry
	stateCSIParam
	stateCSIIntermediate
	stateCSIIgnore
	stateDCSEntry
	stateDCSParam
	stateDCSIntermediate
	stateDCSPassthrough
	stateDCSIgnore
	stateOSCString
	stateSosPmApcString
	stateUTF8Sequence
)

// action identifies what the parser should do for one input byte once the
// next state has been computed.
type action int

const (
	actionNone action = iota
	actionIgnore
	actionUTF8
	actionPrint
	actionExecute
	actionClear
	actionCollect
	actionParam
	actionEscDispatch
	actionCSIDispatch
	actionHook
	actionPut
	actionUnhook
	actionOscStart
	actionOscPut
	actionOscEnd
)
