// Package vtsurface implements a host-driven VT/ANSI terminal core: a
// byte-stream parser, escape-sequence interpreter, and grid surface,
// wired together behind a small synchronous API that a host application
// drives explicitly rather than via internal goroutines. See spec.md
// §5 for the concurrency contract this shape follows.
package vtsurface

import (
	"errors"
	"fmt"
	"time"

	"github.com/phroun/vtsurface/escape"
	"github.com/phroun/vtsurface/surface"
	"github.com/phroun/vtsurface/vtparse"
)

// ErrWriteQueueFull is returned by QueueWrite when accepting the new
// bytes would take the backlog waiting for OnWritable past
// WriteQueueCapacity.
var ErrWriteQueueFull = errors.New("vtsurface: write queue full")

// errEventQueueFull is the message refillEvents logs (through Logger;
// it is never returned) when the event backlog is at EventQueueCapacity
// and the oldest event is dropped to make room.
var errEventQueueFull = errors.New("vtsurface: event queue full")

// Instance is the host-facing terminal core: byte stream in, Snapshots
// and Events out, writes queued for the host's transport to drain.
// One Instance serves one PTY/child process. Not safe for concurrent
// use; the host must serialize its own calls, per spec.md §5.
type Instance struct {
	opts Options

	parser *vtparse.Parser
	interp *escape.Interpreter
	srf    *surface.Surface

	writeQueue []byte
	events     []Event

	shutdownRequested bool
}

// Open constructs a new Instance ready to receive bytes via OnReadable.
func Open(opts Options) *Instance {
	opts = opts.withDefaults()
	srf := surface.NewSurface(surface.Options{
		Cols:            opts.Cols,
		Rows:            opts.Rows,
		ScrollbackLines: opts.ScrollbackRows,
	})
	srf.Logger = opts.Logger

	in := &Instance{
		opts:   opts,
		parser: vtparse.NewParser(),
		srf:    srf,
	}
	in.interp = escape.NewInterpreter(in)
	in.interp.Logger = opts.Logger
	in.interp.ReplyWriter = in.queueReply
	if opts.SyncUpdateTimeoutMS > 0 {
		// Surface owns the watchdog deadline, fixed at 150ms, and
		// exposes no setter for it, so this value is not applied.
	}
	return in
}

// Apply implements escape.Sink. DeviceAttributes, DeviceStatusReport,
// ReportMode, ModifyOtherKeysQuery, and a kitty-keyboard query are
// intercepted here rather than forwarded to Surface, since answering
// them needs both the reply channel (owned by Interpreter) and state
// (cursor/modes/keyboard) owned by Surface - Surface.Apply's own no-op
// case for the first four documents the split. WindowOps forwards to
// Surface (so push/pop title can mutate its title stack) in addition to
// being answered here for the size-query ops.
func (in *Instance) Apply(a escape.Action) {
	switch act := a.(type) {
	case escape.DeviceAttributes:
		in.replyDeviceAttributes(act.Kind)
	case escape.DeviceStatusReport:
		in.replyDeviceStatusReport(act)
	case escape.ReportMode:
		in.replyReportMode(act)
	case escape.ModifyOtherKeysQuery:
		in.replyModifyOtherKeys()
	case escape.KittyKeyboard:
		if act.Op == escape.KeyboardModeQuery {
			in.replyKittyKeyboard()
			return
		}
		in.srf.Apply(a)
	case escape.WindowOps:
		in.replyWindowOps(act)
		in.srf.Apply(a)
	default:
		in.srf.Apply(a)
	}
}

func (in *Instance) replyDeviceAttributes(kind escape.DeviceAttributesKind) {
	switch kind {
	case escape.DA1:
		in.queueReply([]byte("\x1b[?62;22c"))
	case escape.DA2:
		in.queueReply([]byte("\x1b[>1;10;0c"))
	case escape.DA3:
		in.queueReply([]byte("\x1bP!|00000000\x1b\\"))
	}
}

func (in *Instance) replyDeviceStatusReport(act escape.DeviceStatusReport) {
	if act.ExtendedCursorPosition {
		row, col := in.srf.CursorPosition()
		in.queueReply([]byte(fmt.Sprintf("\x1b[?%d;%dR", row, col)))
		return
	}
	if act.CursorPosition {
		row, col := in.srf.CursorPosition()
		in.queueReply([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	}
}

// replyReportMode answers a DECRQM query (CSI Ps $p / CSI ? Ps $p) with
// CSI Ps ; Pm $y (or CSI ? Ps ; Pm $y for a private mode), per ECMA-48 /
// DEC's mode-reporting convention.
func (in *Instance) replyReportMode(act escape.ReportMode) {
	pm := in.srf.ModeState(act.Mode, act.Private)
	if act.Private {
		in.queueReply([]byte(fmt.Sprintf("\x1b[?%d;%d$y", act.Mode, pm)))
		return
	}
	in.queueReply([]byte(fmt.Sprintf("\x1b[%d;%d$y", act.Mode, pm)))
}

// replyModifyOtherKeys answers a modifyOtherKeys query (CSI ? 4 m) with
// CSI > 4 ; Ps m, mirroring the set form (CSI > 4 ; Ps m).
func (in *Instance) replyModifyOtherKeys() {
	state := in.srf.ModifyOtherKeys()
	var ps int
	switch state {
	case escape.ModifyOtherKeysEnableExceptWellDefined:
		ps = 1
	case escape.ModifyOtherKeysEnableAll:
		ps = 2
	}
	in.queueReply([]byte(fmt.Sprintf("\x1b[>4;%dm", ps)))
}

// replyKittyKeyboard answers a kitty keyboard protocol query (CSI ? u)
// with CSI ? <flags> u, reporting the current mode mask without
// mutating it.
func (in *Instance) replyKittyKeyboard() {
	in.queueReply([]byte(fmt.Sprintf("\x1b[?%du", in.srf.KeyboardMode())))
}

// replyWindowOps answers the XTWINOPS size-query subset: 14 (pixel
// size) and 18 (character-cell size). Pushes/pops (22/23) carry no
// reply; Apply still forwards them to Surface for its title stack.
func (in *Instance) replyWindowOps(act escape.WindowOps) {
	cols, rows, pixelCols, pixelRows := in.srf.WindowSize()
	switch act.Op {
	case 14:
		in.queueReply([]byte(fmt.Sprintf("\x1b[4;%d;%dt", pixelRows, pixelCols)))
	case 18:
		in.queueReply([]byte(fmt.Sprintf("\x1b[8;%d;%dt", rows, cols)))
	}
}

func (in *Instance) queueReply(b []byte) {
	if err := in.QueueWrite(b); err != nil && in.opts.Logger != nil {
		in.opts.Logger.Printf("vtsurface: dropped reply, %v", err)
	}
}

// OnReadable feeds bytes read from the child/PTY into the parser. The
// host calls this once per read, in whatever chunk size its transport
// delivered; Instance places no framing requirement on it.
func (in *Instance) OnReadable(data []byte) {
	in.parser.Advance(data, in.interp)
}

// HasPendingOutput reports whether QueueWrite has buffered bytes the
// host has not yet drained via OnWritable.
func (in *Instance) HasPendingOutput() bool {
	return len(in.writeQueue) > 0
}

// QueueWrite appends bytes (typically DSR/DA replies, or host-initiated
// input such as keystrokes) to the outbound queue. Returns
// ErrWriteQueueFull if opts.WriteQueueCapacity would be exceeded.
func (in *Instance) QueueWrite(data []byte) error {
	if len(in.writeQueue)+len(data) > in.opts.WriteQueueCapacity {
		return ErrWriteQueueFull
	}
	in.writeQueue = append(in.writeQueue, data...)
	return nil
}

// OnWritable lets the host drain queued output through write, which
// should behave like io.Writer.Write. write is called repeatedly until
// the queue is empty, it returns an error, or it accepts 0 bytes;
// whatever remains stays queued for the next call.
func (in *Instance) OnWritable(write func([]byte) (int, error)) error {
	for len(in.writeQueue) > 0 {
		n, err := write(in.writeQueue)
		if n > 0 {
			in.writeQueue = in.writeQueue[n:]
		}
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
	}
	return nil
}

// Tick advances time-driven state: the synchronized-update watchdog.
// The host should call this periodically (e.g. every 16-50ms) even
// when idle, per spec.md §5's tick(now) hook.
func (in *Instance) Tick(now time.Time) {
	in.srf.Tick(now)
}

// Resize changes the terminal geometry. The host is responsible for
// separately resizing the PTY (e.g. via creack/pty's Setsize).
func (in *Instance) Resize(cols, rows int) {
	in.opts.Cols, in.opts.Rows = cols, rows
	in.srf.Resize(cols, rows)
}

// Snapshot returns the current rendering state, coalesced so that
// repeated calls without intervening mutation return the same pointer.
func (in *Instance) Snapshot() *surface.Snapshot {
	return in.srf.Snapshot()
}

// SetSelection and ClearSelection forward to the surface's selection
// tracking, for host-driven mouse/keyboard selection.
func (in *Instance) SetSelection(anchor, head surface.Point, kind surface.SelectionKind) {
	in.srf.SetSelection(anchor, head, kind)
}

func (in *Instance) ClearSelection() {
	in.srf.ClearSelection()
}

// SetDisplayOffset scrolls the view into scrollback, clamped to
// available history.
func (in *Instance) SetDisplayOffset(n int) {
	in.srf.SetDisplayOffset(n)
}

// NextEvent drains one buffered side-channel event (bell, title
// change, hyperlink activation, clipboard request, etc), translated
// from Surface's internal event shape. Returns ok=false when the
// backlog is empty.
func (in *Instance) NextEvent() (Event, bool) {
	if len(in.events) == 0 {
		in.refillEvents()
	}
	if len(in.events) == 0 {
		return Event{}, false
	}
	e := in.events[0]
	in.events = in.events[1:]
	return e, true
}

func (in *Instance) refillEvents() {
	for _, se := range in.srf.DrainEvents() {
		e, ok := fromSurfaceEvent(se)
		if !ok {
			continue
		}
		if len(in.events) >= in.opts.EventQueueCapacity {
			if in.opts.Logger != nil {
				in.opts.Logger.Printf("vtsurface: %v, dropping oldest", errEventQueueFull)
			}
			in.events = in.events[1:]
		}
		in.events = append(in.events, e)
	}
}

// RequestShutdown marks the instance as winding down; the host should
// stop calling OnReadable afterward. Instance itself owns no process
// handle to terminate - that is the host's PTY/exec.Cmd to manage.
func (in *Instance) RequestShutdown() {
	in.shutdownRequested = true
}

// ShutdownRequested reports whether RequestShutdown has been called.
func (in *Instance) ShutdownRequested() bool {
	return in.shutdownRequested
}
