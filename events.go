package vtsurface

import (
	"github.com/phroun/vtsurface/escape"
	"github.com/phroun/vtsurface/surface"
)

// EventKind tags the UI-side event stream spec.md §6 names.
type EventKind int

const (
	EventFrame EventKind = iota
	EventTitleChanged
	EventIconTitleChanged
	EventBell
	EventCursorShape
	EventMouseCursorIcon
	EventHyperlinkActivated
	EventModeChanged
	EventChildExit
	EventClipboard
)

// Event is one entry in the tagged output stream returned by NextEvent.
// Only the fields relevant to Kind are populated; this mirrors the
// single-struct-with-discriminant shape used throughout escape.Action,
// since Go has no tagged union to model spec.md §6's event list.
type Event struct {
	Kind EventKind

	Frame *surface.Snapshot

	Title string

	CursorStyle escape.CursorStyle
	IconName    string

	LinkID, LinkURI string

	Mode   int
	ModeOn bool

	ExitStatus int

	Clipboard surface.Clipboard
}

// fromSurfaceEvent converts a surface.Event (Surface's own side-channel
// notifications) into the public Event shape; surface.EventChildSizeRequested
// has no public counterpart since child-process sizing is the host's
// concern, not something Instance reports back to the UI.
func fromSurfaceEvent(e surface.Event) (Event, bool) {
	switch e.Kind {
	case surface.EventBell:
		return Event{Kind: EventBell}, true
	case surface.EventTitleChanged:
		return Event{Kind: EventTitleChanged, Title: e.Title}, true
	case surface.EventIconTitleChanged:
		return Event{Kind: EventIconTitleChanged, Title: e.Title}, true
	case surface.EventCursorShapeChanged:
		return Event{Kind: EventCursorShape, CursorStyle: e.Style}, true
	case surface.EventMouseCursorIcon:
		return Event{Kind: EventMouseCursorIcon, IconName: e.Name}, true
	case surface.EventHyperlinkActivated:
		return Event{Kind: EventHyperlinkActivated, LinkID: e.LinkID, LinkURI: e.LinkURI}, true
	case surface.EventModeChanged:
		return Event{Kind: EventModeChanged, Mode: e.Mode, ModeOn: e.ModeOn}, true
	case surface.EventClipboard:
		return Event{Kind: EventClipboard, Clipboard: e.Clipboard}, true
	default:
		return Event{}, false
	}
}
