package escape

import (
	"reflect"
	"testing"

	"github.com/phroun/vtsurface/vtparse"
)

type recordingSink struct {
	actions []Action
}

func (s *recordingSink) Apply(a Action) { s.actions = append(s.actions, a) }

func run(t *testing.T, seq []byte) []Action {
	t.Helper()
	sink := &recordingSink{}
	interp := NewInterpreter(sink)
	p := vtparse.NewParser()
	p.Advance(seq, interp)
	return sink.actions
}

func TestSGRBasic(t *testing.T) {
	got := run(t, []byte("\x1b[1;31;4m"))
	want := []Action{
		SGR{Attr: SGRAttribute{Kind: SGRIntensity, Intensity: IntensityBold}},
		SGR{Attr: SGRAttribute{Kind: SGRForeground, Color: ColorSpec{Kind: ColorPaletteIndex, Index: 1}}},
		SGR{Attr: SGRAttribute{Kind: SGRUnderline, Underline: UnderlineSingle}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSGRTrueColorSemicolon(t *testing.T) {
	got := run(t, []byte("\x1b[38;2;10;20;30m"))
	want := []Action{
		SGR{Attr: SGRAttribute{Kind: SGRForeground, Color: ColorSpec{Kind: ColorTrueColor, RGB: RGB{R: 10, G: 20, B: 30}}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSGRTrueColorColon(t *testing.T) {
	got := run(t, []byte("\x1b[38:2::10:20:30m"))
	want := []Action{
		SGR{Attr: SGRAttribute{Kind: SGRForeground, Color: ColorSpec{Kind: ColorTrueColor, RGB: RGB{R: 10, G: 20, B: 30}}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSGRReset(t *testing.T) {
	got := run(t, []byte("\x1b[m"))
	want := []Action{SGR{Attr: SGRAttribute{Kind: SGRReset}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCursorMove(t *testing.T) {
	got := run(t, []byte("\x1b[5A\x1b[3;10H"))
	want := []Action{
		CursorMove{Kind: CursorUp, N: 5},
		CursorMove{Kind: CursorPosition, Row: 3, Col: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestPrivateModeSetReset(t *testing.T) {
	got := run(t, []byte("\x1b[?25h\x1b[?25l"))
	want := []Action{
		SetMode{Mode: 25, Private: true, Enable: true},
		SetMode{Mode: 25, Private: true, Enable: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSyncUpdateModeSpecialCased(t *testing.T) {
	got := run(t, []byte("\x1b[?2026h\x1b[?2026l"))
	want := []Action{
		SyncUpdate{Begin: true},
		SyncUpdate{Begin: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestOSCSetTitle(t *testing.T) {
	got := run(t, []byte("\x1b]2;my title\x07"))
	want := []Action{SetTitle{WindowTitle: true, Title: "my title"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestOSCHyperlink(t *testing.T) {
	got := run(t, []byte("\x1b]8;id=abc;https://example.com\x07"))
	want := []Action{Hyperlink{ID: "abc", URI: "https://example.com"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestOSCDynamicColorHex(t *testing.T) {
	got := run(t, []byte("\x1b]11;#102030\x07"))
	want := []Action{SetDynamicColor{Slot: DynamicColorBackground, Color: RGB{R: 0x10, G: 0x20, B: 0x30}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestOSCDynamicColorXParse(t *testing.T) {
	got := run(t, []byte("\x1b]11;rgb:1010/2020/3030\x07"))
	want := []Action{SetDynamicColor{Slot: DynamicColorBackground, Color: RGB{R: 0x10, G: 0x20, B: 0x30}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDCSPassthroughRoundTrip(t *testing.T) {
	got := run(t, []byte("\x1bP1$r1 q\x1b\\"))
	if len(got) != 1 {
		t.Fatalf("got %d actions, want 1", len(got))
	}
	dcs, ok := got[0].(DCSPassthrough)
	if !ok {
		t.Fatalf("got %T, want DCSPassthrough", got[0])
	}
	if string(dcs.Payload) != "1 q" {
		t.Fatalf("got payload %q, want %q", dcs.Payload, "1 q")
	}
}

func TestKittyKeyboardPushSetPop(t *testing.T) {
	got := run(t, []byte("\x1b[>1u\x1b[=3;2u\x1b[<1u"))
	want := []Action{
		KittyKeyboard{Op: KeyboardModePush, Modes: KeyboardDisambiguateEscCodes},
		KittyKeyboard{Op: KeyboardModeApply, Modes: KeyboardDisambiguateEscCodes | KeyboardReportEventTypes, Apply: KittyApplyUnion},
		KittyKeyboard{Op: KeyboardModePop, PopN: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCharsetDesignationAndMapping(t *testing.T) {
	sink := &recordingSink{}
	interp := NewInterpreter(sink)
	p := vtparse.NewParser()
	p.Advance([]byte("\x1b(0"), interp)
	p.Advance([]byte("q"), interp)
	want := []Action{
		DesignateCharset{Index: G0, Charset: CharsetDECLineDrawing},
		Print{Rune: '─'},
	}
	if !reflect.DeepEqual(sink.actions, want) {
		t.Fatalf("got %+v, want %+v", sink.actions, want)
	}
}

func TestEraseAndEdit(t *testing.T) {
	got := run(t, []byte("\x1b[2J\x1b[3L"))
	want := []Action{
		Erase{Kind: EraseDisplayAll},
		Edit{Kind: InsertLines, Count: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestUnspecifiedFallback(t *testing.T) {
	got := run(t, []byte("\x1b[5y"))
	if len(got) != 1 {
		t.Fatalf("got %d actions, want 1", len(got))
	}
	if _, ok := got[0].(Unspecified); !ok {
		t.Fatalf("got %T, want Unspecified", got[0])
	}
}
