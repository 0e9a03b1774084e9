package vtparse

import (
	"reflect"
	"testing"
)

// recorder is a minimal Actor that logs every call it receives, used to
// assert on parser behavior without pulling in the escape package.
type recorder struct {
	events []string
	params [][]Param
	runes  []rune
}

func (r *recorder) Print(ch rune) { r.runes = append(r.runes, ch); r.events = append(r.events, "print") }
func (r *recorder) Execute(b byte) {
	r.events = append(r.events, "execute")
}
func (r *recorder) EscDispatch(inter []byte, final byte) {
	r.events = append(r.events, "esc")
}
func (r *recorder) CSIDispatch(params []Param, inter []byte, final byte) {
	r.events = append(r.events, "csi")
	r.params = append(r.params, params)
}
func (r *recorder) Hook(params []Param, inter []byte, final byte) { r.events = append(r.events, "hook") }
func (r *recorder) Put(b byte)                                    { r.events = append(r.events, "put") }
func (r *recorder) Unhook()                                       { r.events = append(r.events, "unhook") }
func (r *recorder) OscDispatch(fields [][]byte)                   { r.events = append(r.events, "osc") }

func TestParserPrintASCII(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	p.Advance([]byte("hi"), rec)
	if !reflect.DeepEqual(rec.runes, []rune{'h', 'i'}) {
		t.Fatalf("got runes %v", rec.runes)
	}
}

func TestParserPrintUTF8(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	// U+00E9 (e acute), U+4E2D (CJK "middle")
	p.Advance([]byte("\xc3\xa9\xe4\xb8\xad"), rec)
	want := []rune{0x00e9, 0x4e2d}
	if !reflect.DeepEqual(rec.runes, want) {
		t.Fatalf("got runes %x, want %x", rec.runes, want)
	}
}

func TestParserExecuteC0(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	p.Advance([]byte{0x07, 0x08, 0x0a}, rec)
	if len(rec.events) != 3 {
		t.Fatalf("got %d events, want 3", len(rec.events))
	}
	for _, e := range rec.events {
		if e != "execute" {
			t.Fatalf("got event %q, want execute", e)
		}
	}
}

func TestParserCSISimple(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	p.Advance([]byte("\x1b[31m"), rec)
	if len(rec.events) != 1 || rec.events[0] != "csi" {
		t.Fatalf("got events %v", rec.events)
	}
	want := []Param{{Value: 31}}
	if !reflect.DeepEqual(rec.params[0], want) {
		t.Fatalf("got params %+v, want %+v", rec.params[0], want)
	}
}

func TestParserCSIMultipleParams(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	p.Advance([]byte("\x1b[1;31;42m"), rec)
	want := []Param{{Value: 1}, {Value: 31}, {Value: 42}}
	if !reflect.DeepEqual(rec.params[0], want) {
		t.Fatalf("got params %+v, want %+v", rec.params[0], want)
	}
}

func TestParserCSINoParams(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	p.Advance([]byte("\x1b[m"), rec)
	if rec.params[0] != nil {
		t.Fatalf("got params %+v, want nil (SGR reset)", rec.params[0])
	}
}

func TestParserCSIPrivateMarker(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	p.Advance([]byte("\x1b[?25h"), rec)
	want := []Param{{Marker: '?'}, {Value: 25}}
	if !reflect.DeepEqual(rec.params[0], want) {
		t.Fatalf("got params %+v, want %+v", rec.params[0], want)
	}
}

func TestParserCSISubParams(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	// SGR extended color: ESC [ 38 : 2 : 10 : 20 : 30 m
	p.Advance([]byte("\x1b[38:2:10:20:30m"), rec)
	got := rec.params[0]
	if len(got) != 1 {
		t.Fatalf("got %d params, want 1 (colon-delimited subs stay in one slot)", len(got))
	}
	if got[0].Value != 38 {
		t.Fatalf("got param %+v, want Value=38", got[0])
	}
	wantSubs := []int64{2, 10, 20, 30}
	if !reflect.DeepEqual(got[0].Subs, wantSubs) {
		t.Fatalf("got subs %v, want %v", got[0].Subs, wantSubs)
	}
}

func TestParserDCSHookPutUnhook(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	p.Advance([]byte("\x1bP1$q\"p\x1b\\"), rec)
	wantPrefix := []string{"hook"}
	if len(rec.events) < 1 || rec.events[0] != wantPrefix[0] {
		t.Fatalf("got events %v, want to start with hook", rec.events)
	}
	found := map[string]bool{}
	for _, e := range rec.events {
		found[e] = true
	}
	for _, want := range []string{"hook", "put", "unhook"} {
		if !found[want] {
			t.Fatalf("missing %q in events %v", want, rec.events)
		}
	}
}

func TestParserOSCDispatch(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	p.Advance([]byte("\x1b]0;title\x07"), rec)
	if len(rec.events) != 1 || rec.events[0] != "osc" {
		t.Fatalf("got events %v, want [osc]", rec.events)
	}
}

func TestParserOSCDispatchST(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	p.Advance([]byte("\x1b]0;title\x1b\\"), rec)
	if len(rec.events) == 0 || rec.events[0] != "osc" {
		t.Fatalf("got events %v, want osc first", rec.events)
	}
}

func TestParserCSIIgnoreOnColonInEntry(t *testing.T) {
	p := NewParser()
	rec := &recorder{}
	// A colon straight after CSI entry (not within params) routes to
	// csi-ignore per ECMA-48; the final byte produces no dispatch.
	p.Advance([]byte("\x1b[:m"), rec)
	if len(rec.events) != 0 {
		t.Fatalf("got events %v, want none (ignored sequence)", rec.events)
	}
}

func TestParserTotality(t *testing.T) {
	// Every byte value must be consumed without panicking, regardless
	// of state. This is the parser's core totality property.
	p := NewParser()
	rec := &recorder{}
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	for i := 0; i < 50; i++ {
		p.Advance(all, rec)
	}
}

func TestParamIsMarker(t *testing.T) {
	p := Param{Marker: '?'}
	if !p.IsMarker() {
		t.Fatalf("expected marker param to report IsMarker() true")
	}
	v := Param{Value: 5}
	if v.IsMarker() {
		t.Fatalf("expected value param to report IsMarker() false")
	}
}
