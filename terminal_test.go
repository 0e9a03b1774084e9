package vtsurface

import (
	"testing"
	"time"
)

func TestOnReadablePrintsIntoSnapshot(t *testing.T) {
	in := Open(Options{Cols: 10, Rows: 3})
	in.OnReadable([]byte("hi"))
	snap := in.Snapshot()
	if snap.Cells[0][0].Rune != 'h' || snap.Cells[0][1].Rune != 'i' {
		t.Fatalf("unexpected snapshot cells: %+v", snap.Cells[0][:2])
	}
}

func TestDeviceStatusReportQueuesReply(t *testing.T) {
	in := Open(Options{Cols: 10, Rows: 3})
	in.OnReadable([]byte("\x1b[6n"))
	if !in.HasPendingOutput() {
		t.Fatalf("expected a queued DSR reply")
	}
	var got []byte
	err := in.OnWritable(func(p []byte) (int, error) {
		got = append(got, p...)
		return len(p), nil
	})
	if err != nil {
		t.Fatalf("OnWritable: %v", err)
	}
	if string(got) != "\x1b[1;1R" {
		t.Fatalf("got reply %q, want %q", got, "\x1b[1;1R")
	}
}

func TestDeviceAttributesQueuesDA1Reply(t *testing.T) {
	in := Open(Options{Cols: 10, Rows: 3})
	in.OnReadable([]byte("\x1b[c"))
	if !in.HasPendingOutput() {
		t.Fatalf("expected a queued DA1 reply")
	}
}

func TestQueueWriteRespectsCapacity(t *testing.T) {
	in := Open(Options{Cols: 10, Rows: 3, WriteQueueCapacity: 4})
	if err := in.QueueWrite([]byte("ab")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := in.QueueWrite([]byte("abc")); err != ErrWriteQueueFull {
		t.Fatalf("got %v, want ErrWriteQueueFull", err)
	}
}

func TestNextEventDrainsBell(t *testing.T) {
	in := Open(Options{Cols: 10, Rows: 3})
	in.OnReadable([]byte("\a"))
	ev, ok := in.NextEvent()
	if !ok || ev.Kind != EventBell {
		t.Fatalf("got (%+v, %v), want a bell event", ev, ok)
	}
	if _, ok := in.NextEvent(); ok {
		t.Fatalf("expected no further events")
	}
}

func TestTickDoesNotPanicWhenIdle(t *testing.T) {
	in := Open(Options{Cols: 10, Rows: 3})
	in.Tick(time.Now())
}

func TestResizeUpdatesSnapshotGeometry(t *testing.T) {
	in := Open(Options{Cols: 10, Rows: 3})
	in.Resize(5, 2)
	snap := in.Snapshot()
	if snap.Cols != 5 || snap.Rows != 2 {
		t.Fatalf("snapshot geometry = %dx%d, want 5x2", snap.Cols, snap.Rows)
	}
}

func TestShutdownRequestedReflectsRequestShutdown(t *testing.T) {
	in := Open(Options{Cols: 10, Rows: 3})
	if in.ShutdownRequested() {
		t.Fatalf("expected false before RequestShutdown")
	}
	in.RequestShutdown()
	if !in.ShutdownRequested() {
		t.Fatalf("expected true after RequestShutdown")
	}
}
