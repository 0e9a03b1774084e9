package main

import (
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// hostPTY mirrors the teacher's PTY interface shape (pty.go in the
// pack), reimplemented over github.com/creack/pty instead of the
// teacher's cgo pty_unix.go/pty_windows.go pair, per SPEC_FULL.md's
// domain-stack wiring.
type hostPTY struct {
	f *os.File
}

func (p *hostPTY) Start(cmd *exec.Cmd) error {
	f, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	p.f = f
	return nil
}

func (p *hostPTY) Read(b []byte) (int, error)  { return p.f.Read(b) }
func (p *hostPTY) Write(b []byte) (int, error) { return p.f.Write(b) }

func (p *hostPTY) Resize(cols, rows int) error {
	return pty.Setsize(p.f, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

func (p *hostPTY) Close() error { return p.f.Close() }
