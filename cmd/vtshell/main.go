// Command vtshell is a minimal full-screen host for vtsurface: it
// spawns the user's shell behind a PTY, feeds its output through a
// vtsurface.Instance, and mirrors the result to the real terminal.
// It exists as a demonstration harness, not a production terminal
// emulator; see DESIGN.md for what was deliberately left out of it.
package main

import (
	"log"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/phroun/vtsurface"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	cols, rows := 80, 24
	if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
		cols, rows = w, h
	}

	logFile, err := os.OpenFile(os.TempDir()+"/vtshell.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logFile = nil
	}
	var logger *log.Logger
	if logFile != nil {
		logger = log.New(logFile, "", log.LstdFlags)
		defer logFile.Close()
	}

	inst := vtsurface.Open(vtsurface.Options{
		Cols:   cols,
		Rows:   rows,
		Logger: logger,
	})

	child := &hostPTY{}
	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	if err := child.Start(cmd); err != nil {
		return err
	}
	defer child.Close()
	child.Resize(cols, rows)

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, unix.SIGWINCH)
	defer signal.Stop(winch)

	renderer := newFrameRenderer()

	fromChild := make(chan []byte, 64)
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := child.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				fromChild <- chunk
			}
			if err != nil {
				close(fromChild)
				return
			}
		}
	}()

	fromHost := make(chan []byte, 64)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				fromHost <- chunk
			}
			if err != nil {
				close(fromHost)
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case chunk, ok := <-fromChild:
			if !ok {
				return nil
			}
			inst.OnReadable(chunk)
			drainReplies(inst, child)
			repaint(inst, renderer)
			drainHostEvents(inst, logger)

		case chunk, ok := <-fromHost:
			if !ok {
				return nil
			}
			if _, err := child.Write(chunk); err != nil {
				return err
			}

		case <-winch:
			if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
				inst.Resize(w, h)
				child.Resize(w, h)
				repaint(inst, renderer)
			}

		case now := <-ticker.C:
			inst.Tick(now)
		}
	}
}

func drainReplies(inst *vtsurface.Instance, child *hostPTY) {
	if !inst.HasPendingOutput() {
		return
	}
	inst.OnWritable(func(p []byte) (int, error) {
		return child.Write(p)
	})
}

func repaint(inst *vtsurface.Instance, r *frameRenderer) {
	snap := inst.Snapshot()
	if out := r.render(snap); len(out) > 0 {
		os.Stdout.Write(out)
	}
}

func drainHostEvents(inst *vtsurface.Instance, logger *log.Logger) {
	for {
		ev, ok := inst.NextEvent()
		if !ok {
			return
		}
		switch ev.Kind {
		case vtsurface.EventBell:
			os.Stdout.Write([]byte("\a"))
		case vtsurface.EventTitleChanged:
			os.Stdout.Write([]byte("\x1b]0;" + ev.Title + "\x07"))
		default:
			if logger != nil {
				logger.Printf("vtshell: event %+v", ev)
			}
		}
	}
}
