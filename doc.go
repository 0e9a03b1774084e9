// Package vtsurface turns a raw PTY byte stream into a renderable
// terminal grid. It wires three layers - vtparse (byte-level state
// machine), escape (semantic action decoding), and surface (the grid
// model) - behind one Instance a host application drives explicitly:
// feed bytes in via OnReadable, drain queued replies via OnWritable,
// call Tick periodically, and read back Snapshots and Events.
//
// Instance does not own a PTY, a goroutine, or a render loop; see
// cmd/vtshell for a minimal host that supplies those around it.
package vtsurface
