package surface

import "time"

// syncPhase is the synchronized-update state machine spec.md's 4.3
// names: {Idle, Batching}. A watchdog deadline stands in for the third
// "Timed-out" state, which is really just Batching past its deadline.
type syncPhase int

const (
	syncIdle syncPhase = iota
	syncBatching
)

// defaultSyncWatchdog is the forced-flush timeout spec.md's
// Synchronized-update buffer section documents as "≈150 ms".
const defaultSyncWatchdog = 150 * time.Millisecond

const maxSyncDepth = 32

// syncState tracks the begin/end nesting of mode-2026 batches.
// Mutations are always applied straight to the live grid (the host
// loop is the sole reader of Snapshot and only calls it between
// on_readable chunks, so there is no concurrent partial read to guard
// against); what syncState actually withholds is snapshot refresh,
// matching spec.md's "only one snapshot is emitted per batch".
type syncState struct {
	phase    syncPhase
	depth    int
	deadline time.Time
	watchdog time.Duration
}

func newSyncState() *syncState {
	return &syncState{watchdog: defaultSyncWatchdog}
}

func (s *syncState) begin(now time.Time) {
	if s.depth == 0 {
		s.phase = syncBatching
		s.deadline = now.Add(s.watchdog)
	}
	if s.depth < maxSyncDepth {
		s.depth++
	}
}

// end returns true if the batch fully closed (depth reached 0), which
// is the signal that Snapshot may build a fresh view again.
func (s *syncState) end() bool {
	if s.depth == 0 {
		return false
	}
	s.depth--
	if s.depth == 0 {
		s.phase = syncIdle
		return true
	}
	return false
}

// checkWatchdog forces the batch closed if the deadline has passed,
// returning true if it did (the caller should log the forced flush).
func (s *syncState) checkWatchdog(now time.Time) bool {
	if s.phase != syncBatching {
		return false
	}
	if now.Before(s.deadline) {
		return false
	}
	s.phase = syncIdle
	s.depth = 0
	return true
}

func (s *syncState) active() bool { return s.phase == syncBatching }
