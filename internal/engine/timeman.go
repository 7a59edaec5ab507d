package engine

import (
	"time"

	"chessplay/internal/board"
)

// overheadPerMove is subtracted from the time budget on every move to
// cover process scheduling and I/O latency the clock doesn't see.
const overheadPerMove = 30 * time.Millisecond

// defaultMovesToGo is assumed when the GUI gives no movestogo (sudden
// death): a flat estimate rather than a phase-dependent curve.
const defaultMovesToGo = 50

// SearchLimits holds the time-control parameters from a UCI "go" command.
type SearchLimits struct {
	Time      [2]time.Duration // wtime, btime
	Inc       [2]time.Duration // winc, binc
	MovesToGo int
	MoveTime  time.Duration
	Depth     int
	Nodes     uint64
	Infinite  bool
}

// TimeManager allocates a per-move time budget from SearchLimits:
//
//	allotted = (t + (movestogo-1)*inc - movestogo*overhead) / movestogo
//
// with movestogo defaulting to 50 when the GUI gives none.
type TimeManager struct {
	optimumTime time.Duration
	maximumTime time.Duration
	startTime   time.Time
}

// NewTimeManager returns an unconfigured TimeManager; call Init before
// using it.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init configures the manager for one search, starting its clock now.
func (tm *TimeManager) Init(limits SearchLimits, us board.Color, ply int) {
	tm.startTime = time.Now()

	if limits.MoveTime > 0 {
		tm.optimumTime = limits.MoveTime
		tm.maximumTime = limits.MoveTime
		return
	}

	if limits.Infinite || limits.Time[us] == 0 {
		tm.optimumTime = time.Hour
		tm.maximumTime = time.Hour
		return
	}

	t := limits.Time[us]
	inc := limits.Inc[us]
	mtg := limits.MovesToGo
	if mtg <= 0 {
		mtg = defaultMovesToGo
	}

	allotted := (t + time.Duration(mtg-1)*inc - time.Duration(mtg)*overheadPerMove) / time.Duration(mtg)
	if allotted < 10*time.Millisecond {
		allotted = 10 * time.Millisecond
	}

	tm.optimumTime = allotted
	tm.maximumTime = allotted * 4
	if safety := t * 95 / 100; tm.maximumTime > safety {
		tm.maximumTime = safety
	}
	if tm.maximumTime < tm.optimumTime {
		tm.maximumTime = tm.optimumTime
	}
}

// Elapsed returns the time since Init.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// OptimumTime returns the target time for the current move: iterative
// deepening should stop starting new iterations once this elapses.
func (tm *TimeManager) OptimumTime() time.Duration {
	return tm.optimumTime
}

// MaximumTime returns the hard ceiling: a search already in progress
// must abort once this elapses.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximumTime
}

// ShouldStop reports whether the hard ceiling has been reached.
func (tm *TimeManager) ShouldStop() bool {
	return tm.Elapsed() >= tm.maximumTime
}

// PastOptimum reports whether the soft target has been reached.
func (tm *TimeManager) PastOptimum() bool {
	return tm.Elapsed() >= tm.optimumTime
}
