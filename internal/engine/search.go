package engine

import (
	"sync/atomic"
	"time"

	"chessplay/internal/board"
)

// Infinity is a score magnitude no real evaluation or mate score can
// reach, used as the initial alpha-beta window.
const Infinity = 32001

// MaxPly bounds search depth and every ply-indexed array (PV table,
// killers): no line or recursion is ever allowed to exceed it.
const MaxPly = 128

// nullMoveMinDepth is the shallowest depth at which null-move pruning
// is attempted; below it the reduced search would be too shallow to
// trust.
const nullMoveMinDepth = 3

// futilityMaxDepth bounds futility pruning to depths shallow enough
// that a large static-eval deficit is unlikely to be recovered.
const futilityMaxDepth = 6

var futilityMargin = [futilityMaxDepth + 1]int{0, 150, 300, 450, 600, 750, 900}

// PVTable stores, for each ply, the principal variation from that ply
// to the end of the line found so far: one ply shallower at every
// level, copied up as search unwinds.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

func (pv *PVTable) update(ply int, m board.Move) {
	pv.moves[ply][ply] = m
	for j := ply + 1; j < pv.length[ply+1]; j++ {
		pv.moves[ply][j] = pv.moves[ply+1][j]
	}
	pv.length[ply] = pv.length[ply+1]
}

// SearchInfo is one "info" line's worth of progress, reported after
// every completed iterative-deepening iteration.
type SearchInfo struct {
	Depth    int
	Score    int
	Mate     bool
	Nodes    uint64
	Time     time.Duration
	HashFull int
	PV       []board.Move
}

// Engine drives iterative deepening with principal-variation search
// over one position at a time. It owns the transposition table, which
// persists across the searches of a game until Clear resets it, and
// the history table and killer-move slots, which are reset at the
// start of every search. It is the sole entry point a UCI handler
// needs: SearchWithLimits, Stop, Clear, Perft.
type Engine struct {
	tt      *TranspositionTable
	history HistoryTable
	killers [MaxPly][2]board.Move
	tm      *TimeManager

	// OnInfo, if set, is called after every completed iteration.
	OnInfo func(SearchInfo)

	nodes    uint64
	stopFlag atomic.Bool
	pos      *board.Position
	pv       PVTable
}

// NewEngine allocates a transposition table of approximately hashMB
// megabytes.
func NewEngine(hashMB int) *Engine {
	if hashMB <= 0 {
		hashMB = 16
	}
	return &Engine{tt: NewTranspositionTable(hashMB), tm: NewTimeManager()}
}

// Clear resets the transposition table, history, and killers. Call
// between games, not between moves of the same game.
func (e *Engine) Clear() {
	e.tt.Clear()
	e.history.Clear()
	e.killers = [MaxPly][2]board.Move{}
}

// Stop requests the running search abort at its next check.
func (e *Engine) Stop() {
	e.stopFlag.Store(true)
}

// Perft delegates to board.Perft.
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	return board.Perft(pos, depth)
}

// HashFull reports the transposition table's occupancy in permille.
func (e *Engine) HashFull() int {
	return e.tt.HashFull()
}

// SearchWithLimits runs iterative deepening on pos until limits (or a
// Stop call) cuts it off, and returns the best move found. The caller
// must not touch pos concurrently: the search makes and unmakes moves
// on it directly and leaves it restored to its original state when
// it returns.
func (e *Engine) SearchWithLimits(pos *board.Position, limits SearchLimits) board.Move {
	e.stopFlag.Store(false)
	e.nodes = 0
	e.history.Clear()
	e.killers = [MaxPly][2]board.Move{}
	e.pos = pos

	e.tm.Init(limits, pos.SideToMove, pos.FullmoveNumber*2)

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly-1 {
		maxDepth = MaxPly - 1
	}

	fixedDepth := limits.Depth > 0
	var bestMove board.Move
	start := time.Now()

	for depth := 1; depth <= maxDepth; depth++ {
		score := e.negamax(depth, 0, -Infinity, Infinity)

		if e.stopFlag.Load() && depth > 1 {
			break
		}

		if e.pv.length[0] > 0 {
			bestMove = e.pv.moves[0][0]
		}

		if e.OnInfo != nil {
			line := make([]board.Move, e.pv.length[0])
			copy(line, e.pv.moves[0][:e.pv.length[0]])
			info := SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    e.nodes,
				Time:     time.Since(start),
				HashFull: e.tt.HashFull(),
				PV:       line,
			}
			if score > MateScore-MaxPly || score < -MateScore+MaxPly {
				info.Mate = true
			}
			e.OnInfo(info)
		}

		if limits.Nodes > 0 && e.nodes >= limits.Nodes {
			break
		}
		if !fixedDepth && !limits.Infinite && e.tm.PastOptimum() {
			break
		}
		if score > MateScore-MaxPly {
			break
		}
	}

	return bestMove
}

// negamax is the principal-variation alpha-beta search. ply 0 is the
// search root.
func (e *Engine) negamax(depth, ply int, alpha, beta int) int {
	e.pv.length[ply] = ply

	if e.nodes&2047 == 0 && (e.stopFlag.Load() || e.tm.ShouldStop()) {
		e.stopFlag.Store(true)
		return 0
	}
	e.nodes++

	pvNode := beta-alpha > 1

	if ply > 0 {
		if e.pos.IsDrawByRule() {
			return DrawScore
		}
		// Inside a PV node, a position recurring even once since the
		// last irreversible move is treated as a draw: a deeper threefold is
		// already implied by the time the line is actually reached,
		// and PV nodes are rare enough that the cheaper check costs
		// little.
		if pvNode && e.pos.IsRepetition(2) {
			return DrawScore
		}
	}
	if ply >= MaxPly-1 {
		return Evaluate(e.pos)
	}

	inCheck := e.pos.InCheck()

	var ttMove board.Move
	if ttEntry, found := e.tt.Probe(e.pos.Key); found {
		ttMove = ttEntry.BestMove
		if !pvNode && ply > 0 && int(ttEntry.Depth) >= depth {
			score := AdjustScoreFromTT(int(ttEntry.Score), ply)
			switch ttEntry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score >= beta {
					return score
				}
			case TTUpperBound:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return e.quiescence(ply, alpha, beta)
	}

	staticEval := Evaluate(e.pos)

	// Null-move pruning: pass the move entirely and search at reduced
	// depth. If the opponent still can't escape beta after a free
	// move, the position is not worth searching fully. Skipped in
	// check (no legal null move) and with only pawns left, where
	// zugzwang makes the heuristic unreliable.
	if !pvNode && !inCheck && depth >= nullMoveMinDepth && staticEval >= beta && e.pos.HasNonPawnMaterial() {
		reduction := 3 + depth/6
		e.pos.MakeNullMove()
		score := -e.negamax(depth-1-reduction, ply+1, -beta, -beta+1)
		e.pos.UnmakeNullMove()
		if e.stopFlag.Load() {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	// Futility pruning: at shallow depth, a quiet move can't plausibly
	// recover a large static-eval deficit, so it is skipped outright
	// rather than searched.
	futile := !pvNode && !inCheck && depth <= futilityMaxDepth &&
		staticEval+futilityMargin[depth] <= alpha

	picker := NewPicker(e.pos, ttMove, e.killers[ply], &e.history, false)

	origAlpha := alpha
	bestScore := -Infinity
	bestMove := board.NoMove
	moveCount := 0

	for {
		move, ok := picker.Next()
		if !ok {
			break
		}

		wasCapture := e.pos.IsCapture(move)
		isPromotion := move.IsPromotion()
		moveCount++

		if futile && moveCount > 1 && !wasCapture && !isPromotion {
			continue
		}

		e.pos.MakeMove(move)
		givesCheck := e.pos.InCheck()

		var score int
		if moveCount == 1 {
			score = -e.negamax(depth-1, ply+1, -beta, -alpha)
		} else {
			reduction := 0
			if depth >= 3 && moveCount > 4 && !wasCapture && !isPromotion && !inCheck && !givesCheck {
				reduction = 1
				if moveCount > 10 {
					reduction = 2
				}
			}
			score = -e.negamax(depth-1-reduction, ply+1, -alpha-1, -alpha)
			if score > alpha && (reduction > 0 || score < beta) {
				score = -e.negamax(depth-1, ply+1, -beta, -alpha)
			}
		}
		e.pos.UnmakeMove(move)

		if e.stopFlag.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
			if score > alpha {
				alpha = score
				e.pv.update(ply, move)
			}
		}

		if alpha >= beta {
			if !wasCapture {
				if e.killers[ply][0] != move {
					e.killers[ply][1] = e.killers[ply][0]
					e.killers[ply][0] = move
				}
				e.history.Update(e.pos.SideToMove, move, depth)
			}
			break
		}
	}

	if moveCount == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return DrawScore
	}

	flag := TTExact
	if bestScore >= beta {
		flag = TTLowerBound
	} else if bestScore <= origAlpha {
		flag = TTUpperBound
	}
	e.tt.Store(e.pos.Key, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)
	return bestScore
}

// quiescence extends search through captures only, so a position is
// never evaluated in the middle of a tactical exchange.
func (e *Engine) quiescence(ply, alpha, beta int) int {
	if e.nodes&2047 == 0 && (e.stopFlag.Load() || e.tm.ShouldStop()) {
		e.stopFlag.Store(true)
		return 0
	}
	e.nodes++

	if ply >= MaxPly-1 {
		return Evaluate(e.pos)
	}

	standPat := Evaluate(e.pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	inCheck := e.pos.InCheck()
	bigDelta := board.RoleValue[board.Queen]
	deltaPruneOK := !inCheck && standPat+bigDelta < alpha

	picker := NewPicker(e.pos, board.NoMove, [2]board.Move{}, nil, true)

	for {
		move, ok := picker.Next()
		if !ok {
			break
		}

		if deltaPruneOK {
			gain := board.RoleValue[board.Pawn]
			if captured := e.pos.PieceAt(move.To()); captured != board.NoPiece {
				gain = board.RoleValue[captured.Role()]
			}
			if move.IsPromotion() {
				gain += board.RoleValue[move.Promotion()] - board.RoleValue[board.Pawn]
			}
			if standPat+gain+100 < alpha {
				continue
			}
		}

		e.pos.MakeMove(move)
		score := -e.quiescence(ply+1, -beta, -alpha)
		e.pos.UnmakeMove(move)

		if e.stopFlag.Load() {
			return 0
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
