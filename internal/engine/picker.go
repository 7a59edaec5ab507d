package engine

import "chessplay/internal/board"

// mvvLva ranks a capture by victim value first, attacker value second
// (most valuable victim, least valuable attacker), so a pawn taking a
// queen is tried long before a queen taking a pawn.
var mvvLva = [6][6]int32{}

func init() {
	for victim := board.Pawn; victim <= board.King; victim++ {
		for attacker := board.Pawn; attacker <= board.King; attacker++ {
			mvvLva[victim][attacker] = int32(board.RoleValue[victim])*10 - int32(board.RoleValue[attacker])
		}
	}
}

// HistoryTable scores quiet moves by how often they have caused a
// beta cutoff in this search, indexed by the moving side and the
// move's from/to squares.
type HistoryTable struct {
	scores [2][64][64]int32
}

// Update rewards a quiet move that caused a cutoff at the given depth.
func (h *HistoryTable) Update(side board.Color, m board.Move, depth int) {
	bonus := int32(depth * depth)
	h.scores[side][m.From()][m.To()] += bonus
	if h.scores[side][m.From()][m.To()] > 1<<20 {
		for c := range h.scores {
			for f := range h.scores[c] {
				for t := range h.scores[c][f] {
					h.scores[c][f][t] /= 2
				}
			}
		}
	}
}

// Clear resets all history scores, called at the start of a new search.
func (h *HistoryTable) Clear() {
	*h = HistoryTable{}
}

// pickerStage names a phase of staged move selection.
type pickerStage uint8

const (
	stageTT pickerStage = iota
	stageGenNoisy
	stageNoisy
	stageGenQuiet
	stageKiller
	stageQuiet
	stageDone
)

// Picker yields a position's legal moves in the order search wants to
// try them, without ever sorting the full move list: the
// transposition-table move first, then captures/promotions ordered by
// MVV-LVA, then the two killer quiets for this ply, then the
// remaining quiets ordered by history score. Quiescence search stops
// the iteration after the noisy stage by constructing with
// onlyNoisy=true, so quiet moves are never even generated.
type Picker struct {
	pos       *board.Position
	history   *HistoryTable
	ttMove    board.Move
	killers   [2]board.Move
	onlyNoisy bool

	stage pickerStage

	noisy       *board.MoveList
	noisyScores []int32
	noisyIdx    int

	quiet       *board.MoveList
	quietScores []int32
	quietIdx    int
	killerIdx   int
}

// NewPicker prepares a picker for pos. history may be nil and killers
// may hold NoMove entries (quiescence passes a nil history and no
// killers).
func NewPicker(pos *board.Position, ttMove board.Move, killers [2]board.Move, history *HistoryTable, onlyNoisy bool) *Picker {
	return &Picker{pos: pos, ttMove: ttMove, killers: killers, history: history, onlyNoisy: onlyNoisy}
}

// Next returns the next move to try, or ok=false when exhausted.
func (pk *Picker) Next() (board.Move, bool) {
	for {
		switch pk.stage {
		case stageTT:
			pk.stage = stageGenNoisy
			if pk.ttMove != board.NoMove {
				return pk.ttMove, true
			}

		case stageGenNoisy:
			pk.noisy = pk.pos.GenerateCaptures()
			pk.noisyScores = pk.scoreNoisy()
			pk.noisyIdx = 0
			pk.stage = stageNoisy

		case stageNoisy:
			if pk.noisyIdx < pk.noisy.Len() {
				selectBest(pk.noisy, pk.noisyScores, pk.noisyIdx)
				m := pk.noisy.Get(pk.noisyIdx)
				pk.noisyIdx++
				if m == pk.ttMove {
					continue
				}
				return m, true
			}
			if pk.onlyNoisy {
				pk.stage = stageDone
				continue
			}
			pk.stage = stageGenQuiet

		case stageGenQuiet:
			all := pk.pos.GenerateLegalMoves()
			pk.quiet = &board.MoveList{}
			for i := 0; i < all.Len(); i++ {
				m := all.Get(i)
				if !pk.pos.IsCapture(m) && !m.IsPromotion() {
					pk.quiet.Add(m)
				}
			}
			pk.quietScores = pk.scoreQuiet()
			pk.quietIdx = 0
			pk.killerIdx = 0
			pk.stage = stageKiller

		case stageKiller:
			found := false
			for pk.killerIdx < len(pk.killers) {
				k := pk.killers[pk.killerIdx]
				pk.killerIdx++
				if k == board.NoMove || k == pk.ttMove {
					continue
				}
				if pk.quiet.Contains(k) {
					found = true
					return k, true
				}
			}
			if !found {
				pk.stage = stageQuiet
			}

		case stageQuiet:
			for pk.quietIdx < pk.quiet.Len() {
				selectBest(pk.quiet, pk.quietScores, pk.quietIdx)
				m := pk.quiet.Get(pk.quietIdx)
				pk.quietIdx++
				if m == pk.ttMove || m == pk.killers[0] || m == pk.killers[1] {
					continue
				}
				return m, true
			}
			pk.stage = stageDone

		case stageDone:
			return board.NoMove, false
		}
	}
}

func (pk *Picker) scoreNoisy() []int32 {
	scores := make([]int32, pk.noisy.Len())
	for i := 0; i < pk.noisy.Len(); i++ {
		m := pk.noisy.Get(i)
		attacker := pk.pos.PieceAt(m.From()).Role()
		victim := pk.pos.PieceAt(m.To()).Role()
		if victim == board.NoRole {
			victim = board.Pawn // en passant: victim is always a pawn
		}
		score := mvvLva[victim][attacker]
		if m.IsPromotion() {
			score += int32(board.RoleValue[m.Promotion()])
		}
		scores[i] = score
	}
	return scores
}

func (pk *Picker) scoreQuiet() []int32 {
	scores := make([]int32, pk.quiet.Len())
	if pk.history == nil {
		return scores
	}
	us := pk.pos.SideToMove
	for i := 0; i < pk.quiet.Len(); i++ {
		m := pk.quiet.Get(i)
		scores[i] = pk.history.scores[us][m.From()][m.To()]
	}
	return scores
}

// selectBest moves the highest-scoring move at or after idx into idx,
// selection-sort style: cheap for the common case where search stops
// after the first few moves on a cutoff.
func selectBest(ml *board.MoveList, scores []int32, idx int) {
	best := idx
	for i := idx + 1; i < ml.Len(); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	if best != idx {
		ml.Swap(idx, best)
		scores[idx], scores[best] = scores[best], scores[idx]
	}
}
