package engine

import (
	"testing"
	"time"

	"chessplay/internal/board"
)

// TestSearchBasic checks that the engine returns a legal move from the
// starting position within a small depth budget, mirroring spec.md §8
// scenario 1.
func TestSearchBasic(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)

	limits := SearchLimits{Depth: 1}
	move := eng.SearchWithLimits(pos, limits)

	if move == board.NoMove {
		t.Fatal("search returned NoMove for starting position")
	}

	legal := board.NewPosition().GenerateLegalMoves()
	if !legal.Contains(move) {
		t.Errorf("search returned %v, not among the 20 legal opening moves", move)
	}
}

// TestSearchFindsMateInOne is spec.md §8 scenario 2's mirror: a
// position one move from checkmate must be found and scored as a mate
// once search reaches it, and the position it delivers mate from
// reports zero legal moves for the mated side.
func TestSearchFindsMateInOne(t *testing.T) {
	// Textbook back-rank mate: black's own f7/g7/h7 pawns block every
	// escape square, so Re1-e8 delivering check along the open rank
	// is mate in one.
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	eng := NewEngine(16)
	move := eng.SearchWithLimits(pos, SearchLimits{Depth: 3})

	pos.MakeMove(move)
	if !pos.IsCheckmate() {
		t.Fatalf("expected %v to deliver checkmate, position:\n%s", move, pos.String())
	}
}

// TestSearchAlreadyCheckmated is spec.md §8 scenario 2 literally:
// searching a position where the side to move is already checkmated
// must report no best move.
func TestSearchAlreadyCheckmated(t *testing.T) {
	pos, err := board.ParseFEN("r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.IsCheckmate() {
		t.Fatal("test position should already be checkmate")
	}

	eng := NewEngine(16)
	move := eng.SearchWithLimits(pos, SearchLimits{Depth: 2})
	if move != board.NoMove {
		t.Errorf("expected NoMove from a checkmated position, got %v", move)
	}
}

// TestSearchRepetitionIsDraw checks that a position reached by the
// threefold sequence from spec.md §8 scenario 3 is already a draw by
// rule, and that the engine can still search it without error (the
// repeated position itself, one ply further, is what negamax's
// ply>0 draw short-circuit actually returns DrawScore for).
func TestSearchRepetitionIsDraw(t *testing.T) {
	pos := board.NewPosition()
	moves := []string{"b1c3", "b8c6", "c3b1", "c6b8", "b1c3", "b8c6", "c3b1", "c6b8"}
	for _, s := range moves {
		m, err := board.ParseMove(s, pos)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", s, err)
		}
		pos.MakeMove(m)
	}

	if !pos.IsDrawByRule() {
		t.Fatal("position should already be a draw by repetition")
	}

	eng := NewEngine(16)
	move := eng.SearchWithLimits(pos, SearchLimits{Depth: 2})
	if move == board.NoMove {
		t.Error("expected a legal move even though the position is drawn by repetition")
	}
}

// TestSearchRespectsDepthLimit checks that SearchWithLimits with a
// fixed depth does not run iterative deepening past it.
func TestSearchRespectsDepthLimit(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)

	var maxDepthSeen int
	eng.OnInfo = func(info SearchInfo) {
		if info.Depth > maxDepthSeen {
			maxDepthSeen = info.Depth
		}
	}

	eng.SearchWithLimits(pos, SearchLimits{Depth: 3})

	if maxDepthSeen > 3 {
		t.Errorf("search exceeded requested depth: saw depth %d", maxDepthSeen)
	}
	if maxDepthSeen == 0 {
		t.Error("expected at least one completed iteration")
	}
}

// TestSearchRespectsMoveTime checks the search returns close to its
// allotted move time rather than running indefinitely.
func TestSearchRespectsMoveTime(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)

	start := time.Now()
	eng.SearchWithLimits(pos, SearchLimits{MoveTime: 100 * time.Millisecond})
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Errorf("search with 100ms movetime took %v", elapsed)
	}
}

// TestStopAbortsSearch checks that Stop causes a long search to
// return promptly.
func TestStopAbortsSearch(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)

	done := make(chan struct{})
	go func() {
		eng.SearchWithLimits(pos, SearchLimits{Infinite: true})
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	eng.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("search did not stop within 2s of Stop()")
	}
}
