package engine

import (
	"testing"

	"chessplay/internal/board"
)

func TestPickerReturnsTTMoveFirst(t *testing.T) {
	pos := board.NewPosition()
	legal := pos.GenerateLegalMoves()

	var ttMove board.Move
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if !pos.IsCapture(m) && !m.IsPromotion() {
			ttMove = m
			break
		}
	}
	if ttMove == board.NoMove {
		t.Fatal("expected at least one quiet legal move in the starting position")
	}

	var hist HistoryTable
	picker := NewPicker(pos, ttMove, [2]board.Move{}, &hist, false)
	first, ok := picker.Next()
	if !ok || first != ttMove {
		t.Errorf("expected the TT move %v first, got %v", ttMove, first)
	}

	seen := map[board.Move]bool{first: true}
	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if seen[m] {
			t.Errorf("picker yielded %v more than once", m)
		}
		seen[m] = true
	}
	if len(seen) != legal.Len() {
		t.Errorf("picker yielded %d moves, want %d", len(seen), legal.Len())
	}
}

func TestPickerOrdersCapturesByMVVLVA(t *testing.T) {
	// White pawn on e5 can take either a knight on d6 or a bishop on f6;
	// MVV-LVA should try the higher-value victim first regardless of
	// generation order.
	pos, err := board.ParseFEN("4k3/8/3n1b2/4P3/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	var hist HistoryTable
	picker := NewPicker(pos, board.NoMove, [2]board.Move{}, &hist, true)

	var order []board.Move
	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		order = append(order, m)
	}

	if len(order) < 2 {
		t.Fatalf("expected at least two captures, got %d", len(order))
	}

	knightVictim := board.RoleValue[board.Knight]
	bishopVictim := board.RoleValue[board.Bishop]
	firstVictim := board.RoleValue[pos.PieceAt(order[0].To()).Role()]
	if knightVictim == bishopVictim {
		t.Skip("victim values are equal in this build; ordering is not distinguishable")
	}
	maxVictim := knightVictim
	if bishopVictim > maxVictim {
		maxVictim = bishopVictim
	}
	if firstVictim != maxVictim {
		t.Errorf("expected the first capture to take the most valuable victim (%d), got victim value %d", maxVictim, firstVictim)
	}
}

func TestPickerOnlyNoisySkipsQuiets(t *testing.T) {
	pos := board.NewPosition()
	var hist HistoryTable
	picker := NewPicker(pos, board.NoMove, [2]board.Move{}, &hist, true)

	// The starting position has no captures or promotions at all, so a
	// quiescence-mode picker should yield nothing.
	if m, ok := picker.Next(); ok {
		t.Errorf("expected no moves from a noisy-only picker on a quiet position, got %v", m)
	}
}

func TestPickerKillerBeforeHistory(t *testing.T) {
	pos := board.NewPosition()
	legal := pos.GenerateLegalMoves()

	var quiets []board.Move
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if !pos.IsCapture(m) && !m.IsPromotion() {
			quiets = append(quiets, m)
		}
	}
	if len(quiets) < 2 {
		t.Fatal("expected at least two quiet moves from the starting position")
	}
	killer := quiets[len(quiets)-1]

	var hist HistoryTable
	hist.Update(pos.SideToMove, quiets[0], 10)

	picker := NewPicker(pos, board.NoMove, [2]board.Move{killer, board.NoMove}, &hist, false)
	first, ok := picker.Next()
	if !ok || first != killer {
		t.Errorf("expected the killer move %v before any history-ordered quiet, got %v", killer, first)
	}
}

func TestHistoryTableHalvesOnOverflow(t *testing.T) {
	var hist HistoryTable
	m := board.NewMove(board.E2, board.E4)

	hist.scores[board.White][m.From()][m.To()] = (1 << 20) - 1
	hist.Update(board.White, m, 2) // bonus = 4, pushes it over 1<<20

	if hist.scores[board.White][m.From()][m.To()] >= 1<<20 {
		t.Errorf("expected an overflow to halve all scores, got %d", hist.scores[board.White][m.From()][m.To()])
	}
}
