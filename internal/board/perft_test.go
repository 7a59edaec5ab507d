package board

import "testing"

// TestPerftStartingPosition reproduces the standard depth 1-5 perft
// counts from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
	}

	for _, tc := range tests {
		pos := NewPosition()
		got := Perft(pos, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(startpos, %d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftKiwipete exercises castling, promotions, and en passant
// together in one dense middlegame position.
func TestPerftKiwipete(t *testing.T) {
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		got := Perft(pos, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(kiwipete, %d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftPosition3 is the en-passant-heavy endgame FEN from spec's
// perft table.
func TestPerftPosition3(t *testing.T) {
	const fen = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -"

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		got := Perft(pos, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(position3, %d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftPosition4 exercises queenside promotions and an
// asymmetric castling-rights position.
func TestPerftPosition4(t *testing.T) {
	const fen = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq -"

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 6},
		{2, 264},
		{3, 9467},
	}

	for _, tc := range tests {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		got := Perft(pos, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(position4, %d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftPosition6 is a complex, roughly-balanced middlegame with no
// castling or en-passant shortcuts to lean on.
func TestPerftPosition6(t *testing.T) {
	const fen = "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - -"

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 46},
		{2, 2079},
		{3, 89890},
	}

	for _, tc := range tests {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		got := Perft(pos, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(position6, %d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftEnPassantPin is the horizontal-discovered-check en-passant
// corner case: the capture would vacate both d4 and e4 on the same
// rank as a rook a king shares the rank with.
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.Type(Pawn, pos.EPSquare) == EnPassant {
			t.Errorf("en passant move %v should be illegal (horizontal pin)", m)
		}
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 6},
		{2, 94},
	}
	for _, tc := range tests {
		got := Perft(pos, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(en-passant-pin, %d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestMaskedPerft checks the masked-perft property from spec.md §8:
// partitioning destinations by occupancy and its complement and
// summing the two perfts must equal the unrestricted perft, at every
// depth, since every legal move's destination falls in exactly one of
// the two partitions.
func TestMaskedPerft(t *testing.T) {
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
	}

	for _, fen := range positions {
		for depth := 1; depth <= 3; depth++ {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", fen, err)
			}
			total := Perft(pos, depth)

			pos, _ = ParseFEN(fen)
			onOccupied := perftMasked(pos, depth, pos.Occupied)
			pos, _ = ParseFEN(fen)
			onEmpty := perftMasked(pos, depth, ^pos.Occupied)

			if onOccupied+onEmpty != total {
				t.Errorf("fen %q depth %d: masked sum %d+%d != unrestricted %d",
					fen, depth, onOccupied, onEmpty, total)
			}
		}
	}
}

// perftMasked counts only the leaves below root moves whose destination
// square lies in mask; the mask partitions the root moves only, and
// each subtree below them is counted in full by Perft.
func perftMasked(p *Position, depth int, mask Bitboard) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.GenerateLegalMoves()
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if !mask.IsSet(m.To()) {
			continue
		}
		p.MakeMove(m)
		nodes += Perft(p, depth-1)
		p.UnmakeMove(m)
	}
	return nodes
}
