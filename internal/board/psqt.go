package board

// Tapered piece-square tables, indexed [Role][Square] from White's
// point of view (Black's values are looked up on the mirrored
// square). Position maintains a running midgame/endgame sum so search
// never needs to rescan the board for a static score.
var psqtMg [6][64]int
var psqtEg [6][64]int

// pawnPST favors central advance and discourages the back ranks.
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingPSTMg = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var kingPSTEg = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

func init() {
	for sq := 0; sq < 64; sq++ {
		psqtMg[Pawn][sq] = pawnPST[sq]
		psqtMg[Knight][sq] = knightPST[sq]
		psqtMg[Bishop][sq] = bishopPST[sq]
		psqtMg[Rook][sq] = rookPST[sq]
		psqtMg[Queen][sq] = queenPST[sq]
		psqtMg[King][sq] = kingPSTMg[sq]

		psqtEg[Pawn][sq] = pawnPST[sq]
		psqtEg[Knight][sq] = knightPST[sq]
		psqtEg[Bishop][sq] = bishopPST[sq]
		psqtEg[Rook][sq] = rookPST[sq]
		psqtEg[Queen][sq] = queenPST[sq]
		psqtEg[King][sq] = kingPSTEg[sq]
	}
}

// psqtValue returns the white-relative (midgame, endgame) contribution
// of placing piece on sq, including material value.
func psqtValue(piece Piece, sq Square) (mg, eg int) {
	r, c := piece.Role(), piece.Color()
	idxSq := sq
	if c == Black {
		idxSq = sq.Mirror()
	}
	sign := 1
	if c == Black {
		sign = -1
	}
	material := RoleValue[r]
	return sign * (material + psqtMg[r][idxSq]), sign * (material + psqtEg[r][idxSq])
}

// GamePhase returns a 0-24 tapering value from remaining non-pawn
// material: 24 at the start of the game, trending to 0 in the endgame.
func (p *Position) GamePhase() int {
	phase := 0
	phase += (p.ByRole[White][Knight] | p.ByRole[Black][Knight]).PopCount()
	phase += (p.ByRole[White][Bishop] | p.ByRole[Black][Bishop]).PopCount()
	phase += 2 * (p.ByRole[White][Rook] | p.ByRole[Black][Rook]).PopCount()
	phase += 4 * (p.ByRole[White][Queen] | p.ByRole[Black][Queen]).PopCount()
	if phase > 24 {
		phase = 24
	}
	return phase
}
