package board

// Perft counts the leaf nodes of the legal move tree rooted at pos to
// the given depth, making and unmaking every move along the way. It
// exists to validate move generation: a correct generator reproduces
// the well-known perft counts for the standard test positions.
func Perft(pos *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		pos.MakeMove(m)
		nodes += Perft(pos, depth-1)
		pos.UnmakeMove(m)
	}
	return nodes
}

// Divide returns the perft count for each legal move at the root,
// keyed by the move's UCI string, for diagnosing where a perft count
// diverges from the expected value.
func Divide(pos *Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		pos.MakeMove(m)
		result[m.String()] = Perft(pos, depth-1)
		pos.UnmakeMove(m)
	}
	return result
}
