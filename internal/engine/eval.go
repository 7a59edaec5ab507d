// Package engine implements the alpha-beta search: move ordering,
// transposition table, time management, and the evaluation function
// that grounds the search in a numeric score.
package engine

import (
	"chessplay/internal/board"
)

// Mobility weights per role, tapered by game phase.
var mobilityMgWeight = [6]int{0, 4, 5, 2, 1, 0}
var mobilityEgWeight = [6]int{0, 3, 4, 4, 2, 0}

const (
	bishopPairMg = 25
	bishopPairEg = 50
	tempoBonus   = 10
)

// Evaluate returns a static score for pos from the side-to-move's
// point of view, in centipawns. It combines the position's
// incrementally maintained material+PSQT sums (kept up to date by
// board.Position.MakeMove/UnmakeMove) with mobility and bishop-pair
// terms computed fresh, then tapers midgame/endgame weights by
// remaining material.
func Evaluate(pos *board.Position) int {
	phase := pos.GamePhase()

	mg := pos.PSQTMg
	eg := pos.PSQTEg

	mgMob, egMob := mobilityScore(pos)
	mg += mgMob
	eg += egMob

	if pos.ByRole[board.White][board.Bishop].PopCount() >= 2 {
		mg += bishopPairMg
		eg += bishopPairEg
	}
	if pos.ByRole[board.Black][board.Bishop].PopCount() >= 2 {
		mg -= bishopPairMg
		eg -= bishopPairEg
	}

	score := (mg*phase + eg*(24-phase)) / 24

	if pos.SideToMove == board.Black {
		score = -score
	}
	return score + tempoBonus
}

// mobilityScore returns the white-minus-black (midgame, endgame)
// mobility contribution: the count of squares each non-pawn,
// non-king piece attacks, weighted by role and phase.
func mobilityScore(pos *board.Position) (mg, eg int) {
	occ := pos.Occupied
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		own := pos.ByColor[c]
		for _, role := range [4]board.Role{board.Knight, board.Bishop, board.Rook, board.Queen} {
			pieces := pos.ByRole[c][role]
			for pieces != 0 {
				sq := pieces.PopLSB()
				var attacks board.Bitboard
				switch role {
				case board.Knight:
					attacks = board.KnightAttacks(sq)
				case board.Bishop:
					attacks = board.BishopAttacks(sq, occ)
				case board.Rook:
					attacks = board.RookAttacks(sq, occ)
				case board.Queen:
					attacks = board.QueenAttacks(sq, occ)
				}
				count := (attacks &^ own).PopCount()
				mg += sign * count * mobilityMgWeight[role]
				eg += sign * count * mobilityEgWeight[role]
			}
		}
	}
	return mg, eg
}

// MateScore is the score magnitude assigned to the side delivering
// checkmate, from which search subtracts ply-to-mate so shorter mates
// are preferred.
const MateScore = 32000

// DrawScore is returned for positions the search recognizes as drawn
// by rule.
const DrawScore = 0
