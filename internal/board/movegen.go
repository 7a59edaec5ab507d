package board

// GenerateLegalMoves generates every legal move for the side to move.
//
// Unlike a pseudo-legal-then-filter generator, this never calls
// MakeMove/UnmakeMove (or any is-legal probe) while generating: check
// count, the check-evasion mask, and the pinned-piece set are each
// computed once up front and folded directly into the destination
// bitboard of every piece as it is generated.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := &MoveList{}
	p.generateMoves(ml, false)
	return ml
}

// GenerateCaptures generates legal captures and promotions only, for
// quiescence search.
func (p *Position) GenerateCaptures() *MoveList {
	ml := &MoveList{}
	p.generateMoves(ml, true)
	return ml
}

func (p *Position) generateMoves(ml *MoveList, capturesOnly bool) {
	us := p.SideToMove
	them := us.Opponent()
	ksq := p.KingSquare[us]
	numCheckers := p.Checkers.PopCount()

	occWithoutKing := p.Occupied &^ SquareBB(ksq)
	p.generateKingMoves(ml, us, them, occWithoutKing, capturesOnly)

	if numCheckers >= 2 {
		// Double check: only the king can move.
		return
	}

	checkMask := Universe
	if numCheckers == 1 {
		checkerSq := p.Checkers.LSB()
		checkMask = Between(checkerSq, ksq) | p.Checkers
	}

	p.generatePawnMoves(ml, us, them, checkMask, capturesOnly)
	p.generateSliderOrKnightMoves(ml, us, Knight, checkMask, capturesOnly)
	p.generateSliderOrKnightMoves(ml, us, Bishop, checkMask, capturesOnly)
	p.generateSliderOrKnightMoves(ml, us, Rook, checkMask, capturesOnly)
	p.generateSliderOrKnightMoves(ml, us, Queen, checkMask, capturesOnly)

	if numCheckers == 0 {
		p.generateCastlingMoves(ml, us, them)
	}
}

func (p *Position) generateKingMoves(ml *MoveList, us, them Color, occWithoutKing Bitboard, capturesOnly bool) {
	from := p.KingSquare[us]
	attacks := KingAttacks(from) &^ p.ByColor[us]
	if capturesOnly {
		attacks &= p.ByColor[them]
	}
	for attacks != 0 {
		to := attacks.PopLSB()
		if p.AttackersByColor(to, them, occWithoutKing) == 0 {
			ml.Add(NewMove(from, to))
		}
	}
}

func pieceAttacks(role Role, from Square, occupied Bitboard) Bitboard {
	switch role {
	case Knight:
		return KnightAttacks(from)
	case Bishop:
		return BishopAttacks(from, occupied)
	case Rook:
		return RookAttacks(from, occupied)
	case Queen:
		return QueenAttacks(from, occupied)
	}
	return Empty
}

// generateSliderOrKnightMoves handles knights and sliding pieces
// uniformly: a pinned piece's destinations are further restricted to
// the line through its own square and the king, which for a knight
// (whose attacks never follow a line) always yields zero destinations
// — a pinned knight simply cannot move, with no special case needed.
func (p *Position) generateSliderOrKnightMoves(ml *MoveList, us Color, role Role, checkMask Bitboard, capturesOnly bool) {
	them := us.Opponent()
	ksq := p.KingSquare[us]
	pieces := p.ByRole[us][role]
	for pieces != 0 {
		from := pieces.PopLSB()
		attacks := pieceAttacks(role, from, p.Occupied) &^ p.ByColor[us]
		attacks &= checkMask
		if p.Pinned.IsSet(from) {
			attacks &= Line(from, ksq)
		}
		if capturesOnly {
			attacks &= p.ByColor[them]
		}
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to))
		}
	}
}

func (p *Position) generatePawnMoves(ml *MoveList, us, them Color, checkMask Bitboard, capturesOnly bool) {
	pawns := p.ByRole[us][Pawn]
	enemies := p.ByColor[them]
	empty := ^p.Occupied
	ksq := p.KingSquare[us]

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	legal := func(from, to Square) bool {
		if !checkMask.IsSet(to) {
			return false
		}
		if p.Pinned.IsSet(from) && !Aligned(from, ksq, to) {
			return false
		}
		return true
	}

	if !capturesOnly {
		nonPromo := push1 & ^promotionRank
		for nonPromo != 0 {
			to := nonPromo.PopLSB()
			from := Square(int(to) - pushDir)
			if legal(from, to) {
				ml.Add(NewMove(from, to))
			}
		}
		for push2 != 0 {
			to := push2.PopLSB()
			from := Square(int(to) - 2*pushDir)
			if legal(from, to) {
				ml.Add(NewMove(from, to))
			}
		}
	}

	nonPromoL := attackL & ^promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		if legal(from, to) {
			ml.Add(NewMove(from, to))
		}
	}
	nonPromoR := attackR & ^promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		if legal(from, to) {
			ml.Add(NewMove(from, to))
		}
	}

	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		if legal(from, to) {
			addPromotions(ml, from, to)
		}
	}
	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		if legal(from, to) {
			addPromotions(ml, from, to)
		}
	}
	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		if legal(from, to) {
			addPromotions(ml, from, to)
		}
	}

	if p.EPSquare != NoSquare {
		ep := p.EPSquare
		epBB := SquareBB(ep)
		var attackers Bitboard
		if us == White {
			attackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			attackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for attackers != 0 {
			from := attackers.PopLSB()
			capSq := ep.South()
			if us == Black {
				capSq = ep.North()
			}
			if !checkMask.IsSet(ep) && !checkMask.IsSet(capSq) {
				continue
			}
			if p.Pinned.IsSet(from) && !Aligned(from, ksq, ep) {
				continue
			}
			// A captured pawn vacating capSq, simultaneously with the
			// capturing pawn vacating from, can expose the king to a
			// rook/queen sharing their rank even when neither pawn was
			// individually pinned — recompute attackers against the
			// occupancy the capture would actually produce.
			occAfter := (p.Occupied &^ SquareBB(from) &^ SquareBB(capSq)) | epBB
			if p.AttackersByColor(ksq, them, occAfter) != 0 {
				continue
			}
			ml.Add(NewMove(from, ep))
		}
	}
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

func (p *Position) generateCastlingMoves(ml *MoveList, us, them Color) {
	if us == White {
		if p.Castling&WhiteKingSide != 0 &&
			p.Occupied&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			!p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
			ml.Add(NewMove(E1, G1))
		}
		if p.Castling&WhiteQueenSide != 0 &&
			p.Occupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
			ml.Add(NewMove(E1, C1))
		}
		return
	}
	if p.Castling&BlackKingSide != 0 &&
		p.Occupied&(SquareBB(F8)|SquareBB(G8)) == 0 &&
		!p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
		ml.Add(NewMove(E8, G8))
	}
	if p.Castling&BlackQueenSide != 0 &&
		p.Occupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
		!p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
		ml.Add(NewMove(E8, C8))
	}
}

// IsCapture reports whether m captures a piece, including en passant.
func (p *Position) IsCapture(m Move) bool {
	if p.PieceAt(m.To()) != NoPiece {
		return true
	}
	mover := p.PieceAt(m.From()).Role()
	return m.Type(mover, p.EPSquare) == EnPassant
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	return p.GenerateLegalMoves().Len() > 0
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is stalemated.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
