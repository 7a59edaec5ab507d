package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Position. It derives all
// incremental state (hash, PSQT sums, king squares, checkers, pins)
// from scratch, so the result is safe to search or make moves on
// immediately.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, &ParseError{Kind: InvalidPartCount, Detail: fen}
	}

	pos := &Position{
		EPSquare:       NoSquare,
		FullmoveNumber: 1,
		history:        make([]undoRecord, 0, 128),
	}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, &ParseError{Kind: CouldNotParseColor, Detail: parts[1]}
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, &ParseError{Kind: InvalidEpSquare, Detail: parts[3]}
		}
		pos.EPSquare = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return nil, &ParseError{Kind: InvalidHalfmoveClock, Detail: parts[4]}
		}
		pos.HalfmoveClock = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return nil, &ParseError{Kind: InvalidFullmoveNumber, Detail: parts[5]}
		}
		pos.FullmoveNumber = fmn
	}

	pos.updateOccupied()
	pos.findKings()
	pos.Key = pos.computeHash()
	pos.updateCheckers()
	pos.computePinned()

	return pos, nil
}

func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return &ParseError{Kind: InvalidPartCount, Detail: placement}
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if file > 7 {
				return &ParseError{Kind: InvalidPartCount, Detail: rankStr}
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return &ParseError{Kind: CouldNotParsePiece, Detail: string(c)}
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return &ParseError{Kind: InvalidPartCount, Detail: rankStr}
		}
	}
	return nil
}

func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.Castling = NoCastleRights
		return nil
	}
	for _, c := range castling {
		switch c {
		case 'K':
			pos.Castling |= WhiteKingSide
		case 'Q':
			pos.Castling |= WhiteQueenSide
		case 'k':
			pos.Castling |= BlackKingSide
		case 'q':
			pos.Castling |= BlackQueenSide
		default:
			return &ParseError{Kind: CouldNotParseCastle, Detail: castling}
		}
	}
	return nil
}

// FEN returns the FEN representation of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EPSquare.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}

// computeHash computes the Zobrist key for the position from scratch;
// used at construction time and by AssertConsistent, since
// MakeMove/UnmakeMove maintain Key incrementally afterward.
func (p *Position) computeHash() uint64 {
	var hash uint64
	for c := White; c <= Black; c++ {
		for r := Pawn; r <= King; r++ {
			bb := p.ByRole[c][r]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= zobristPiece[c][r][sq]
			}
		}
	}
	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}
	hash ^= zobristCastling[p.Castling]
	if p.EPSquare != NoSquare {
		hash ^= zobristEnPassant[p.EPSquare.File()]
	}
	return hash
}
