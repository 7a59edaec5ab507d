package board

import "fmt"

// Square is a board square in [0,64). Little-endian rank-file mapping:
// A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares, plus the NoSquare sentinel.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file (0=a .. 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (0=rank1 .. 7=rank8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// North returns the square one rank up; caller ensures it stays on board.
func (sq Square) North() Square { return sq + 8 }

// South returns the square one rank down; caller ensures it stays on board.
func (sq Square) South() Square { return sq - 8 }

// East returns the square one file right, or NoSquare off the h-file.
func (sq Square) East() Square {
	if sq.File() == 7 {
		return NoSquare
	}
	return sq + 1
}

// West returns the square one file left, or NoSquare off the a-file.
func (sq Square) West() Square {
	if sq.File() == 0 {
		return NoSquare
	}
	return sq - 1
}

// IsValid reports whether the square is one of the 64 board squares.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror returns the square reflected across the board's horizontal
// midline (rank r <-> rank 7-r), used to view the board from Black.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// String returns algebraic notation, e.g. "e4", or "-" for NoSquare.
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare builds a square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation, e.g. "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, &ParseError{Kind: InvalidSquare, Detail: s}
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, &ParseError{Kind: InvalidSquare, Detail: s}
	}
	return NewSquare(file, rank), nil
}
