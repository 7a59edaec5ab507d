package board

import "fmt"

// ErrorKind names a category of FEN or move parse failure. Callers
// recover at the call site by dispatching on Kind rather than on
// error text.
type ErrorKind uint8

const (
	InvalidPartCount ErrorKind = iota
	CouldNotParsePiece
	CouldNotParseColor
	CouldNotParseCastle
	InvalidEpSquare
	InvalidHalfmoveClock
	InvalidFullmoveNumber
	InvalidMoveLength
	InvalidSquare
	InvalidRole
)

var errorKindText = [...]string{
	"invalid part count",
	"could not parse piece",
	"could not parse color",
	"could not parse castling rights",
	"invalid en-passant square",
	"invalid halfmove clock",
	"invalid fullmove number",
	"invalid move length",
	"invalid square",
	"invalid role",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindText) {
		return errorKindText[k]
	}
	return "unknown error kind"
}

// ParseError is returned by FEN and move parsing. It is never used
// for search or move-generation control flow.
type ParseError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}
