package chess

// PieceType is a chess piece kind, ordered to match the board-encoding
// layout used by pkg/policy (Pawn=0 .. King=5).
type PieceType uint8

const (
	Pawn PieceType = iota
	Bishop
	Knight
	Rook
	Queen
	King

	NumPieceTypes
)

// Value is an abstract material value used for capture scoring. Exact
// scale doesn't affect correctness, only the relative weight of
// capture bonuses in pkg/evolve scoring.
func (p PieceType) Value() float64 {
	switch p {
	case Pawn:
		return 1
	case Knight:
		return 3
	case Bishop:
		return 3.1
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 1000
	default:
		return 0
	}
}

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "p"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

// Piece is a colored chess piece.
type Piece struct {
	Color Color
	Type  PieceType
}

func (p Piece) String() string {
	return p.Type.String()
}

// Square holds at most one piece. The zero value is empty.
type Square struct {
	Piece Piece
	// Occupied reports whether the square holds a piece. Needed because
	// the zero Piece{White, Pawn} is a valid piece, not "empty".
	Occupied bool
}
