package chess

// Position is a board coordinate: X is the file (0=a .. 7=h), Y is the
// rank (0=White's back rank .. 7=Black's back rank).
type Position struct {
	X, Y int8
}

func (p Position) inBounds() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

// Board is a fixed 8x8 grid of squares, indexed by y*8+x.
type Board struct {
	squares [64]Square
}

func idx(x, y int8) int {
	return int(y)*8 + int(x)
}

// Get returns the square at (x,y). Out-of-bounds coordinates return an
// empty square; callers that need bounds checking do it themselves.
func (b *Board) Get(x, y int8) Square {
	if !(Position{x, y}).inBounds() {
		return Square{}
	}
	return b.squares[idx(x, y)]
}

// Set places (or clears, if occupied is false) a piece at (x,y).
func (b *Board) Set(x, y int8, p Piece, occupied bool) {
	b.squares[idx(x, y)] = Square{Piece: p, Occupied: occupied}
}

// Clear empties the square at (x,y).
func (b *Board) Clear(x, y int8) {
	b.squares[idx(x, y)] = Square{}
}

// Init resets the board to the standard starting position: back rank
// R N B Q K B N R (a->h), pawns on rank 2/7, interior empty.
func (b *Board) Init() {
	*b = Board{}

	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x := int8(0); x < 8; x++ {
		b.Set(x, 0, Piece{White, backRank[x]}, true)
		b.Set(x, 1, Piece{White, Pawn}, true)

		b.Set(x, 6, Piece{Black, Pawn}, true)
		b.Set(x, 7, Piece{Black, backRank[x]}, true)
	}
}

// NewBoard returns an initialized standard starting board.
func NewBoard() Board {
	var b Board
	b.Init()
	return b
}
