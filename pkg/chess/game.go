package chess

// Game holds a board plus the metadata needed for legality and
// termination decisions: move counters, castling rights, side to move
// and move history (used only for the "first 40 plies" positional
// bonus in pkg/evolve).
//
// Promotion, en passant capture, threefold repetition and insufficient
// material are not implemented. The 50-move rule is approximated by
// UntilStalemate reaching 50.
type Game struct {
	Board Board

	TotalMoves     int
	UntilStalemate int
	EnPassant      uint8 // encoded target square; 0 = none. Never set: no en passant support.
	CastlingRights [NumColors]bool
	Turn           Color
	Moves          []Move
}

// NewGame returns a fresh game in the standard starting position.
func NewGame() *Game {
	return &Game{
		Board:          NewBoard(),
		Turn:           White,
		CastlingRights: [NumColors]bool{true, true},
	}
}

// LegalMove reports whether moving the piece on src to dst is
// pseudo-legal: it follows the piece's movement rules, but may leave
// the mover's own king in check. The side-to-move is not checked here
// nor in SafeMove: a piece of either color may be moved, and callers
// alternate turns.
func (g *Game) LegalMove(src, dst Position) bool {
	if !src.inBounds() || !dst.inBounds() {
		return false
	}
	if src == dst {
		return false
	}

	from := g.Board.Get(src.X, src.Y)
	if !from.Occupied {
		return false
	}

	to := g.Board.Get(dst.X, dst.Y)
	if to.Occupied && to.Piece.Color == from.Piece.Color {
		return false
	}

	switch from.Piece.Type {
	case Pawn:
		return g.pawnLegalMove(src, dst, from.Piece.Color)
	case Bishop:
		return g.bishopLegalMove(src, dst)
	case Knight:
		return knightLegalMove(src, dst)
	case Rook:
		return g.rookLegalMove(src, dst)
	case Queen:
		return g.bishopLegalMove(src, dst) || g.rookLegalMove(src, dst)
	case King:
		return g.kingLegalMove(src, dst, from.Piece.Color)
	default:
		return false
	}
}

func (g *Game) pawnLegalMove(src, dst Position, color Color) bool {
	direction := int8(1)
	startRank := int8(1)
	if color == Black {
		direction = -1
		startRank = 6
	}

	to := g.Board.Get(dst.X, dst.Y)
	if !to.Occupied {
		if src.X != dst.X {
			return false
		}
		if (dst.Y-src.Y)*direction < 0 {
			return false
		}

		max := int8(1)
		if src.Y == startRank {
			max = 2
		}
		dist := abs8(dst.Y - src.Y)
		if dist < 1 || dist > max {
			return false
		}

		if dist == 2 && g.Board.Get(src.X, src.Y+direction).Occupied {
			return false
		}
		return true
	}

	return abs8(dst.X-src.X) == 1 && (dst.Y-src.Y) == direction
}

func (g *Game) bishopLegalMove(src, dst Position) bool {
	if abs8(src.X-dst.X) != abs8(src.Y-dst.Y) {
		return false
	}
	return g.clearDiagonalOrLine(src, dst)
}

func (g *Game) rookLegalMove(src, dst Position) bool {
	dx, dy := abs8(src.X-dst.X), abs8(src.Y-dst.Y)
	if dx != 0 && dy != 0 {
		return false
	}
	return g.clearDiagonalOrLine(src, dst)
}

// clearDiagonalOrLine requires every square strictly between src and
// dst to be empty. Works for both straight and diagonal moves since
// both callers have already validated the shape.
func (g *Game) clearDiagonalOrLine(src, dst Position) bool {
	xstep, ystep := step(src.X, dst.X), step(src.Y, dst.Y)

	x, y := src.X+xstep, src.Y+ystep
	for x != dst.X || y != dst.Y {
		if g.Board.Get(x, y).Occupied {
			return false
		}
		x += xstep
		y += ystep
	}
	return true
}

func knightLegalMove(src, dst Position) bool {
	dx, dy := abs8(src.X-dst.X), abs8(src.Y-dst.Y)
	return (dx == 2 && dy == 1) || (dx == 1 && dy == 2)
}

func (g *Game) kingLegalMove(src, dst Position, color Color) bool {
	if abs8(src.X-dst.X) <= 1 && abs8(src.Y-dst.Y) <= 1 {
		return true
	}

	if !g.CastlingRights[color] {
		return false
	}
	if dst.Y != src.Y || abs8(src.X-dst.X) != 2 {
		return false
	}

	direction, until := int8(1), int8(2)
	if dst.X < src.X {
		direction, until = -1, 3
	}

	rookX := src.X + (until+1)*direction
	rook := g.Board.Get(rookX, src.Y)
	if !rook.Occupied || rook.Piece != (Piece{color, Rook}) {
		return false
	}

	for i := int8(1); i <= until; i++ {
		if g.Board.Get(src.X+i*direction, src.Y).Occupied {
			return false
		}
	}
	return true
}

// FindKing returns the position of the king of the given color, and
// whether it exists on the board.
func (g *Game) FindKing(color Color) (Position, bool) {
	for x := int8(0); x < 8; x++ {
		for y := int8(0); y < 8; y++ {
			sq := g.Board.Get(x, y)
			if sq.Occupied && sq.Piece == (Piece{color, King}) {
				return Position{x, y}, true
			}
		}
	}
	return Position{}, false
}

// IsCheck reports whether the king of the given color is under attack
// by any pseudo-legal enemy move.
func (g *Game) IsCheck(color Color) bool {
	king, ok := g.FindKing(color)
	if !ok {
		return false
	}

	for x := int8(0); x < 8; x++ {
		for y := int8(0); y < 8; y++ {
			sq := g.Board.Get(x, y)
			if !sq.Occupied || sq.Piece.Color == color {
				continue
			}
			if g.LegalMove(Position{x, y}, king) {
				return true
			}
		}
	}
	return false
}

// SafeMove reports whether moving src to dst is pseudo-legal and does
// not leave the mover's own king in check. For castling, the king must
// neither start, transit nor land on an attacked square.
//
// SafeMove always restores the board to its input state, regardless of
// its return value — callers may probe freely.
//
// The castling probe walks the king, one square at a time, from src
// through dst and on to the rook's corner square (one square past dst
// kingside, two queenside, matching the original's until+2 loop)
// without first clearing the rook's square, so a king passing over the
// rook transiently overwrites it — a quirk inherited from the reference
// implementation. Unlike that reference, the probe always restores
// every touched square afterward, including the rook, so the
// byte-identical restoration contract above holds even when the check
// is detected mid-walk.
func (g *Game) SafeMove(src, dst Position) bool {
	if !g.LegalMove(src, dst) {
		return false
	}

	from := g.Board.Get(src.X, src.Y)
	to := g.Board.Get(dst.X, dst.Y)

	if from.Piece.Type == King && abs8(src.X-dst.X) == 2 {
		direction, until := int8(1), int8(2)
		if dst.X < src.X {
			direction, until = -1, 3
		}

		inCheck := false
		last := int8(0)
		for i := int8(0); i < until+2; i++ {
			last = i
			g.Board.Set(src.X+i*direction, src.Y, from.Piece, true)
			if g.IsCheck(from.Piece.Color) {
				inCheck = true
				break
			}
			g.Board.Clear(src.X+i*direction, src.Y)
		}
		for i := int8(0); i <= last; i++ {
			g.Board.Clear(src.X+i*direction, src.Y)
		}
		g.Board.Set(src.X, src.Y, from.Piece, true)
		g.Board.Set(src.X+(until+1)*direction, src.Y, Piece{from.Piece.Color, Rook}, true)

		return !inCheck
	}

	g.Board.Set(dst.X, dst.Y, from.Piece, true)
	g.Board.Clear(src.X, src.Y)

	inCheck := g.IsCheck(from.Piece.Color)

	g.Board.Set(src.X, src.Y, from.Piece, true)
	if to.Occupied {
		g.Board.Set(dst.X, dst.Y, to.Piece, true)
	} else {
		g.Board.Clear(dst.X, dst.Y)
	}

	return !inCheck
}

// ApplyMove commits src->dst. The caller must have already confirmed
// SafeMove; ApplyMove does not re-validate legality.
func (g *Game) ApplyMove(src, dst Position) {
	from := g.Board.Get(src.X, src.Y)
	to := g.Board.Get(dst.X, dst.Y)

	g.Board.Set(dst.X, dst.Y, from.Piece, true)
	g.Board.Clear(src.X, src.Y)

	if from.Piece.Type == King && abs8(src.X-dst.X) == 2 {
		if dst.X < src.X {
			rook := g.Board.Get(0, src.Y)
			g.Board.Clear(0, src.Y)
			g.Board.Set(3, src.Y, rook.Piece, true)
		} else {
			rook := g.Board.Get(7, src.Y)
			g.Board.Clear(7, src.Y)
			g.Board.Set(5, src.Y, rook.Piece, true)
		}
	}

	if from.Piece.Type == King || from.Piece.Type == Rook {
		g.CastlingRights[from.Piece.Color] = false
	}

	if to.Occupied || from.Piece.Type == Pawn {
		g.UntilStalemate = 0
	} else {
		g.UntilStalemate++
	}

	g.TotalMoves++
	g.Moves = append(g.Moves, Move{Src: src, Dst: dst})
	g.Turn = g.Turn.Opponent()
}

func abs8(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}

func step(a, b int8) int8 {
	switch {
	case b < a:
		return -1
	case b > a:
		return 1
	default:
		return 0
	}
}
