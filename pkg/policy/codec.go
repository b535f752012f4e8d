package policy

import "github.com/herohde/morlock/pkg/chess"

// NumMoves is the width of the final network layer: one logit per
// (from-square, to-square) pair.
const NumMoves = 64 * 64

// MoveFromIndex decodes a flat [0, NumMoves) index into a Move. The
// high 6 bits select the source square, the low 6 bits the destination,
// each square itself split into file (low 3 bits) and rank (high 3 bits).
func MoveFromIndex(i int) chess.Move {
	s, d := i/64, i%64
	return chess.Move{
		Src: chess.Position{X: int8(s % 8), Y: int8(s / 8)},
		Dst: chess.Position{X: int8(d % 8), Y: int8(d / 8)},
	}
}

// IndexFromMove is the inverse of MoveFromIndex.
func IndexFromMove(m chess.Move) int {
	s := int(m.Src.Y)*8 + int(m.Src.X)
	d := int(m.Dst.Y)*8 + int(m.Dst.X)
	return s*64 + d
}
