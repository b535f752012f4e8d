// Package policy turns a chess position into network input and a
// network's output logits back into a chess move: the 768-float board
// encoding, the 4096-index move codec, and the MoveSelector that masks
// illegal destinations and samples a move from the resulting
// distribution.
package policy

import "github.com/herohde/morlock/pkg/chess"

// BoardSize is the length of an encoded board: 8x8 squares x 12
// piece-planes (6 piece types x 2 colors).
const BoardSize = 8 * 8 * 12

// EncodeBoard writes board into out, which must have length BoardSize
// and is assumed zeroed by the caller (or freshly allocated). For each
// occupied square, exactly one plane is set to 1.
func EncodeBoard(b *chess.Board, out []float64) {
	for x := int8(0); x < 8; x++ {
		for y := int8(0); y < 8; y++ {
			sq := b.Get(x, y)
			if !sq.Occupied {
				continue
			}
			out[(int(x)*8+int(y))*12+int(sq.Piece.Type)+int(sq.Piece.Color)*6] = 1
		}
	}
}

// NewEncodedBoard allocates and encodes a fresh BoardSize vector.
func NewEncodedBoard(b *chess.Board) []float64 {
	out := make([]float64, BoardSize)
	EncodeBoard(b, out)
	return out
}
