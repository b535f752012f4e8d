package policy

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/herohde/morlock/pkg/chess"
	"github.com/herohde/morlock/pkg/neural"
	"github.com/seekerror/stdlib/pkg/lang"
)

// DefaultTemperature is used when the caller doesn't want to thread a
// temperature through explicitly. The final layer's Softmax activation
// carries its own temperature slot, but the canonical self-play network
// tags that layer None, so this parameter is the one that matters.
const DefaultTemperature = 1.0

// SelectMove runs one ply of the policy: encode the board, forward it
// through net, mask every destination SafeMove rejects, softmax the
// remainder and sample. A returned empty Optional means "no move
// possible" — either the 50-ply no-progress cutoff was hit, or every
// destination was illegal (terminal position). rng must not be shared
// across concurrent callers.
func SelectMove(net *neural.Network, g *chess.Game, s *neural.Scratch, rng *rand.Rand, temperature float64) (lang.Optional[chess.Move], error) {
	if g.UntilStalemate >= 50 {
		return lang.Optional[chess.Move]{}, nil
	}

	input := NewEncodedBoard(&g.Board)
	out, err := net.Forward(input, s)
	if err != nil {
		return lang.Optional[chess.Move]{}, err
	}
	if len(out) != NumMoves {
		return lang.Optional[chess.Move]{}, fmt.Errorf("policy: network output width must equal NumMoves (%v), got %v", NumMoves, len(out))
	}

	logits := make([]float64, NumMoves)
	copy(logits, out)

	illegal := 0
	for i := range logits {
		m := MoveFromIndex(i)
		if !g.SafeMove(m.Src, m.Dst) {
			logits[i] = math.Inf(-1)
			illegal++
		}
	}
	if illegal == NumMoves {
		return lang.Optional[chess.Move]{}, nil
	}

	neural.Softmax(logits, temperature)

	for {
		i, ok := sampleCategorical(logits, rng)
		if !ok {
			// All weights collapsed to zero: treat as a terminal
			// position with no move, not an error.
			return lang.Optional[chess.Move]{}, nil
		}
		m := MoveFromIndex(i)
		if g.SafeMove(m.Src, m.Dst) {
			return lang.Some(m), nil
		}
		// Resample: the drawn index was masked to zero weight by
		// softmax's -Inf handling but a float rounding edge case put
		// mass there anyway. Loop terminates because at least one
		// legal index has positive probability.
	}
}

// sampleCategorical draws an index from weights, treated as an
// unnormalized categorical distribution. ok is false iff the total
// weight is non-positive.
func sampleCategorical(weights []float64, rng *rand.Rand) (int, bool) {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0, false
	}

	target := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum {
			return i, true
		}
	}
	return len(weights) - 1, true
}
