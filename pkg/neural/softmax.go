package neural

import "math"

// Softmax normalizes logits in place into a categorical distribution,
// dividing each logit by temperature before exponentiation. A -Inf
// logit maps to exactly 0, which is what MoveSelector relies on to
// mask illegal moves out of the distribution.
//
// Invariant: afterward, sum(logits) == 1 within float error, and every
// entry is >= 0. An empty slice is left untouched.
func Softmax(logits []float64, temperature float64) {
	if len(logits) == 0 {
		return
	}

	m := logits[0]
	for _, v := range logits[1:] {
		if v > m {
			m = v
		}
	}

	var sum float64
	for i, v := range logits {
		e := math.Exp((v - m) / temperature)
		logits[i] = e
		sum += e
	}

	for i := range logits {
		logits[i] /= sum
	}
}
