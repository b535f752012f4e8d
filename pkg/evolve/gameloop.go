package evolve

import (
	"math/rand"

	"github.com/herohde/morlock/pkg/chess"
	"github.com/herohde/morlock/pkg/neural"
	"github.com/herohde/morlock/pkg/policy"
)

// positionalBonusPlies is the number of opening plies (0-indexed plies
// 0..39) that earn the heat-map bonus. Past this point the opening/early-
// middlegame square preferences the table encodes stop being meaningful.
const positionalBonusPlies = 40

// heatMap scores squares by central control: pieces heading toward the
// middle of the board earn a bonus, zero on the corners, peaking at the
// four central squares.
var heatMap = [8][8]float64{
	{0, 0, 1, 2, 2, 1, 0, 0},
	{0, 1, 2, 3, 3, 2, 1, 0},
	{1, 2, 3, 4, 4, 3, 2, 1},
	{2, 3, 4, 5, 5, 4, 3, 2},
	{2, 3, 4, 5, 5, 4, 3, 2},
	{1, 2, 3, 4, 4, 3, 2, 1},
	{0, 1, 2, 3, 3, 2, 1, 0},
	{0, 0, 1, 2, 2, 1, 0, 0},
}

// checkmateBonus is added to the winner's score and subtracted from the
// loser's when a game ends in checkmate rather than running out of
// moves or hitting the no-progress cutoff.
const checkmateBonus = 1000

// Outcome classifies how a game ended.
type Outcome int

const (
	// Stalemate: the side to move has no legal move, or the 50-ply
	// no-progress counter expired, and the side to move is not in check.
	// Either case while in check is scored as Checkmate.
	Stalemate Outcome = iota
	Checkmate
)

func (o Outcome) String() string {
	if o == Checkmate {
		return "checkmate"
	}
	return "stalemate"
}

// Result is the outcome of one self-play game between a White and a
// Black network.
type Result struct {
	ScoreWhite float64
	ScoreBlack float64
	Plies      int
	Outcome    Outcome
}

// Play runs a full self-play game between white and black, alternating
// SelectMove calls, until the side to move has no legal move (checkmate
// or stalemate) or the 50-ply no-progress cutoff is hit. rngWhite and
// rngBlack must each be owned exclusively by this call — Play is meant
// to be invoked concurrently by the Evolver, one pair of RNGs per
// worker.
func Play(white, black *neural.Network, rngWhite, rngBlack *rand.Rand, temperature float64) (Result, error) {
	g := chess.NewGame()
	scratchWhite := white.NewScratch()
	scratchBlack := black.NewScratch()

	var res Result
	for {
		net, s, rng := white, &scratchWhite, rngWhite
		if g.Turn == chess.Black {
			net, s, rng = black, &scratchBlack, rngBlack
		}

		selected, err := policy.SelectMove(net, g, s, rng, temperature)
		if err != nil {
			return Result{}, err
		}

		mv, ok := selected.V()
		if !ok {
			if g.IsCheck(g.Turn) {
				res.Outcome = Checkmate
				if g.Turn == chess.White {
					res.ScoreWhite -= checkmateBonus
					res.ScoreBlack += checkmateBonus
				} else {
					res.ScoreBlack -= checkmateBonus
					res.ScoreWhite += checkmateBonus
				}
			} else {
				res.Outcome = Stalemate
			}
			return res, nil
		}

		src := g.Board.Get(mv.Src.X, mv.Src.Y)
		dst := g.Board.Get(mv.Dst.X, mv.Dst.Y)

		bonus := 0.0
		if res.Plies < positionalBonusPlies {
			bonus += positionalBonus(src.Piece.Type, mv.Dst)
		}
		if dst.Occupied {
			bonus += dst.Piece.Type.Value()
		}
		if g.Turn == chess.White {
			res.ScoreWhite += bonus
		} else {
			res.ScoreBlack += bonus
		}

		g.ApplyMove(mv.Src, mv.Dst)
		res.Plies++
	}
}

func positionalBonus(p chess.PieceType, dst chess.Position) float64 {
	v := heatMap[dst.Y][dst.X]
	if p == chess.Knight {
		return v / 18
	}
	return v / 24
}
