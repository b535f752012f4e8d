package policy_test

import (
	"math/rand"
	"testing"

	"github.com/herohde/morlock/pkg/chess"
	"github.com/herohde/morlock/pkg/neural"
	"github.com/herohde/morlock/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEmptyBoardIsAllZero(t *testing.T) {
	var b chess.Board
	out := policy.NewEncodedBoard(&b)

	require.Len(t, out, policy.BoardSize)
	for _, v := range out {
		assert.Equal(t, 0.0, v)
	}
}

func TestEncodeStartingBoardHas32Ones(t *testing.T) {
	b := chess.NewBoard()
	out := policy.NewEncodedBoard(&b)

	ones := 0
	for _, v := range out {
		if v == 1 {
			ones++
		} else {
			assert.Equal(t, 0.0, v)
		}
	}
	assert.Equal(t, 32, ones)
}

func TestMoveCodecRoundTrip(t *testing.T) {
	for i := 0; i < policy.NumMoves; i += 37 {
		m := policy.MoveFromIndex(i)
		assert.Equal(t, i, policy.IndexFromMove(m))
	}
}

func newChessNetwork(t *testing.T, rng *rand.Rand) *neural.Network {
	t.Helper()

	l0 := neural.NewLayer(policy.BoardSize, 64, neural.Activation{Kind: neural.Relu})
	l1 := neural.NewLayer(64, policy.NumMoves, neural.Activation{Kind: neural.None})
	require.NoError(t, l0.Randomize(neural.He, rng))
	require.NoError(t, l1.Randomize(neural.Xavier, rng))
	return neural.New(l0, l1)
}

func TestSelectMoveReturnsSafeMoveFromStartingPosition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	net := newChessNetwork(t, rng)
	g := chess.NewGame()
	s := net.NewScratch()

	got, err := policy.SelectMove(net, g, &s, rng, policy.DefaultTemperature)
	require.NoError(t, err)

	m, ok := got.V()
	require.True(t, ok)
	assert.True(t, g.SafeMove(m.Src, m.Dst))
}

func TestSelectMoveNoProgressCutoffReturnsNone(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	net := newChessNetwork(t, rng)
	g := chess.NewGame()
	g.UntilStalemate = 50
	s := net.NewScratch()

	got, err := policy.SelectMove(net, g, &s, rng, policy.DefaultTemperature)
	require.NoError(t, err)

	_, ok := got.V()
	assert.False(t, ok)
}

func TestSelectMoveNoLegalMovesReturnsNone(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	net := newChessNetwork(t, rng)

	// Lone king, nowhere to go: boxed in by its own pieces, which cannot
	// move either (every pawn is blocked or already on the last rank).
	g := &chess.Game{Turn: chess.White}
	g.Board.Set(0, 7, chess.Piece{Color: chess.White, Type: chess.King}, true)
	g.Board.Set(0, 6, chess.Piece{Color: chess.White, Type: chess.Pawn}, true)
	g.Board.Set(1, 7, chess.Piece{Color: chess.White, Type: chess.Pawn}, true)
	g.Board.Set(1, 6, chess.Piece{Color: chess.White, Type: chess.Pawn}, true)
	s := net.NewScratch()

	got, err := policy.SelectMove(net, g, &s, rng, policy.DefaultTemperature)
	require.NoError(t, err)

	_, ok := got.V()
	assert.False(t, ok)
}
