package search_test

import (
	"testing"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/board/fen"
	"github.com/corvuscore/engine/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSEENonCaptureIsZero(t *testing.T) {
	m := board.Move{From: board.E2, To: board.E4, Piece: board.Pawn, Type: board.Jump}
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	assert.Equal(t, board.Score(0), search.SEE(pos, board.White, m))
	assert.Equal(t, board.Score(0), search.SwapOffSEE(pos, board.White, m))
}

func TestSEEWinningCapture(t *testing.T) {
	// White rook takes an undefended black queen.
	pos, _, _, _, err := fen.Decode("3q2k1/8/8/8/8/8/8/3R2K1 w - - 0 1")
	require.NoError(t, err)
	m := board.Move{From: board.D1, To: board.D8, Piece: board.Rook, Capture: board.Queen, Type: board.Capture}
	assert.Equal(t, board.Score(900), search.SEE(pos, board.White, m))
	assert.Equal(t, board.Score(900), search.SwapOffSEE(pos, board.White, m))
}

func TestSwapOffSEEEvenTradeIsZero(t *testing.T) {
	// White pawn e4 captures defended black pawn d5; recaptured by queen.
	pos, _, _, _, err := fen.Decode("3qk3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m := board.Move{From: board.E4, To: board.D5, Piece: board.Pawn, Capture: board.Pawn, Type: board.Capture}
	assert.Equal(t, board.Score(100-100), search.SwapOffSEE(pos, board.White, m))
}

func TestSwapOffSEEDefenderDeclinesBadRecapture(t *testing.T) {
	// Black's queen is the only defender of d5; recapturing would only set
	// it up to be taken by White's bishop, so the swap-off algorithm must
	// have Black decline and leave White simply a pawn ahead.
	pos, _, _, _, err := fen.Decode("3qk3/8/8/3p4/4P3/5B2/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m := board.Move{From: board.E4, To: board.D5, Piece: board.Pawn, Capture: board.Pawn, Type: board.Capture}
	assert.Equal(t, board.Score(100), search.SwapOffSEE(pos, board.White, m))
}

func TestSwapOffSEEPinnedRecapturerIsExcluded(t *testing.T) {
	// Black's queen on e5 is the only piece attacking d5, but it is pinned
	// to its own king on the e-file by White's rook on e1, so it cannot
	// legally recapture. White ends up a clean pawn ahead.
	pos, _, _, _, err := fen.Decode("4k3/8/8/3pq3/4P3/8/8/4RK2 w - - 0 1")
	require.NoError(t, err)
	m := board.Move{From: board.E4, To: board.D5, Piece: board.Pawn, Capture: board.Pawn, Type: board.Capture}
	assert.Equal(t, board.Score(100), search.SwapOffSEE(pos, board.White, m))
}
