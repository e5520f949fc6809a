package search_test

import (
	"testing"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/board/fen"
	"github.com/corvuscore/engine/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdererTTMoveOutranksEverything(t *testing.T) {
	pos, _, _, _, err := fen.Decode("3q2k1/8/8/8/8/8/8/3R2K1 w - - 0 1")
	require.NoError(t, err)

	o := search.NewOrderer(64)
	capture := board.Move{From: board.D1, To: board.D8, Piece: board.Rook, Capture: board.Queen, Type: board.Capture}
	quiet := board.Move{From: board.G1, To: board.H1, Piece: board.King, Type: board.Quiet}

	ttScore := o.Score(pos, board.White, 0, quiet, quiet, true, board.Move{}, false)
	captureScore := o.Score(pos, board.White, 0, capture, board.Move{}, false, board.Move{}, false)
	assert.Greater(t, ttScore, captureScore)
}

func TestOrdererCapturesOutrankQuietMoves(t *testing.T) {
	pos, _, _, _, err := fen.Decode("3q2k1/8/8/8/8/8/8/3R2K1 w - - 0 1")
	require.NoError(t, err)

	o := search.NewOrderer(64)
	capture := board.Move{From: board.D1, To: board.D8, Piece: board.Rook, Capture: board.Queen, Type: board.Capture}
	quiet := board.Move{From: board.G1, To: board.G2, Piece: board.King, Type: board.Quiet}

	captureScore := o.Score(pos, board.White, 0, capture, board.Move{}, false, board.Move{}, false)
	quietScore := o.Score(pos, board.White, 0, quiet, board.Move{}, false, board.Move{}, false)
	assert.Greater(t, captureScore, quietScore)
}

func TestOrdererKillerOutranksPlainQuiet(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	o := search.NewOrderer(64)
	killer := board.Move{From: board.G1, To: board.F3, Piece: board.Knight, Type: board.Quiet}
	other := board.Move{From: board.B1, To: board.C3, Piece: board.Knight, Type: board.Quiet}
	o.Killers.Push(0, killer)

	killerScore := o.Score(pos, board.White, 0, killer, board.Move{}, false, board.Move{}, false)
	otherScore := o.Score(pos, board.White, 0, other, board.Move{}, false, board.Move{}, false)
	assert.Greater(t, killerScore, otherScore)
}

func TestQuiescenceMovesFiltersToCapturesAndQueenPromotions(t *testing.T) {
	moves := []board.Move{
		{From: board.E2, To: board.E4, Piece: board.Pawn, Type: board.Jump},
		{From: board.D1, To: board.D8, Piece: board.Rook, Capture: board.Queen, Type: board.Capture},
		{From: board.A7, To: board.A8, Piece: board.Pawn, Promotion: board.Queen, Type: board.Promotion},
		{From: board.A7, To: board.A8, Piece: board.Pawn, Promotion: board.Knight, Type: board.Promotion},
	}
	filtered := search.QuiescenceMoves(moves)
	assert.Len(t, filtered, 2)
}
