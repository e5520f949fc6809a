package board_test

import (
	"testing"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movesToStrings(moves []board.Move) []string {
	ret := make([]string, len(moves))
	for i, m := range moves {
		ret[i] = m.String()
	}
	return ret
}

func TestLegalMovesInitialPosition(t *testing.T) {
	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	moves := pos.LegalMoves(turn)
	assert.Len(t, moves, 20)
}

func TestLegalMovesPawnPromotion(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.D7, Color: board.White, Piece: board.Pawn},
		{Square: board.A1, Color: board.White, Piece: board.King},
		{Square: board.A8, Color: board.Black, Piece: board.King},
	}, 0, board.NoSquare)
	require.NoError(t, err)

	moves := pos.LegalMoves(board.White)
	promos := 0
	for _, m := range moves {
		if m.IsPromotion() {
			promos++
		}
	}
	assert.Equal(t, 4, promos)
}

func TestEnPassantCapture(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.E4, Color: board.Black, Piece: board.Pawn},
		{Square: board.D4, Color: board.White, Piece: board.Pawn},
		{Square: board.A1, Color: board.White, Piece: board.King},
		{Square: board.A8, Color: board.Black, Piece: board.King},
	}, 0, board.D3)
	require.NoError(t, err)

	moves := pos.LegalMoves(board.Black)
	assert.Contains(t, movesToStrings(moves), "e4d3")

	var ep board.Move
	for _, m := range moves {
		if m.Type == board.EnPassant {
			ep = m
		}
	}
	require.Equal(t, board.EnPassant, ep.Type)

	next := pos.Apply(board.Black, ep)
	_, _, ok := next.PieceAt(board.D4)
	assert.False(t, ok, "captured pawn should be removed")
}

func TestCastlingKingSide(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.H1, Color: board.White, Piece: board.Rook},
		{Square: board.E8, Color: board.Black, Piece: board.King},
	}, board.WhiteKingSideCastle, board.NoSquare)
	require.NoError(t, err)

	moves := pos.LegalMoves(board.White)
	assert.Contains(t, movesToStrings(moves), "e1g1")

	next := pos.Apply(board.White, board.Move{From: board.E1, To: board.G1, Piece: board.King, Type: board.KingSideCastle})
	_, piece, ok := next.PieceAt(board.F1)
	require.True(t, ok)
	assert.Equal(t, board.Rook, piece)
}

func TestCastlingBlockedWhileInCheck(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.H1, Color: board.White, Piece: board.Rook},
		{Square: board.E8, Color: board.Black, Piece: board.King},
		{Square: board.E5, Color: board.Black, Piece: board.Rook},
	}, board.WhiteKingSideCastle, board.NoSquare)
	require.NoError(t, err)

	moves := pos.LegalMoves(board.White)
	assert.NotContains(t, movesToStrings(moves), "e1g1")
}

func TestHasInsufficientMaterial(t *testing.T) {
	kk, err := board.NewPosition([]board.Placement{
		{Square: board.A1, Color: board.White, Piece: board.King},
		{Square: board.A8, Color: board.Black, Piece: board.King},
	}, 0, board.NoSquare)
	require.NoError(t, err)
	assert.True(t, kk.HasInsufficientMaterial())

	kkn, err := board.NewPosition([]board.Placement{
		{Square: board.A1, Color: board.White, Piece: board.King},
		{Square: board.A8, Color: board.Black, Piece: board.King},
		{Square: board.B1, Color: board.White, Piece: board.Knight},
	}, 0, board.NoSquare)
	require.NoError(t, err)
	assert.True(t, kkn.HasInsufficientMaterial())

	kkr, err := board.NewPosition([]board.Placement{
		{Square: board.A1, Color: board.White, Piece: board.King},
		{Square: board.A8, Color: board.Black, Piece: board.King},
		{Square: board.B1, Color: board.White, Piece: board.Rook},
	}, 0, board.NoSquare)
	require.NoError(t, err)
	assert.False(t, kkr.HasInsufficientMaterial())
}

func TestIsChecked(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.A1, Color: board.White, Piece: board.King},
		{Square: board.A8, Color: board.Black, Piece: board.King},
		{Square: board.A5, Color: board.Black, Piece: board.Rook},
	}, 0, board.NoSquare)
	require.NoError(t, err)
	assert.True(t, pos.IsChecked(board.White))
	assert.False(t, pos.IsChecked(board.Black))
}
