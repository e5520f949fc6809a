package board_test

import (
	"testing"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSquare(t *testing.T) {
	assert.Equal(t, board.A1, board.NewSquare(board.FileA, board.Rank1))
	assert.Equal(t, board.H1, board.NewSquare(board.FileH, board.Rank1))
	assert.Equal(t, board.A8, board.NewSquare(board.FileA, board.Rank8))
	assert.Equal(t, board.H8, board.NewSquare(board.FileH, board.Rank8))
	assert.Equal(t, board.E4, board.NewSquare(board.FileE, board.Rank4))
}

func TestSquareFileRank(t *testing.T) {
	assert.Equal(t, board.FileE, board.E4.File())
	assert.Equal(t, board.Rank4, board.E4.Rank())
}

func TestSquareMirror(t *testing.T) {
	assert.Equal(t, board.A8, board.A1.Mirror())
	assert.Equal(t, board.H1, board.H8.Mirror())
	assert.Equal(t, board.E4, board.E5.Mirror())
}

func TestSquareString(t *testing.T) {
	assert.Equal(t, "a1", board.A1.String())
	assert.Equal(t, "h8", board.H8.String())
	assert.Equal(t, "e4", board.E4.String())
}

func TestParseSquareStr(t *testing.T) {
	sq, err := board.ParseSquareStr("e4")
	require.NoError(t, err)
	assert.Equal(t, board.E4, sq)

	_, err = board.ParseSquareStr("e9")
	assert.Error(t, err)

	_, err = board.ParseSquareStr("e")
	assert.Error(t, err)
}

func TestIsSameRankOrFile(t *testing.T) {
	assert.True(t, board.IsSameRankOrFile(board.A1, board.A8))
	assert.True(t, board.IsSameRankOrFile(board.A1, board.H1))
	assert.False(t, board.IsSameRankOrFile(board.A1, board.B2))
}

func TestIsSameDiagonal(t *testing.T) {
	assert.True(t, board.IsSameDiagonal(board.A1, board.H8))
	assert.True(t, board.IsSameDiagonal(board.A8, board.H1))
	assert.False(t, board.IsSameDiagonal(board.A1, board.A8))
}
