package search_test

import (
	"testing"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPVTableExtractWalksStoredLine(t *testing.T) {
	b := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	hash0 := b.Hash()

	m1 := board.Move{From: board.A1, To: board.A8, Piece: board.Rook, Type: board.Quiet}

	pv := search.NewPVTable()
	pv.Store(hash0, m1)

	line := pv.Extract(b)
	require.Len(t, line, 1)
	assert.Equal(t, m1, line[0])
	assert.Equal(t, hash0, b.Hash(), "board must be restored after Extract")
}

func TestPVTableExtractStopsAtMissingEntry(t *testing.T) {
	b := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	pv := search.NewPVTable()
	assert.Empty(t, pv.Extract(b))
}

func TestPVTableExtractStopsAtIllegalMove(t *testing.T) {
	b := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	pv := search.NewPVTable()
	pv.Store(b.Hash(), board.Move{From: board.A1, To: board.H8, Piece: board.Rook, Type: board.Quiet})

	assert.Empty(t, pv.Extract(b))
}
