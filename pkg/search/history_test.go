package search_test

import (
	"testing"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestHistoryUpdateAccumulatesDepthSquared(t *testing.T) {
	h := search.NewHistory()
	h.Update(board.White, board.E2, board.E4, 4)
	assert.Equal(t, int32(16), h.Get(board.White, board.E2, board.E4))

	h.Update(board.White, board.E2, board.E4, 3)
	assert.Equal(t, int32(16+9), h.Get(board.White, board.E2, board.E4))
}

func TestHistorySaturatesAtCap(t *testing.T) {
	h := search.NewHistory()
	for i := 0; i < 20; i++ {
		h.Update(board.White, board.E2, board.E4, 100)
	}
	assert.LessOrEqual(t, h.Get(board.White, board.E2, board.E4), int32(10000))
}

func TestHistoryIsolatedBySquareAndSide(t *testing.T) {
	h := search.NewHistory()
	h.Update(board.White, board.E2, board.E4, 5)
	assert.Equal(t, int32(0), h.Get(board.Black, board.E2, board.E4))
	assert.Equal(t, int32(0), h.Get(board.White, board.D2, board.D4))
}
