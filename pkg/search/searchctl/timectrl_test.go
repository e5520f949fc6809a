package searchctl_test

import (
	"testing"
	"time"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/board/fen"
	"github.com/corvuscore/engine/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, f string) *board.Board {
	t.Helper()
	pos, turn, noprogress, fullmoves, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(1), pos, turn, noprogress, fullmoves)
}

func TestAllocateWithNoClockReturnsDefault(t *testing.T) {
	b := mustBoard(t, fen.Initial)

	budget, depth := searchctl.Allocate(b, lang.Optional[searchctl.TimeControl]{}, 12)
	assert.Equal(t, time.Second, budget)
	assert.Equal(t, 12, depth)
}

func TestAllocateMoveTimeMapsToDepthCap(t *testing.T) {
	b := mustBoard(t, fen.Initial)

	tc := searchctl.TimeControl{MoveTime: 300 * time.Millisecond}
	budget, depth := searchctl.Allocate(b, lang.Some(tc), 12)
	assert.Equal(t, 300*time.Millisecond, budget)
	assert.Equal(t, 7, depth) // max(2, 12-5)
}

func TestAllocateClockSplitsRemainderAcrossMoves(t *testing.T) {
	b := mustBoard(t, fen.Initial)

	tc := searchctl.TimeControl{White: 60 * time.Second, Black: 60 * time.Second}
	budget, depth := searchctl.Allocate(b, lang.Some(tc), 20)
	assert.True(t, budget > 0)
	assert.True(t, budget < 60*time.Second)
	assert.True(t, depth > 0)
	assert.True(t, depth <= 20)
}

func TestAllocateLowRemainderIsCapped(t *testing.T) {
	b := mustBoard(t, fen.Initial)

	tc := searchctl.TimeControl{White: 5 * time.Second, Black: 5 * time.Second}
	budget, _ := searchctl.Allocate(b, lang.Some(tc), 20)
	assert.True(t, budget <= 5*time.Second*15/100+time.Millisecond)
}
