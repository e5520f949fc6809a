package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/board/fen"
	"github.com/corvuscore/engine/pkg/eval"
	"github.com/corvuscore/engine/pkg/search"
	"github.com/corvuscore/engine/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot() search.Search {
	return search.PVS{
		Eval:  eval.Material{},
		Order: search.NewOrderer(64),
		TT:    search.NewTranspositionTable(context.Background(), 1<<16),
	}
}

func TestIterativeFindsMateAndStops(t *testing.T) {
	pos, turn, noprogress, fullmoves, err := fen.Decode("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)
	b := board.NewBoard(board.NewZobristTable(1), pos, turn, noprogress, fullmoves)

	it := &searchctl.Iterative{Root: newRoot()}
	h, out := it.Launch(context.Background(), b, search.NewTranspositionTable(context.Background(), 1<<16), searchctl.Options{})

	var last search.PV
	for pv := range out {
		last = pv
	}
	_ = h.Halt()

	move, ok := last.Move()
	require.True(t, ok)
	assert.Equal(t, board.A1, move.From)
	assert.Equal(t, board.A8, move.To)
}

func TestIterativeHaltStopsSearch(t *testing.T) {
	b := mustBoard(t, fen.Initial)

	it := &searchctl.Iterative{Root: newRoot()}
	h, out := it.Launch(context.Background(), b, search.NewTranspositionTable(context.Background(), 1<<16), searchctl.Options{})

	// Let it run briefly, then halt; the search must terminate promptly and
	// hand back whatever PV it last completed.
	time.Sleep(10 * time.Millisecond)
	pv := h.Halt()
	assert.True(t, pv.Depth >= 0)

	for range out {
		// Drain until the producer goroutine closes the channel.
	}
}

func TestIterativeRespectsDepthLimit(t *testing.T) {
	b := mustBoard(t, fen.Initial)

	it := &searchctl.Iterative{Root: newRoot()}
	opt := searchctl.Options{DepthLimit: lang.Some(uint(2))}
	h, out := it.Launch(context.Background(), b, search.NewTranspositionTable(context.Background(), 1<<16), opt)

	var last search.PV
	for pv := range out {
		last = pv
	}
	_ = h.Halt()

	assert.True(t, last.Depth <= 2)
}

func TestIterativeRespectsNodeLimit(t *testing.T) {
	b := mustBoard(t, fen.Initial)

	it := &searchctl.Iterative{Root: newRoot()}
	opt := searchctl.Options{NodeLimit: 1}
	h, out := it.Launch(context.Background(), b, search.NewTranspositionTable(context.Background(), 1<<16), opt)

	var last search.PV
	for pv := range out {
		last = pv
	}
	_ = h.Halt()

	assert.LessOrEqual(t, last.Nodes, uint64(64))
}
