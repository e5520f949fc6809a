package engine_test

import (
	"context"
	"testing"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/engine"
	"github.com/corvuscore/engine/pkg/eval"
	"github.com/corvuscore/engine/pkg/search"
	"github.com/corvuscore/engine/pkg/search/searchctl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedCSVOpenings always answers with the same move, regardless of fen.
type fixedCSVOpenings struct{ move board.Move }

func (f fixedCSVOpenings) Lookup(context.Context, string) (board.Move, bool, error) {
	return f.move, true, nil
}

// fixedTablebase always answers with the same move, regardless of position.
type fixedTablebase struct{ move board.Move }

func (f fixedTablebase) Probe(context.Context, board.Position) (board.Move, bool, error) {
	return f.move, true, nil
}

func newTestEngine(opts ...engine.Option) *engine.Engine {
	s := search.PVS{
		Eval:  eval.Material{},
		Order: search.NewOrderer(64),
		TT:    search.NewTranspositionTable(context.Background(), 1 << 16),
	}
	base := []engine.Option{engine.WithOptions(engine.Options{Depth: 2})}
	return engine.New(context.Background(), "test", "test", s, append(base, opts...)...)
}

func TestPlayPrefersCSVOpeningOverBookAndTablebase(t *testing.T) {
	csvMove := board.Move{From: board.E2, To: board.E4, Piece: board.Pawn, Type: board.Jump}
	tbMove := board.Move{From: board.G1, To: board.F3, Piece: board.Knight, Type: board.Quiet}

	book, err := engine.NewBook([]engine.Line{{"d2d4"}})
	require.NoError(t, err)

	e := newTestEngine(
		engine.WithOptions(engine.Options{Depth: 2, UseCSVOpenings: true, UseBook: true, SyzygyPath: "/dev/null"}),
		engine.WithCSVOpenings(fixedCSVOpenings{move: csvMove}),
		engine.WithBook(book),
		engine.WithTablebase(fixedTablebase{move: tbMove}),
	)

	pv, err := e.Play(context.Background(), searchctl.Options{})
	require.NoError(t, err)
	assert.Equal(t, "csv", pv.InfoString)
	assert.Equal(t, 0, pv.Depth)
	require.Len(t, pv.Moves, 1)
	assert.Equal(t, csvMove, pv.Moves[0])
}

func TestPlayFallsBackToBookWhenCSVDisabled(t *testing.T) {
	book, err := engine.NewBook([]engine.Line{{"d2d4"}})
	require.NoError(t, err)
	tbMove := board.Move{From: board.G1, To: board.F3, Piece: board.Knight, Type: board.Quiet}

	e := newTestEngine(
		engine.WithOptions(engine.Options{Depth: 2, UseBook: true, SyzygyPath: "/dev/null"}),
		engine.WithBook(book),
		engine.WithTablebase(fixedTablebase{move: tbMove}),
	)

	pv, err := e.Play(context.Background(), searchctl.Options{})
	require.NoError(t, err)
	assert.Equal(t, "book", pv.InfoString)
	require.Len(t, pv.Moves, 1)
	assert.Equal(t, board.D2, pv.Moves[0].From)
	assert.Equal(t, board.D4, pv.Moves[0].To)
}

func TestPlayFallsBackToTablebaseWhenBookHasNoLine(t *testing.T) {
	book, err := engine.NewBook(nil)
	require.NoError(t, err)
	tbMove := board.Move{From: board.G1, To: board.F3, Piece: board.Knight, Type: board.Quiet}

	e := newTestEngine(
		engine.WithOptions(engine.Options{Depth: 2, UseBook: true, SyzygyPath: "/dev/null"}),
		engine.WithBook(book),
		engine.WithTablebase(fixedTablebase{move: tbMove}),
	)
	require.NoError(t, e.Reset(context.Background(), "8/8/4k3/8/8/4K3/4P3/8 w - - 0 1"))

	pv, err := e.Play(context.Background(), searchctl.Options{})
	require.NoError(t, err)
	assert.Equal(t, "tb", pv.InfoString)
	require.Len(t, pv.Moves, 1)
	assert.Equal(t, tbMove, pv.Moves[0])
}

func TestPlayFallsThroughToSearchWithNoCollaboratorsConfigured(t *testing.T) {
	e := newTestEngine()

	pv, err := e.Play(context.Background(), searchctl.Options{})
	require.NoError(t, err)
	assert.Empty(t, pv.InfoString)
	assert.NotEmpty(t, pv.Moves)
}

func TestPlaySkipsTablebaseWhenTooManyPiecesOnBoard(t *testing.T) {
	// Initial position has 32 pieces, far beyond any TablebaseProbeLimit.
	tbMove := board.Move{From: board.G1, To: board.F3, Piece: board.Knight, Type: board.Quiet}

	e := newTestEngine(
		engine.WithOptions(engine.Options{Depth: 2, SyzygyPath: "/dev/null", TablebaseProbeLimit: 5}),
		engine.WithTablebase(fixedTablebase{move: tbMove}),
	)

	pv, err := e.Play(context.Background(), searchctl.Options{})
	require.NoError(t, err)
	assert.NotEqual(t, "tb", pv.InfoString)
}
