package engine_test

import (
	"context"
	"sort"
	"testing"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/board/fen"
	"github.com/corvuscore/engine/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movesToStrings(moves []board.Move) []string {
	ret := make([]string, len(moves))
	for i, m := range moves {
		ret[i] = m.String()
	}
	sort.Strings(ret)
	return ret
}

func TestBook(t *testing.T) {
	ctx := context.Background()

	book, err := engine.NewBook([]engine.Line{
		{"e2e4", "d7d5", "d2d4"},
		{"e2e4", "d7d6"},
		{"d2d4", "d7d6"},
	})
	require.NoError(t, err)

	tests := []struct {
		pos   string
		moves []string
	}{
		{fen.Initial, []string{"d2d4", "e2e4"}},
		{"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1", []string{"d7d6"}},
	}

	for _, tt := range tests {
		list, err := book.Find(ctx, tt.pos)
		assert.NoError(t, err)
		assert.Equal(t, tt.moves, movesToStrings(list))
	}
}

func TestBookExhaustedLineReturnsEmpty(t *testing.T) {
	ctx := context.Background()

	book, err := engine.NewBook([]engine.Line{{"e2e4", "d7d5"}})
	require.NoError(t, err)

	list, err := book.Find(ctx, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	assert.NoError(t, err)
	assert.Empty(t, list)
}
