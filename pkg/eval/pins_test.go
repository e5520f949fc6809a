package eval_test

import (
	"testing"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/board/fen"
	"github.com/corvuscore/engine/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindKingQueenPinsDetectsRookPinOnFile(t *testing.T) {
	pos, _, _, _, err := fen.Decode("4k3/8/8/3pq3/8/8/8/4RK2 w - - 0 1")
	require.NoError(t, err)

	pins := eval.FindKingQueenPins(pos, board.Black)
	require.Len(t, pins, 1)
	assert.Equal(t, board.E5, pins[0].Pinned)
	assert.Equal(t, board.E8, pins[0].Target)
	assert.Equal(t, board.E1, pins[0].Attacker)
}

func TestFindKingQueenPinsNoneOnOpenBoard(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Empty(t, eval.FindKingQueenPins(pos, board.White))
	assert.Empty(t, eval.FindKingQueenPins(pos, board.Black))
}
