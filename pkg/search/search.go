package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corvuscore/engine/pkg/board"
)

// ErrHalted is returned by a Search implementation when it was asked to stop
// before completing, via a cancelled context or an expired deadline.
var ErrHalted = errors.New("search halted")

// Limits bounds a search request by depth and total node count, per
// spec.md §6's configuration table. Zero means unbounded for either field.
type Limits struct {
	Depth int
	Nodes uint64
}

// PV is a completed (or partially completed, if halted mid-iteration)
// principal variation: the best line found, its score from the root side's
// point of view, and the work it took to find it. InfoString tags the
// origin of the result when it did not come from the core search (e.g.
// "csv", "book", "tb" for a collaborator short-circuit in engine.Engine.Play);
// empty for a result produced by the search itself.
type PV struct {
	Depth      int
	Moves      []board.Move
	Score      board.Score
	Nodes      uint64
	Time       time.Duration
	InfoString string
}

// Move returns the PV's best move, if any.
func (pv PV) Move() (board.Move, bool) {
	if len(pv.Moves) == 0 {
		return board.Move{}, false
	}
	return pv.Moves[0], true
}

func (pv PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v moves=%v", pv.Depth, pv.Score, pv.Nodes, pv.Time, pv.Moves)
}

// Search is a single fixed-window search algorithm: the unit of work the
// iterative deepener (package searchctl) drives one depth, and one
// aspiration window, at a time. b is searched from its current position;
// rootMoves, if non-empty, restricts the move played at the root to that
// set (used for "searchmoves"). alpha/beta set the root search window, so
// the caller can re-run a failed aspiration window at full width. nodes
// caps the total node count for this call; zero means unbounded.
type Search interface {
	Search(ctx context.Context, b *board.Board, depth int, alpha, beta board.Score, deadline time.Time, budget time.Duration, nodes uint64, pv *PVTable, rootMoves []board.Move) (uint64, board.Score, board.Move, error)
}
