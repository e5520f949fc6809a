// Package searchctl drives a search.Search implementation across iterative
// deepening, aspiration windows and a wall-clock time budget, and exposes a
// handle the host can use to halt it.
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold per-call search options.
type Options struct {
	// DepthLimit, if set, caps the search to the given ply depth.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
	// RootMoves, if non-empty, restricts which move may be played at the
	// root (UCI "searchmoves").
	RootMoves []board.Move
	// NodeLimit, if non-zero, caps the total node count across all
	// iterations of the search (UCI "go nodes").
	NodeLimit uint64
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	if len(o.RootMoves) > 0 {
		ret = append(ret, fmt.Sprintf("moves=%v", o.RootMoves))
	}
	if o.NodeLimit > 0 {
		ret = append(ret, fmt.Sprintf("nodes=%v", o.NodeLimit))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher manages iteratively-deepened searches.
type Launcher interface {
	// Launch starts a new search from b's current position. b is expected
	// to be an exclusive (forked) board, not shared with the caller.
	// Successive principal variations are sent on the returned channel,
	// deepening one ply at a time; the channel is closed once the search
	// stops, for any reason.
	Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the host stop an in-flight search.
type Handle interface {
	// Halt stops the search, if running, and returns its last completed PV.
	// Idempotent; blocks until the search has actually produced a first PV.
	Halt() search.PV
}
