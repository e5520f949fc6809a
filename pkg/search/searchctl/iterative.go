package searchctl

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// defaultDepthCap bounds a search with neither a requested depth limit nor a
// clock-derived one.
const defaultDepthCap = 64

// aspirationWindow is the half-width, in centipawns, of the window placed
// around the previous iteration's score before falling back to a full
// re-search.
const aspirationWindow = board.Score(50)

// Iterative drives Root through increasing depths with aspiration windows,
// widening to a full window on a fail-high/low, stopping at a time deadline,
// a forced mate, or a caller-requested depth limit. It remembers the PV of
// its last search to extend the depth budget when the opponent plays the
// predicted reply.
type Iterative struct {
	Root search.Search

	mu                sync.Mutex
	age               uint64
	continuationHash  board.ZobristHash
	hasContinuation   bool
	continuationBonus int
}

func (i *Iterative) Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go i.process(ctx, h, b, tt, opt, out)
	return h, out
}

func (i *Iterative) process(ctx context.Context, h *handle, b *board.Board, tt search.TranspositionTable, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	hardCap := defaultDepthCap
	if v, ok := opt.DepthLimit.V(); ok {
		hardCap = int(v)
	}

	i.mu.Lock()
	i.age++
	if i.age%4 == 0 {
		if m, ok := interface{}(i.Root).(interface{ MaintainKillers() }); ok {
			m.MaintainKillers()
		}
	}
	bonus := 0
	if i.hasContinuation && i.continuationHash == b.Hash() {
		bonus = i.continuationBonus
	}
	i.mu.Unlock()

	depthCap := hardCap
	budget, timeDepthCap := Allocate(b, opt.TimeControl, hardCap)
	if timeDepthCap < depthCap {
		depthCap = timeDepthCap
	}
	depthCap += bonus
	if depthCap > hardCap+3 {
		depthCap = hardCap + 3
	}

	safety := math.Min(0.1, 0.05*math.Max(1, budget.Seconds()))
	usable := math.Max(0.05, budget.Seconds()-safety)
	deadline := time.Now().Add(time.Duration(usable * float64(time.Second)))

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	pvTable := search.NewPVTable()

	var bestMove board.Move
	var bestScore board.Score
	var bestMoves []board.Move
	var totalNodes uint64
	haveMove := false
	depthReached := 0

	start := time.Now()

	// remainingNodes reports the node budget left for the next Root.Search
	// call under opt.NodeLimit, which bounds the cumulative count across all
	// iterations rather than any single one. Zero means unbounded.
	remainingNodes := func() uint64 {
		if opt.NodeLimit == 0 {
			return 0
		}
		if totalNodes >= opt.NodeLimit {
			return 1
		}
		return opt.NodeLimit - totalNodes
	}

	seedNodes, seedScore, seedMove, err := i.Root.Search(wctx, b, 1, board.NegInf, board.Inf, deadline, budget, remainingNodes(), pvTable, opt.RootMoves)
	totalNodes += seedNodes
	if err == nil && seedMove.From != seedMove.To {
		bestMove, bestScore, haveMove = seedMove, seedScore, true
		bestMoves = pvTable.Extract(b)
		depthReached = 1
		i.emit(h, out, search.PV{Depth: 1, Moves: bestMoves, Score: bestScore, Nodes: totalNodes, Time: time.Since(start)})
	}

	for depth := 2; depth <= depthCap; depth++ {
		if h.quit.IsClosed() {
			break
		}

		pvTable.Clear()

		alpha, beta := board.NegInf, board.Inf
		if haveMove {
			alpha = bestScore - aspirationWindow
			beta = bestScore + aspirationWindow
		}

		nodes, score, move, err := i.Root.Search(wctx, b, depth, alpha, beta, deadline, budget, remainingNodes(), pvTable, opt.RootMoves)
		totalNodes += nodes
		if err != nil {
			if err == search.ErrHalted {
				break
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
			break
		}

		if haveMove && (score <= alpha || score >= beta) {
			pvTable.Clear()
			nodes, score, move, err = i.Root.Search(wctx, b, depth, board.NegInf, board.Inf, deadline, budget, remainingNodes(), pvTable, opt.RootMoves)
			totalNodes += nodes
			if err != nil {
				if err == search.ErrHalted {
					break
				}
				logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
				break
			}
		}

		if move.From == move.To && !haveMove {
			// Nothing usable yet at all; keep trying deeper iterations
			// until the deadline, since depth 1 might have also failed.
			continue
		}
		if move.From != move.To {
			bestMove, bestScore, haveMove = move, score, true
			bestMoves = pvTable.Extract(b)
		} else {
			bestScore = score
		}

		depthReached = depth
		i.emit(h, out, search.PV{Depth: depthReached, Moves: bestMoves, Score: bestScore, Nodes: totalNodes, Time: time.Since(start)})

		if md, ok := bestScore.MateDistance(); ok && md <= depth {
			break
		}
	}

	if !haveMove {
		bestMove, haveMove = randomRootMove(b, opt.RootMoves)
		if haveMove {
			bestMoves = []board.Move{bestMove}
			depthReached = 0
			i.emit(h, out, search.PV{Depth: 0, Moves: bestMoves, Score: 0, Nodes: totalNodes, Time: time.Since(start)})
		}
	}

	finalPV := search.PV{Depth: depthReached, Moves: bestMoves, Score: bestScore, Nodes: totalNodes, Time: time.Since(start)}

	i.mu.Lock()
	if len(bestMoves) >= 2 {
		cont := b.Fork()
		if cont.PushMove(bestMoves[0]) && cont.PushMove(bestMoves[1]) {
			i.continuationHash = cont.Hash()
			i.hasContinuation = true
			i.continuationBonus = minInt(len(bestMoves)-2, 3)
		}
	} else {
		i.hasContinuation = false
	}
	i.mu.Unlock()

	h.mu.Lock()
	h.pv = finalPV
	h.mu.Unlock()
}

func (i *Iterative) emit(h *handle, out chan search.PV, pv search.PV) {
	h.mu.Lock()
	h.pv = pv
	h.mu.Unlock()

	select {
	case <-out:
	default:
	}
	out <- pv

	h.init.Close()
}

// randomRootMove picks uniformly at random among b's legal moves, filtered
// by allowed, when every search iteration timed out before returning usable
// results.
func randomRootMove(b *board.Board, allowed []board.Move) (board.Move, bool) {
	legal := b.LegalMoves()
	if len(allowed) > 0 {
		var filtered []board.Move
		for _, m := range legal {
			for _, rm := range allowed {
				if m.Equals(rm) {
					filtered = append(filtered, m)
					break
				}
			}
		}
		legal = filtered
	}
	if len(legal) == 0 {
		return board.Move{}, false
	}
	return legal[rand.Intn(len(legal))], true
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}
