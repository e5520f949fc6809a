package search

import (
	"context"
	"time"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// deltaPruningMargin is the centipawn cushion above the biggest plausible
// single-move material swing (a queen) used to prune hopeless captures.
const deltaPruningMargin = 975

// Quiescence extends the main search past its depth horizon along forcing
// lines (captures, queen promotions and the moves among them that give
// check) until the position settles, to avoid misjudging a position mid
// exchange.
type Quiescence struct {
	Eval  eval.Evaluator
	Order *Orderer
	TT    TranspositionTable
}

// Search returns the node count and the side-to-move's score for b's
// current position.
func (q Quiescence) Search(ctx context.Context, b *board.Board, ply int, alpha, beta board.Score, deadline time.Time, budget time.Duration) (uint64, board.Score) {
	run := &quiescenceRun{eval: q.Eval, order: q.Order, tt: q.TT, b: b, deadline: deadline, budget: budget}
	score := run.search(ctx, ply, alpha, beta)
	return run.nodes, score
}

type quiescenceRun struct {
	eval     eval.Evaluator
	order    *Orderer
	tt       TranspositionTable
	b        *board.Board
	deadline time.Time
	budget   time.Duration
	nodes    uint64
}

func (r *quiescenceRun) search(ctx context.Context, ply int, alpha, beta board.Score) board.Score {
	if r.pastDeadline(ctx) {
		return 0
	}
	r.nodes++

	hash := r.b.Hash()
	if entry, ok := r.tt.Probe(hash, ply); ok && entry.Depth >= 0 {
		switch entry.Bound {
		case ExactBound:
			return entry.Score
		case LowerBound:
			if entry.Score >= beta {
				return beta
			}
		case UpperBound:
			if entry.Score <= alpha {
				return alpha
			}
		}
	}

	turn := r.b.Turn()
	standPat := r.eval.Evaluate(r.b, ply, r.budget)
	if standPat >= beta {
		return beta
	}
	if standPat < alpha-deltaPruningMargin {
		return alpha
	}
	if standPat > alpha {
		alpha = standPat
	}

	origAlpha := alpha
	pos := r.b.Position()
	moves := QuiescenceMoves(pos.PseudoLegalMoves(turn))
	list := NewMoveList(moves, func(m board.Move) Priority { return r.order.CaptureScore(m) })

	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		giving := givesCheck(pos, turn, m)
		if !giving && r.order.SEE(pos, turn, m) < 0 {
			continue
		}

		if !r.b.PushMove(m) {
			continue
		}
		score := r.search(ctx, ply+1, beta.Negate(), alpha.Negate()).Negate()
		r.b.PopMove()

		if score >= beta {
			r.tt.Store(hash, ply, 0, beta, LowerBound, m)
			return beta
		}
		if score > alpha {
			alpha = score
		}

		if r.pastDeadline(ctx) {
			break
		}
	}

	if alpha > origAlpha {
		r.tt.Store(hash, ply, 0, alpha, ExactBound, board.Move{})
	} else {
		r.tt.Store(hash, ply, 0, alpha, UpperBound, board.Move{})
	}
	return alpha
}

func (r *quiescenceRun) pastDeadline(ctx context.Context) bool {
	if contextx.IsCancelled(ctx) {
		return true
	}
	return !r.deadline.IsZero() && !time.Now().Before(r.deadline)
}
