package search

import (
	"context"
	"time"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// futilityMargins[d] is the centipawn margin below which a node at depth d
// is pruned if the static evaluation plus margin cannot reach alpha.
var futilityMargins = [4]board.Score{0, 200, 350, 500}

// PVS is a fail-hard principal-variation search: null-window scout searches
// off the first move at each node, null-move pruning, internal iterative
// deepening, late-move reductions, futility pruning and check extensions,
// falling through to Quiescence at the depth horizon.
type PVS struct {
	Eval  eval.Evaluator
	Order *Orderer
	TT    TranspositionTable
}

// Search runs a fixed-depth, fixed-window search from b's current position
// and returns the node count, score and best move. rootMoves, if non-empty,
// restricts which root move may be played. nodes caps the total node count;
// zero means unbounded. Implements the Search interface.
func (s PVS) Search(ctx context.Context, b *board.Board, depth int, alpha, beta board.Score, deadline time.Time, budget time.Duration, nodes uint64, pv *PVTable, rootMoves []board.Move) (uint64, board.Score, board.Move, error) {
	run := &pvsRun{eval: s.Eval, order: s.Order, tt: s.TT, b: b, deadline: deadline, budget: budget, nodeLimit: nodes, pv: pv, rootMoves: rootMoves}
	score, move, ok := run.search(ctx, depth, alpha, beta, 0, true)
	if !ok {
		return run.nodes, score, move, ErrHalted
	}
	return run.nodes, score, move, nil
}

// MaintainKillers clears deep killer-move slots, called periodically by the
// iterative deepener (see searchctl.Iterative).
func (s PVS) MaintainKillers() {
	if s.Order != nil && s.Order.Killers != nil {
		s.Order.Killers.PruneDeep()
	}
}

type pvsRun struct {
	eval      eval.Evaluator
	order     *Orderer
	tt        TranspositionTable
	b         *board.Board
	deadline  time.Time
	budget    time.Duration
	nodeLimit uint64
	pv        *PVTable
	rootMoves []board.Move
	nodes     uint64
}

func (r *pvsRun) pastDeadline(ctx context.Context) bool {
	if r.nodeLimit > 0 && r.nodes >= r.nodeLimit {
		return true
	}
	if contextx.IsCancelled(ctx) {
		return true
	}
	return !r.deadline.IsZero() && !time.Now().Before(r.deadline)
}

// search runs one node of the tree. The returned bool is true iff the
// deadline was not hit mid-search: false means the score and move are
// meaningless and the caller must discard them and stop. This is distinct
// from "no move available" (a zero board.Move with ok=true), which happens
// at terminal nodes, after mate/stalemate, after null-move or futility
// cutoffs, and whenever root-move filtering leaves nothing to play.
func (r *pvsRun) search(ctx context.Context, depth int, alpha, beta board.Score, ply int, isPV bool) (board.Score, board.Move, bool) {
	if r.pastDeadline(ctx) {
		return 0, board.Move{}, false
	}
	r.nodes++

	turn := r.b.Turn()

	if r.b.Result().IsDecided() {
		return 0, board.Move{}, true
	}

	legal := r.b.LegalMoves()
	if len(legal) == 0 {
		if r.b.Position().IsChecked(turn) {
			return -(board.Mate - board.Score(ply)), board.Move{}, true
		}
		return 0, board.Move{}, true
	}

	alpha = board.Max(alpha, -(board.Mate - board.Score(ply)))
	beta = board.Min(beta, board.Mate-board.Score(ply)-1)
	if alpha >= beta {
		return alpha, board.Move{}, true
	}

	hash := r.b.Hash()
	var ttMove board.Move
	hasTT := false
	if entry, ok := r.tt.Probe(hash, ply); ok {
		ttMove = entry.Move
		hasTT = ttMove.From != ttMove.To
		if entry.Depth >= depth && !isPV {
			switch entry.Bound {
			case ExactBound:
				return entry.Score, ttMove, true
			case LowerBound:
				if entry.Score >= beta {
					return beta, ttMove, true
				}
			case UpperBound:
				if entry.Score <= alpha {
					return alpha, ttMove, true
				}
			}
		}
	}

	if depth <= 0 {
		nodes, score := (Quiescence{Eval: r.eval, Order: r.order, TT: r.tt}).Search(ctx, r.b, ply, alpha, beta, r.deadline, r.budget)
		r.nodes += nodes
		return score, board.Move{}, true
	}

	pos := r.b.Position()
	isCheck := pos.IsChecked(turn)

	if !isPV && !isCheck && depth >= 3 && hasNonPawnMaterial(pos, turn) {
		R := 2
		if depth > 6 {
			R = 3
		}
		if r.b.PushNull() {
			s, _, ok := r.search(ctx, depth-1-R, beta.Negate(), beta.Negate()+1, ply+1, false)
			r.b.PopMove()
			if ok && s.Negate() >= beta {
				return beta, board.Move{}, true
			}
			if !ok {
				return 0, board.Move{}, false
			}
		}
	}

	if isPV && !hasTT && depth >= 4 {
		_, m, ok := r.search(ctx, depth-2, alpha, beta, ply, true)
		if !ok {
			return 0, board.Move{}, false
		}
		if m.From != m.To {
			ttMove = m
			hasTT = true
		}
	}

	if depth <= 3 && !isPV && !isCheck && alpha > -(board.Mate-100) && alpha < board.Mate-100 {
		margin := futilityMargins[depth]
		if r.eval.Evaluate(r.b, ply, r.budget)+margin <= alpha {
			return alpha, board.Move{}, true
		}
	}

	if ply == 0 && len(r.rootMoves) > 0 {
		filtered := legal[:0]
		for _, m := range legal {
			for _, rm := range r.rootMoves {
				if m.Equals(rm) {
					filtered = append(filtered, m)
					break
				}
			}
		}
		legal = filtered
		if len(legal) == 0 {
			return 0, board.Move{}, true
		}
	}

	prevMove, hasPrev := r.b.LastMove()
	list := NewMoveList(legal, func(m board.Move) Priority {
		return r.order.Score(pos, turn, ply, m, ttMove, hasTT, prevMove, hasPrev)
	})

	if isCheck {
		depth++
	}

	origAlpha := alpha
	bestScore := board.NegInf
	var bestMove board.Move
	movesSearched := 0

	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		giving := givesCheck(pos, turn, m)
		reducible := !isPV && movesSearched >= 4 && depth >= 3 && !isCheck && !giving && !m.IsCapture() && !m.IsPromotion()
		R := 0
		if reducible {
			R = 1
			if movesSearched >= 8 {
				R = 2
			}
			if depth > 6 {
				R++
			}
		}

		if !r.b.PushMove(m) {
			continue
		}

		var score board.Score
		okRes := true
		if movesSearched == 0 {
			var s board.Score
			s, _, okRes = r.search(ctx, depth-1, beta.Negate(), alpha.Negate(), ply+1, isPV)
			score = s.Negate()
		} else {
			s, _, ok1 := r.search(ctx, depth-1-R, alpha.Negate()-1, alpha.Negate(), ply+1, false)
			score = s.Negate()
			okRes = ok1
			if okRes && R > 0 && score > alpha {
				s2, _, ok2 := r.search(ctx, depth-1, alpha.Negate()-1, alpha.Negate(), ply+1, false)
				score = s2.Negate()
				okRes = ok2
			}
			if okRes && score > alpha && score < beta {
				s3, _, ok3 := r.search(ctx, depth-1, beta.Negate(), alpha.Negate(), ply+1, true)
				score = s3.Negate()
				okRes = ok3
			}
		}
		r.b.PopMove()
		movesSearched++

		if !okRes {
			return 0, board.Move{}, false
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				r.pv.Store(hash, m)
				if alpha >= beta {
					if !m.IsCapture() {
						r.order.History.Update(turn, m.From, m.To, depth)
						r.order.Killers.Push(ply, m)
						if hasPrev {
							r.order.Counters.Update(turn, prevMove.From, prevMove.To, m)
						}
					}
					break
				}
			}
		}

		if r.pastDeadline(ctx) {
			return 0, board.Move{}, false
		}
	}

	var bound Bound
	switch {
	case bestScore <= origAlpha:
		bound = UpperBound
	case bestScore >= beta:
		bound = LowerBound
	default:
		bound = ExactBound
	}
	r.tt.Store(hash, ply, depth, bestScore, bound, bestMove)

	return bestScore, bestMove, true
}

func hasNonPawnMaterial(pos board.Position, turn board.Color) bool {
	return pos.Piece(turn, board.Knight) != 0 || pos.Piece(turn, board.Bishop) != 0 ||
		pos.Piece(turn, board.Rook) != 0 || pos.Piece(turn, board.Queen) != 0
}
