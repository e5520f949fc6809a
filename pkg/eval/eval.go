// Package eval contains static position evaluation.
package eval

import (
	"time"

	"github.com/corvuscore/engine/pkg/board"
)

// mobilityTimeThreshold is the minimum per-call time budget at which the
// mobility term is included; below it, mobility is skipped to save time.
const mobilityTimeThreshold = 500 * time.Millisecond

// Evaluator is a static position evaluator, called at quiescence leaves and
// to compute futility margins during the main search.
type Evaluator interface {
	// Evaluate returns the position score in centipawns, from the side to
	// move's point of view. ply is the current search ply (distance from the
	// search root), used to express mate scores relative to the root.
	Evaluate(b *board.Board, ply int, budget time.Duration) board.Score
}

// Static is the engine's evaluator: material, tapered piece-square tables,
// pawn structure, piece terms, king safety and (time permitting) mobility.
type Static struct{}

// Evaluate implements Evaluator.
func (Static) Evaluate(b *board.Board, ply int, budget time.Duration) board.Score {
	if b.Result().IsDecided() {
		// Board already adjudicated a draw (repetition, the fifty-move rule,
		// or insufficient material) when the move leading here was pushed.
		return 0
	}

	turn := b.Turn()
	if len(b.LegalMoves()) == 0 {
		if b.Position().IsChecked(turn) {
			return -(board.Mate - board.Score(ply))
		}
		return 0
	}

	pos := b.Position()
	tau := GamePhase(pos)

	score := materialAndPST(pos, tau)
	score += pawnStructure(pos)
	score += pieceTerms(pos)
	score += kingSafety(pos, tau)
	if budget >= mobilityTimeThreshold {
		score += mobility(pos)
	}

	if turn == board.Black {
		score = -score
	}
	return score
}

// Material is a bare nominal-material evaluator, from the side to move's
// point of view. Used by tests and as a cheap sanity baseline against
// Static.
type Material struct{}

// Evaluate implements Evaluator.
func (Material) Evaluate(b *board.Board, ply int, _ time.Duration) board.Score {
	if b.Result().IsDecided() {
		return 0
	}
	turn := b.Turn()
	if len(b.LegalMoves()) == 0 {
		if b.Position().IsChecked(turn) {
			return -(board.Mate - board.Score(ply))
		}
		return 0
	}

	pos := b.Position()
	var score board.Score
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		score += board.Score(pos.Piece(turn, p).PopCount()-pos.Piece(turn.Opponent(), p).PopCount()) * NominalValue(p)
	}
	return score
}
