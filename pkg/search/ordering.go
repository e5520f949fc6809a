package search

import (
	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/eval"
)

// SEEFunc evaluates the exchange value of a capture.
type SEEFunc func(pos board.Position, turn board.Color, m board.Move) board.Score

// Priority bonuses for the full move-ordering formula. The TT-move bonus is
// exclusive: a TT move is never combined with the others below it.
const (
	ttMoveBonus      Priority = 10000000
	captureBase      Priority = 100000
	queenPromoBonus  Priority = 900000
	otherPromoBonus  Priority = 300000
	givesCheckBonus  Priority = 50000
	killerBonus      Priority = 80000
	counterMoveBonus Priority = 70000

	quietCaptureBase     Priority = 0
	quietQueenPromoExtra Priority = 9000
)

// Orderer scores moves for the main search and for quiescence capture
// ordering, combining the transposition-table move, MVV-LVA plus SEE,
// promotions, checks and the killer/counter-move/history heuristics.
type Orderer struct {
	History  *History
	Killers  *KillerTable
	Counters *CounterMoveTable
	SEE      SEEFunc
}

// NewOrderer builds an orderer with fresh heuristic tables and the 1-ply
// SEE as its exchange evaluator (the spec'd default; see SwapOffSEE for the
// stronger alternative).
func NewOrderer(maxPly int) *Orderer {
	return &Orderer{
		History:  NewHistory(),
		Killers:  NewKillerTable(maxPly),
		Counters: NewCounterMoveTable(),
		SEE:      SEE,
	}
}

// Score implements the full move-ordering formula used by the main search.
// prev is the move played immediately before this node (for counter-move
// lookup); hasPrev is false at the root or after a null move.
func (o *Orderer) Score(pos board.Position, turn board.Color, ply int, m board.Move, ttMove board.Move, hasTT bool, prev board.Move, hasPrev bool) Priority {
	if hasTT && m.Equals(ttMove) {
		return ttMoveBonus
	}

	var score Priority
	if m.IsCapture() {
		victim := eval.NominalValue(m.Capture)
		attacker := eval.NominalValue(m.Piece)
		score = captureBase + Priority(victim)*100 - Priority(attacker)
		if see := o.SEE(pos, turn, m); see > 0 {
			score += Priority(see)
		}
	}
	if m.IsPromotion() {
		if m.Promotion == board.Queen {
			score += queenPromoBonus
		} else {
			score += otherPromoBonus
		}
	}
	if givesCheck(pos, turn, m) {
		score += givesCheckBonus
	}

	switch {
	case o.Killers != nil && o.Killers.Contains(ply, m):
		score += killerBonus
	case hasPrev && o.Counters != nil && o.Counters.Get(turn, prev.From, prev.To).Equals(m):
		score += counterMoveBonus
	}

	if o.History != nil {
		score += Priority(o.History.Get(turn, m.From, m.To))
	}
	return score
}

// CaptureScore implements the quiescence capture-ordering formula: only
// meaningful for captures and queen promotions, the only moves quiescence's
// move selection considers in the first place.
func (o *Orderer) CaptureScore(m board.Move) Priority {
	victim := eval.NominalValue(m.Capture)
	attacker := eval.NominalValue(m.Piece)
	score := quietCaptureBase + Priority(victim)*10 - Priority(attacker)
	if m.IsPromotion() && m.Promotion == board.Queen {
		score += quietQueenPromoExtra
	}
	return score
}

// QuiescenceMoves filters pseudo-legal moves down to captures and queen
// promotions, the only candidates quiescence search considers.
func QuiescenceMoves(moves []board.Move) []board.Move {
	ret := make([]board.Move, 0, len(moves))
	for _, m := range moves {
		if m.IsCapture() || (m.IsPromotion() && m.Promotion == board.Queen) {
			ret = append(ret, m)
		}
	}
	return ret
}

// givesCheck reports whether playing m leaves the opponent in check.
func givesCheck(pos board.Position, turn board.Color, m board.Move) bool {
	next := pos.Apply(turn, m)
	return next.IsChecked(turn.Opponent())
}
