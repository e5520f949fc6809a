package search

import (
	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/eval"
)

// SEE is a one-ply static exchange evaluator: it plays m and checks whether
// the destination is attacked by the side now to move, without simulating
// any further recaptures. Zero for non-captures.
func SEE(pos board.Position, turn board.Color, m board.Move) board.Score {
	if !m.IsCapture() {
		return 0
	}

	victim := eval.NominalValue(m.Capture)
	attacker := eval.NominalValue(m.Piece)

	next := pos.Apply(turn, m)
	if next.IsAttacked(turn.Opponent(), m.To) {
		return victim - attacker
	}
	return victim
}

// SwapOffSEE computes the full swap-off exchange value of m: it simulates
// the entire sequence of captures and recaptures on m.To with both sides
// always bringing their least valuable attacker forward, then folds the
// resulting gain sequence back into a single minimax value. Unlike SEE, it
// is not used by the default search wiring, but is exported for callers
// that want the stronger ordering signal via Orderer.SEE.
//
// Pieces pinned to their own king or queen (per eval.FindKingQueenPins) in
// the position after m is played are excluded from joining the exchange,
// since moving them off the pin line would expose the piece behind them.
func SwapOffSEE(pos board.Position, turn board.Color, m board.Move) board.Score {
	if !m.IsCapture() {
		return 0
	}

	target := m.To
	occ := pos.Occupancy() &^ board.BitMask(m.From)
	if m.Type == board.EnPassant {
		occ &^= board.BitMask(m.EnPassantCaptureSquare())
	}

	after := pos.Apply(turn, m)
	var pinned [2]board.Bitboard
	for _, c := range [...]board.Color{board.White, board.Black} {
		for _, p := range eval.FindKingQueenPins(after, c) {
			pinned[c] |= board.BitMask(p.Pinned)
		}
	}

	gain := []board.Score{eval.NominalValue(m.Capture)}
	value := eval.NominalValue(m.Piece)
	side := turn.Opponent()

	for {
		attackers := attackersTo(pos, occ, side, target) &^ pinned[side]
		if attackers == 0 {
			break
		}
		from, piece := leastValuableAttacker(pos, attackers, side)

		gain = append(gain, value-gain[len(gain)-1])
		value = eval.NominalValue(piece)
		occ &^= board.BitMask(from)
		side = side.Opponent()
	}

	for i := len(gain) - 1; i > 0; i-- {
		gain[i-1] = -board.Max(-gain[i-1], gain[i])
	}
	return gain[0]
}

// attackersTo returns every square in occ holding a side piece that attacks
// sq, given occupancy occ (which may have shrunk relative to pos during a
// swap-off simulation).
func attackersTo(pos board.Position, occ board.Bitboard, side board.Color, sq board.Square) board.Bitboard {
	diag := board.BishopAttackboard(occ, sq) & occ & (pos.Piece(side, board.Bishop) | pos.Piece(side, board.Queen))
	lines := board.RookAttackboard(occ, sq) & occ & (pos.Piece(side, board.Rook) | pos.Piece(side, board.Queen))
	knights := board.KnightAttackboard(sq) & occ & pos.Piece(side, board.Knight)
	kings := board.KingAttackboard(sq) & occ & pos.Piece(side, board.King)
	pawns := pos.Piece(side, board.Pawn) & occ & board.PawnCaptureboard(side.Opponent(), board.BitMask(sq))
	return diag | lines | knights | kings | pawns
}

// leastValuableOrder ranks piece types by ascending material value; board's
// own Piece enum order (Pawn, Bishop, Knight, ...) does not match value order.
var leastValuableOrder = [...]board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King}

// leastValuableAttacker picks the cheapest piece of side within attackers.
func leastValuableAttacker(pos board.Position, attackers board.Bitboard, side board.Color) (board.Square, board.Piece) {
	for _, p := range leastValuableOrder {
		if bb := attackers & pos.Piece(side, p); bb != 0 {
			return bb.LastPopSquare(), p
		}
	}
	panic("leastValuableAttacker: empty attacker set")
}
