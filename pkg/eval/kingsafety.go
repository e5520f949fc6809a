package eval

import "github.com/corvuscore/engine/pkg/board"

const (
	kingShieldBonus = 8
	kingAttackWeight = 10
	kingSafetyPhaseLimit = 200
)

// kingSafety scores pawn shelter and attacked squares in the nine-square king
// zone, skipped in the deep endgame (tau > 200). Signed from White's
// perspective.
func kingSafety(pos board.Position, tau int) board.Score {
	if tau > kingSafetyPhaseLimit {
		return 0
	}

	var score board.Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := board.Score(1)
		if c == board.Black {
			sign = -1
		}

		ksq := pos.KingSquare(c)
		shieldRank := int(ksq.Rank()) + 1
		if c == board.Black {
			shieldRank = int(ksq.Rank()) - 1
		}
		if shieldRank >= 0 && shieldRank <= 7 {
			for f := int(ksq.File()) - 1; f <= int(ksq.File())+1; f++ {
				if f < 0 || f > 7 {
					continue
				}
				sq := board.NewSquare(board.File(f), board.Rank(shieldRank))
				if pos.Piece(c, board.Pawn).IsSet(sq) {
					score += sign * kingShieldBonus
				}
			}
		}

		zone := board.KingAttackboard(ksq) | board.BitMask(ksq)
		attacked := 0
		for _, sq := range zone.ToSquares() {
			if pos.IsAttacked(c.Opponent(), sq) {
				attacked++
			}
		}
		score -= sign * board.Score(attacked*kingAttackWeight)
	}
	return score
}
