package eval

import "github.com/corvuscore/engine/pkg/board"

const mobilityWeight = 2

// mobility scores squares attacked by non-king pieces, signed from White's
// perspective. Only computed when the per-call time budget allows it; it is
// the most expensive term in the pipeline.
func mobility(pos board.Position) board.Score {
	occ := pos.Occupancy()
	var score board.Score

	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := board.Score(1)
		if c == board.Black {
			sign = -1
		}
		for p := board.Pawn; p < board.King; p++ {
			for _, sq := range pos.Piece(c, p).ToSquares() {
				var attacks board.Bitboard
				if p == board.Pawn {
					attacks = board.PawnCaptureboard(c, board.BitMask(sq))
				} else {
					attacks = board.Attackboard(occ, sq, p)
				}
				score += sign * board.Score(attacks.PopCount()*mobilityWeight)
			}
		}
	}
	return score
}
