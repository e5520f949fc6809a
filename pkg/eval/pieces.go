package eval

import "github.com/corvuscore/engine/pkg/board"

const (
	bishopPairBonus       = 30
	rookOpenFileBonus     = 25
	rookSemiOpenFileBonus = 15
)

// pieceTerms scores the bishop pair and rooks on open/semi-open files,
// signed from White's perspective.
func pieceTerms(pos board.Position) board.Score {
	var score board.Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := board.Score(1)
		if c == board.Black {
			sign = -1
		}

		if pos.Piece(c, board.Bishop).PopCount() >= 2 {
			score += sign * bishopPairBonus
		}

		ownPawns := pos.Piece(c, board.Pawn)
		enemyPawns := pos.Piece(c.Opponent(), board.Pawn)
		for _, sq := range pos.Piece(c, board.Rook).ToSquares() {
			file := board.BitFile(sq.File())
			ours := ownPawns&file != 0
			theirs := enemyPawns&file != 0
			switch {
			case !ours && !theirs:
				score += sign * rookOpenFileBonus
			case !ours:
				score += sign * rookSemiOpenFileBonus
			}
		}
	}
	return score
}
