package eval

import "github.com/corvuscore/engine/pkg/board"

var passedPawnBonus = [8]int{0, 10, 20, 40, 60, 90, 130, 0}

const (
	doubledPawnPenalty  = 15
	isolatedPawnPenalty = 20
)

// pawnStructure scores passed, doubled and isolated pawns for both sides,
// signed from White's perspective.
func pawnStructure(pos board.Position) board.Score {
	var score board.Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := board.Score(1)
		if c == board.Black {
			sign = -1
		}
		pawns := pos.Piece(c, board.Pawn)
		enemyPawns := pos.Piece(c.Opponent(), board.Pawn)

		for _, sq := range pawns.ToSquares() {
			relRank := int(sq.Rank())
			if c == board.Black {
				relRank = 7 - relRank
			}
			if isPassed(sq, c, enemyPawns) {
				score += sign * board.Score(passedPawnBonus[relRank])
			}
		}

		for f := board.FileA; f <= board.FileH; f++ {
			count := (pawns & board.BitFile(f)).PopCount()
			if count >= 2 {
				score -= sign * board.Score(doubledPawnPenalty*(count-1))
			}
		}

		for _, sq := range pawns.ToSquares() {
			if !hasNeighborFilePawn(sq.File(), pawns) {
				score -= sign * board.Score(isolatedPawnPenalty)
			}
		}
	}
	return score
}

// isPassed reports whether the pawn at sq has no enemy pawn ahead of it on
// its own file or either adjacent file.
func isPassed(sq board.Square, c board.Color, enemyPawns board.Bitboard) bool {
	var front board.Bitboard
	for f := sq.File() - 1; f <= sq.File()+1; f++ {
		if f < board.FileA || f > board.FileH {
			continue
		}
		front |= board.BitFile(f)
	}

	return front&aheadMask(sq, c)&enemyPawns == 0
}

func aheadMask(sq board.Square, c board.Color) board.Bitboard {
	var mask board.Bitboard
	if c == board.White {
		for r := int(sq.Rank()) + 1; r < 8; r++ {
			mask |= board.BitRank(board.Rank(r))
		}
	} else {
		for r := int(sq.Rank()) - 1; r >= 0; r-- {
			mask |= board.BitRank(board.Rank(r))
		}
	}
	return mask
}

func hasNeighborFilePawn(f board.File, pawns board.Bitboard) bool {
	if f > board.FileA && pawns&board.BitFile(f-1) != 0 {
		return true
	}
	if f < board.FileH && pawns&board.BitFile(f+1) != 0 {
		return true
	}
	return false
}
