package eval

import "github.com/corvuscore/engine/pkg/board"

// NominalValue is the base material value of a piece in centipawns. The king
// has no material value; it cannot be captured.
func NominalValue(p board.Piece) board.Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight:
		return 320
	case board.Bishop:
		return 330
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of playing move m, used by
// move ordering (MVV-LVA) and delta pruning.
func NominalValueGain(m board.Move) board.Score {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}

// phaseWeight per piece type in the tapered game-phase computation: knight 1,
// bishop 1, rook 2, queen 4.
func phaseWeight(p board.Piece) int {
	switch p {
	case board.Knight, board.Bishop:
		return 1
	case board.Rook:
		return 2
	case board.Queen:
		return 4
	default:
		return 0
	}
}

const totalPhase = 24

// GamePhase returns tau in [0,256]: 0 is pure middlegame, 256 pure endgame.
func GamePhase(pos board.Position) int {
	phase := totalPhase
	for c := board.ZeroColor; c < board.NumColors; c++ {
		for p := board.ZeroPiece; p < board.NumPieces; p++ {
			phase -= pos.Piece(c, p).PopCount() * phaseWeight(p)
		}
	}
	if phase < 0 {
		phase = 0
	}
	return (phase*256 + totalPhase/2) / totalPhase
}

// materialAndPST returns the tapered material + piece-square term, signed
// from White's perspective.
func materialAndPST(pos board.Position, tau int) board.Score {
	var score board.Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := board.Score(1)
		if c == board.Black {
			sign = -1
		}
		for p := board.ZeroPiece; p < board.NumPieces; p++ {
			for _, sq := range pos.Piece(c, p).ToSquares() {
				viewSq := sq
				if c == board.Black {
					viewSq = sq.Mirror()
				}
				mg := pstMG[p][viewSq]
				eg := pstEG[p][viewSq]
				posBonus := (mg*(256-tau) + eg*tau) / 256
				score += sign * (NominalValue(p) + board.Score(posBonus))
			}
		}
	}
	return score
}
