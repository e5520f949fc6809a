package board

// pseudoLegalMoves generates all moves for color turn that are legal except
// possibly leaving the mover's own king in check. LegalMoves filters that
// condition out by replaying each move.
func (p Position) pseudoLegalMoves(turn Color) []Move {
	var ret []Move
	own := p.Color(turn)
	opp := p.Color(turn.Opponent())
	occ := own | opp

	ret = p.pawnMoves(turn, ret)

	for _, piece := range []Piece{Knight, Bishop, Rook, Queen} {
		for _, from := range p.pieces[turn][piece].ToSquares() {
			targets := Attackboard(occ, from, piece) &^ own
			ret = p.addTargets(ret, turn, piece, from, targets, opp)
		}
	}

	king := p.pieces[turn][King].LastPopSquare()
	targets := KingAttackboard(king) &^ own
	ret = p.addTargets(ret, turn, King, king, targets, opp)
	ret = p.castlingMoves(turn, occ, ret)

	return ret
}

// addTargets appends one move per set bit in targets, tagging captures.
func (p Position) addTargets(ret []Move, turn Color, piece Piece, from Square, targets, opp Bitboard) []Move {
	for _, to := range targets.ToSquares() {
		if opp.IsSet(to) {
			_, cap, _ := p.PieceAt(to)
			ret = append(ret, Move{From: from, To: to, Piece: piece, Capture: cap, Type: Capture})
		} else {
			ret = append(ret, Move{From: from, To: to, Piece: piece, Type: Quiet})
		}
	}
	return ret
}

var promotionPieces = []Piece{Queen, Rook, Bishop, Knight}

func (p Position) pawnMoves(turn Color, ret []Move) []Move {
	pawns := p.pieces[turn][Pawn]
	occ := p.Occupancy()
	opp := p.Color(turn.Opponent())
	promoRank := PawnPromotionRank(turn)

	for _, from := range pawns.ToSquares() {
		single := PawnMoveboard(occ, turn, BitMask(from))
		if single != 0 {
			to := single.LastPopSquare()
			if promoRank.IsSet(to) {
				for _, promo := range promotionPieces {
					ret = append(ret, Move{From: from, To: to, Piece: Pawn, Promotion: promo, Type: Promotion})
				}
			} else {
				ret = append(ret, Move{From: from, To: to, Piece: Pawn, Type: Push})

				jumpRank := PawnJumpRank(turn)
				double := PawnMoveboard(occ, turn, single) & jumpRank
				if double != 0 {
					ret = append(ret, Move{From: from, To: double.LastPopSquare(), Piece: Pawn, Type: Jump})
				}
			}
		}

		captures := PawnCaptureboard(turn, BitMask(from)) & opp
		for _, to := range captures.ToSquares() {
			_, cap, _ := p.PieceAt(to)
			if promoRank.IsSet(to) {
				for _, promo := range promotionPieces {
					ret = append(ret, Move{From: from, To: to, Piece: Pawn, Promotion: promo, Capture: cap, Type: CapturePromotion})
				}
			} else {
				ret = append(ret, Move{From: from, To: to, Piece: Pawn, Capture: cap, Type: Capture})
			}
		}

		if ep, ok := p.EnPassant(); ok {
			if PawnCaptureboard(turn, BitMask(from)).IsSet(ep) {
				ret = append(ret, Move{From: from, To: ep, Piece: Pawn, Capture: Pawn, Type: EnPassant})
			}
		}
	}
	return ret
}

func (p Position) castlingMoves(turn Color, occ Bitboard, ret []Move) []Move {
	opp := turn.Opponent()
	if p.IsAttacked(opp, p.KingSquare(turn)) {
		return ret
	}

	if turn == White {
		if p.castling.IsAllowed(WhiteKingSideCastle) && occ&(BitMask(F1)|BitMask(G1)) == 0 &&
			!p.IsAttacked(opp, F1) && !p.IsAttacked(opp, G1) {
			ret = append(ret, Move{From: E1, To: G1, Piece: King, Type: KingSideCastle})
		}
		if p.castling.IsAllowed(WhiteQueenSideCastle) && occ&(BitMask(B1)|BitMask(C1)|BitMask(D1)) == 0 &&
			!p.IsAttacked(opp, D1) && !p.IsAttacked(opp, C1) {
			ret = append(ret, Move{From: E1, To: C1, Piece: King, Type: QueenSideCastle})
		}
		return ret
	}

	if p.castling.IsAllowed(BlackKingSideCastle) && occ&(BitMask(F8)|BitMask(G8)) == 0 &&
		!p.IsAttacked(opp, F8) && !p.IsAttacked(opp, G8) {
		ret = append(ret, Move{From: E8, To: G8, Piece: King, Type: KingSideCastle})
	}
	if p.castling.IsAllowed(BlackQueenSideCastle) && occ&(BitMask(B8)|BitMask(C8)|BitMask(D8)) == 0 &&
		!p.IsAttacked(opp, D8) && !p.IsAttacked(opp, C8) {
		ret = append(ret, Move{From: E8, To: C8, Piece: King, Type: QueenSideCastle})
	}
	return ret
}
