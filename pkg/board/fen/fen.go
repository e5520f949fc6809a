// Package fen contains utilities for reading and writing positions in FEN notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/corvuscore/engine/pkg/board"
)

// Initial is the FEN for the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode returns a new position and game status from a FEN description.
//
// Example: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string) (board.Position, board.Color, int, int, error) {
	// A FEN record contains six space-separated fields.

	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid number of sections in FEN: %q", fen)
	}

	// (1) Piece placement, from White's perspective: rank 8 down to rank 1,
	// file a through file h within each rank.

	var pieces []board.Placement

	f, r := 0, 7
	for _, c := range []rune(parts[0]) {
		switch {
		case c == '/':
			f, r = 0, r-1

		case unicode.IsDigit(c):
			f += int(c - '0')

		case unicode.IsLetter(c):
			color, piece, ok := parsePiece(c)
			if !ok {
				return board.Position{}, 0, 0, 0, fmt.Errorf("invalid piece %q in FEN: %q", c, fen)
			}
			if f > 7 || r < 0 {
				return board.Position{}, 0, 0, 0, fmt.Errorf("invalid number of squares in FEN: %q", fen)
			}
			sq := board.NewSquare(board.File(f), board.Rank(r))
			pieces = append(pieces, board.Placement{Square: sq, Color: color, Piece: piece})
			f++

		default:
			return board.Position{}, 0, 0, 0, fmt.Errorf("invalid character in FEN: %q", fen)
		}
	}
	if f != 8 || r != 0 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid number of squares in FEN: %q", fen)
	}

	// (2) Active color: "w" or "b".

	active, ok := board.ParseColor(parts[1])
	if !ok {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid active color in FEN: %q", fen)
	}

	// (3) Castling availability: "-" or one or more of "KQkq".

	castling, ok := parseCastling(parts[2])
	if !ok {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid castling in FEN: %q", fen)
	}

	// (4) En passant target square, or "-".

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return board.Position{}, 0, 0, 0, fmt.Errorf("invalid en passant in FEN: %q", fen)
		}
		ep = sq
	}

	// (5) Halfmove clock since the last pawn advance or capture.

	np, err := strconv.Atoi(parts[4])
	if err != nil || np < 0 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid halfmove clock in FEN: %q", fen)
	}

	// (6) Fullmove number, starting at 1 and incremented after Black's move.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 1 {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid fullmove number in FEN: %q", fen)
	}

	pos, err := board.NewPosition(pieces, castling, ep)
	if err != nil {
		return board.Position{}, 0, 0, 0, fmt.Errorf("invalid position in FEN: %q: %v", fen, err)
	}
	return pos, active, np, fm, nil
}

// Encode encodes the position and game data in FEN notation.
func Encode(pos board.Position, turn board.Color, noprogress, fullmoves int) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		blanks := 0
		for f := 0; f < 8; f++ {
			color, piece, ok := pos.PieceAt(board.NewSquare(board.File(f), board.Rank(r)))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > 0 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), turn, printCastling(pos.Castling()), ep, noprogress, fullmoves)
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling
	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	if c == 0 {
		return "-"
	}
	ret := ""
	if c.IsAllowed(board.WhiteKingSideCastle) {
		ret += "K"
	}
	if c.IsAllowed(board.WhiteQueenSideCastle) {
		ret += "Q"
	}
	if c.IsAllowed(board.BlackKingSideCastle) {
		ret += "k"
	}
	if c.IsAllowed(board.BlackQueenSideCastle) {
		ret += "q"
	}
	return ret
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	if piece, ok := board.ParsePiece(r); ok {
		if unicode.IsUpper(r) {
			return board.White, piece, true
		}
		return board.Black, piece, true
	}
	return 0, 0, false
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
