package board

import "fmt"

// Square identifies one of the 64 squares using conventional little-endian
// rank-file mapping: A1 = 0, B1 = 1, ..., H1 = 7, A2 = 8, ..., H8 = 63. This
// doubles as a bit index into a Bitboard.
type Square int8

// File represents a board file, A=0 .. H=7.
type File int8

// Rank represents a board rank, Rank1=0 .. Rank8=7.
type Rank int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	ZeroSquare Square = 0
	NumSquares Square = 64
	// NoSquare is the sentinel for "no en passant target".
	NoSquare Square = -1
)

// NewSquare returns the square for the given file and rank.
func NewSquare(f File, r Rank) Square {
	return Square(int8(r)<<3 | int8(f))
}

// File returns the file of the square, A=0 .. H=7.
func (sq Square) File() File {
	return File(sq & 0x7)
}

// Rank returns the rank of the square, Rank1=0 .. Rank8=7.
func (sq Square) Rank() Rank {
	return Rank(sq >> 3)
}

// Mirror returns the square reflected across the board's horizontal midline,
// i.e., A1 <-> A8. Used to read piece-square tables from Black's viewpoint.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

func (f File) String() string {
	return string(rune('a' + int(f)))
}

func (r Rank) String() string {
	return string(rune('1' + int(r)))
}

func (sq Square) String() string {
	return fmt.Sprintf("%v%v", sq.File(), sq.Rank())
}

// ParseFile parses a file letter, 'a'..'h' or 'A'..'H'.
func ParseFile(r rune) (File, bool) {
	switch {
	case r >= 'a' && r <= 'h':
		return File(r - 'a'), true
	case r >= 'A' && r <= 'H':
		return File(r - 'A'), true
	default:
		return 0, false
	}
}

// ParseRank parses a rank digit, '1'..'8'.
func ParseRank(r rune) (Rank, bool) {
	if r >= '1' && r <= '8' {
		return Rank(r - '1'), true
	}
	return 0, false
}

// ParseSquare parses a file/rank rune pair into a Square.
func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return 0, fmt.Errorf("invalid file: %q", f)
	}
	rank, ok := ParseRank(r)
	if !ok {
		return 0, fmt.Errorf("invalid rank: %q", r)
	}
	return NewSquare(file, rank), nil
}

// ParseSquareStr parses a square in algebraic notation, e.g. "e4".
func ParseSquareStr(s string) (Square, error) {
	runes := []rune(s)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: %q", s)
	}
	return ParseSquare(runes[0], runes[1])
}

// IsSameRankOrFile returns true iff the two squares share a rank or file.
func IsSameRankOrFile(a, b Square) bool {
	return a.File() == b.File() || a.Rank() == b.Rank()
}

// IsSameDiagonal returns true iff the two squares lie on a common diagonal.
func IsSameDiagonal(a, b Square) bool {
	df := int(a.File()) - int(b.File())
	dr := int(a.Rank()) - int(b.Rank())
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	return df == dr
}
