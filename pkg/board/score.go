package board

import "fmt"

// Score is a signed evaluation or search score in centipawns, from the
// side-to-move's point of view unless documented otherwise. Positive favors
// the side to move. 32 bits wide, to carry the mate encoding below without
// overflow.
type Score int32

// Mate is the absolute value used to encode forced-mate scores. A position
// with forced mate in N plies from the root is reported as ±(Mate - N).
const Mate Score = 1000000

const (
	// Inf/NegInf are used as search window bounds wider than any legal score,
	// including mate scores, so that the initial window never clips.
	Inf    Score = Mate + 1
	NegInf Score = -Mate - 1
)

func (s Score) String() string {
	if d, ok := s.MateDistance(); ok {
		if s > 0 {
			return fmt.Sprintf("mate%v", (d+1)/2)
		}
		return fmt.Sprintf("mate-%v", (d+1)/2)
	}
	return fmt.Sprintf("%.2f", float64(s)/100)
}

// MateDistance returns the number of plies to the encoded mate and true, iff
// the score represents a forced mate either way.
func (s Score) MateDistance() (int, bool) {
	switch {
	case s > Mate-1000:
		return int(Mate - s), true
	case s < -Mate+1000:
		return int(Mate + s), true
	default:
		return 0, false
	}
}

// Negate flips the score to the opponent's point of view.
func (s Score) Negate() Score {
	return -s
}

func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// Crop clamps s into [lo;hi].
func Crop(s, lo, hi Score) Score {
	switch {
	case s < lo:
		return lo
	case s > hi:
		return hi
	default:
		return s
	}
}
