package searchctl

import (
	"fmt"
	"time"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl represents the clock state driving one move's time budget.
// Exactly one of MoveTime or the wall-clock fields applies: if MoveTime is
// set (non-zero), White/Black/increments/Moves are ignored.
type TimeControl struct {
	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
	Moves              int // 0 == rest of game
	MoveTime           time.Duration
}

func (t TimeControl) String() string {
	if t.MoveTime > 0 {
		return fmt.Sprintf("movetime=%.1f", t.MoveTime.Seconds())
	}
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

func (t TimeControl) remainder(c board.Color) time.Duration {
	if c == board.Black {
		return t.Black
	}
	return t.White
}

func (t TimeControl) increment(c board.Color) time.Duration {
	if c == board.Black {
		return t.BlackInc
	}
	return t.WhiteInc
}

// complexity scores a position's tactical difficulty in [0.5, 2.0]: more
// legal moves, more captures, being in check and a crowded board all push it
// up; a quiet, sparse position pushes it down.
func complexity(pos board.Position, turn board.Color) float64 {
	legal := pos.LegalMoves(turn)
	c := 1.0

	switch {
	case len(legal) > 35:
		c += 0.4
	case len(legal) > 25:
		c += 0.2
	case len(legal) < 10:
		c -= 0.2
	}

	if pos.IsChecked(turn) {
		c += 0.3
	}

	pieces := pos.Occupancy().PopCount()
	switch {
	case pieces > 20:
		c += 0.2
	case pieces < 10:
		c -= 0.1
	}

	captures := 0
	for _, m := range legal {
		if m.IsCapture() {
			captures++
		}
	}
	if captures > 5 {
		c += 0.2
	}

	if pos.Piece(turn, board.Pawn).PopCount() >= 4 {
		c += 0.1
	}

	if c < 0.5 {
		c = 0.5
	}
	if c > 2.0 {
		c = 2.0
	}
	return c
}

// movesRemaining estimates how many more moves the game has left, by the
// full-move counter, clamped tighter as material comes off the board.
func movesRemaining(fullmove, pieces int) int {
	var n int
	switch {
	case fullmove < 10:
		n = 35
	case fullmove < 20:
		n = 30
	case fullmove < 30:
		n = 25
	default:
		n = maxInt(15, 50-fullmove)
	}

	switch {
	case pieces <= 6:
		n = minInt(n, 15)
	case pieces <= 10:
		n = minInt(n, 20)
	case pieces <= 16:
		n = minInt(n, 25)
	}

	return maxInt(n, 10)
}

// Allocate runs the time manager: given the position, the clock state (if
// any) and a hard depth cap, it returns how long to spend on this move and
// the deepest ply the iterative deepener should attempt.
func Allocate(b *board.Board, tc lang.Optional[TimeControl], depthCap int) (time.Duration, int) {
	c, ok := tc.V()
	if !ok {
		return time.Second, depthCap
	}

	if c.MoveTime > 0 {
		switch {
		case c.MoveTime < 500*time.Millisecond:
			return c.MoveTime, maxInt(2, depthCap-5)
		case c.MoveTime < 2*time.Second:
			return c.MoveTime, maxInt(3, depthCap-3)
		default:
			return c.MoveTime, depthCap
		}
	}

	turn := b.Turn()
	remaining := c.remainder(turn)
	increment := c.increment(turn)

	pos := b.Position()
	pieces := pos.Occupancy().PopCount()
	remain := movesRemaining(b.FullMoves(), pieces)

	comp := complexity(pos, turn)

	reserve := remaining / 10
	if reserve > 2*time.Second {
		reserve = 2 * time.Second
	}
	usable := remaining - reserve
	if usable < 0 {
		usable = 0
	}

	base := usable/time.Duration(remain) + increment/2
	alloc := time.Duration(float64(base) * comp)

	switch {
	case remaining < 10*time.Second:
		if cap := remaining * 15 / 100; alloc > cap {
			alloc = cap
		}
	case remaining < 30*time.Second:
		if cap := remaining * 25 / 100; alloc > cap {
			alloc = cap
		}
	}

	if b.FullMoves() <= 6 && comp < 1.2 {
		alloc = time.Duration(float64(alloc) * 0.6)
	}
	if pos.IsChecked(turn) || comp > 1.5 {
		alloc = time.Duration(float64(alloc) * 1.3)
	}

	if alloc < 100*time.Millisecond {
		alloc = 100 * time.Millisecond
	}
	if ceiling := remaining - 500*time.Millisecond; alloc > ceiling {
		if ceiling < 100*time.Millisecond {
			alloc = 100 * time.Millisecond
		} else {
			alloc = ceiling
		}
	}

	depth := depthCap
	switch {
	case alloc < 500*time.Millisecond:
		depth = maxInt(3, int(float64(depthCap)*0.5))
	case alloc < time.Second:
		depth = maxInt(5, int(float64(depthCap)*0.7))
	case alloc < 3*time.Second:
		depth = maxInt(7, int(float64(depthCap)*0.85))
	}
	if comp > 1.5 && alloc > 2*time.Second {
		depth = depthCap
	}

	return alloc, depth
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
