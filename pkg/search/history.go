package search

import "github.com/corvuscore/engine/pkg/board"

// historyCap is the per-entry saturation point.
const historyCap = 10000

// historyHalveThreshold is the running sum above which every entry is halved.
const historyHalveThreshold = 50000

// History is the history heuristic table: a (side, from, to) -> score map
// that accumulates a bonus whenever a quiet move causes a beta cutoff,
// independent of the position it occurred in.
type History struct {
	table [board.NumColors][board.NumSquares][board.NumSquares]int32
	sum   int64
}

func NewHistory() *History {
	return &History{}
}

// Get returns the current bonus for a (side, from, to) quiet move.
func (h *History) Get(side board.Color, from, to board.Square) int32 {
	return h.table[side][from][to]
}

// Update adds depth^2 to the (side, from, to) entry, saturating at
// historyCap, and halves the whole table once the running sum grows past
// historyHalveThreshold.
func (h *History) Update(side board.Color, from, to board.Square, depth int) {
	bonus := int32(depth * depth)

	v := h.table[side][from][to] + bonus
	if v > historyCap {
		v = historyCap
	}
	h.sum += int64(v - h.table[side][from][to])
	h.table[side][from][to] = v

	if h.sum > historyHalveThreshold {
		h.halve()
	}
}

// halve divides every entry by two, dropping anything that falls below 10.
func (h *History) halve() {
	var sum int64
	for c := range h.table {
		for f := range h.table[c] {
			for t := range h.table[c][f] {
				v := h.table[c][f][t] / 2
				if v < 10 {
					v = 0
				}
				h.table[c][f][t] = v
				sum += int64(v)
			}
		}
	}
	h.sum = sum
}
