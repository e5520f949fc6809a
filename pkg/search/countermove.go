package search

import "github.com/corvuscore/engine/pkg/board"

// CounterMoveTable maps the opponent's last move (from, to) to the reply
// that refuted it most recently for the side now to move.
type CounterMoveTable struct {
	table [board.NumColors][board.NumSquares][board.NumSquares]board.Move
}

func NewCounterMoveTable() *CounterMoveTable {
	return &CounterMoveTable{}
}

// Get returns side's recorded counter to the move played on (from, to).
func (c *CounterMoveTable) Get(side board.Color, prevFrom, prevTo board.Square) board.Move {
	return c.table[side][prevFrom][prevTo]
}

// Update records m as side's counter to the move played on (from, to).
func (c *CounterMoveTable) Update(side board.Color, prevFrom, prevTo board.Square, m board.Move) {
	c.table[side][prevFrom][prevTo] = m
}
