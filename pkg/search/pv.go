package search

import "github.com/corvuscore/engine/pkg/board"

// maxPVLength caps PV extraction so a cycle in a corrupt or stale table
// cannot loop forever.
const maxPVLength = 20

// PVTable records, per position hash, the best move found there during the
// most recent search. It is cleared at the start of each aspiration-window
// attempt within a single iterative-deepening depth.
type PVTable struct {
	table map[board.ZobristHash]board.Move
}

func NewPVTable() *PVTable {
	return &PVTable{table: map[board.ZobristHash]board.Move{}}
}

func (t *PVTable) Clear() {
	t.table = map[board.ZobristHash]board.Move{}
}

func (t *PVTable) Store(hash board.ZobristHash, m board.Move) {
	t.table[hash] = m
}

func (t *PVTable) Get(hash board.ZobristHash) (board.Move, bool) {
	m, ok := t.table[hash]
	return m, ok
}

// Extract walks the table from b's current position, replaying up to
// maxPVLength moves. It stops at a missing entry, a repeated position (a
// cycle in the table) or an illegal stored move, and always restores b to
// its original position before returning.
func (t *PVTable) Extract(b *board.Board) []board.Move {
	var pv []board.Move
	seen := map[board.ZobristHash]bool{}

	for len(pv) < maxPVLength {
		hash := b.Hash()
		if seen[hash] {
			break
		}
		m, ok := t.Get(hash)
		if !ok {
			break
		}
		seen[hash] = true
		if !b.PushMove(m) {
			break
		}
		pv = append(pv, m)
	}

	for range pv {
		b.PopMove()
	}
	return pv
}
