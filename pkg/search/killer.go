package search

import "github.com/corvuscore/engine/pkg/board"

// killerPrunePlyFloor is the ply at or above which entries are dropped during the
// periodic killer-table maintenance the iterative deepener runs every 4th
// age (see Iterative.Launch).
const killerPrunePlyFloor = 50

// KillerTable holds up to two quiet refutation moves per ply: moves that
// caused a beta cutoff without capturing anything, tried early at the same
// ply in sibling subtrees regardless of the position.
type KillerTable struct {
	slots [][2]board.Move
}

func NewKillerTable(maxPly int) *KillerTable {
	return &KillerTable{slots: make([][2]board.Move, maxPly)}
}

// Contains reports whether m occupies either slot at ply.
func (k *KillerTable) Contains(ply int, m board.Move) bool {
	if ply < 0 || ply >= len(k.slots) {
		return false
	}
	s := &k.slots[ply]
	return (s[0].From != s[0].To && s[0].Equals(m)) || (s[1].From != s[1].To && s[1].Equals(m))
}

// Push records m as the newest killer at ply, keeping at most two, most
// recent first. A no-op if m is already the top slot.
func (k *KillerTable) Push(ply int, m board.Move) {
	if ply < 0 || ply >= len(k.slots) {
		return
	}
	s := &k.slots[ply]
	if s[0].Equals(m) {
		return
	}
	s[1] = s[0]
	s[0] = m
}

// PruneDeep clears every slot at ply >= killerPrunePlyFloor.
func (k *KillerTable) PruneDeep() {
	for i := killerPrunePlyFloor; i < len(k.slots); i++ {
		k.slots[i] = [2]board.Move{}
	}
}
