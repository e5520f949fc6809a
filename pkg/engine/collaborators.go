package engine

import (
	"context"

	"github.com/corvuscore/engine/pkg/board"
)

// Tablebase represents an endgame tablebase, such as Syzygy, consulted by
// Play once the position reaches Options.TablebaseProbeLimit pieces or
// fewer.
type Tablebase interface {
	// Probe returns the tablebase's preferred move for pos, if the position
	// is covered by the table.
	Probe(ctx context.Context, pos board.Position) (board.Move, bool, error)
}

// NoTablebase is a Tablebase that never has an answer.
type NoTablebase struct{}

func (NoTablebase) Probe(context.Context, board.Position) (board.Move, bool, error) {
	return board.Move{}, false, nil
}

// CSVOpenings represents a named-opening lookup table, consulted by Play
// before the book and core search (spec.md's "CSV openings" collaborator).
type CSVOpenings interface {
	// Lookup returns the recorded move for the given FEN, if any.
	Lookup(ctx context.Context, fen string) (board.Move, bool, error)
}

// NoCSVOpenings is a CSVOpenings that never has an answer.
type NoCSVOpenings struct{}

func (NoCSVOpenings) Lookup(context.Context, string) (board.Move, bool, error) {
	return board.Move{}, false, nil
}
