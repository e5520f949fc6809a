package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/corvuscore/engine/pkg/board"
	"github.com/corvuscore/engine/pkg/board/fen"
	"github.com/corvuscore/engine/pkg/search"
	"github.com/corvuscore/engine/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit. Overridden by search
	// options if provided.
	Depth uint
	// Hash is the transposition table size in MB. Reset allocates a table of this
	// size (none if zero) and hands it to the launcher; searchctl.Iterative does
	// not search with that table, so a search uses the table set on its
	// search.PVS.
	Hash uint
	// Nodes caps the total node count across all iterations of a search. If
	// zero, there is no limit.
	Nodes uint64

	// UseBook enables consulting the configured Book before searching.
	UseBook bool
	// BookMinWeight is the minimum Polyglot weight a book move must carry to
	// be played, in [0, 65535]. NewBook's in-memory implementation carries
	// no weight metadata and ignores this field; it exists for an external
	// Polyglot-backed Book to honor.
	BookMinWeight uint16

	// UseCSVOpenings enables consulting the configured CSVOpenings before
	// the book and the core search.
	UseCSVOpenings bool
	// CSVOpeningsPath is the path to the CSV opening-name table an external
	// CSVOpenings implementation loads from.
	CSVOpeningsPath string

	// SyzygyPath is the directory an external Tablebase implementation
	// loads Syzygy files from. Empty disables tablebase probing.
	SyzygyPath string
	// TablebaseProbeLimit is the maximum piece count, clamped to [3, 7], at
	// or below which Play probes the tablebase.
	TablebaseProbeLimit int
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, nodes=%v, book=%v, csv=%v, tb=%v}",
		o.Depth, o.Hash, o.Nodes, o.UseBook, o.UseCSVOpenings, o.SyzygyPath != "")
}

// clampedTablebaseProbeLimit returns o.TablebaseProbeLimit clamped to the
// supported [3, 7] piece-count range, defaulting to 7 when unset.
func (o Options) clampedTablebaseProbeLimit() int {
	switch {
	case o.TablebaseProbeLimit == 0:
		return 7
	case o.TablebaseProbeLimit < 3:
		return 3
	case o.TablebaseProbeLimit > 7:
		return 7
	default:
		return o.TablebaseProbeLimit
	}
}

// Engine encapsulates game-playing logic, search and evaluation.
type Engine struct {
	name, author string

	launcher  searchctl.Launcher
	factory   search.TranspositionTableFactory
	zt        *board.ZobristTable
	seed      int64
	opts      Options
	book      Book
	tablebase Tablebase
	csv       CSVOpenings

	b      *board.Board
	tt     search.TranspositionTable
	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithTable configures the engine to use the given transposition table factory.
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) {
		e.factory = factory
	}
}

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of the
// default seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithBook configures the opening book Play consults when Options.UseBook is
// set.
func WithBook(book Book) Option {
	return func(e *Engine) {
		e.book = book
	}
}

// WithTablebase configures the endgame tablebase Play consults when
// Options.SyzygyPath is set.
func WithTablebase(tb Tablebase) Option {
	return func(e *Engine) {
		e.tablebase = tb
	}
}

// WithCSVOpenings configures the named-opening lookup Play consults when
// Options.UseCSVOpenings is set.
func WithCSVOpenings(csv CSVOpenings) Option {
	return func(e *Engine) {
		e.csv = csv
	}
}

func New(ctx context.Context, name, author string, root search.Search, opts ...Option) *Engine {
	e := &Engine{
		name:      name,
		author:    author,
		launcher:  &searchctl.Iterative{Root: root},
		factory:   search.NewTranspositionTable,
		book:      NoBook,
		tablebase: NoTablebase{},
		csv:       NoCSVOpenings{},
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = size
}

func (e *Engine) SetNodes(nodes uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Nodes = nodes
}

// Board returns a forked board.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Fork()
}

// Position returns the current position in FEN format. Convenience function.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b.Position(), e.b.Turn(), e.b.NoProgress(), e.b.FullMoves())
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%vMB", position, e.opts.Depth, e.opts.Hash)

	_, _ = e.haltSearchIfActive(ctx)

	pos, turn, noprogress, fullmoves, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(e.zt, pos, turn, noprogress, fullmoves)

	e.tt = search.NoTranspositionTable{}
	if e.opts.Hash > 0 {
		e.tt = e.factory(ctx, uint64(e.opts.Hash)<<20)
	}

	logw.Infof(ctx, "New board: %v", e.b)
	return nil
}

// Move selects the given move, usually an opponent move.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %v", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	moves := e.b.Position().PseudoLegalMoves(e.b.Turn())
	for _, m := range moves {
		if !candidate.Equals(m) {
			continue
		}

		// Candidate is at least pseudo-legal.

		if !e.b.PushMove(m) {
			return fmt.Errorf("illegal move: %v", m)
		}

		logw.Infof(ctx, "Move %v: %v", m, e.b)
		return nil
	}
	return fmt.Errorf("invalid move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	m, ok := e.b.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}

	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Analyze analyzes the current position.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.b, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	handle, out := e.launcher.Launch(ctx, e.b.Fork(), e.tt, opt)
	e.active = handle
	return out, nil
}

// Play returns the best move for the current position. It probes, in order,
// the configured CSVOpenings, Book and Tablebase collaborators; the first
// hit returns immediately with Depth 0 and an InfoString naming its source
// ("csv", "book" or "tb"). If none produce a move, Play runs the core
// search via Analyze and blocks until it completes.
func (e *Engine) Play(ctx context.Context, opt searchctl.Options) (search.PV, error) {
	if pv, ok, err := e.probeCollaborators(ctx); err != nil {
		return search.PV{}, err
	} else if ok {
		logw.Infof(ctx, "Play %v: %v", e.Position(), pv)
		return pv, nil
	}

	if opt.NodeLimit == 0 {
		e.mu.Lock()
		opt.NodeLimit = e.opts.Nodes
		e.mu.Unlock()
	}

	out, err := e.Analyze(ctx, opt)
	if err != nil {
		return search.PV{}, err
	}

	var last search.PV
	for pv := range out {
		last = pv
	}
	return last, nil
}

// probeCollaborators tries the CSV-opening, book and tablebase collaborators
// in spec order, returning the first move found.
func (e *Engine) probeCollaborators(ctx context.Context) (search.PV, bool, error) {
	e.mu.Lock()
	opts := e.opts
	pos := e.b.Position()
	position := fen.Encode(pos, e.b.Turn(), e.b.NoProgress(), e.b.FullMoves())
	e.mu.Unlock()

	if opts.UseCSVOpenings && e.csv != nil {
		move, ok, err := e.csv.Lookup(ctx, position)
		if err != nil {
			return search.PV{}, false, fmt.Errorf("csv openings lookup: %v", err)
		}
		if ok {
			return search.PV{Moves: []board.Move{move}, InfoString: "csv"}, true, nil
		}
	}

	if opts.UseBook && e.book != nil {
		moves, err := e.book.Find(ctx, position)
		if err != nil {
			return search.PV{}, false, fmt.Errorf("book lookup: %v", err)
		}
		if len(moves) > 0 {
			return search.PV{Moves: moves[:1], InfoString: "book"}, true, nil
		}
	}

	if opts.SyzygyPath != "" && e.tablebase != nil && pos.Occupancy().PopCount() <= opts.clampedTablebaseProbeLimit() {
		move, ok, err := e.tablebase.Probe(ctx, pos)
		if err != nil {
			return search.PV{}, false, fmt.Errorf("tablebase probe: %v", err)
		}
		if ok {
			return search.PV{Moves: []board.Move{move}, InfoString: "tb"}, true, nil
		}
	}

	return search.PV{}, false, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
