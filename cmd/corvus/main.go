package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corvuscore/engine/pkg/engine"
	"github.com/corvuscore/engine/pkg/engine/console"
	"github.com/corvuscore/engine/pkg/engine/uci"
	"github.com/corvuscore/engine/pkg/eval"
	"github.com/corvuscore/engine/pkg/search"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Uint("depth", 0, "Search depth limit (zero if no limit)")
	hash  = flag.Uint("hash", 64, "Transposition table size in MB (zero disables it)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvus [options]

CORVUS is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	var tt search.TranspositionTable = search.NoTranspositionTable{}
	if *hash > 0 {
		tt = search.NewTranspositionTable(ctx, uint64(*hash)<<20)
	}
	s := search.PVS{
		Eval:  eval.Static{},
		Order: search.NewOrderer(64),
		TT:    tt,
	}
	e := engine.New(ctx, "corvus", "corvuscore", s,
		engine.WithOptions(engine.Options{Depth: *depth, Hash: *hash}),
		engine.WithTable(search.NewTranspositionTable),
	)

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		// Use UCI protocol.

		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
