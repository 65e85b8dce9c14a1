// Command perft is the debugging and benchmarking driver for the core move
// generator.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/anomandaris/chesscore"
)

func main() {
	chesscore.InitEngine()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()
	sugar := log.Sugar()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fen := fs.String("fen", "", "FEN of the position to search from")
	preset := fs.String("preset", "", "named preset position from the config file")
	configPath := fs.String("config", "", "path to a TOML config file")
	workers := fs.Int("workers", 0, "worker count for perft-parallel (0 = runtime.NumCPU())")
	cpuprofile := fs.String("cpuprofile", "", "file to write a CPU profile to")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		sugar.Fatalw("loading config", "error", err)
	}

	depth := cfg.DefaultDepth
	if fs.NArg() > 0 {
		if d, convErr := parseDepth(fs.Arg(0)); convErr == nil {
			depth = d
		}
	}

	if *workers == 0 {
		*workers = cfg.Workers
	}

	fenStr, err := cfg.resolveFEN(*preset, *fen)
	if err != nil {
		sugar.Fatalw("resolving starting position", "error", err)
	}

	pos, err := chesscore.ParseFEN(fenStr)
	if err != nil {
		sugar.Errorw("invalid FEN", "fen", fenStr, "error", err)
		os.Exit(1)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			sugar.Fatalw("creating cpu profile", "error", err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	switch cmd {
	case "perft":
		runPerft(sugar, pos, depth)
	case "perft-divide":
		runPerftDivide(sugar, pos, depth)
	case "perft-parallel":
		runPerftParallel(sugar, pos, depth, *workers)
	case "perft-advanced":
		runPerftAdvanced(sugar, pos, depth)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: perft <command> [flags] [depth]")
	fmt.Fprintln(os.Stderr, "commands: perft, perft-divide, perft-parallel, perft-advanced")
	fmt.Fprintln(os.Stderr, "flags: -fen, -preset, -config, -workers, -cpuprofile")
}

func parseDepth(s string) (int, error) {
	var depth int
	_, err := fmt.Sscanf(s, "%d", &depth)
	return depth, err
}

func runPerft(log *zap.SugaredLogger, pos chesscore.Position, depth int) {
	start := time.Now()
	nodes := chesscore.Perft(pos, depth)
	elapsed := time.Since(start)

	log.Infow("perft complete",
		"depth", depth,
		"nodes", nodes,
		"elapsed", elapsed,
	)
}

func runPerftDivide(log *zap.SugaredLogger, pos chesscore.Position, depth int) {
	start := time.Now()
	divide := chesscore.PerftDivide(pos, depth)
	elapsed := time.Since(start)

	moves := make([]string, 0, len(divide))
	for move := range divide {
		moves = append(moves, move)
	}
	sort.Strings(moves)

	var total uint64
	for _, move := range moves {
		nodes := divide[move]
		total += nodes
		fmt.Printf("%s %d\n", move, nodes)
	}

	log.Infow("perft-divide complete",
		"depth", depth,
		"moves", len(moves),
		"nodes", total,
		"elapsed", elapsed,
	)
}

func runPerftParallel(log *zap.SugaredLogger, pos chesscore.Position, depth, workers int) {
	start := time.Now()
	nodes, err := chesscore.PerftParallel(pos, depth, workers)
	elapsed := time.Since(start)

	if err != nil {
		log.Fatalw("perft-parallel failed", "error", err)
	}

	log.Infow("perft-parallel complete",
		"depth", depth,
		"workers", workers,
		"nodes", nodes,
		"elapsed", elapsed,
	)
}

func runPerftAdvanced(log *zap.SugaredLogger, pos chesscore.Position, depth int) {
	start := time.Now()
	counters := chesscore.PerftAdvanced(pos, depth)
	elapsed := time.Since(start)

	log.Infow("perft-advanced complete",
		"depth", depth,
		"nodes", counters.Nodes,
		"captures", counters.Captures,
		"en_passant", counters.EnPassant,
		"castles", counters.Castles,
		"promotions", counters.Promotions,
		"checks", counters.Checks,
		"checkmates", counters.Checkmates,
		"elapsed", elapsed,
	)
}
