// config.go loads the perft CLI's local settings file: default depth,
// default starting FEN, the parallel perft worker count, and named FEN
// presets so a preset can be typed once instead of pasted at the shell.
package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/anomandaris/chesscore"
)

// config is the shape of the TOML config file read by --config.
type config struct {
	DefaultDepth int               `toml:"default_depth"`
	DefaultFEN   string            `toml:"default_fen"`
	Workers      int               `toml:"workers"`
	Presets      map[string]string `toml:"presets"`
}

// defaultConfig returns the built-in defaults used when no --config file is
// given, or when the file omits a field.
func defaultConfig() config {
	return config{
		DefaultDepth: 5,
		DefaultFEN:   chesscore.InitialPos,
		Workers:      0, // 0 means runtime.NumCPU(), resolved in PerftParallel.
		Presets: map[string]string{
			"initial":  chesscore.InitialPos,
			"kiwipete": "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			"pos3":     "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			"pos4":     "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		},
	}
}

// loadConfig reads path and merges it over defaultConfig(). A zero-value
// field in the file falls back to the built-in default; presets are merged
// rather than replaced, so a user file can add to the reference positions
// without having to repeat them.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var fromFile config
	if _, err := toml.DecodeFile(path, &fromFile); err != nil {
		return config{}, fmt.Errorf("reading config %q: %w", path, err)
	}

	if fromFile.DefaultDepth != 0 {
		cfg.DefaultDepth = fromFile.DefaultDepth
	}
	if fromFile.DefaultFEN != "" {
		cfg.DefaultFEN = fromFile.DefaultFEN
	}
	if fromFile.Workers != 0 {
		cfg.Workers = fromFile.Workers
	}
	for name, fen := range fromFile.Presets {
		cfg.Presets[name] = fen
	}

	return cfg, nil
}

// resolveFEN returns the preset FEN named by preset if non-empty, else fen
// if non-empty, else cfg's default starting position.
func (cfg config) resolveFEN(preset, fen string) (string, error) {
	if preset != "" {
		resolved, ok := cfg.Presets[preset]
		if !ok {
			return "", fmt.Errorf("unknown preset %q", preset)
		}
		return resolved, nil
	}
	if fen != "" {
		return fen, nil
	}
	return cfg.DefaultFEN, nil
}
