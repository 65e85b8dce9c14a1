/*
perft.go implements the perft (performance test) move-tree counting driver:
basic node counts, per-root-move divide output, the six-counter advanced
classification, and a parallel root-split mode.

Perft is part of the library surface, not a CLI-only debugging tool: it is
the primary correctness oracle for [GenLegalMoves] and [Position.MakeMove],
since a wrong node count at a known depth pinpoints a move generation bug
that unit tests on individual positions can miss.
*/

package chesscore

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Perft counts the leaf positions reachable from pos in exactly depth plies.
func Perft(pos Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var list MoveList
	GenLegalMoves(pos, &list)

	if depth == 1 {
		return uint64(list.LastMoveIndex)
	}

	var nodes uint64
	for i := range list.LastMoveIndex {
		child := pos
		child.MakeMove(list.Moves[i])
		nodes += Perft(child, depth-1)
	}
	return nodes
}

// PerftDivide returns, for each legal move at the root, the number of leaf
// positions reached below it at depth-1. Keys are the move's long algebraic
// (UCI) notation, so results can be diffed against another engine's divide
// output move by move.
func PerftDivide(pos Position, depth int) map[string]uint64 {
	var list MoveList
	GenLegalMoves(pos, &list)

	divide := make(map[string]uint64, list.LastMoveIndex)
	for i := range list.LastMoveIndex {
		move := list.Moves[i]
		child := pos
		child.MakeMove(move)

		var nodes uint64
		if depth <= 1 {
			nodes = 1
		} else {
			nodes = Perft(child, depth-1)
		}
		divide[Move2UCI(move)] = nodes
	}
	return divide
}

// PerftCounters holds the six-way classification of leaf transitions
// produced by [PerftAdvanced]: captures, en-passant captures, castles,
// promotions, checks, and checkmates, counted over the moves made at the
// final ply of the walk.
type PerftCounters struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	Checkmates uint64
}

// Add accumulates other into c in place.
func (c *PerftCounters) Add(other PerftCounters) {
	c.Nodes += other.Nodes
	c.Captures += other.Captures
	c.EnPassant += other.EnPassant
	c.Castles += other.Castles
	c.Promotions += other.Promotions
	c.Checks += other.Checks
	c.Checkmates += other.Checkmates
}

// PerftAdvanced walks the move tree to depth, classifying each leaf
// transition (the move made at the final ply): a move is a capture if it
// removes a piece from its destination square (regular or en passant), a
// check if the opponent is in check immediately after it, and a checkmate if
// that check also leaves the opponent with zero legal replies.
func PerftAdvanced(pos Position, depth int) PerftCounters {
	var counters PerftCounters
	perftAdvanced(pos, depth, &counters)
	return counters
}

func perftAdvanced(pos Position, depth int, counters *PerftCounters) {
	if depth == 0 {
		counters.Nodes++
		return
	}

	var list MoveList
	GenLegalMoves(pos, &list)

	if depth == 1 {
		for i := range list.LastMoveIndex {
			classifyMove(pos, list.Moves[i], counters)
			counters.Nodes++
		}
		return
	}

	for i := range list.LastMoveIndex {
		child := pos
		child.MakeMove(list.Moves[i])
		perftAdvanced(child, depth-1, counters)
	}
}

// classifyMove updates the capture/en-passant/castle/promotion/check/
// checkmate counters for a single move, made from pos.
func classifyMove(pos Position, move Move, counters *PerftCounters) {
	switch move.Type() {
	case MoveEnPassant:
		counters.Captures++
		counters.EnPassant++
	case MoveCastling:
		counters.Castles++
	case MovePromotion:
		counters.Promotions++
		if pos.GetPieceFromSquare(uint64(1)<<move.To()) != PieceNone {
			counters.Captures++
		}
	default:
		if pos.GetPieceFromSquare(uint64(1)<<move.To()) != PieceNone {
			counters.Captures++
		}
	}

	child := pos
	child.MakeMove(move)

	if GenChecksCounter(child.Bitboards, 1^child.ActiveColor) > 0 {
		counters.Checks++

		var replies MoveList
		GenLegalMoves(child, &replies)
		if replies.LastMoveIndex == 0 {
			counters.Checkmates++
		}
	}
}

/*
PerftParallel computes the same node count as [Perft] but splits the work at
the root: each legal root move is dispatched to its own goroutine, which
walks its subtree with an ordinary sequential [Perft] call and returns the
count by value. Results are summed only after every worker has returned
([errgroup.Group.Wait] is the join barrier) — there is no shared counter
mutated concurrently, so nothing here needs a lock or an atomic.

workers bounds the number of goroutines running at once; a value <= 0
defaults to runtime.NumCPU().
*/
func PerftParallel(pos Position, depth int, workers int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}

	var list MoveList
	GenLegalMoves(pos, &list)

	if depth == 1 {
		return uint64(list.LastMoveIndex), nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	counts := make([]uint64, list.LastMoveIndex)

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(workers)

	for i := range list.LastMoveIndex {
		i := i
		g.Go(func() error {
			child := pos
			child.MakeMove(list.Moves[i])
			counts[i] = Perft(child, depth-1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total uint64
	for _, c := range counts {
		total += c
	}
	return total, nil
}
