/*
game.go layers game-level bookkeeping over the core Position: move
application with history, the draw rules (threefold repetition, insufficient
material, fifty moves), and a simple chess clock.

The clock is caller-driven: run a time.Ticker and call [Game.DecrementTime]
per tick.  [Game.PushMove] credits the increment to the mover, so ticks and
moves must not be processed concurrently.

NOTE: Call [InitEngine] before creating a [Game].
*/

package chesscore

// Game tracks a single chess game: the current [Position], the legal moves
// available from it, and enough history to detect draws.
type Game struct {
	Position   Position
	LegalMoves MoveList
	// Repetitions maps each Zobrist key encountered so far to the number of
	// times that position has occurred.
	Repetitions map[uint64]int
	Result      Result
	whiteTime   int
	blackTime   int
	timeBonus   int
}

// NewGame returns a [Game] initialized to the standard starting position.
func NewGame() *Game {
	g := &Game{
		Position:    MustParseFEN(InitialPos),
		Repetitions: make(map[uint64]int, 1),
		Result:      ResultUnscored,
	}

	GenLegalMoves(g.Position, &g.LegalMoves)

	// Seed the repetition table with the starting position.
	g.Repetitions[g.Position.zobristKey()] = 1

	return g
}

/*
PushMove applies m, refreshes the legal move list for the next side to move,
and updates the draw-detection history.  The move must be legal (check with
[Game.IsMoveLegal] first); not safe for concurrent use.
*/
func (g *Game) PushMove(m Move) {
	moved := g.Position.GetPieceFromSquare(1 << m.From())
	captured := g.Position.GetPieceFromSquare(1 << m.To())
	isCapture := captured != PieceNone || m.Type() == MoveEnPassant

	// Award the increment to the player who just moved.
	if g.Position.ActiveColor == ColorWhite {
		g.whiteTime += g.timeBonus
	} else {
		g.blackTime += g.timeBonus
	}

	g.Position.MakeMove(m)

	// No position from before an irreversible move can ever recur, so the
	// repetition history restarts there.
	// See https://www.chessprogramming.org/Irreversible_Moves
	if isCapture || m.Type() == MoveCastling || m.Type() == MovePromotion ||
		moved == PieceWPawn || moved == PieceBPawn {
		clear(g.Repetitions)
	}

	GenLegalMoves(g.Position, &g.LegalMoves)

	// TODO: optimize by updating the hash incrementally instead of
	// recomputing it from scratch every move.
	g.Repetitions[g.Position.zobristKey()]++

	if g.IsFiftyMoveDraw() {
		g.Result = ResultFiftyMove
	}
}

/*
IsThreefoldRepetition reports whether any position has now occurred three
times.  Two occurrences count as the same position when the piece placement,
side to move, castling rights, and en passant possibilities all agree --
that is when their Zobrist keys collide in the history map.
*/
func (g *Game) IsThreefoldRepetition() bool {
	for _, numOfReps := range g.Repetitions {
		if numOfReps >= 3 {
			return true
		}
	}
	return false
}

/*
IsInsufficientMaterial reports whether neither side can possibly deliver
mate: bare kings, a lone minor piece against a bare king, same-colored
bishops on both sides, or knight against knight.
*/
func (g *Game) IsInsufficientMaterial() bool {
	// Every dark square.
	dark := uint64(0xAA55AA55AA55AA55)
	material := g.Position.calculateMaterial()

	if material == 0 || (material == 3 && g.Position.Bitboards[PieceWPawn] == 0 &&
		g.Position.Bitboards[PieceBPawn] == 0) {
		return true
	}

	if material == 6 {
		wb := g.Position.Bitboards[PieceWBishop]
		bb := g.Position.Bitboards[PieceBBishop]

		// One bishop each on same-colored squares, or one knight each.
		return (wb != 0 && bb != 0 && ((wb&dark > 0 && bb&dark > 0) ||
			(wb&dark == 0 && bb&dark == 0))) ||
			(g.Position.Bitboards[PieceWKnight] != 0 &&
				g.Position.Bitboards[PieceBKnight] != 0)
	}
	return false
}

/*
IsCheckmate reports whether the side to move has no legal moves while its
king is attacked.  With no legal moves and no check the position is a
stalemate instead; see [Game.IsStalemate].
*/
func (g *Game) IsCheckmate() bool {
	return GenChecksCounter(g.Position.Bitboards, 1^g.Position.ActiveColor) > 0 &&
		g.LegalMoves.LastMoveIndex == 0
}

// IsFiftyMoveDraw reports whether 100 halfmoves (50 moves by each player)
// have passed since the last capture or pawn move, so either player may
// claim a draw.
func (g *Game) IsFiftyMoveDraw() bool {
	return g.Position.HalfmoveCnt >= 100
}

// IsStalemate returns true if the side to move has no legal moves and is not
// in check.
func (g *Game) IsStalemate() bool {
	return GenChecksCounter(g.Position.Bitboards, 1^g.Position.ActiveColor) == 0 &&
		g.LegalMoves.LastMoveIndex == 0
}

/*
IsMoveLegal reports whether m is one of the currently legal moves, compared
field by field so callers need not construct moves bit-identically.
*/
func (g *Game) IsMoveLegal(m Move) bool {
	for i := range g.LegalMoves.LastMoveIndex {
		lm := g.LegalMoves.Moves[i]
		if lm.From() == m.From() && lm.To() == m.To() && lm.Type() == m.Type() &&
			lm.PromoPiece() == m.PromoPiece() {
			return true
		}
	}
	return false
}

// SetClock sets the players' remaining time and increment (bonus) values. It
// expects these values to be specified in seconds.
func (g *Game) SetClock(control, bonus int) {
	g.whiteTime = control
	g.blackTime = control
	g.timeBonus = bonus
}

// DecrementTime subtracts one second from the clock of the side to move and
// scores the game as a timeout loss when that clock runs out.  Call it from a
// time.Ticker; not safe for concurrent use with [Game.PushMove].
func (g *Game) DecrementTime() {
	if g.Position.ActiveColor == ColorWhite {
		g.whiteTime--
		if g.whiteTime <= 0 {
			g.Result = ResultTimeout
		}
	} else {
		g.blackTime--
		if g.blackTime <= 0 {
			g.Result = ResultTimeout
		}
	}
}
