// position.go holds the Position value type and the state transition applied
// by MakeMove: piece placement, castling rights, the en passant target, both
// move counters, and the side to move.

package chesscore

// Position is the complete state of a chess game at one moment, round-trippable
// through FEN.  Slots 0-11 of Bitboards hold the piece boards, 12 and 13 the
// per-color occupancy, 14 the combined occupancy.
type Position struct {
	Bitboards      [15]uint64
	ActiveColor    Color
	CastlingRights CastlingRights
	EPTarget       int
	HalfmoveCnt    int
	FullmoveCnt    int
}

// InitialPosition returns the standard starting position.
func InitialPosition() Position {
	return MustParseFEN(InitialPos)
}

// promotionPieces maps a PromotionFlag to the white piece it promotes to;
// add the mover's color for the black variant.
var promotionPieces = [4]Piece{PieceWKnight, PieceWBishop, PieceWRook, PieceWQueen}

// MakeMove applies m to the position in place.  The move must be at least
// pseudo-legal; legality filtering is the generator's job.
//
// Beyond moving the piece itself, this maintains every derived field:
// castling rights, the en passant target, the halfmove and fullmove
// counters, and the side to move.
func (p *Position) MakeMove(m Move) {
	to := uint64(1 << m.To())
	from := uint64(1 << m.From())

	moved := p.GetPieceFromSquare(from)
	captured := PieceNone
	if m.Type() != MoveEnPassant {
		// En passant is the one capture whose victim is not on the
		// destination square; it is handled in the type switch below.
		captured = p.GetPieceFromSquare(to)
	}

	p.togglePiece(moved, from)

	// The halfmove clock ticks every ply and resets on captures and pawn
	// moves further down.
	p.HalfmoveCnt++

	if captured != PieceNone {
		p.togglePiece(captured, to)
		p.HalfmoveCnt = 0

		// A rook captured on its home square takes the corresponding
		// castling right with it.
		switch {
		case captured == PieceWRook && m.To() == SA1:
			p.CastlingRights &= ^CastlingWhiteLong
		case captured == PieceWRook && m.To() == SH1:
			p.CastlingRights &= ^CastlingWhiteShort
		case captured == PieceBRook && m.To() == SA8:
			p.CastlingRights &= ^CastlingBlackLong
		case captured == PieceBRook && m.To() == SH8:
			p.CastlingRights &= ^CastlingBlackShort
		}
	}

	switch m.Type() {
	case MoveNormal:
		p.togglePiece(moved, to)

	case MoveEnPassant:
		p.togglePiece(moved, to)
		// The captured pawn sits one rank behind the destination square.
		if moved == PieceWPawn {
			p.togglePiece(PieceBPawn, to>>8)
		} else {
			p.togglePiece(PieceWPawn, to<<8)
		}

	case MoveCastling:
		p.togglePiece(moved, to)
		// The rook hops to the other side of the king.
		switch to {
		case G1:
			p.togglePiece(PieceWRook, H1)
			p.togglePiece(PieceWRook, F1)
		case G8:
			p.togglePiece(PieceBRook, H8)
			p.togglePiece(PieceBRook, F8)
		case C1:
			p.togglePiece(PieceWRook, A1)
			p.togglePiece(PieceWRook, D1)
		case C8:
			p.togglePiece(PieceBRook, A8)
			p.togglePiece(PieceBRook, D8)
		}

	case MovePromotion:
		p.togglePiece(promotionPieces[m.PromoPiece()]+p.ActiveColor, to)
	}

	// An en passant opportunity lasts a single ply; a fresh double push
	// below may set a new one.
	p.EPTarget = 0

	switch moved {
	case PieceWPawn, PieceBPawn:
		// A double push leaves the passed-over square as the en passant
		// target.
		if m.To()+16 == m.From() {
			p.EPTarget = m.To() + 8
		} else if m.To()-16 == m.From() {
			p.EPTarget = m.To() - 8
		}
		p.HalfmoveCnt = 0
	case PieceWRook:
		// A rook leaving its home square forfeits that side's right.
		switch m.From() {
		case SA1:
			p.CastlingRights &= ^CastlingWhiteLong
		case SH1:
			p.CastlingRights &= ^CastlingWhiteShort
		}
	case PieceBRook:
		switch m.From() {
		case SA8:
			p.CastlingRights &= ^CastlingBlackLong
		case SH8:
			p.CastlingRights &= ^CastlingBlackShort
		}
	case PieceWKing:
		// A king move, castling included, forfeits both rights at once.
		p.CastlingRights &= ^(CastlingWhiteShort | CastlingWhiteLong)
	case PieceBKing:
		p.CastlingRights &= ^(CastlingBlackShort | CastlingBlackLong)
	}

	if p.ActiveColor == ColorBlack {
		p.FullmoveCnt++
	}

	p.ActiveColor ^= 1

	if debugAssertions {
		p.assertInvariants()
	}
}

// debugAssertions gates the structural checks in assertInvariants.  Off by
// default: a failed check means a move generation bug, not a user error, so
// release users pay nothing for it.  Flip it on when chasing a wrong perft
// count.
var debugAssertions = false

// assertInvariants panics if the position violates a structural invariant:
// overlapping piece bitboards, stale occupancy boards, a missing or
// duplicated king, or a pawn on a back rank.
func (p *Position) assertInvariants() {
	var all uint64
	for i := PieceWPawn; i <= PieceBKing; i++ {
		if all&p.Bitboards[i] != 0 {
			panic("chesscore: invariant violation: piece bitboards overlap")
		}
		all |= p.Bitboards[i]
	}
	if all != p.Bitboards[14] || p.Bitboards[12]|p.Bitboards[13] != all {
		panic("chesscore: invariant violation: stale occupancy bitboards")
	}
	if CountBits(p.Bitboards[PieceWKing]) != 1 || CountBits(p.Bitboards[PieceBKing]) != 1 {
		panic("chesscore: invariant violation: each side must have exactly one king")
	}
	if (p.Bitboards[PieceWPawn]|p.Bitboards[PieceBPawn])&(Rank1|Rank8) != 0 {
		panic("chesscore: invariant violation: pawn on a back rank")
	}
}

// GetPieceFromSquare returns the piece occupying the given square bitboard,
// or [PieceNone] for an empty square.
func (p *Position) GetPieceFromSquare(square uint64) Piece {
	for i := range p.Bitboards {
		if square&p.Bitboards[i] != 0 {
			return i
		}
	}
	return PieceNone
}

// InCheck reports whether the side to move is in check: whether the enemy
// attacks the square the active king stands on.
func (p *Position) InCheck() bool {
	king := bitScan(p.Bitboards[PieceWKing+p.ActiveColor])
	return IsSquareAttacked(p.Bitboards, king, 1^p.ActiveColor)
}

// canCastle reports whether the castling named by right (a single
// CastlingRights bit) is available: the right is intact, none of the squares
// the king crosses is attacked, and the squares between king and rook are
// empty.  The rook's path does not need to be safe, only clear.
func (p *Position) canCastle(right int, attacks, occupancy uint64) bool {
	i := bitScan(uint64(right))
	return p.CastlingRights&right != 0 &&
		attacks&castlingAttackPath[i] == 0 &&
		occupancy&castlingPath[i] == 0
}

// togglePiece flips the piece's presence on square, keeping the color and
// combined occupancy boards in sync.  Placing onto an empty square and
// removing a present piece are the same XOR; MakeMove guarantees one of the
// two always holds.
func (p *Position) togglePiece(piece Piece, square uint64) {
	p.Bitboards[piece] ^= square
	p.Bitboards[12+(piece&1)] ^= square
	p.Bitboards[14] ^= square
}

// calculateMaterial sums the point values of both sides' non-king pieces.
// Draw detection by insufficient material keys off this total.
func (p *Position) calculateMaterial() (material int) {
	for piece := range PieceWKing {
		material += CountBits(p.Bitboards[piece]) * pieceWeights[piece]
	}
	return material
}
