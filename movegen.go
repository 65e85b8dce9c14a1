// movegen.go produces the legal move list for the side to move.  Leaper
// attacks come from the tables built in init.go; slider attacks are fetched
// from the magic-indexed tables, with a plain ray walk kept as the reference
// implementation the tables are built (and verified) from.

package chesscore

// Wrap guards for offset-based attack generation, derived from the file and
// rank masks in bitboard.go.  Shifting a board left or right can carry a
// piece across the a/h edge onto the wrong rank; masking the source squares
// first prevents that.
const (
	notFileA  = ^FileA
	notFileH  = ^FileH
	notFileAB = ^(FileA | FileB)
	notFileGH = ^(FileG | FileH)
	notRank1  = ^Rank1
	notRank8  = ^Rank8
)

// GenLegalMoves fills l with every legal move for the side to move in p.
// King moves are generated strictly legal; everything else is generated
// pseudo-legal and copy-make filtered: apply the move to a scratch copy and
// keep it only if the mover's king is not left in check.
func GenLegalMoves(p Position, l *MoveList) {
	l.LastMoveIndex = 0

	genKingMoves(p, l)

	// Under double check only the king may move.
	if GenChecksCounter(p.Bitboards, 1^p.ActiveColor) > 1 {
		return
	}

	pseudoLegal := MoveList{}

	genPawnMoves(p, &pseudoLegal)

	genPieceMoves(p, &pseudoLegal)

	prev := p

	for i := range pseudoLegal.LastMoveIndex {

		p.MakeMove(pseudoLegal.Moves[i])

		if GenChecksCounter(p.Bitboards, 1^prev.ActiveColor) == 0 {
			l.Push(pseudoLegal.Moves[i])
		}

		p = prev
	}
}

// GenLegalStates appends the successor position of every legal move for the
// side to move to out and returns how many were added.  Appending to a slice
// pre-sized to the maximum legal move count makes no allocation.
func GenLegalStates(p Position, out *[]Position) int {
	var list MoveList
	GenLegalMoves(p, &list)

	for i := range list.LastMoveIndex {
		child := p
		child.MakeMove(list.Moves[i])
		*out = append(*out, child)
	}

	return int(list.LastMoveIndex)
}

// GenChecksCounter returns how many pieces of color c currently give check
// to the enemy king.  The count distinguishes single check (blocks and
// captures can answer it) from double check (only the king may move).
func GenChecksCounter(bitboards [15]uint64, c Color) (cnt int) {
	king := bitScan(bitboards[PieceWKing+(1^c)])

	if pawnAttacks[1^c][king]&bitboards[PieceWPawn+c] != 0 {
		cnt++
	}

	if knightAttacks[king]&bitboards[PieceWKnight+c] != 0 {
		cnt++
	}

	if magicBishopAttacks(king, bitboards[14])&bitboards[PieceWBishop+c] != 0 {
		cnt++
	}

	if magicRookAttacks(king, bitboards[14])&bitboards[PieceWRook+c] != 0 {
		cnt++
	}

	if magicQueenAttacks(king, bitboards[14])&bitboards[PieceWQueen+c] != 0 {
		cnt++
	}

	return cnt
}

// IsSquareAttacked reports whether byColor attacks square in the given
// occupancy.  Works by symmetry: a piece of byColor attacks square exactly
// when the same piece kind placed on square would attack that piece back.
func IsSquareAttacked(bitboards [15]uint64, square int, byColor Color) bool {
	if pawnAttacks[1^byColor][square]&bitboards[PieceWPawn+byColor] != 0 {
		return true
	}
	if knightAttacks[square]&bitboards[PieceWKnight+byColor] != 0 {
		return true
	}
	if kingAttacks[square]&bitboards[PieceWKing+byColor] != 0 {
		return true
	}
	if magicBishopAttacks(square, bitboards[14])&bitboards[PieceWBishop+byColor] != 0 {
		return true
	}
	if magicRookAttacks(square, bitboards[14])&bitboards[PieceWRook+byColor] != 0 {
		return true
	}
	if magicQueenAttacks(square, bitboards[14])&bitboards[PieceWQueen+byColor] != 0 {
		return true
	}
	return false
}

// genKingMoves appends every legal king move, castling included, to l.
func genKingMoves(p Position, l *MoveList) {
	us := p.ActiveColor
	kingBB := p.Bitboards[PieceWKing+us]
	king := bitScan(kingBB)

	// Compute the enemy attack set with the king lifted off the board: a
	// checking slider must also cover the squares behind the king, or the
	// king could "escape" by stepping backwards along the check ray.
	boards := p.Bitboards
	boards[PieceWKing+us] ^= kingBB
	boards[12+us] ^= kingBB
	boards[14] ^= kingBB
	attacks := attackedSquares(boards, 1^us)

	dests := kingAttacks[king] &^ attacks &^ p.Bitboards[12+us]
	for dests > 0 {
		l.Push(NewMove(popLSB(&dests), king, MoveNormal))
	}

	// The castlingPath masks include the king's own square, so emptiness is
	// tested against the occupancy with the king dropped out.
	occupancy := p.Bitboards[14] ^ kingBB
	if us == ColorWhite {
		if p.canCastle(CastlingWhiteShort, attacks, occupancy) &&
			p.Bitboards[PieceWRook]&H1 != 0 {
			l.Push(NewMove(SG1, king, MoveCastling))
		}
		if p.canCastle(CastlingWhiteLong, attacks, occupancy) &&
			p.Bitboards[PieceWRook]&A1 != 0 {
			l.Push(NewMove(SC1, king, MoveCastling))
		}
	} else {
		if p.canCastle(CastlingBlackShort, attacks, occupancy) &&
			p.Bitboards[PieceBRook]&H8 != 0 {
			l.Push(NewMove(SG8, king, MoveCastling))
		}
		if p.canCastle(CastlingBlackLong, attacks, occupancy) &&
			p.Bitboards[PieceBRook]&A8 != 0 {
			l.Push(NewMove(SC8, king, MoveCastling))
		}
	}
}

// pushPromotions appends the four promotion variants of a pawn move.  A pawn
// reaching the last rank always yields exactly these four moves, whether or
// not the move also captures.
func pushPromotions(l *MoveList, to, from int) {
	l.Push(NewPromotionMove(to, from, PromotionKnight))
	l.Push(NewPromotionMove(to, from, PromotionBishop))
	l.Push(NewPromotionMove(to, from, PromotionRook))
	l.Push(NewPromotionMove(to, from, PromotionQueen))
}

// genPawnMoves appends pseudo-legal pawn pushes, double pushes, captures,
// promotions, and en passant captures to l.
func genPawnMoves(p Position, l *MoveList) {
	occupancy := p.Bitboards[14]
	enemies := p.Bitboards[12+(1^p.ActiveColor)]
	pawns := p.Bitboards[PieceWPawn+p.ActiveColor]

	// The en passant target participates in capture generation like an
	// enemy-occupied square.
	ep := uint64(0)
	if p.EPTarget > 0 {
		ep = 1 << p.EPTarget
	}

	dir, homeRank, promoRank := 8, Rank2, Rank8
	if p.ActiveColor == ColorBlack {
		dir = -8
		homeRank = Rank7
		promoRank = Rank1
	}

	for pawns > 0 {
		pawn := popLSB(&pawns)
		pawnBB := uint64(1 << pawn)

		push, doublePush := pawn+dir, pawn+2*dir
		pushBB := uint64(1 << push)
		if pushBB&occupancy == 0 {
			if pushBB&promoRank != 0 {
				pushPromotions(l, push, pawn)
			} else {
				l.Push(NewMove(push, pawn, MoveNormal))
			}
			// A pawn still on its home rank may advance two squares when
			// both squares ahead are empty.
			if pawnBB&homeRank != 0 && 1<<doublePush&occupancy == 0 {
				l.Push(NewMove(doublePush, pawn, MoveNormal))
			}
		}

		captures := pawnAttacks[p.ActiveColor][pawn] & (enemies | ep)
		for captures > 0 {
			to := popLSB(&captures)
			switch {
			case 1<<to&promoRank != 0:
				pushPromotions(l, to, pawn)
			case 1<<to&ep != 0:
				l.Push(NewMove(to, pawn, MoveEnPassant))
			default:
				l.Push(NewMove(to, pawn, MoveNormal))
			}
		}
	}
}

// genPieceMoves appends pseudo-legal knight, bishop, rook, and queen moves
// to l.
func genPieceMoves(p Position, l *MoveList) {
	allies := p.Bitboards[12+p.ActiveColor]
	occupancy := p.Bitboards[14]

	for piece := PieceWKnight + p.ActiveColor; piece <= PieceWQueen+p.ActiveColor; piece += 2 {
		pieces := p.Bitboards[piece]
		for pieces > 0 {
			from := popLSB(&pieces)

			dests := pieceAttacks(piece, from, occupancy) &^ allies
			for dests > 0 {
				l.Push(NewMove(popLSB(&dests), from, MoveNormal))
			}
		}
	}
}

// pieceAttacks returns the attack set of a single knight, bishop, rook, or
// queen standing on from.  Pawns and kings have their own color- and
// table-specific paths and are not handled here.
func pieceAttacks(piece Piece, from int, occupancy uint64) uint64 {
	switch piece {
	case PieceWKnight, PieceBKnight:
		return knightAttacks[from]
	case PieceWBishop, PieceBBishop:
		return magicBishopAttacks(from, occupancy)
	case PieceWRook, PieceBRook:
		return magicRookAttacks(from, occupancy)
	default:
		return magicQueenAttacks(from, occupancy)
	}
}

// attackedSquares returns the union of every square color c attacks in the
// given board state.  It feeds king-move generation, which is why the caller
// is expected to have removed the enemy king from the occupancy first: the
// king must not shadow slider rays when deciding where it can safely go.
func attackedSquares(bitboards [15]uint64, c Color) (attacks uint64) {
	for piece := PieceWBishop + c; piece <= PieceWQueen+c; piece += 2 {
		bb := bitboards[piece]
		for bb > 0 {
			attacks |= pieceAttacks(piece, popLSB(&bb), bitboards[14])
		}
	}

	attacks |= pawnAttackSpan(bitboards[PieceWPawn+c], c)
	attacks |= knightAttackSpan(bitboards[PieceWKnight+c])
	attacks |= kingAttackSpan(bitboards[PieceWKing+c])

	return attacks
}

// pawnAttackSpan returns every square attacked by the given pawns, all at
// once.  Single-pawn lookups should use the pawnAttacks table instead.
func pawnAttackSpan(pawns uint64, c Color) uint64 {
	if c == ColorWhite {
		return (pawns & notFileA << 7) | (pawns & notFileH << 9)
	}
	return (pawns & notFileA >> 9) | (pawns & notFileH >> 7)
}

// knightAttackSpan returns every square attacked by the given knights, all
// at once.  Single-knight lookups should use the knightAttacks table
// instead.
func knightAttackSpan(knights uint64) uint64 {
	return (knights & notFileA >> 17) |
		(knights & notFileH >> 15) |
		(knights & notFileAB >> 10) |
		(knights & notFileGH >> 6) |
		(knights & notFileAB << 6) |
		(knights & notFileGH << 10) |
		(knights & notFileA << 15) |
		(knights & notFileH << 17)
}

// kingAttackSpan returns the eight squares around the given king.
func kingAttackSpan(king uint64) uint64 {
	return (king & notFileA >> 9) |
		(king >> 8) |
		(king & notFileH >> 7) |
		(king & notFileA >> 1) |
		(king & notFileH << 1) |
		(king & notFileA << 7) |
		(king << 8) |
		(king & notFileH << 9)
}

// rayBishopAttacks walks the four diagonal rays from a single bishop square,
// stopping at (and including) the first occupied square on each.  It is the
// slow reference the magic tables are generated from and verified against;
// move generation itself always goes through magicBishopAttacks.
func rayBishopAttacks(bishop, occupancy uint64) (attacks uint64) {
	for i := bishop & notFileA >> 9; i&notFileH != 0; i >>= 9 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}

	for i := bishop & notFileH >> 7; i&notFileA != 0; i >>= 7 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}

	for i := bishop & notFileA << 7; i&notFileH != 0; i <<= 7 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}

	for i := bishop & notFileH << 9; i&notFileA != 0; i <<= 9 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}

	return attacks
}

// rayRookAttacks walks the four orthogonal rays from a single rook square,
// stopping at (and including) the first occupied square on each.  Like
// rayBishopAttacks, it exists to build and verify the magic tables.
func rayRookAttacks(rook, occupancy uint64) (attacks uint64) {
	for i := rook & notFileA >> 1; i&notFileH != 0; i >>= 1 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}

	for i := rook & notFileH << 1; i&notFileA != 0; i <<= 1 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}

	for i := rook & notRank1 >> 8; i&notRank8 != 0; i >>= 8 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}

	for i := rook & notRank8 << 8; i&notRank1 != 0; i <<= 8 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}

	return attacks
}

// magicBishopAttacks returns the bishop attack set for square under
// occupancy via the magic hashing scheme: mask the occupancy down to the
// squares that matter, multiply by the square's magic constant, and use the
// top bits as an index into the precomputed table.
func magicBishopAttacks(square int, occupancy uint64) uint64 {
	occupancy &= bishopOccupancy[square]
	occupancy *= bishopMagicNumbers[square]
	occupancy >>= 64 - bishopBitCount[square]
	return bishopAttacks[square][occupancy]
}

// magicRookAttacks is the rook counterpart of magicBishopAttacks.
func magicRookAttacks(square int, occupancy uint64) uint64 {
	occupancy &= rookOccupancy[square]
	occupancy *= rookMagicNumbers[square]
	occupancy >>= 64 - rookBitCount[square]
	return rookAttacks[square][occupancy]
}

// magicQueenAttacks returns the queen attack set: the union of the bishop
// and rook sets from the same square.
func magicQueenAttacks(square int, occupancy uint64) uint64 {
	return magicBishopAttacks(square, occupancy) |
		magicRookAttacks(square, occupancy)
}
