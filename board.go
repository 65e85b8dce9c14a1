/*
board.go formats positions and single bitboards as ASCII diagrams. This is a
debugging facility only: its exact layout is not load-bearing and nothing in
the core depends on its output.
*/

package chesscore

import "strings"

// FormatBitboard renders a single bitboard as an 8x8 grid, with set squares
// shown as pieceSymbol and clear squares as '.'.
func FormatBitboard(bitboard uint64, pieceSymbol byte) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + '1')
		b.WriteString("  ")

		for file := 0; file < 8; file++ {
			square := uint64(1) << (8*rank + file)

			symbol := pieceSymbol
			if bitboard&square == 0 {
				symbol = '.'
			}

			b.WriteByte(symbol)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")

	return b.String()
}

/*
FormatPosition renders a full Position as an ASCII 8x8 grid: file letters
a-h across the bottom, rank numbers 1-8 down the left, empty squares as '.',
and pieces by their FEN letter (upper = White, lower = Black). Active color,
en passant target, and castling rights are appended below the board.
*/
func FormatPosition(p Position) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + '1')
		b.WriteString("  ")

		for file := 0; file < 8; file++ {
			square := uint64(1) << (8*rank + file)

			symbol := byte('.')
			for i := PieceWPawn; i <= PieceBKing; i++ {
				if square&p.Bitboards[i] != 0 {
					symbol = PieceSymbols[i]
					break
				}
			}

			b.WriteByte(symbol)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}

	b.WriteString("   a  b  c  d  e  f  g  h\nActive color: ")
	if p.ActiveColor == ColorWhite {
		b.WriteString("white\n")
	} else {
		b.WriteString("black\n")
	}

	b.WriteString("En passant: ")
	if p.EPTarget == 0 {
		b.WriteString("none\n")
	} else {
		b.WriteString(Square2String[p.EPTarget])
		b.WriteByte('\n')
	}

	b.WriteString("Castling rights: ")
	if p.CastlingRights == 0 {
		b.WriteString("-")
	} else {
		if p.CastlingRights&CastlingWhiteShort != 0 {
			b.WriteByte('K')
		}
		if p.CastlingRights&CastlingWhiteLong != 0 {
			b.WriteByte('Q')
		}
		if p.CastlingRights&CastlingBlackShort != 0 {
			b.WriteByte('k')
		}
		if p.CastlingRights&CastlingBlackLong != 0 {
			b.WriteByte('q')
		}
	}
	b.WriteByte('\n')

	return b.String()
}
