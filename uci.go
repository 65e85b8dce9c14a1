// uci.go encodes moves in the long algebraic form used by the UCI protocol
// and by perft divide output.

package chesscore

import "strings"

// promotionLetters is indexed by PromotionFlag.
var promotionLetters = [4]byte{'n', 'b', 'r', 'q'}

// Move2UCI encodes m as long algebraic notation: origin square, destination
// square, and a trailing lowercase piece letter for promotions (e2e4, a7a8q).
// Castling is written as the king's two-square hop (e1g1), never as O-O.
func Move2UCI(m Move) string {
	var b strings.Builder
	b.Grow(5)

	b.WriteString(Square2String[m.From()])
	b.WriteString(Square2String[m.To()])

	if m.Type() == MovePromotion {
		b.WriteByte(promotionLetters[m.PromoPiece()])
	}

	return b.String()
}
