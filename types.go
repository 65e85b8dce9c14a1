// types.go declares the small enumerated types the engine is built from and
// the compact Move encoding.

package chesscore

// Color is an alias of int so piece indices and colors mix without casts:
// piece + color selects the colored variant of a piece constant.
type Color = int

const (
	ColorWhite Color = iota
	ColorBlack
	ColorBoth
)

// Piece is an alias of int used to index the per-piece bitboard array.
// White and black variants of each kind interleave, so piece&1 is its color
// and piece+color picks the colored variant.
type Piece = int

const (
	PieceWPawn Piece = iota
	PieceBPawn
	PieceWKnight
	PieceBKnight
	PieceWBishop
	PieceBBishop
	PieceWRook
	PieceBRook
	PieceWQueen
	PieceBQueen
	PieceWKing
	PieceBKing
	// Sentinel for an empty square.
	PieceNone = -1
)

// MoveType distinguishes the four kinds of move the 2-bit flag field of a
// [Move] can carry.
type MoveType = int

const (
	// Quiet moves and ordinary captures.
	MoveNormal MoveType = iota
	// Castling, either side.
	MoveCastling
	// Pawn promotion, capturing or not; the promoted piece is in the
	// move's PromotionFlag field.
	MovePromotion
	// En passant capture.
	MoveEnPassant
)

// PromotionFlag selects the piece a promoting pawn turns into.
type PromotionFlag = int

const (
	PromotionKnight PromotionFlag = iota
	PromotionBishop
	PromotionRook
	PromotionQueen
)

// CastlingRights is a 4-bit set; one bit per (color, side) pair.
type CastlingRights = int

const (
	CastlingWhiteShort CastlingRights = 1
	CastlingWhiteLong  CastlingRights = 2
	CastlingBlackShort CastlingRights = 4
	CastlingBlackLong  CastlingRights = 8
)

// Move packs a chess move into 16 bits:
//
//	bits 0-5   destination square
//	bits 6-11  origin square
//	bits 12-13 promotion piece (PromotionFlag)
//	bits 14-15 move kind (MoveType)
//
// Together with the pre-move Position this is enough to reconstruct the
// post-move Position.
type Move uint16

// NewMove builds a non-promotion move.  The promotion field is set to queen
// so that equal moves compare equal regardless of how they were built.
func NewMove(to, from, moveType int) Move {
	return Move(to | (from << 6) | (PromotionQueen << 12) | (moveType << 14))
}

// NewPromotionMove builds a promotion move to the given piece.
func NewPromotionMove(to, from, promoPiece int) Move {
	return Move(to | (from << 6) | (promoPiece << 12) | (MovePromotion << 14))
}

func (m Move) To() int                   { return int(m & 0x3F) }
func (m Move) From() int                 { return int(m>>6) & 0x3F }
func (m Move) PromoPiece() PromotionFlag { return PromotionFlag(m>>12) & 0x3 }
func (m Move) Type() MoveType            { return MoveType(m>>14) & 0x3 }

// MoveList is a fixed-capacity move buffer.  Sizing it to the most legal
// moves any chess position admits (218, see
// https://www.talkchess.com/forum/viewtopic.php?t=61792) lets generation run
// without any dynamic allocation.
type MoveList struct {
	Moves [218]Move
	// Index one past the last stored move.
	LastMoveIndex byte
}

// Push appends m to the list.
func (l *MoveList) Push(m Move) {
	l.Moves[l.LastMoveIndex] = m
	l.LastMoveIndex++
}

// Result represents the possible outcomes of a chess game.
type Result int

const (
	ResultUnscored Result = iota // Default value: the game isn't finished yet.
	ResultCheckmate
	ResultTimeout
	ResultStalemate
	ResultInsufficientMaterial
	ResultFiftyMove
	ResultThreefoldRepetition
	ResultResignation
	ResultDrawByAgreement
)
