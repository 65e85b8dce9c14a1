// fen.go implements conversions between Forsyth-Edwards Notation (FEN) strings
// and bitboard arrays.  [ParseBitboards] and [SerializeBitboards] expect their
// input to already be well-formed; [ParseFEN] validates each field and
// reports the first failure as a [*FenParseError].

package chesscore

import (
	"strconv"

	"strings"
)

// A FEN record has six space-separated fields: piece placement, active
// color ("w"/"b"), castling rights ("KQkq" subset or "-"), en passant
// target square (algebraic or "-"), halfmove clock, and fullmove number.

// ParseFEN parses the given FEN string into a [Position].  It returns a
// [*FenParseError] describing the first malformed field instead of
// panicking, since a FEN string is external input.
func ParseFEN(fen string) (p Position, err error) {
	// Separate FEN fields.
	fields := strings.SplitN(fen, " ", 6)
	if len(fields) != 6 {
		return Position{}, &FenParseError{Kind: BadFieldCount, Field: fen}
	}

	// Parse piece placement.
	if err := validatePlacement(fields[0]); err != nil {
		return Position{}, err
	}
	p.Bitboards = ParseBitboards(fields[0])

	// Parse active color.
	switch fields[1] {
	case "w":
		p.ActiveColor = ColorWhite
	case "b":
		p.ActiveColor = ColorBlack
	default:
		return Position{}, &FenParseError{Kind: BadActiveColor, Field: fields[1]}
	}

	// Parse castling rights.
	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.CastlingRights |= CastlingWhiteShort
			case 'Q':
				p.CastlingRights |= CastlingWhiteLong
			case 'k':
				p.CastlingRights |= CastlingBlackShort
			case 'q':
				p.CastlingRights |= CastlingBlackLong
			default:
				return Position{}, &FenParseError{Kind: BadCastling, Field: fields[2]}
			}
		}
	}

	// Parse en passant target square.
	if fields[3] != "-" && (len(fields[3]) != 2 || fields[3][0] < 'a' || fields[3][0] > 'h' ||
		fields[3][1] < '1' || fields[3][1] > '8') {
		return Position{}, &FenParseError{Kind: BadEnPassant, Field: fields[3]}
	}
	p.EPTarget = string2Square(fields[3])

	// Parse halfmove counter.
	p.HalfmoveCnt, err = strconv.Atoi(fields[4])
	if err != nil {
		return Position{}, &FenParseError{Kind: BadHalfmove, Field: fields[4], Err: err}
	}

	// Parse fullmove counter.
	p.FullmoveCnt, err = strconv.Atoi(fields[5])
	if err != nil {
		return Position{}, &FenParseError{Kind: BadFullmove, Field: fields[5], Err: err}
	}

	return p, nil
}

// SerializeFEN serializes the specified [Position] into a FEN string.
func SerializeFEN(p Position) string {
	var fen strings.Builder
	fen.Grow(64)

	// 1 field: piece placement.
	fen.WriteString(SerializeBitboards(p.Bitboards))

	// 2 field: active color.
	if p.ActiveColor == ColorWhite {
		fen.WriteString(" w ")
	} else {
		fen.WriteString(" b ")
	}

	// 3 field: castling rights.
	cnt := 4
	if p.CastlingRights&CastlingWhiteShort != 0 {
		fen.WriteByte('K')
		cnt--
	}
	if p.CastlingRights&CastlingWhiteLong != 0 {
		fen.WriteByte('Q')
		cnt--
	}
	if p.CastlingRights&CastlingBlackShort != 0 {
		fen.WriteByte('k')
		cnt--
	}
	if p.CastlingRights&CastlingBlackLong != 0 {
		fen.WriteByte('q')
		cnt--
	}
	if cnt == 4 {
		fen.WriteByte('-')
	}
	fen.WriteByte(' ')

	// 4 field: en passant target square.
	if p.EPTarget == 0 {
		fen.WriteString("- ")
	} else {
		files := "abcdefgh"
		fen.WriteByte(files[p.EPTarget%8])
		fen.WriteByte('0' + byte(p.EPTarget/8+1))
		fen.WriteByte(' ')
	}

	// 5 field: the number of halfmoves.
	fen.WriteString(strconv.Itoa(p.HalfmoveCnt))
	fen.WriteByte(' ')

	// 6 field: the number of fullmoves.
	fen.WriteString(strconv.Itoa(p.FullmoveCnt))

	return fen.String()
}

const validPieceLetters = "pnbrqkPNBRQK"

// validatePlacement checks that a FEN piece-placement field describes
// exactly 8 ranks of exactly 8 squares each, built only from piece letters,
// digits 1-8, and '/' rank separators. ParseBitboards trusts this has
// already run: it returns no error, and malformed input is either silently
// misread or makes it panic.
func validatePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return &FenParseError{Kind: BadPlacement, Field: placement}
	}

	for _, rank := range ranks {
		files := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			switch {
			case c >= '1' && c <= '8':
				files += int(c - '0')
			case strings.IndexByte(validPieceLetters, c) >= 0:
				files++
			default:
				return &FenParseError{Kind: BadPlacement, Field: placement}
			}
		}
		if files != 8 {
			return &FenParseError{Kind: BadPlacement, Field: placement}
		}
	}

	return nil
}

// ParseBitboards converts a FEN piece-placement field into the 15-board
// array: 12 piece boards plus the derived occupancy boards.
//
// May panic if the provided string is not valid.
func ParseBitboards(piecePlacement string) (bitboards [15]uint64) {
	// FEN lists ranks top-down, so walking the string left to right starts
	// at a8 (square 56).
	square := 56

	for i := 0; i < len(piecePlacement); i++ {
		char := piecePlacement[i]

		if char == '/' { // Next rank down.
			square -= 16
		} else if char >= '1' && char <= '8' { // Run of empty squares.
			square += int(char - '0')
		} else { // Piece letter.
			var piece Piece // PieceWPawn unless matched below.
			switch char {
			case 'N':
				piece = PieceWKnight
			case 'B':
				piece = PieceWBishop
			case 'R':
				piece = PieceWRook
			case 'Q':
				piece = PieceWQueen
			case 'K':
				piece = PieceWKing
			case 'p':
				piece = PieceBPawn
			case 'n':
				piece = PieceBKnight
			case 'b':
				piece = PieceBBishop
			case 'r':
				piece = PieceBRook
			case 'q':
				piece = PieceBQueen
			case 'k':
				piece = PieceBKing
			}
			// Drop the piece on its board and keep the occupancy
			// boards in step.
			bb := uint64(1 << square)

			bitboards[piece] |= bb
			bitboards[12+(piece&1)] |= bb
			bitboards[14] |= bb

			square++
		}
	}

	return bitboards
}

// SerializeBitboards renders the piece boards as a FEN piece-placement
// field.  The occupancy slots of the array are ignored.
func SerializeBitboards(bitboards [15]uint64) string {
	b := strings.Builder{}
	b.Grow(20)

	// Scatter the pieces onto a flat board first; FEN wants the squares in
	// rank-by-rank order, which bitboard iteration doesn't give.
	var board [64]byte
	for i := 0; i <= PieceBKing; i++ {
		for bitboards[i] > 0 {
			board[popLSB(&bitboards[i])] = PieceSymbols[i]
		}
	}

	emptySquares := byte(0)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			square := 8*rank + file
			char := board[square]

			if char == 0 {
				emptySquares++
			} else {
				// A piece ends any run of empty squares.
				if emptySquares > 0 {
					b.WriteByte('0' + emptySquares)
					emptySquares = 0
				}
				b.WriteByte(char)
			}

			if (square+1)%8 == 0 {
				if emptySquares > 0 {
					b.WriteByte('0' + emptySquares)
					emptySquares = 0
				}
				// Ranks are '/'-separated; the last one (rank 1, ending
				// at square 7) closes the field instead.
				if square != 7 {
					b.WriteByte('/')
				}
			}
		}
	}

	return b.String()
}

// string2Square converts an algebraic square name to its index, mapping the
// FEN placeholder "-" to SA1 (the no-target sentinel: no en passant target
// can ever be a1).
func string2Square(str string) int {
	if str[0] == '-' {
		return SA1
	}
	return int(str[0]-'a') + int(str[1]-'1')*8
}

// MustParseFEN parses fen into a [Position] and panics if it is malformed.
// Use it only for FEN strings known at compile time, such as [InitialPos];
// anything derived from user input should call [ParseFEN] and handle the
// returned error.
func MustParseFEN(fen string) Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}
