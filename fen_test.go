package chesscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBitboards(t *testing.T) {
	testcases := []struct {
		name     string
		fen      string
		expected [15]uint64
	}{
		{
			"Initial position",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
			[15]uint64{
				0xFF00, 0xFF000000000000, 0x42, 0x4200000000000000,
				0x24, 0x2400000000000000, 0x81, 0x8100000000000000,
				0x8, 0x800000000000000, 0x10, 0x1000000000000000,
				0xFFFF, 0xFFFF000000000000, 0xFFFF00000000FFFF,
			},
		},
		{
			"Two rooks, two pawns",
			"8/4p3/1PR5/8/4R3/8/4p3/8",
			[15]uint64{
				0x20000000000, 0x10000000001000, 0x0, 0x0, 0x0, 0x0,
				0x40010000000, 0x0, 0x0, 0x0, 0x0, 0x0,
				0x60010000000, 0x10000000001000, 0x10060010001000,
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseBitboards(tc.fen))
		})
	}
}

func TestSerializeBitboards(t *testing.T) {
	testcases := []struct {
		name      string
		bitboards [15]uint64
		expected  string
	}{
		{
			"Initial position",
			[15]uint64{
				0xFF00, 0xFF000000000000, 0x42, 0x4200000000000000,
				0x24, 0x2400000000000000, 0x81, 0x8100000000000000,
				0x8, 0x800000000000000, 0x10, 0x1000000000000000,
			}, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		},
		{
			"Two rooks, two pawns",
			[15]uint64{
				0x20000000000, 0x10000000001000, 0x0, 0x0, 0x0, 0x0,
				0x40010000000, 0x0, 0x0, 0x0, 0x0, 0x0,
			}, "8/4p3/1PR5/8/4R3/8/4p3/8",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SerializeBitboards(tc.bitboards))
		})
	}
}

// TestParseFEN does not check the parsed bitboards, since that is the job
// of TestParseBitboards.
func TestParseFEN(t *testing.T) {
	testcases := []struct {
		fen      string
		expected Position
	}{
		{
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			Position{
				ActiveColor:    ColorWhite,
				CastlingRights: 0xF,
				EPTarget:       SA1,
				HalfmoveCnt:    0,
				FullmoveCnt:    1,
			},
		},
		{
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			Position{
				ActiveColor:    ColorBlack,
				CastlingRights: 0xF,
				EPTarget:       SE3,
				HalfmoveCnt:    0,
				FullmoveCnt:    1,
			},
		},
	}

	for _, tc := range testcases {
		p, err := ParseFEN(tc.fen)
		require.NoError(t, err)

		tc.expected.Bitboards = p.Bitboards
		assert.Equal(t, tc.expected, p)
	}
}

func TestParseFENInvalid(t *testing.T) {
	testcases := []struct {
		name string
		fen  string
		kind FenErrorKind
	}{
		{"missing fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", BadFieldCount},
		{"wrong rank count", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1", BadPlacement},
		{"wrong file count", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPP/RNBQKBNR w KQkq - 0 1", BadPlacement},
		{"invalid piece letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPX/RNBQKBNR w KQkq - 0 1", BadPlacement},
		{"bad active color", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", BadActiveColor},
		{"bad castling rights", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XYZx - 0 1", BadCastling},
		{"bad en passant square", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", BadEnPassant},
		{"bad halfmove clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1", BadHalfmove},
		{"bad fullmove number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 x", BadFullmove},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			require.Error(t, err)

			var fenErr *FenParseError
			require.ErrorAs(t, err, &fenErr)
			assert.Equal(t, tc.kind, fenErr.Kind)
		})
	}
}

// TestSerializeFEN does not check the serialized bitboards, since that is the job
// of TestSerializeBitboards.
func TestSerializeFEN(t *testing.T) {
	testcases := []struct {
		position Position
		expected string
	}{
		{Position{
			Bitboards:   ParseBitboards("1r3r2/4bpkp/1qb1p1p1/3pP1P1/p1pP1Q2/PpP2N1R/1Pn1B2P/3RB2K"),
			ActiveColor: ColorWhite, CastlingRights: 0x0, EPTarget: 0x0,
			HalfmoveCnt: 0, FullmoveCnt: 1,
		}, "1r3r2/4bpkp/1qb1p1p1/3pP1P1/p1pP1Q2/PpP2N1R/1Pn1B2P/3RB2K w - - 0 1"},
		{Position{
			Bitboards:   ParseBitboards("rnbqkbnr/pppppppp/8/8/5P2/8/PPPPP1PP/RNBQKBNR"),
			ActiveColor: ColorBlack, CastlingRights: 0xF, EPTarget: SF3,
			HalfmoveCnt: 0, FullmoveCnt: 1,
		}, "rnbqkbnr/pppppppp/8/8/5P2/8/PPPPP1PP/RNBQKBNR b KQkq f3 0 1"},
		{Position{
			Bitboards:   ParseBitboards("4k3/8/8/8/8/3P4/2K5/8"),
			ActiveColor: ColorWhite, CastlingRights: 0x0,
			EPTarget: 0x0, HalfmoveCnt: 0, FullmoveCnt: 64,
		}, "4k3/8/8/8/8/3P4/2K5/8 w - - 0 64"},
	}

	for _, tc := range testcases {
		assert.Equal(t, tc.expected, SerializeFEN(tc.position))
	}
}

// TestFENRoundTrip checks the round-trip property: serializing a
// parsed position reproduces the original string, and re-parsing the
// serialized form reproduces the original position.
func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		InitialPos,
		kiwipeteFEN,
		position3FEN,
		position4FEN,
		"8/8/8/KPp4r/8/8/8/5k2 w - c6 0 1",
		"4k3/8/8/8/8/3P4/2K5/8 w - - 12 64",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		require.NoError(t, err)

		serialized := SerializeFEN(pos)
		assert.Equal(t, fen, serialized)

		back, err := ParseFEN(serialized)
		require.NoError(t, err)
		assert.Equal(t, pos, back)
	}
}

func BenchmarkParseBitboards(b *testing.B) {
	for b.Loop() {
		ParseBitboards("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")
	}
}

func BenchmarkSerializeBitboards(b *testing.B) {
	bitboards := [15]uint64{
		0xFF00, 0x42, 0x24, 0x81, 0x8, 0x10,
		0xFF000000000000, 0x4200000000000000, 0x2400000000000000,
		0x8100000000000000, 0x800000000000000, 0x1000000000000000,
	}
	for b.Loop() {
		SerializeBitboards(bitboards)
	}
}

func BenchmarkParseFEN(b *testing.B) {
	for b.Loop() {
		ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	}
}

func BenchmarkSerializeFEN(b *testing.B) {
	pos := Position{
		Bitboards: [15]uint64{
			0xFF00, 0x42, 0x24, 0x81, 0x8, 0x10,
			0xFF000000000000, 0x4200000000000000, 0x2400000000000000,
			0x8100000000000000, 0x800000000000000, 0x1000000000000000,
		},
		ActiveColor:    ColorWhite,
		CastlingRights: 0xF,
		FullmoveCnt:    1,
	}
	for b.Loop() {
		SerializeFEN(pos)
	}
}
