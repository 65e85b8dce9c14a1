// bitutil.go holds the unexported bit-scanning routines move generation
// loops on.  The exported equivalents backed by math/bits live in
// bitboard.go; these stay in the multiply-and-lookup form the hot path was
// tuned with.

package chesscore

// Multiplier for the perfect-hash bitscan below.  See
// http://pradu.us/old/Nov27_2008/Buzz/research/magic/Bitboards.pdf, section
// 3.2.
const bitscanMagic uint64 = 0x07EDD5E59A4E28C2

// bitScanLookup maps the top six bits of (isolated LSB * bitscanMagic) back
// to the bit's index.
var bitScanLookup = [64]int{
	63, 0, 58, 1, 59, 47, 53, 2,
	60, 39, 48, 27, 54, 33, 42, 3,
	61, 51, 37, 40, 49, 18, 28, 20,
	55, 30, 34, 11, 43, 14, 22, 4,
	62, 57, 46, 52, 38, 26, 32, 41,
	50, 36, 17, 19, 29, 10, 13, 21,
	56, 45, 25, 31, 35, 16, 9, 12,
	44, 24, 15, 8, 23, 7, 6, 5,
}

// bitScan returns the index of the least significant set bit.  bitboard &
// -bitboard isolates that bit, and the multiply-shift hashes it into the
// lookup table.
//
// NOTE: bitScan returns 63 for the empty bitboard.
func bitScan(bitboard uint64) int {
	return bitScanLookup[bitboard&-bitboard*bitscanMagic>>58]
}

// popLSB clears the least significant set bit and returns its index, so a
// bitboard can be drained one square at a time.
//
// NOTE: popLSB returns 63 for the empty bitboard.
func popLSB(bitboard *uint64) int {
	lsb := bitScan(*bitboard)
	*bitboard &= *bitboard - 1
	return lsb
}

// CountBits returns how many bits are set, clearing one per iteration
// (Kernighan's method); fast when boards are sparse, which piece boards are.
func CountBits(bitboard uint64) (cnt int) {
	for ; bitboard > 0; cnt++ {
		bitboard &= bitboard - 1
	}
	return cnt
}
