// Package rijn is a from-scratch AES (Rijndael) block cipher core built
// around an iterative, round-at-a-time engine: the key schedule is
// re-derived at every latch and consumed one round key per tick, the way
// a non-pipelined hardware core would do it. The package exposes the two
// tick-driven engines plus a crypto/cipher.Block adapter so the core can
// sit under the standard modes.
package rijn

// BlockSize is the Rijndael block size in bytes. Only the single
// 128-bit block of FIPS-197 is supported.
const BlockSize = 16

// Block is the 128-bit cipher state: four columns of four bytes each,
// column-major, so byte 4c+r sits in column c, row r. Every transform
// below is pure and returns a fresh Block.
type Block [BlockSize]byte

func subBytes(b Block) Block {
	var out Block
	for i := range b {
		out[i] = sbox[b[i]]
	}
	return out
}

func invSubBytes(b Block) Block {
	var out Block
	for i := range b {
		out[i] = invSbox[b[i]]
	}
	return out
}

// shiftRows rotates row r left by r byte positions across the columns.
func shiftRows(b Block) Block {
	var out Block
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[4*c+r] = b[4*((c+r)%4)+r]
		}
	}
	return out
}

func invShiftRows(b Block) Block {
	var out Block
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[4*c+r] = b[4*((c+4-r)%4)+r]
		}
	}
	return out
}

// mixColumns multiplies each column, taken as a polynomial over GF(2^8),
// by {02,03,01,01} modulo x^4+1.
func mixColumns(b Block) Block {
	var out Block
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := b[4*c], b[4*c+1], b[4*c+2], b[4*c+3]
		out[4*c+0] = gfMul(0x02, a0) ^ gfMul(0x03, a1) ^ a2 ^ a3
		out[4*c+1] = a0 ^ gfMul(0x02, a1) ^ gfMul(0x03, a2) ^ a3
		out[4*c+2] = a0 ^ a1 ^ gfMul(0x02, a2) ^ gfMul(0x03, a3)
		out[4*c+3] = gfMul(0x03, a0) ^ a1 ^ a2 ^ gfMul(0x02, a3)
	}
	return out
}

// invMixColumns multiplies each column by {0e,0b,0d,09}, the inverse of
// the mixColumns polynomial.
func invMixColumns(b Block) Block {
	var out Block
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := b[4*c], b[4*c+1], b[4*c+2], b[4*c+3]
		out[4*c+0] = gfMul(0x0e, a0) ^ gfMul(0x0b, a1) ^ gfMul(0x0d, a2) ^ gfMul(0x09, a3)
		out[4*c+1] = gfMul(0x09, a0) ^ gfMul(0x0e, a1) ^ gfMul(0x0b, a2) ^ gfMul(0x0d, a3)
		out[4*c+2] = gfMul(0x0d, a0) ^ gfMul(0x09, a1) ^ gfMul(0x0e, a2) ^ gfMul(0x0b, a3)
		out[4*c+3] = gfMul(0x0b, a0) ^ gfMul(0x0d, a1) ^ gfMul(0x09, a2) ^ gfMul(0x0e, a3)
	}
	return out
}

// addRoundKey XORs a round key into the state. Self-inverse.
func addRoundKey(b, rk Block) Block {
	var out Block
	for i := range b {
		out[i] = b[i] ^ rk[i]
	}
	return out
}
