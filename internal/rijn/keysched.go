package rijn

import (
	"encoding/binary"
	"fmt"
)

// nb is the state width in words; fixed at four for the 128-bit block.
const nb = 4

// Params fixes the key geometry of an engine: Nk words of key and Nr
// rounds. Only the three FIPS-197 pairings are valid, and an engine can
// only be built from a validated Params, so a mismatched schedule length
// is unrepresentable.
type Params struct {
	Nk int
	Nr int
}

// NewParams validates an (Nk, Nr) pair.
func NewParams(nk, nr int) (Params, error) {
	switch nk {
	case 4, 6, 8:
	default:
		return Params{}, fmt.Errorf("rijn: Nk must be 4, 6 or 8, got %d", nk)
	}
	if nr != nk+6 {
		return Params{}, fmt.Errorf("rijn: Nr must be Nk+6 = %d, got %d", nk+6, nr)
	}
	return Params{Nk: nk, Nr: nr}, nil
}

// ParamsForKeySize derives the geometry from a key length in bytes.
func ParamsForKeySize(n int) (Params, error) {
	switch n {
	case 16, 24, 32:
		return Params{Nk: n / 4, Nr: n/4 + 6}, nil
	}
	return Params{}, fmt.Errorf("rijn: key must be 16, 24 or 32 bytes, got %d", n)
}

// Round constants for key expansion: the powers of x in GF(2^8).
// Expansion indexes this table from 1; the leading entry is dead data
// and never read.
var rcon = [15]byte{
	0x8d, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b,
	0x36, 0x6c, 0xd8, 0xab, 0x4d,
}

// expandKey derives the full nb*(Nr+1) word schedule from a 4*Nk byte
// key, FIPS-197 §5.2. The key must already match p; Tick checks that at
// the latch.
func expandKey(key []byte, p Params) []uint32 {
	w := make([]uint32, nb*(p.Nr+1))
	for i := 0; i < p.Nk; i++ {
		w[i] = binary.BigEndian.Uint32(key[4*i:])
	}
	for i := p.Nk; i < len(w); i++ {
		temp := w[i-1]
		switch {
		case i%p.Nk == 0:
			temp = subWord(rotWordLeft(temp)) ^ uint32(rcon[i/p.Nk])<<24
		case p.Nk > 6 && i%p.Nk == 4:
			temp = subWord(temp)
		}
		w[i] = w[i-p.Nk] ^ temp
	}
	return w
}

// encryptRoundKey slices round r's four-word window out of the schedule,
// most significant word first.
func encryptRoundKey(w []uint32, round int) Block {
	var rk Block
	for c := 0; c < nb; c++ {
		binary.BigEndian.PutUint32(rk[4*c:], w[round*nb+c])
	}
	return rk
}

// decryptRoundKey is the equivalent-inverse-cipher extraction: the same
// window as encryptRoundKey, passed through invMixColumns for the
// intermediate rounds. Rounds 0 and Nr are used by bare key additions in
// the decrypt engine and stay unmodified.
func decryptRoundKey(w []uint32, nr, round int) Block {
	rk := encryptRoundKey(w, round)
	if round != 0 && round != nr {
		rk = invMixColumns(rk)
	}
	return rk
}
