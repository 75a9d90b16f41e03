package rijn

import (
	"encoding/hex"
	"testing"
)

func TestNewParams(t *testing.T) {
	cases := []struct {
		nk, nr int
		ok     bool
	}{
		{4, 10, true},
		{6, 12, true},
		{8, 14, true},
		{4, 14, false},
		{8, 10, false},
		{5, 11, false},
		{0, 6, false},
	}
	for _, c := range cases {
		p, err := NewParams(c.nk, c.nr)
		if c.ok && err != nil {
			t.Errorf("NewParams(%d, %d): %v", c.nk, c.nr, err)
		}
		if !c.ok && err == nil {
			t.Errorf("NewParams(%d, %d) accepted an inconsistent pair", c.nk, c.nr)
		}
		if c.ok && (p.Nk != c.nk || p.Nr != c.nr) {
			t.Errorf("NewParams(%d, %d) = %+v", c.nk, c.nr, p)
		}
	}
}

func TestParamsForKeySize(t *testing.T) {
	for _, n := range []int{16, 24, 32} {
		p, err := ParamsForKeySize(n)
		if err != nil {
			t.Fatalf("ParamsForKeySize(%d): %v", n, err)
		}
		if p.Nk != n/4 || p.Nr != n/4+6 {
			t.Errorf("ParamsForKeySize(%d) = %+v", n, p)
		}
	}
	for _, n := range []int{0, 8, 15, 20, 33} {
		if _, err := ParamsForKeySize(n); err == nil {
			t.Errorf("ParamsForKeySize(%d) accepted a bad key size", n)
		}
	}
}

func TestExpandKeyFIPSExample(t *testing.T) {
	// FIPS-197 appendix A.1 expansion of the 128-bit example key.
	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")
	p, _ := ParamsForKeySize(len(key))
	w := expandKey(key, p)

	if len(w) != nb*(p.Nr+1) {
		t.Fatalf("schedule has %d words, want %d", len(w), nb*(p.Nr+1))
	}

	spot := map[int]uint32{
		0:  0x2b7e1516,
		3:  0x09cf4f3c,
		4:  0xa0fafe17,
		5:  0x88542cb1,
		6:  0x23a33939,
		7:  0x2a6c7605,
		43: 0xb6630ca6,
	}
	for i, want := range spot {
		if w[i] != want {
			t.Errorf("w[%d] = %#08x, want %#08x", i, w[i], want)
		}
	}
}

func TestExpandKeyScheduleLengths(t *testing.T) {
	for _, nk := range []int{4, 6, 8} {
		p, _ := NewParams(nk, nk+6)
		key := make([]byte, 4*nk)
		w := expandKey(key, p)
		if len(w) != nb*(p.Nr+1) {
			t.Errorf("Nk=%d: schedule has %d words, want %d", nk, len(w), nb*(p.Nr+1))
		}
	}
}

func TestDecryptRoundKeyTransform(t *testing.T) {
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	p, _ := ParamsForKeySize(len(key))
	w := expandKey(key, p)

	// The ends of the schedule feed bare key additions and come out
	// untouched; every intermediate window is pre-mixed.
	for r := 0; r <= p.Nr; r++ {
		raw := encryptRoundKey(w, r)
		got := decryptRoundKey(w, p.Nr, r)
		if r == 0 || r == p.Nr {
			if got != raw {
				t.Errorf("round %d: decrypt key modified, got %x want %x", r, got, raw)
			}
			continue
		}
		if want := invMixColumns(raw); got != want {
			t.Errorf("round %d: decrypt key = %x, want %x", r, got, want)
		}
	}
}

func TestEncryptRoundKeyRoundZeroIsRawKey(t *testing.T) {
	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")
	p, _ := ParamsForKeySize(len(key))
	w := expandKey(key, p)
	rk := encryptRoundKey(w, 0)
	var want Block
	copy(want[:], key)
	if rk != want {
		t.Errorf("round 0 key = %x, want the raw key %x", rk, want)
	}
}
