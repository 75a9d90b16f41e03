package rijn

import "testing"

// gmulRef is the schoolbook shift-and-reduce GF(2^8) multiply used as a
// reference for gfMul's decomposed form.
func gmulRef(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a&0x80 != 0
		a <<= 1
		if hi {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

func TestGfMulAgainstReference(t *testing.T) {
	coefs := []byte{0x01, 0x02, 0x03, 0x09, 0x0b, 0x0d, 0x0e}
	for _, c := range coefs {
		for i := 0; i < 256; i++ {
			b := byte(i)
			got := gfMul(c, b)
			want := gmulRef(c, b)
			if got != want {
				t.Fatalf("gfMul(%#02x, %#02x) = %#02x, want %#02x", c, b, got, want)
			}
		}
	}
}

func TestGfMulKnownProducts(t *testing.T) {
	cases := []struct {
		coef, b, want byte
	}{
		{0x02, 0x57, 0xae},
		{0x03, 0x57, 0xf9},
		{0x02, 0x80, 0x1b},
		{0x01, 0xd4, 0xd4},
		{0x0e, 0x00, 0x00},
	}
	for _, c := range cases {
		if got := gfMul(c.coef, c.b); got != c.want {
			t.Errorf("gfMul(%#02x, %#02x) = %#02x, want %#02x", c.coef, c.b, got, c.want)
		}
	}
}
