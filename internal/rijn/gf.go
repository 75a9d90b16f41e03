package rijn

// Arithmetic in GF(2^8) with the Rijndael reduction polynomial
// x^8 + x^4 + x^3 + x + 1.
const reductionPoly = 0x11b

// gfMul multiplies b by one of the seven coefficients MixColumns and its
// inverse use. The coefficient is decomposed into powers of x, so the raw
// product is at most three shifted copies of b XORed together. That
// leaves an 11-bit value which is folded back into eight bits with up to
// three conditional reductions, highest bit first.
func gfMul(coef, b byte) byte {
	w := uint16(b)
	var p uint16
	switch coef {
	case 0x01:
		p = w
	case 0x02:
		p = w << 1
	case 0x03:
		p = w<<1 ^ w
	case 0x09:
		p = w<<3 ^ w
	case 0x0b:
		p = w<<3 ^ w<<1 ^ w
	case 0x0d:
		p = w<<3 ^ w<<2 ^ w
	case 0x0e:
		p = w<<3 ^ w<<2 ^ w<<1
	default:
		panic("rijn: gfMul coefficient is not a MixColumns constant")
	}
	for bit := 10; bit >= 8; bit-- {
		if p&(1<<bit) != 0 {
			p ^= reductionPoly << (bit - 8)
		}
	}
	return byte(p)
}
