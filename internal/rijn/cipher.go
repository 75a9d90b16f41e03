package rijn

import "crypto/cipher"

// blockCipher adapts an encrypt/decrypt engine pair to the standard
// cipher.Block interface so the core can sit under crypto/cipher modes,
// GCM in particular. Each call re-latches the key and drives the engine
// to completion; that is the point of this core, not an inefficiency to
// fix here.
type blockCipher struct {
	key []byte
	enc *Engine
	dec *Engine
}

// NewCipher builds a cipher.Block around the tick-driven engines for a
// 16, 24 or 32 byte key.
func NewCipher(key []byte) (cipher.Block, error) {
	p, err := ParamsForKeySize(len(key))
	if err != nil {
		return nil, err
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &blockCipher{key: k, enc: NewEncrypter(p), dec: NewDecrypter(p)}, nil
}

func (c *blockCipher) BlockSize() int { return BlockSize }

func (c *blockCipher) Encrypt(dst, src []byte) {
	var b Block
	copy(b[:], src[:BlockSize])
	out, err := c.enc.Run(c.key, b)
	if err != nil {
		panic("rijn: " + err.Error())
	}
	copy(dst[:BlockSize], out[:])
}

func (c *blockCipher) Decrypt(dst, src []byte) {
	var b Block
	copy(b[:], src[:BlockSize])
	out, err := c.dec.Run(c.key, b)
	if err != nil {
		panic("rijn: " + err.Error())
	}
	copy(dst[:BlockSize], out[:])
}
