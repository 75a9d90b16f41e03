package rijn

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"testing"
)

// The adapter must agree with the standard library block cipher for
// every key size.
func TestCipherMatchesStdlib(t *testing.T) {
	for _, keyLen := range []int{16, 24, 32} {
		key := make([]byte, keyLen)
		for i := range key {
			key[i] = byte(i*13 + 1)
		}

		ours, err := NewCipher(key)
		if err != nil {
			t.Fatal(err)
		}
		std, err := aes.NewCipher(key)
		if err != nil {
			t.Fatal(err)
		}

		for _, b := range randomBlocks(8) {
			var got, want [BlockSize]byte
			ours.Encrypt(got[:], b[:])
			std.Encrypt(want[:], b[:])
			if got != want {
				t.Fatalf("keyLen %d: Encrypt(%x) = %x, stdlib says %x", keyLen, b, got, want)
			}

			ours.Decrypt(got[:], want[:])
			if got != b {
				t.Fatalf("keyLen %d: Decrypt(%x) = %x, want %x", keyLen, want, got, b)
			}
		}
	}
}

func TestNewCipherRejectsBadKey(t *testing.T) {
	if _, err := NewCipher(make([]byte, 17)); err == nil {
		t.Error("NewCipher accepted a 17 byte key")
	}
}

func TestCipherUnderGCM(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(0xa5 ^ i)
	}
	block, err := NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		t.Fatal(err)
	}

	nonce := make([]byte, gcm.NonceSize())
	plaintext := []byte("Search the big white ship.")
	ad := []byte("TO: Seaport, agent Zorka")

	sealed := gcm.Seal(nil, nonce, plaintext, ad)
	opened, err := gcm.Open(nil, nonce, sealed, ad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("Open = %q, want %q", opened, plaintext)
	}

	if _, err := gcm.Open(nil, nonce, sealed, []byte("TO: Seaport, agent Dasha")); err == nil {
		t.Error("Open accepted manipulated additional data")
	}

	// GCM over this cipher must agree with GCM over stdlib AES.
	std, _ := aes.NewCipher(key)
	stdGCM, _ := cipher.NewGCM(std)
	if want := stdGCM.Seal(nil, nonce, plaintext, ad); !bytes.Equal(sealed, want) {
		t.Errorf("Seal = %x, stdlib says %x", sealed, want)
	}
}
