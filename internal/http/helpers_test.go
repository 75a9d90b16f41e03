package http

import (
	"bytes"
	"crypto/cipher"
	"testing"

	"github.com/liondandelion/larets/internal/rijn"
)

func testGCM(t *testing.T) cipher.AEAD {
	t.Helper()
	key := bytes.Repeat([]byte{0x5a}, 32)
	block, err := rijn.NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		t.Fatalf("NewGCM: %v", err)
	}
	return gcm
}

func TestSealOpenRoundTrip(t *testing.T) {
	gcm := testGCM(t)
	plaintext := []byte("the vault holds this")

	sealed, err := Seal(gcm, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(sealed, plaintext) {
		t.Fatal("sealed blob contains the plaintext")
	}

	opened, err := Open(gcm, sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Fatalf("round trip: got %q, want %q", opened, plaintext)
	}
}

func TestSealDistinctNonces(t *testing.T) {
	gcm := testGCM(t)
	plaintext := []byte("same payload twice")

	a, _ := Seal(gcm, plaintext)
	b, _ := Seal(gcm, plaintext)
	if bytes.Equal(a, b) {
		t.Fatal("two seals of the same payload produced identical blobs")
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	gcm := testGCM(t)

	sealed, err := Seal(gcm, []byte("do not touch"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	sealed[len(sealed)-1] ^= 0x01
	if _, err := Open(gcm, sealed); err == nil {
		t.Fatal("Open accepted a tampered blob")
	}

	if _, err := Open(gcm, sealed[:gcm.NonceSize()-1]); err == nil {
		t.Fatal("Open accepted a blob shorter than a nonce")
	}
}

func TestUsernameIsValid(t *testing.T) {
	valid := []string{"alice", "bob_42", "Зорька"}
	invalid := []string{"", "with space", "semi;colon", "dot.ted"}

	for _, u := range valid {
		if !UsernameIsValid(u) {
			t.Errorf("UsernameIsValid(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if UsernameIsValid(u) {
			t.Errorf("UsernameIsValid(%q) = true, want false", u)
		}
	}
}

func TestSecretNameIsValid(t *testing.T) {
	valid := []string{"github", "prod-db.password", "key_2026"}
	invalid := []string{"", "has space", "slash/name", string(bytes.Repeat([]byte{'a'}, 129))}

	for _, n := range valid {
		if !SecretNameIsValid(n) {
			t.Errorf("SecretNameIsValid(%q) = false, want true", n)
		}
	}
	for _, n := range invalid {
		if SecretNameIsValid(n) {
			t.Errorf("SecretNameIsValid(%q) = true, want false", n)
		}
	}
}
