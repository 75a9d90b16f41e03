package main

import (
	"bytes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"github.com/liondandelion/larets/internal/rijn"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func block(s string) rijn.Block {
	var b rijn.Block
	copy(b[:], mustHex(s))
	return b
}

func main() {
	// FIPS-197 appendix C vectors, one per key size.
	testPT := block("00112233445566778899aabbccddeeff")
	vectors := []struct {
		name string
		key  []byte
		ct   rijn.Block
	}{
		{"AES-128", mustHex("000102030405060708090a0b0c0d0e0f"), block("69c4e0d86a7b0430d8cdb78070b4c55a")},
		{"AES-192", mustHex("000102030405060708090a0b0c0d0e0f1011121314151617"), block("dda97ca4864cdfe06eaf70a0ec0d7191")},
		{"AES-256", mustHex("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"), block("8ea2b7ca516745bfeafc49904b496089")},
	}

	fmt.Printf("\nFIPS-197 (AES) engine test\n\n")
	fmt.Printf("| Standard test plain text:\n| %X\n\n", testPT)

	for i, v := range vectors {
		fmt.Printf("---\n\n(%d) %s standard vector\n", i+1, v.name)

		p, err := rijn.ParamsForKeySize(len(v.key))
		if err != nil {
			panic(err)
		}
		enc := rijn.NewEncrypter(p)
		dec := rijn.NewDecrypter(p)

		ct, err := enc.Run(v.key, testPT)
		if err != nil {
			panic(err)
		}
		fmt.Printf("(%d.1) Plain text:\t\t\t%X\n(%d.2) Cipher text:\t\t\t%X - ", i+1, testPT, i+1, ct)
		if ct != v.ct {
			fmt.Printf("FAILED! [Not equal to reference cipher text!]\n")
		} else {
			fmt.Printf("OK\n")
		}

		pt, err := dec.Run(v.key, ct)
		if err != nil {
			panic(err)
		}
		fmt.Printf("(%d.3) Plain text decrypted:\t\t%X - ", i+1, pt)
		if pt != testPT {
			fmt.Printf("FAILED! [PT != D(E(PT,K),K)]\n")
		} else {
			fmt.Printf("OK\n")
		}
	}

	fmt.Printf("---\n\n(4) Incorrect key test\n")
	badKey := mustHex("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1d")
	p256, _ := rijn.ParamsForKeySize(32)
	wrongPT, _ := rijn.NewDecrypter(p256).Run(badKey, vectors[2].ct)
	fmt.Printf("(4.1) Plain text decrypted (key_1):\t%X - ", wrongPT)
	if wrongPT != testPT {
		fmt.Printf("OK (different plain text)\n")
	} else {
		fmt.Printf("FAILED!\n")
	}

	fmt.Printf("\n\n(5) Tick-level run, AES-256\n\n")
	enc := rijn.NewEncrypter(p256)
	enc.Tick(rijn.Inputs{Enable: true, Key: vectors[2].key, Data: testPT})
	ticks := 0
	for enc.Busy() {
		enc.Tick(rijn.Inputs{})
		ticks++
	}
	fmt.Printf("(5.1) Busy for %d ticks after latch, output %X - ", ticks, enc.Output())
	if enc.Output() == vectors[2].ct && ticks == p256.Nr {
		fmt.Printf("OK\n")
	} else {
		fmt.Printf("FAILED!\n")
	}

	dec := rijn.NewDecrypter(p256)
	dec.Tick(rijn.Inputs{Enable: true, Key: vectors[2].key, Data: vectors[2].ct})
	ticks = 0
	for dec.Busy() {
		dec.Tick(rijn.Inputs{})
		ticks++
	}
	fmt.Printf("(5.2) Busy for %d ticks after latch, output %X - ", ticks, dec.Output())
	if dec.Output() == testPT && ticks == p256.Nr+1 {
		fmt.Printf("OK\n")
	} else {
		fmt.Printf("FAILED!\n")
	}

	fmt.Printf("\n---\n")
	fmt.Printf("\nTesting GCM (and cipher.Block interface) implementation.\n")

	var gcmKey = mustHex("31899a7e1a030351d297793b7faffe71ffe0ca13425e99776bd3ee11bac7928f")
	var gcmNonce = mustHex("3c819d9a9bed087615030b65")
	var gcmAD = []byte("TO: Seaport, agent Zorka")
	var gcmADm = []byte("TO: Seaport, agent Dasha")
	var gcmPT = []byte("Search the big white ship.")

	kCipher, err := rijn.NewCipher(gcmKey)
	if err != nil {
		panic("NewCipher failed!\n")
	}
	rijnGCM, err := cipher.NewGCM(kCipher)
	if err != nil {
		panic("NewGCM failed!\n")
	}

	sealed := rijnGCM.Seal(nil, gcmNonce, gcmPT, gcmAD)
	fmt.Printf("GCM:\n Plain text: %s\n Additional Data: %s\n Nonce: %X\n Encryption result (CT+Tag): %X\n", gcmPT, gcmAD, gcmNonce, sealed)

	opened, err := rijnGCM.Open(nil, gcmNonce, sealed, gcmAD)
	fmt.Printf(" GCM open result: %s - ", opened)
	if err != nil || !bytes.Equal(opened, gcmPT) {
		fmt.Printf("FAILED! [Not equal to reference plain text!]\n")
	} else {
		fmt.Printf("OK\n")
	}

	fmt.Printf(" GCM Manipulated AD check result: ")
	_, err = rijnGCM.Open(nil, gcmNonce, sealed, gcmADm)
	if err != nil {
		fmt.Printf(" [decryption failed] - OK (correct: must fail!)\n")
	} else {
		fmt.Printf(" [decrypted] - FAILED!\n")
	}

	fmt.Printf("\n---\n\nMeasuring speed.\nEngine block operations (Run()):\n")

	prng := rand.New(rand.NewSource(time.Now().UTC().UnixNano()))
	var randPT [16]rijn.Block
	for i := range randPT {
		for t := range randPT[i] {
			randPT[i][t] = byte(prng.Uint32())
		}
	}

	measureStart := time.Now()
	counter := 0
	var last rijn.Block
	for i := 0; i < 4000; i++ {
		for t := range randPT {
			last, _ = enc.Run(vectors[2].key, randPT[t])
			counter++
		}
	}
	elapsed := time.Since(measureStart)
	eSec := int(elapsed.Seconds())

	fmt.Printf(" Encryption - %d blocks (%d bytes), time: %s", counter, counter*16, elapsed)
	if eSec > 0 {
		fmt.Printf(" (~%d KB/sec)\n", ((counter * 16) / eSec / 1024))
	} else {
		fmt.Printf("\n")
	}
	fmt.Printf(" Block: %X\n\nDone!\n\n", last)
}
