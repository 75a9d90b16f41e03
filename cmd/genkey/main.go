package main

import (
	"crypto/rand"
	"log"
	"os"
)

// Writes a fresh 256-bit master key for the vault to the given path.
func main() {
	if len(os.Args) != 2 {
		log.Fatalln("Specify filepath for the master key")
	}
	key := make([]byte, 32)
	rand.Read(key)
	err := os.WriteFile(os.Args[1], key, 0600)
	if err != nil {
		log.Fatal(err)
	}
}
