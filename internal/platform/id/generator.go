package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator mints identifiers for players and teams. Seed data carries
// human-readable ids, so generated ones only need to be unique and opaque.
type Generator interface {
	NewID() (string, error)
}

const randomIDBytes = 16

// RandomGenerator produces 32-char hex ids from crypto/rand, long enough
// that collisions across an auction pool are not a practical concern.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	var buf [randomIDBytes]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("read random id bytes: %w", err)
	}

	return hex.EncodeToString(buf[:]), nil
}
