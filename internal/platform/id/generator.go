package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator emits 32 hex chars of crypto randomness, optionally behind
// a readable prefix ("run_", "ord_").
type RandomGenerator struct {
	prefix string
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func NewPrefixedGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: prefix}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return g.prefix + hex.EncodeToString(buf), nil
}
