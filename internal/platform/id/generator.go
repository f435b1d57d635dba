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

// RandomGenerator produces 32-char hex ids from crypto/rand.
type RandomGenerator struct {
	// Prefix, when set, is prepended with an underscore so ids are
	// self-describing in logs (e.g. "fc_9f2a...").
	Prefix string
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func NewPrefixedGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{Prefix: prefix}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	raw := hex.EncodeToString(buf)
	if g.Prefix == "" {
		return raw, nil
	}
	return g.Prefix + "_" + raw, nil
}
