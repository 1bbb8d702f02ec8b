// Package random provides seed helpers for the game rngs.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Source hands out independent rngs. With a fixed base seed the sequence of
// rngs, and so every game, is reproducible.
type Source struct {
	seeds *rand.Rand
}

func NewSource(base int64) (*Source, error) {
	if base == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, err
		}
		base = s
	}
	return &Source{seeds: rand.New(rand.NewSource(base))}, nil
}

// Rand returns a new rng. Not safe for concurrent use.
func (s *Source) Rand() *rand.Rand {
	return rand.New(rand.NewSource(s.seeds.Int63()))
}
