package bingo

import (
	"math/rand"
	"sync"

	"github.com/DoyleJ11/casual-games-backend/internal/metrics"
)

// Machine serialises access to the shared rng.
type Machine struct {
	mu      sync.Mutex
	rng     *rand.Rand
	metrics *metrics.Metrics
}

func NewMachine(rng *rand.Rand, m *metrics.Metrics) *Machine {
	return &Machine{rng: rng, metrics: m}
}

func (m *Machine) Spin(guaranteed bool) Spin {
	m.mu.Lock()
	var s Spin
	if guaranteed {
		s = RollGuaranteed(m.rng)
	} else {
		s = Roll(m.rng)
	}
	m.mu.Unlock()

	m.metrics.BingoSpin(string(s.Prize))
	return s
}
