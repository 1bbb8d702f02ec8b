package rps

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/DoyleJ11/casual-games-backend/internal/metrics"
)

var ErrMatchNotFound = errors.New("match not found")

// Registry keeps matches in memory for as long as the process lives.
type Registry struct {
	mu      sync.Mutex
	matches map[string]Match
	rng     *rand.Rand
	metrics *metrics.Metrics
}

func NewRegistry(rng *rand.Rand, m *metrics.Metrics) *Registry {
	return &Registry{
		matches: make(map[string]Match),
		rng:     rng,
		metrics: m,
	}
}

func (r *Registry) Create(mode Mode) (Match, error) {
	m, err := NewMatch(uuid.NewString(), mode)
	if err != nil {
		return Match{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[m.ID] = m
	return m, nil
}

func (r *Registry) Get(id string) (Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return Match{}, ErrMatchNotFound
	}
	return m, nil
}

func (r *Registry) Throw(id string, action Action) (Match, error) {
	return r.update(id, func(m Match) (Match, error) {
		next, err := Throw(m, action, r.rng)
		if err == nil {
			r.metrics.RPSThrow(string(next.Result))
		}
		return next, err
	})
}

func (r *Registry) Next(id string) (Match, error) {
	return r.update(id, Next)
}

func (r *Registry) Reset(id string, mode Mode) (Match, error) {
	return r.update(id, func(m Match) (Match, error) {
		if mode == 0 {
			mode = m.Mode
		}
		return Reset(m, mode)
	})
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matches, id)
}

func (r *Registry) update(id string, fn func(Match) (Match, error)) (Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return Match{}, ErrMatchNotFound
	}
	next, err := fn(m)
	if err != nil {
		return m, err
	}
	r.matches[id] = next
	return next, nil
}
