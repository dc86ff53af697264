package session

import (
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/aretw0/verbdrill/pkg/mutation"
)

// Rand is the source of every random choice a session makes.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform int in [0, n). It may panic if n <= 0.
	IntN(n int) int
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Option configures a Session.
type Option func(*Session)

// WithMutations sets the pool of mutations drawn from. Defaults to mutation.DefaultEnabled().
func WithMutations(ms ...mutation.Mutation) Option {
	return func(s *Session) {
		s.enabled = append([]mutation.Mutation(nil), ms...)
	}
}

// WithMaxAttempts bounds the random draws per round before the deterministic scan.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		s.maxAttempts = n
	}
}

// WithFallback sets the mutation used when no enabled one applies. It should be a rule
// that is always defined, such as mutation.ChangeConcrete.
func WithFallback(m mutation.Mutation) Option {
	return func(s *Session) {
		s.fallback = m
	}
}

// WithStrict makes Run fail on a missing dictionary form instead of skipping the round.
func WithStrict(strict bool) Option {
	return func(s *Session) {
		s.strict = strict
	}
}

// WithLogger sets the logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id uuid.UUID) Option {
	return func(s *Session) {
		s.id = id
	}
}
