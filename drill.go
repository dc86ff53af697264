package verbdrill

import (
	"log/slog"

	"github.com/aretw0/verbdrill/internal/platform"
	"github.com/aretw0/verbdrill/pkg/adapters/source"
	"github.com/aretw0/verbdrill/pkg/dictionary"
	"github.com/aretw0/verbdrill/pkg/integrity"
	"github.com/aretw0/verbdrill/pkg/mutation"
	"github.com/aretw0/verbdrill/pkg/session"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Session is a public alias for the drill session.
type Session = session.Session

// Dictionary is a public alias for the playable dictionary.
type Dictionary = dictionary.Dictionary

// Report is a public alias for an integrity audit report.
type Report = integrity.Report

// --- Configuration ---

// Option defines a functional option for configuring a drill.
type Option = platform.Option

// WithLogger sets the logger used while loading and playing.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithDuplicates selects how repeated feature vectors are handled.
func WithDuplicates(p dictionary.DuplicatePolicy) Option {
	return platform.WithDuplicates(p)
}

// WithDecoder registers a decoder for a file extension.
func WithDecoder(ext string, d source.Decoder) Option {
	return platform.WithDecoder(ext, d)
}

// WithMutations sets the enabled mutation pool.
func WithMutations(ms ...mutation.Mutation) Option {
	return platform.WithMutations(ms...)
}

// WithMaxAttempts bounds the random mutation draws per round.
func WithMaxAttempts(n int) Option {
	return platform.WithMaxAttempts(n)
}

// WithFallback sets the mutation used when no enabled one applies.
func WithFallback(m mutation.Mutation) Option {
	return platform.WithFallback(m)
}

// WithStrict makes a missing dictionary form end the session with an error.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithSeed fixes the random source.
func WithSeed(seed uint64) Option {
	return platform.WithSeed(seed)
}

// WithRand injects the random source.
func WithRand(rnd session.Rand) Option {
	return platform.WithRand(rnd)
}

// --- Factory ---

// New loads the dictionary at pattern and starts a drill session.
func New(pattern string, opts ...Option) (*Session, error) {
	return platform.New(pattern, opts...)
}

// Load reads the dictionary at pattern without starting a session.
func Load(pattern string, opts ...Option) (*Dictionary, error) {
	return platform.LoadDictionary(pattern, opts...)
}

// Check loads the dictionary at pattern and audits it against kinds, or every rule when none is given.
func Check(pattern string, kinds []mutation.Mutation, opts ...Option) (Report, error) {
	d, err := platform.LoadDictionary(pattern, opts...)
	if err != nil {
		return Report{}, err
	}
	return integrity.Audit(d, kinds...)
}
