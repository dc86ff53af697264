package platform

import (
	"log/slog"

	"github.com/aretw0/verbdrill/pkg/adapters/source"
	"github.com/aretw0/verbdrill/pkg/dictionary"
	"github.com/aretw0/verbdrill/pkg/mutation"
	"github.com/aretw0/verbdrill/pkg/session"
)

// options holds the internal configuration for a drill.
type options struct {
	logger      *slog.Logger
	duplicates  dictionary.DuplicatePolicy
	decoders    map[string]source.Decoder
	mutations   []mutation.Mutation
	maxAttempts int
	fallback    mutation.Mutation
	strict      bool
	seed        uint64
	rnd         session.Rand
}

// Option defines a functional option for configuring a drill.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		duplicates:  dictionary.RejectDuplicates,
		decoders:    make(map[string]source.Decoder),
		mutations:   mutation.DefaultEnabled(),
		maxAttempts: session.DefaultMaxAttempts,
		fallback:    mutation.ChangeConcrete,
	}
}

func (o *options) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

// WithLogger sets the logger for the loader, the dictionary and the session.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDuplicates selects how repeated feature vectors are handled.
// Defaults to dictionary.RejectDuplicates.
func WithDuplicates(p dictionary.DuplicatePolicy) Option {
	return func(o *options) {
		o.duplicates = p
	}
}

// WithDecoder registers a custom decoder for a file extension (e.g. ".ods").
func WithDecoder(ext string, d source.Decoder) Option {
	return func(o *options) {
		o.decoders[ext] = d
	}
}

// WithMutations sets the enabled mutation pool.
func WithMutations(ms ...mutation.Mutation) Option {
	return func(o *options) {
		o.mutations = append([]mutation.Mutation(nil), ms...)
	}
}

// WithMaxAttempts bounds the random mutation draws per round.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = n
	}
}

// WithFallback sets the mutation used when no enabled one applies.
func WithFallback(m mutation.Mutation) Option {
	return func(o *options) {
		o.fallback = m
	}
}

// WithStrict makes a missing dictionary form end the session with an error.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithSeed fixes the random source. Zero means a time-based seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithRand injects the random source directly. It takes precedence over WithSeed.
func WithRand(rnd session.Rand) Option {
	return func(o *options) {
		o.rnd = rnd
	}
}
