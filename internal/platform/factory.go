package platform

import (
	"fmt"
	"time"

	"github.com/aretw0/verbdrill/internal/config"
	"github.com/aretw0/verbdrill/pkg/adapters/source"
	"github.com/aretw0/verbdrill/pkg/dictionary"
	"github.com/aretw0/verbdrill/pkg/session"
)

// Loader builds the source loader described by opts.
func Loader(opts ...Option) *source.Loader {
	o := apply(opts)
	return loader(o)
}

// LoadDictionary reads every file matched by pattern and builds the playable dictionary.
//
//	dict, err := platform.LoadDictionary("words/**/*.csv", platform.WithDuplicates(dictionary.FirstWins))
func LoadDictionary(pattern string, opts ...Option) (*dictionary.Dictionary, error) {
	return loadDictionary(pattern, apply(opts))
}

// New loads the dictionary at pattern and starts a session on it.
func New(pattern string, opts ...Option) (*session.Session, error) {
	o := apply(opts)
	dict, err := loadDictionary(pattern, o)
	if err != nil {
		return nil, err
	}

	rnd := o.rnd
	if rnd == nil {
		seed := o.seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rnd = session.NewRand(seed)
		o.log().Debug("random source seeded", "seed", seed)
	}

	return session.New(dict, rnd,
		session.WithMutations(o.mutations...),
		session.WithMaxAttempts(o.maxAttempts),
		session.WithFallback(o.fallback),
		session.WithStrict(o.strict),
		session.WithLogger(o.log()),
	)
}

// FromConfig translates a loaded configuration into options.
func FromConfig(cfg *config.Config) ([]Option, error) {
	ms, err := cfg.Session.ParsedMutations()
	if err != nil {
		return nil, err
	}
	fallback, err := cfg.Session.ParsedFallback()
	if err != nil {
		return nil, err
	}
	return []Option{
		WithDuplicates(dictionary.DuplicatePolicy(cfg.Dictionary.Duplicates)),
		WithMutations(ms...),
		WithMaxAttempts(cfg.Session.MaxAttempts),
		WithFallback(fallback),
		WithStrict(cfg.Session.Strict),
		WithSeed(cfg.Session.Seed),
	}, nil
}

func apply(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func loader(o *options) *source.Loader {
	lopts := []source.Option{source.WithLogger(o.log())}
	for ext, d := range o.decoders {
		lopts = append(lopts, source.WithDecoder(ext, d))
	}
	return source.NewLoader(lopts...)
}

func loadDictionary(pattern string, o *options) (*dictionary.Dictionary, error) {
	entries, err := loader(o).Load(pattern)
	if err != nil {
		return nil, err
	}
	dict, err := dictionary.Build(entries,
		dictionary.WithDuplicatePolicy(o.duplicates),
		dictionary.WithLogger(o.log()),
	)
	if err != nil {
		return nil, fmt.Errorf("building dictionary from %s: %w", pattern, err)
	}
	return dict, nil
}
