// Package dictionary holds the immutable, key-indexed collection of playable word forms.
package dictionary

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/introspection"

	"github.com/aretw0/verbdrill/pkg/grammar"
)

// ErrEmpty is returned when no playable entry is left after filtering.
var ErrEmpty = errors.New("dictionary has no playable entries")

// DuplicateEntryError reports two entries sharing the same feature vector.
type DuplicateEntryError struct {
	Key    grammar.Key
	First  grammar.Entry
	Second grammar.Entry
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate entry for [%s]: %q and %q", e.Key, e.First.Word, e.Second.Word)
}

// DuplicatePolicy decides what Build does with entries whose key is already taken.
type DuplicatePolicy string

const (
	// RejectDuplicates fails the build with a *DuplicateEntryError.
	RejectDuplicates DuplicatePolicy = "reject"
	// FirstWins keeps the earliest entry in input order and logs the dropped ones.
	FirstWins DuplicatePolicy = "first"
)

// Dictionary is a read-only set of entries indexed by grammar.Key.
// It is safe for concurrent readers.
type Dictionary struct {
	entries []grammar.Entry
	index   map[grammar.Key]int
	dropped int
	skipped int
	policy  DuplicatePolicy
}

type options struct {
	policy DuplicatePolicy
	logger *slog.Logger
	keep   func(grammar.Entry) bool
}

// Option configures Build.
type Option func(*options)

// WithDuplicatePolicy sets the duplicate handling. Defaults to RejectDuplicates.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger sets the logger used to report dropped entries.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFilter replaces the playability predicate. By default only entries with a mood are kept.
func WithFilter(keep func(grammar.Entry) bool) Option {
	return func(o *options) {
		o.keep = keep
	}
}

// Playable reports whether an entry can take part in a drill: mood-dependent rules need a mood.
func Playable(e grammar.Entry) bool {
	return e.Mood.Set()
}

// Build filters entries down to the playable ones and indexes them by key.
func Build(entries []grammar.Entry, opts ...Option) (*Dictionary, error) {
	o := &options{policy: RejectDuplicates, keep: Playable}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	switch o.policy {
	case RejectDuplicates, FirstWins:
	default:
		return nil, fmt.Errorf("unknown duplicate policy %q", o.policy)
	}

	d := &Dictionary{
		index:  make(map[grammar.Key]int, len(entries)),
		policy: o.policy,
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i+1, e.Word, err)
		}
		if !o.keep(e) {
			d.skipped++
			continue
		}
		k := e.Key()
		if i, ok := d.index[k]; ok {
			if o.policy == RejectDuplicates {
				return nil, &DuplicateEntryError{Key: k, First: d.entries[i], Second: e}
			}
			d.dropped++
			o.logger.Warn("dropping duplicate entry", "kept", d.entries[i].Word, "dropped", e.Word, "key", k.String())
			continue
		}
		d.index[k] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	if len(d.entries) == 0 {
		return nil, ErrEmpty
	}
	o.logger.Debug("dictionary built", "entries", len(d.entries), "skipped", d.skipped, "dropped", d.dropped)
	return d, nil
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// At returns the i-th entry in input order.
func (d *Dictionary) At(i int) grammar.Entry { return d.entries[i] }

// Lookup returns the entry with key k.
func (d *Dictionary) Lookup(k grammar.Key) (grammar.Entry, bool) {
	i, ok := d.index[k]
	if !ok {
		return grammar.Entry{}, false
	}
	return d.entries[i], true
}

// Entries returns a copy of all entries in input order.
func (d *Dictionary) Entries() []grammar.Entry {
	return append([]grammar.Entry(nil), d.entries...)
}

// Lemmas returns the number of distinct bases.
func (d *Dictionary) Lemmas() int {
	seen := make(map[string]struct{})
	for _, e := range d.entries {
		seen[e.Base] = struct{}{}
	}
	return len(seen)
}

// State exposes the dictionary shape for observability.
type State struct {
	Entries   int             `json:"entries" yaml:"entries"`
	Lemmas    int             `json:"lemmas" yaml:"lemmas"`
	Skipped   int             `json:"skipped" yaml:"skipped"`
	Dropped   int             `json:"dropped_duplicates" yaml:"dropped_duplicates"`
	Duplicate DuplicatePolicy `json:"duplicate_policy" yaml:"duplicate_policy"`
}

// State implements introspection.Introspectable.
func (d *Dictionary) State() any {
	return State{
		Entries:   len(d.entries),
		Lemmas:    d.Lemmas(),
		Skipped:   d.skipped,
		Dropped:   d.dropped,
		Duplicate: d.policy,
	}
}

// ComponentType implements introspection.Component.
func (d *Dictionary) ComponentType() string {
	return "dictionary"
}

var _ introspection.Introspectable = (*Dictionary)(nil)
var _ introspection.Component = (*Dictionary)(nil)
