// Package mutation implements the grammatical transformations used to build drills.
//
// Every rule is a pure function of an entry's feature vector. A rule either yields the
// feature vector of the target form, together with the side effects the grammar forces on
// the other features, or fails with ErrInvalidMutation when it is not defined for the
// entry's current state. The engine never knows the surface word of the target: callers
// look the returned entry's Key up in a dictionary.
package mutation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/verbdrill/pkg/grammar"
)

// ErrInvalidMutation is returned when a mutation is not defined for an entry.
// It is retryable: pick a different mutation.
var ErrInvalidMutation = errors.New("invalid mutation")

// Mutation selects one transformation rule.
type Mutation uint8

const (
	ChangeGender Mutation = iota
	ChangePerson
	ChangeAmount
	ChangeImperfective
	ChangeConcrete
	ChangeTense
	ChangeMood
)

type descriptor struct {
	name        string
	description string
	apply       func(grammar.Entry) (grammar.Entry, error)
}

var rules = [...]descriptor{
	ChangeGender:       {"change-gender", "change the gender", changeGender},
	ChangePerson:       {"change-person", "change the person", changePerson},
	ChangeAmount:       {"change-amount", "change the number of people", changeAmount},
	ChangeImperfective: {"change-imperfective", "change the aspect (perfective/imperfective)", changeImperfective},
	ChangeConcrete:     {"change-concrete", "change the aspect (concrete/abstract)", changeConcrete},
	ChangeTense:        {"change-tense", "change the tense", changeTense},
	ChangeMood:         {"change-mood", "change the mood", changeMood},
}

// All returns every mutation kind in declaration order.
func All() []Mutation {
	return []Mutation{ChangeGender, ChangePerson, ChangeAmount, ChangeImperfective, ChangeConcrete, ChangeTense, ChangeMood}
}

// DefaultEnabled returns the kinds used by an interactive session unless configured otherwise.
// The aspect flips are left out: most lemmas have no dictionary form on the other side of
// the aspect pair.
func DefaultEnabled() []Mutation {
	return []Mutation{ChangePerson, ChangeAmount, ChangeTense, ChangeMood, ChangeGender}
}

// Valid reports whether m names a known rule.
func (m Mutation) Valid() bool { return int(m) < len(rules) }

// String returns the human-readable description used when prompting.
func (m Mutation) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mutation(%d)", m)
	}
	return rules[m].description
}

// Name returns the stable token of m, e.g. "change-gender".
func (m Mutation) Name() string {
	if !m.Valid() {
		return fmt.Sprintf("mutation(%d)", m)
	}
	return rules[m].name
}

// Parse resolves a token such as "change-tense". Matching ignores case and
// accepts underscores for dashes.
func Parse(s string) (Mutation, error) {
	token := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, r := range rules {
		if r.name == token {
			return Mutation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mutation %q", s)
}

// ParseList resolves a list of tokens, rejecting unknown and repeated ones.
func ParseList(tokens []string) ([]Mutation, error) {
	seen := make(map[Mutation]bool, len(tokens))
	out := make([]Mutation, 0, len(tokens))
	for _, t := range tokens {
		m, err := Parse(t)
		if err != nil {
			return nil, err
		}
		if seen[m] {
			return nil, fmt.Errorf("mutation %q listed twice", m.Name())
		}
		seen[m] = true
		out = append(out, m)
	}
	return out, nil
}

func (m Mutation) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown mutation %d", m)
	}
	return []byte(m.Name()), nil
}

func (m *Mutation) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Apply transforms e by m. The result carries e's word, base and meaning; only its
// feature vector identifies the target form.
func Apply(e grammar.Entry, m Mutation) (grammar.Entry, error) {
	if !m.Valid() {
		return grammar.Entry{}, fmt.Errorf("mutation %d: %w", m, ErrInvalidMutation)
	}
	return rules[m].apply(e)
}

// Applicable returns the kinds among candidates that are defined for e, preserving order.
// With no candidates, every kind is considered.
func Applicable(e grammar.Entry, candidates ...Mutation) []Mutation {
	if len(candidates) == 0 {
		candidates = All()
	}
	var out []Mutation
	for _, m := range candidates {
		if _, err := Apply(e, m); err == nil {
			out = append(out, m)
		}
	}
	return out
}
