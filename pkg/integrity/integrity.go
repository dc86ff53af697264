// Package integrity audits a dictionary against the mutation rules.
//
// Every mutation that applies to a dictionary entry must land on a form the dictionary
// holds, otherwise a drill built from it has no answer. Audit lists the holes.
package integrity

import (
	"errors"
	"sort"

	"github.com/aretw0/verbdrill/pkg/dictionary"
	"github.com/aretw0/verbdrill/pkg/grammar"
	"github.com/aretw0/verbdrill/pkg/mutation"
)

// Finding is one mutation whose target form is missing.
type Finding struct {
	Word     string `json:"word" yaml:"word"`
	Base     string `json:"base" yaml:"base"`
	Mutation string `json:"mutation" yaml:"mutation"`
	Missing  string `json:"missing" yaml:"missing"`

	key grammar.Key
}

// Key returns the feature vector that has no entry.
func (f Finding) Key() grammar.Key { return f.key }

// Report summarises an audit.
type Report struct {
	Entries   int       `json:"entries" yaml:"entries"`
	Lemmas    int       `json:"lemmas" yaml:"lemmas"`
	Mutations []string  `json:"mutations" yaml:"mutations"`
	Applied   int       `json:"applied" yaml:"applied"`
	Invalid   int       `json:"invalid" yaml:"invalid"`
	Findings  []Finding `json:"findings" yaml:"findings"`
}

// OK reports whether the audit found no hole.
func (r Report) OK() bool { return len(r.Findings) == 0 }

// Audit applies each of kinds to every entry of d. With no kinds, every rule is checked.
func Audit(d *dictionary.Dictionary, kinds ...mutation.Mutation) (Report, error) {
	if len(kinds) == 0 {
		kinds = mutation.All()
	}
	r := Report{Entries: d.Len(), Lemmas: d.Lemmas(), Findings: []Finding{}}
	for _, m := range kinds {
		r.Mutations = append(r.Mutations, m.Name())
	}

	for _, e := range d.Entries() {
		for _, m := range kinds {
			target, err := mutation.Apply(e, m)
			if errors.Is(err, mutation.ErrInvalidMutation) {
				r.Invalid++
				continue
			}
			if err != nil {
				return r, err
			}
			r.Applied++
			if _, ok := d.Lookup(target.Key()); !ok {
				r.Findings = append(r.Findings, Finding{
					Word:     e.Word,
					Base:     e.Base,
					Mutation: m.Name(),
					Missing:  target.Key().String(),
					key:      target.Key(),
				})
			}
		}
	}

	sort.SliceStable(r.Findings, func(i, j int) bool {
		if r.Findings[i].Base != r.Findings[j].Base {
			return r.Findings[i].Base < r.Findings[j].Base
		}
		return r.Findings[i].Missing < r.Findings[j].Missing
	})
	return r, nil
}

// MissingForms returns the distinct missing feature vectors in report order.
func (r Report) MissingForms() []grammar.Key {
	seen := make(map[grammar.Key]bool)
	var out []grammar.Key
	for _, f := range r.Findings {
		if !seen[f.key] {
			seen[f.key] = true
			out = append(out, f.key)
		}
	}
	return out
}
