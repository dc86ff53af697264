// Package grammar defines the feature vocabulary and the dictionary entry model.
package grammar

import (
	"fmt"
	"strings"
)

// Entry is a word form annotated with its full feature vector.
// Optional features use their zero value to mean "does not apply to this form".
type Entry struct {
	Word         string
	Base         string
	Meaning      string
	Person       Person
	Amount       Amount
	Imperfective bool
	Concrete     bool
	Gender       Gender
	Mood         Mood
	Tense        Tense
}

// Key is the identity of an Entry: its lemma plus feature vector, without word and meaning.
// It is comparable and used as the dictionary index.
type Key struct {
	Base         string
	Person       Person
	Amount       Amount
	Imperfective bool
	Concrete     bool
	Gender       Gender
	Mood         Mood
	Tense        Tense
}

// Key derives the identity of e.
func (e Entry) Key() Key {
	return Key{
		Base:         e.Base,
		Person:       e.Person,
		Amount:       e.Amount,
		Imperfective: e.Imperfective,
		Concrete:     e.Concrete,
		Gender:       e.Gender,
		Mood:         e.Mood,
		Tense:        e.Tense,
	}
}

// Validate checks that every feature holds a member of its closed set.
func (e Entry) Validate() error {
	switch {
	case e.Base == "":
		return fmt.Errorf("entry %q has no base", e.Word)
	case !e.Person.Valid():
		return fmt.Errorf("person %d: %w", e.Person, ErrUnknownFeature)
	case !e.Amount.Valid():
		return fmt.Errorf("amount %d: %w", e.Amount, ErrUnknownFeature)
	case !e.Gender.Valid():
		return fmt.Errorf("gender %d: %w", e.Gender, ErrUnknownFeature)
	case !e.Mood.Valid():
		return fmt.Errorf("mood %d: %w", e.Mood, ErrUnknownFeature)
	case !e.Tense.Valid():
		return fmt.Errorf("tense %d: %w", e.Tense, ErrUnknownFeature)
	}
	return nil
}

// String renders the feature signature of the form, which is what a player is asked to produce:
//
//	"<base>: 1st person singular imperfective abstract indicative present -> <meaning>"
func (e Entry) String() string {
	return render(e.Base+": ", e, true)
}

// Describe renders the form together with its surface word.
func (e Entry) Describe() string {
	return render(e.Word+" based off "+e.Base+": ", e, true)
}

// String renders the key the same way Entry.String does, without the meaning.
func (k Key) String() string {
	return render(k.Base+": ", Entry{
		Base:         k.Base,
		Person:       k.Person,
		Amount:       k.Amount,
		Imperfective: k.Imperfective,
		Concrete:     k.Concrete,
		Gender:       k.Gender,
		Mood:         k.Mood,
		Tense:        k.Tense,
	}, false)
}

var ordinals = map[Person]string{1: "1st person ", 2: "2nd person ", 3: "3rd person "}

func render(prefix string, e Entry, meaning bool) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(ordinals[e.Person])
	optional(&b, e.Amount.Set(), e.Amount.String())
	if e.Imperfective {
		b.WriteString("imperfective ")
	} else {
		b.WriteString("perfective ")
	}
	if e.Concrete {
		b.WriteString("concrete ")
	} else {
		b.WriteString("abstract ")
	}
	optional(&b, e.Gender.Set(), e.Gender.String())
	optional(&b, e.Mood.Set(), e.Mood.String())
	optional(&b, e.Tense.Set(), e.Tense.String())
	if meaning {
		b.WriteString("-> ")
		b.WriteString(e.Meaning)
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

func optional(b *strings.Builder, set bool, s string) {
	if set {
		b.WriteString(s)
		b.WriteByte(' ')
	}
}
