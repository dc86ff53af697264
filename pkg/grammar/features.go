package grammar

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownFeature is returned when a token does not name a value of a feature.
var ErrUnknownFeature = errors.New("unknown feature value")

// Amount is the grammatical number of a form.
// The zero value means the feature does not apply.
type Amount uint8

const (
	AmountNone Amount = iota
	Singular
	Plural
)

// Gender is the grammatical gender of a form.
// The zero value means the feature does not apply.
type Gender uint8

const (
	GenderNone Gender = iota
	Masculine
	Neutral
	Feminine
)

// Tense is the grammatical tense of a form.
// The zero value means the feature does not apply.
type Tense uint8

const (
	TenseNone Tense = iota
	Present
	Past
	Future
)

// Mood is the grammatical mood of a form.
// The zero value means the feature does not apply.
type Mood uint8

const (
	MoodNone Mood = iota
	Indicative
	Imperative
)

// Person is the grammatical person (1, 2 or 3). Zero means the feature does not apply.
type Person uint8

const PersonNone Person = 0

var (
	amountNames = []string{"", "Singular", "Plural"}
	genderNames = []string{"", "Masculine", "Neutral", "Feminine"}
	tenseNames  = []string{"", "Present", "Past", "Future"}
	moodNames   = []string{"", "Indicative", "Imperative"}
)

func (a Amount) String() string { return name(amountNames, int(a)) }
func (g Gender) String() string { return name(genderNames, int(g)) }
func (t Tense) String() string  { return name(tenseNames, int(t)) }
func (m Mood) String() string   { return name(moodNames, int(m)) }

func (p Person) String() string {
	if p == PersonNone {
		return ""
	}
	return strconv.Itoa(int(p))
}

// Valid reports whether a is a member of the closed set. AmountNone is valid.
func (a Amount) Valid() bool { return int(a) < len(amountNames) }

// Valid reports whether g is a member of the closed set. GenderNone is valid.
func (g Gender) Valid() bool { return int(g) < len(genderNames) }

// Valid reports whether t is a member of the closed set. TenseNone is valid.
func (t Tense) Valid() bool { return int(t) < len(tenseNames) }

// Valid reports whether m is a member of the closed set. MoodNone is valid.
func (m Mood) Valid() bool { return int(m) < len(moodNames) }

// Valid reports whether p is 1, 2, 3 or PersonNone.
func (p Person) Valid() bool { return p <= 3 }

// Set reports whether the feature applies to the form.
func (a Amount) Set() bool { return a != AmountNone }
func (g Gender) Set() bool { return g != GenderNone }
func (t Tense) Set() bool  { return t != TenseNone }
func (m Mood) Set() bool   { return m != MoodNone }
func (p Person) Set() bool { return p != PersonNone }

// ParseAmount parses a symbolic name. The empty string yields AmountNone.
func ParseAmount(s string) (Amount, error) {
	i, err := parse("amount", amountNames, s)
	return Amount(i), err
}

// ParseGender parses a symbolic name. The empty string yields GenderNone.
func ParseGender(s string) (Gender, error) {
	i, err := parse("gender", genderNames, s)
	return Gender(i), err
}

// ParseTense parses a symbolic name. The empty string yields TenseNone.
func ParseTense(s string) (Tense, error) {
	i, err := parse("tense", tenseNames, s)
	return Tense(i), err
}

// ParseMood parses a symbolic name. The empty string yields MoodNone.
func ParseMood(s string) (Mood, error) {
	i, err := parse("mood", moodNames, s)
	return Mood(i), err
}

// ParsePerson parses "1", "2" or "3". The empty string yields PersonNone.
func ParsePerson(s string) (Person, error) {
	if s == "" {
		return PersonNone, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 3 {
		return PersonNone, fmt.Errorf("person %q: %w", s, ErrUnknownFeature)
	}
	return Person(n), nil
}

func (a Amount) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (g Gender) MarshalText() ([]byte, error) { return []byte(g.String()), nil }
func (t Tense) MarshalText() ([]byte, error)  { return []byte(t.String()), nil }
func (m Mood) MarshalText() ([]byte, error)   { return []byte(m.String()), nil }

func (a *Amount) UnmarshalText(b []byte) (err error) { *a, err = ParseAmount(string(b)); return }
func (g *Gender) UnmarshalText(b []byte) (err error) { *g, err = ParseGender(string(b)); return }
func (t *Tense) UnmarshalText(b []byte) (err error)  { *t, err = ParseTense(string(b)); return }
func (m *Mood) UnmarshalText(b []byte) (err error)   { *m, err = ParseMood(string(b)); return }

// Vocabulary lists the legal symbolic values of every enumerated feature.
func Vocabulary() map[string][]string {
	return map[string][]string{
		"amount": append([]string(nil), amountNames[1:]...),
		"gender": append([]string(nil), genderNames[1:]...),
		"tense":  append([]string(nil), tenseNames[1:]...),
		"mood":   append([]string(nil), moodNames[1:]...),
		"person": {"1", "2", "3"},
	}
}

func name(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("invalid(%d)", i)
}

func parse(feature string, names []string, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	for i := 1; i < len(names); i++ {
		if names[i] == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s %q: %w", feature, s, ErrUnknownFeature)
}
