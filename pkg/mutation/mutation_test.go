package mutation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/verbdrill/pkg/grammar"
)

// everyEntry enumerates every combination of the feature vocabulary, absent values included.
func everyEntry() []grammar.Entry {
	var out []grammar.Entry
	for p := grammar.Person(0); p <= 3; p++ {
		for a := grammar.AmountNone; a <= grammar.Plural; a++ {
			for g := grammar.GenderNone; g <= grammar.Feminine; g++ {
				for m := grammar.MoodNone; m <= grammar.Imperative; m++ {
					for tn := grammar.TenseNone; tn <= grammar.Future; tn++ {
						for _, imp := range []bool{false, true} {
							for _, conc := range []bool{false, true} {
								out = append(out, grammar.Entry{
									Word: "w", Base: "b", Meaning: "m",
									Person: p, Amount: a, Gender: g, Mood: m, Tense: tn,
									Imperfective: imp, Concrete: conc,
								})
							}
						}
					}
				}
			}
		}
	}
	return out
}

func applyN(t *testing.T, e grammar.Entry, m Mutation, n int) grammar.Entry {
	t.Helper()
	for i := 0; i < n; i++ {
		var err error
		e, err = Apply(e, m)
		require.NoError(t, err, "step %d of %s", i+1, m.Name())
	}
	return e
}

func TestChangeGender_CycleOfThree(t *testing.T) {
	for _, e := range everyEntry() {
		if !e.Gender.Set() {
			continue
		}
		assert.Equal(t, e, applyN(t, e, ChangeGender, 3))
		once := applyN(t, e, ChangeGender, 1)
		assert.NotEqual(t, e.Gender, once.Gender)
		once.Gender = e.Gender
		assert.Equal(t, e, once, "only gender changes")
	}
}

func TestChangeGender_Scenario(t *testing.T) {
	e := grammar.Entry{Base: "b", Gender: grammar.Masculine, Mood: grammar.Indicative}

	e = applyN(t, e, ChangeGender, 1)
	assert.Equal(t, grammar.Feminine, e.Gender)
	e = applyN(t, e, ChangeGender, 1)
	assert.Equal(t, grammar.Neutral, e.Gender)
	e = applyN(t, e, ChangeGender, 1)
	assert.Equal(t, grammar.Masculine, e.Gender)
}

func TestChangePerson(t *testing.T) {
	for _, e := range everyEntry() {
		if !e.Person.Set() {
			continue
		}
		if e.Mood != grammar.Indicative {
			_, err := Apply(e, ChangePerson)
			assert.ErrorIs(t, err, ErrInvalidMutation, "mood %v person %v", e.Mood, e.Person)
			continue
		}
		assert.Equal(t, e, applyN(t, e, ChangePerson, 3))
		once := applyN(t, e, ChangePerson, 1)
		assert.Equal(t, e.Person%3+1, once.Person)
	}
}

func TestChangeImperfective_Involution(t *testing.T) {
	for _, e := range everyEntry() {
		once := applyN(t, e, ChangeImperfective, 1)
		assert.Equal(t, !e.Imperfective, once.Imperfective)
		switch e.Tense {
		case grammar.Present:
			assert.Equal(t, grammar.Future, once.Tense)
		case grammar.Future:
			assert.Equal(t, grammar.Present, once.Tense)
		default:
			assert.Equal(t, e.Tense, once.Tense)
		}
		assert.Equal(t, e, applyN(t, e, ChangeImperfective, 2))
	}
}

func TestChangeConcrete_OnlyFlipsConcrete(t *testing.T) {
	for _, e := range everyEntry() {
		once := applyN(t, e, ChangeConcrete, 1)
		want := e
		want.Concrete = !e.Concrete
		assert.Equal(t, want, once)
	}
}

func TestChangeAmount(t *testing.T) {
	tests := []struct {
		name string
		in   grammar.Entry
		want grammar.Entry
	}{
		{
			name: "plural past becomes masculine singular",
			in:   grammar.Entry{Base: "b", Amount: grammar.Plural, Tense: grammar.Past, Mood: grammar.Indicative},
			want: grammar.Entry{Base: "b", Amount: grammar.Singular, Gender: grammar.Masculine, Tense: grammar.Past, Mood: grammar.Indicative},
		},
		{
			name: "plural present keeps gender untouched",
			in:   grammar.Entry{Base: "b", Person: 3, Amount: grammar.Plural, Tense: grammar.Present, Mood: grammar.Indicative},
			want: grammar.Entry{Base: "b", Person: 3, Amount: grammar.Singular, Tense: grammar.Present, Mood: grammar.Indicative},
		},
		{
			name: "singular drops gender",
			in:   grammar.Entry{Base: "b", Amount: grammar.Singular, Gender: grammar.Feminine, Tense: grammar.Past, Mood: grammar.Indicative},
			want: grammar.Entry{Base: "b", Amount: grammar.Plural, Tense: grammar.Past, Mood: grammar.Indicative},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.in, ChangeAmount)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestChangeTense_CycleOfThree(t *testing.T) {
	for _, e := range everyEntry() {
		if !e.Tense.Set() {
			continue
		}
		assert.Equal(t, e.Tense, applyN(t, e, ChangeTense, 3).Tense)
	}
}

func TestChangeTense_SideEffects(t *testing.T) {
	present := grammar.Entry{Base: "b", Person: 1, Amount: grammar.Singular, Imperfective: true, Mood: grammar.Indicative, Tense: grammar.Present}

	future := applyN(t, present, ChangeTense, 1)
	assert.Equal(t, grammar.Future, future.Tense)
	assert.False(t, future.Imperfective)
	assert.Equal(t, grammar.Person(1), future.Person)

	past := applyN(t, future, ChangeTense, 1)
	assert.Equal(t, grammar.Past, past.Tense)
	assert.Equal(t, grammar.Masculine, past.Gender)
	assert.False(t, past.Person.Set())

	back := applyN(t, past, ChangeTense, 1)
	assert.Equal(t, grammar.Present, back.Tense)
	assert.True(t, back.Imperfective)
	assert.False(t, back.Gender.Set())
	assert.Equal(t, grammar.Person(3), back.Person)
}

func TestChangeTense_FutureSingularScenario(t *testing.T) {
	in := grammar.Entry{Base: "b", Person: 1, Amount: grammar.Singular, Mood: grammar.Indicative, Tense: grammar.Future}

	got, err := Apply(in, ChangeTense)
	require.NoError(t, err)

	want := in
	want.Tense = grammar.Past
	want.Gender = grammar.Masculine
	want.Person = grammar.PersonNone
	assert.Equal(t, want, got)
}

func TestChangeTense_FuturePluralKeepsGenderAbsent(t *testing.T) {
	in := grammar.Entry{Base: "b", Person: 3, Amount: grammar.Plural, Mood: grammar.Indicative, Tense: grammar.Future}

	got, err := Apply(in, ChangeTense)
	require.NoError(t, err)
	assert.False(t, got.Gender.Set())
	assert.False(t, got.Person.Set())
}

func TestChangeMood(t *testing.T) {
	indicative := grammar.Entry{
		Word: "шёл", Base: "идти", Meaning: "to go",
		Person: 1, Amount: grammar.Singular, Gender: grammar.Masculine,
		Imperfective: true, Concrete: true,
		Mood: grammar.Indicative, Tense: grammar.Past,
	}

	imperative, err := Apply(indicative, ChangeMood)
	require.NoError(t, err)
	assert.Equal(t, grammar.Imperative, imperative.Mood)
	assert.Equal(t, grammar.Person(2), imperative.Person)
	assert.False(t, imperative.Gender.Set())
	assert.False(t, imperative.Tense.Set())
	assert.Equal(t, grammar.Singular, imperative.Amount)
	assert.True(t, imperative.Imperfective)
	assert.True(t, imperative.Concrete)

	// The round trip is lossy: the indicative side is a fixed form.
	back, err := Apply(imperative, ChangeMood)
	require.NoError(t, err)
	assert.Equal(t, grammar.Indicative, back.Mood)
	assert.False(t, back.Person.Set())
	assert.Equal(t, grammar.Feminine, back.Gender)
	assert.Equal(t, grammar.Singular, back.Amount)
	assert.Equal(t, grammar.Past, back.Tense)
	assert.NotEqual(t, indicative.Key(), back.Key())
}

func TestChangeMood_FromPluralImperative(t *testing.T) {
	in := grammar.Entry{Base: "b", Person: 2, Amount: grammar.Plural, Mood: grammar.Imperative}

	got, err := Apply(in, ChangeMood)
	require.NoError(t, err)
	assert.Equal(t, grammar.Singular, got.Amount)
}

func TestMissingFeatureIsInvalid(t *testing.T) {
	bare := grammar.Entry{Base: "b", Word: "w"}
	for _, m := range []Mutation{ChangeGender, ChangePerson, ChangeAmount, ChangeTense, ChangeMood} {
		t.Run(m.Name(), func(t *testing.T) {
			_, err := Apply(bare, m)
			assert.True(t, errors.Is(err, ErrInvalidMutation))
		})
	}

	for _, m := range []Mutation{ChangeImperfective, ChangeConcrete} {
		_, err := Apply(bare, m)
		assert.NoError(t, err, m.Name())
	}
}

func TestApply_PreservesWordAndMeaning(t *testing.T) {
	e := grammar.Entry{Word: "w", Base: "b", Meaning: "m", Gender: grammar.Neutral}
	got, err := Apply(e, ChangeGender)
	require.NoError(t, err)
	assert.Equal(t, "w", got.Word)
	assert.Equal(t, "b", got.Base)
	assert.Equal(t, "m", got.Meaning)
}

func TestApply_UnknownKind(t *testing.T) {
	_, err := Apply(grammar.Entry{Base: "b"}, Mutation(42))
	assert.ErrorIs(t, err, ErrInvalidMutation)
}

func TestApplicable(t *testing.T) {
	e := grammar.Entry{Base: "b", Person: 2, Amount: grammar.Singular, Mood: grammar.Imperative}
	assert.Equal(t,
		[]Mutation{ChangeAmount, ChangeImperfective, ChangeConcrete, ChangeMood},
		Applicable(e))
	assert.Equal(t, []Mutation{ChangeAmount, ChangeMood}, Applicable(e, DefaultEnabled()...))
}

func TestEveryMoodBearingEntryHasAnEnabledMutation(t *testing.T) {
	for _, e := range everyEntry() {
		if !e.Mood.Set() {
			continue
		}
		assert.NotEmpty(t, Applicable(e, DefaultEnabled()...), "entry %+v", e)
	}
}

func TestParse(t *testing.T) {
	for _, m := range All() {
		got, err := Parse(m.Name())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := Parse("CHANGE_TENSE")
	require.NoError(t, err)
	assert.Equal(t, ChangeTense, got)

	_, err = Parse("change-voice")
	assert.Error(t, err)

	_, err = ParseList([]string{"change-mood", "change-mood"})
	assert.Error(t, err)

	list, err := ParseList([]string{"change-mood", "change-gender"})
	require.NoError(t, err)
	assert.Equal(t, []Mutation{ChangeMood, ChangeGender}, list)
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "change the number of people", ChangeAmount.String())
	assert.Equal(t, "change the aspect (perfective/imperfective)", ChangeImperfective.String())
	assert.Len(t, All(), 7)
	assert.NotContains(t, DefaultEnabled(), ChangeImperfective)
	assert.NotContains(t, DefaultEnabled(), ChangeConcrete)
}
