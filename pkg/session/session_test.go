package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/verbdrill/pkg/dictionary"
	"github.com/aretw0/verbdrill/pkg/grammar"
	"github.com/aretw0/verbdrill/pkg/mutation"
)

// scripted replays fixed draws, reduced modulo n.
type scripted struct {
	draws []int
	next  int
}

func (s *scripted) IntN(n int) int {
	if s.next >= len(s.draws) {
		return 0
	}
	v := s.draws[s.next] % n
	s.next++
	return v
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// pastForms is closed under ChangeGender and ChangeMood.
func pastForms(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	past := func(word string, g grammar.Gender) grammar.Entry {
		return grammar.Entry{Word: word, Base: "идти", Meaning: "to go", Amount: grammar.Singular,
			Imperfective: true, Concrete: true, Gender: g, Mood: grammar.Indicative, Tense: grammar.Past}
	}
	d, err := dictionary.Build([]grammar.Entry{
		past("шёл", grammar.Masculine),
		past("шла", grammar.Feminine),
		past("шло", grammar.Neutral),
		{Word: "иди", Base: "идти", Meaning: "to go", Person: 2, Amount: grammar.Singular,
			Imperfective: true, Concrete: true, Mood: grammar.Imperative},
	}, dictionary.WithLogger(quiet))
	require.NoError(t, err)
	return d
}

func TestRun_Transcript(t *testing.T) {
	s, err := New(pastForms(t), &scripted{draws: []int{0, 0, 1, 0, 2, 0}},
		WithMutations(mutation.ChangeGender), WithLogger(quiet))
	require.NoError(t, err)

	var out bytes.Buffer
	score, err := s.Run(context.Background(), strings.NewReader("шла\n  ШЛО  \nexit\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, Score{Rounds: 3, Correct: 1}, score)

	text := out.String()
	assert.Contains(t, text, "Take this word: шёл based off идти: singular imperfective concrete masculine indicative past -> to go and apply this change: change the gender\n")
	assert.Contains(t, text, "The answer should have this form: идти: singular imperfective concrete feminine indicative past -> to go\n")
	assert.Contains(t, text, "You did it!\nCorrect: 1/1\n")
	assert.Contains(t, text, "Wrong! I expected this answer: шло\nCorrect: 1/2\n", "comparison is case-sensitive")
	assert.True(t, strings.HasSuffix(text, "Wrong! I expected this answer: шёл\nCorrect: 1/3\n"), "exit is scored before leaving")
}

func TestRun_AnswerIsTrimmed(t *testing.T) {
	s, err := New(pastForms(t), &scripted{draws: []int{0, 0}},
		WithMutations(mutation.ChangeGender), WithLogger(quiet))
	require.NoError(t, err)

	score, err := s.Run(context.Background(), strings.NewReader("\t шла \n"), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, score.Correct)
}

func TestRun_LongAnswerIsScoredWrong(t *testing.T) {
	s, err := New(pastForms(t), &scripted{draws: []int{0, 0}},
		WithMutations(mutation.ChangeGender), WithLogger(quiet))
	require.NoError(t, err)

	long := strings.Repeat("ш", 100*1024)
	var out bytes.Buffer
	score, err := s.Run(context.Background(), strings.NewReader(long+"\nexit"), &out)
	require.NoError(t, err)
	assert.Equal(t, Score{Rounds: 2}, score)
	assert.Contains(t, out.String(), "Wrong! I expected this answer: шла\nCorrect: 0/1\n")
}

func TestRun_EndOfInput(t *testing.T) {
	s, err := New(pastForms(t), NewRand(7), WithMutations(mutation.ChangeGender), WithLogger(quiet))
	require.NoError(t, err)

	score, err := s.Run(context.Background(), strings.NewReader(""), io.Discard)
	require.NoError(t, err)
	assert.Zero(t, score.Rounds)
}

func TestRun_SingleEntryExitsCleanly(t *testing.T) {
	d, err := dictionary.Build([]grammar.Entry{
		{Word: "идти", Base: "идти", Imperfective: true, Concrete: true},
		{Word: "шёл", Base: "идти", Amount: grammar.Singular, Imperfective: true, Concrete: true,
			Gender: grammar.Masculine, Mood: grammar.Indicative, Tense: grammar.Past},
	}, dictionary.WithLogger(quiet))
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())

	s, err := New(d, NewRand(1), WithLogger(quiet))
	require.NoError(t, err)

	var out bytes.Buffer
	score, err := s.Run(context.Background(), strings.NewReader("\nexit\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 2, score.Faults)
	assert.Zero(t, score.Rounds)
	assert.Contains(t, out.String(), "Cannot build a drill: no dictionary form for \"шёл\"")
}

func TestRun_StrictReportsMissingTarget(t *testing.T) {
	d, err := dictionary.Build([]grammar.Entry{
		{Word: "шёл", Base: "идти", Amount: grammar.Singular, Imperfective: true, Concrete: true,
			Gender: grammar.Masculine, Mood: grammar.Indicative, Tense: grammar.Past},
	}, dictionary.WithLogger(quiet))
	require.NoError(t, err)

	s, err := New(d, NewRand(1), WithStrict(true), WithLogger(quiet))
	require.NoError(t, err)

	_, err = s.Run(context.Background(), strings.NewReader("exit\n"), io.Discard)
	var missing *MissingTargetError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "шёл", missing.Base.Word)
	assert.NotEqual(t, missing.Base.Key(), missing.Key)
}

func TestRun_Cancelled(t *testing.T) {
	s, err := New(pastForms(t), NewRand(1), WithLogger(quiet))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx, strings.NewReader("exit\n"), io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNext_ResamplesMutationNotBase(t *testing.T) {
	rnd := &scripted{draws: []int{3, 0, 1}}
	s, err := New(pastForms(t), rnd,
		WithMutations(mutation.ChangeGender, mutation.ChangeMood), WithLogger(quiet))
	require.NoError(t, err)

	round, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "иди", round.Base.Word)
	assert.Equal(t, mutation.ChangeMood, round.Mutation)
	assert.Equal(t, "шла", round.Answer.Word)
	assert.Equal(t, 2, round.Draws)
}

func TestNext_ScanFindsEnabledMutation(t *testing.T) {
	s, err := New(pastForms(t), &scripted{draws: []int{3}},
		WithMutations(mutation.ChangePerson, mutation.ChangeMood),
		WithMaxAttempts(2),
		WithLogger(quiet))
	require.NoError(t, err)

	round, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, mutation.ChangeMood, round.Mutation)
	assert.Equal(t, "шла", round.Answer.Word)
	assert.Equal(t, 4, round.Draws, "2 random draws, then person and mood in order")
}

func TestNext_BoundedDrawsFallBack(t *testing.T) {
	s, err := New(pastForms(t), &scripted{draws: []int{3}},
		WithMutations(mutation.ChangeGender),
		WithMaxAttempts(3),
		WithFallback(mutation.ChangeMood),
		WithLogger(quiet))
	require.NoError(t, err)

	round, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, mutation.ChangeMood, round.Mutation)
	assert.Equal(t, 5, round.Draws, "3 random draws, 1 scan, 1 fallback")
}

func TestNext_NothingApplies(t *testing.T) {
	s, err := New(pastForms(t), &scripted{draws: []int{3}},
		WithMutations(mutation.ChangeGender),
		WithMaxAttempts(2),
		WithFallback(mutation.ChangePerson),
		WithLogger(quiet))
	require.NoError(t, err)

	_, err = s.Next()
	assert.ErrorIs(t, err, mutation.ErrInvalidMutation)
}

func TestNext_SeededIsDeterministic(t *testing.T) {
	play := func() []string {
		s, err := New(pastForms(t), NewRand(42),
			WithMutations(mutation.ChangeGender, mutation.ChangeMood), WithLogger(quiet))
		require.NoError(t, err)
		var got []string
		for i := 0; i < 20; i++ {
			r, err := s.Next()
			require.NoError(t, err)
			got = append(got, r.Base.Word+">"+r.Answer.Word)
		}
		return got
	}
	assert.Equal(t, play(), play())
}

func TestNew_Validation(t *testing.T) {
	d := pastForms(t)

	_, err := New(nil, NewRand(1))
	assert.ErrorIs(t, err, dictionary.ErrEmpty)

	_, err = New(d, nil)
	assert.Error(t, err)

	_, err = New(d, NewRand(1), WithMutations())
	assert.Error(t, err)

	_, err = New(d, NewRand(1), WithMaxAttempts(0))
	assert.Error(t, err)

	_, err = New(d, NewRand(1), WithFallback(mutation.Mutation(99)))
	assert.Error(t, err)
}

func TestState(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-467f-a0e6-7a1b1b7a6a29")
	s, err := New(pastForms(t), NewRand(1), WithSessionID(id), WithLogger(quiet))
	require.NoError(t, err)

	state := s.State().(State)
	assert.Equal(t, id.String(), state.ID)
	assert.Equal(t, []string{"change-person", "change-amount", "change-tense", "change-mood", "change-gender"}, state.Enabled)
	assert.Equal(t, "change-concrete", state.Fallback)
	assert.Equal(t, DefaultMaxAttempts, state.MaxAttempts)
	assert.Equal(t, "session", s.ComponentType())
	assert.Equal(t, "dictionary", state.DictionaryType)
	require.IsType(t, dictionary.State{}, state.Dictionary)
	assert.Equal(t, 4, state.Dictionary.(dictionary.State).Entries)
}
