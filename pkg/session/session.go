// Package session runs the interactive drill: pick a base form, transform it, ask for
// the resulting word and keep score.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/aretw0/introspection"
	"github.com/google/uuid"

	"github.com/aretw0/verbdrill/pkg/dictionary"
	"github.com/aretw0/verbdrill/pkg/grammar"
	"github.com/aretw0/verbdrill/pkg/mutation"
)

// ExitCommand ends the session when typed as an answer.
const ExitCommand = "exit"

// DefaultMaxAttempts bounds the random mutation draws for one base form.
const DefaultMaxAttempts = 64

// MissingTargetError reports a mutation whose target form is absent from the dictionary.
// A well-formed dictionary holds every form the rules can reach.
type MissingTargetError struct {
	Base     grammar.Entry
	Mutation mutation.Mutation
	Key      grammar.Key
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("no dictionary form for %q after %q: [%s]", e.Base.Word, e.Mutation.Name(), e.Key)
}

// Round is one drill question.
type Round struct {
	Base     grammar.Entry
	Mutation mutation.Mutation
	Answer   grammar.Entry
	// Draws is how many mutations were tried before one applied.
	Draws int
}

// Score is the running tally.
type Score struct {
	Rounds  int `json:"rounds" yaml:"rounds"`
	Correct int `json:"correct" yaml:"correct"`
	Faults  int `json:"faults" yaml:"faults"`
}

func (s Score) String() string {
	return fmt.Sprintf("Correct: %d/%d", s.Correct, s.Rounds)
}

// Session owns the score of one player. It is not safe for concurrent use.
type Session struct {
	id          uuid.UUID
	dict        *dictionary.Dictionary
	rnd         Rand
	enabled     []mutation.Mutation
	maxAttempts int
	fallback    mutation.Mutation
	strict      bool
	logger      *slog.Logger
	score       Score
}

// New creates a session over dict drawing from rnd.
func New(dict *dictionary.Dictionary, rnd Rand, opts ...Option) (*Session, error) {
	if dict == nil || dict.Len() == 0 {
		return nil, dictionary.ErrEmpty
	}
	if rnd == nil {
		return nil, errors.New("session needs a random source")
	}

	s := &Session{
		id:          uuid.New(),
		dict:        dict,
		rnd:         rnd,
		enabled:     mutation.DefaultEnabled(),
		maxAttempts: DefaultMaxAttempts,
		fallback:    mutation.ChangeConcrete,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.enabled) == 0 {
		return nil, errors.New("no mutation enabled")
	}
	for _, m := range s.enabled {
		if !m.Valid() {
			return nil, fmt.Errorf("unknown mutation %d", m)
		}
	}
	if !s.fallback.Valid() {
		return nil, fmt.Errorf("unknown fallback mutation %d", s.fallback)
	}
	if s.maxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be positive, got %d", s.maxAttempts)
	}
	return s, nil
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Score returns the tally so far.
func (s *Session) Score() Score { return s.score }

// Next builds a round. The base form is drawn once; only the mutation is redrawn
// when it does not apply.
func (s *Session) Next() (Round, error) {
	base := s.dict.At(s.rnd.IntN(s.dict.Len()))

	m, target, draws, err := s.pick(base)
	if err != nil {
		return Round{}, err
	}

	answer, ok := s.dict.Lookup(target.Key())
	if !ok {
		return Round{}, &MissingTargetError{Base: base, Mutation: m, Key: target.Key()}
	}

	s.logger.Debug("round ready",
		"session", s.id,
		"base", base.Word,
		"mutation", m.Name(),
		"answer", answer.Word,
		"draws", draws,
	)
	return Round{Base: base, Mutation: m, Answer: answer, Draws: draws}, nil
}

// pick draws enabled mutations until one applies. After maxAttempts draws it scans
// the enabled list in order, then falls back to the fallback mutation.
func (s *Session) pick(base grammar.Entry) (mutation.Mutation, grammar.Entry, int, error) {
	draws := 0
	try := func(m mutation.Mutation) (grammar.Entry, bool, error) {
		draws++
		target, err := mutation.Apply(base, m)
		if err == nil {
			return target, true, nil
		}
		if errors.Is(err, mutation.ErrInvalidMutation) {
			return grammar.Entry{}, false, nil
		}
		return grammar.Entry{}, false, err
	}

	for i := 0; i < s.maxAttempts; i++ {
		m := s.enabled[s.rnd.IntN(len(s.enabled))]
		target, ok, err := try(m)
		if err != nil {
			return m, grammar.Entry{}, draws, err
		}
		if ok {
			return m, target, draws, nil
		}
	}

	s.logger.Warn("random mutation draws exhausted", "session", s.id, "base", base.Word, "draws", draws)
	scan := append(append([]mutation.Mutation(nil), s.enabled...), s.fallback)
	applicable := mutation.Applicable(base, scan...)
	if len(applicable) == 0 {
		draws += len(scan)
		return s.fallback, grammar.Entry{}, draws, fmt.Errorf("no mutation applies to %q: %w", base.Word, mutation.ErrInvalidMutation)
	}
	m := applicable[0]
	draws += slices.Index(scan, m)
	target, _, err := try(m)
	return m, target, draws, err
}

// Check scores one answer against round. Surrounding whitespace is ignored; case is not.
func (s *Session) Check(round Round, answer string) bool {
	ok := strings.TrimSpace(answer) == round.Answer.Word
	s.score.Rounds++
	if ok {
		s.score.Correct++
	}
	return ok
}

// Run plays rounds until the player types ExitCommand, the input ends or ctx is done.
// A missing dictionary form is reported to the player and the round is skipped, unless
// the session is strict, in which case Run returns the *MissingTargetError.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) (Score, error) {
	lines := bufio.NewReader(in)
	s.logger.Info("session started", "session", s.id, "entries", s.dict.Len(), "mutations", names(s.enabled))
	defer func() {
		s.logger.Info("session finished", "session", s.id, "rounds", s.score.Rounds, "correct", s.score.Correct, "faults", s.score.Faults)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return s.score, err
		}

		round, err := s.Next()
		var missing *MissingTargetError
		switch {
		case errors.As(err, &missing) && !s.strict:
			s.score.Faults++
			s.logger.Error("dictionary is missing a form", "session", s.id, "error", err)
			fmt.Fprintf(out, "Cannot build a drill: %v\n", err)
			fmt.Fprintf(out, "Type %s to quit, or press enter for another word.\n", ExitCommand)
			line, ok, err := readLine(lines)
			if !ok || line == ExitCommand {
				return s.score, err
			}
			continue
		case err != nil:
			return s.score, err
		}

		fmt.Fprintf(out, "Take this word: %s and apply this change: %s\n", round.Base.Describe(), round.Mutation)
		fmt.Fprintf(out, "The answer should have this form: %s\n", round.Answer)

		line, ok, err := readLine(lines)
		if !ok {
			s.logger.Debug("input closed", "session", s.id)
			return s.score, err
		}
		if s.Check(round, line) {
			fmt.Fprintln(out, "You did it!")
		} else {
			fmt.Fprintf(out, "Wrong! I expected this answer: %s\n", round.Answer.Word)
		}
		fmt.Fprintln(out, s.score)

		if line == ExitCommand {
			return s.score, nil
		}
	}
}

// readLine returns the next line of any length. A final line without a newline still
// counts. At end of input it returns false and a nil error.
func readLine(r *bufio.Reader) (string, bool, error) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		return "", false, err
	}
	return strings.TrimSpace(line), true, nil
}

func names(ms []mutation.Mutation) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name()
	}
	return out
}

// State exposes the session for observability.
type State struct {
	ID          string   `json:"id" yaml:"id"`
	Score       Score    `json:"score" yaml:"score"`
	Enabled     []string `json:"enabled" yaml:"enabled"`
	Fallback    string   `json:"fallback" yaml:"fallback"`
	MaxAttempts int      `json:"max_attempts" yaml:"max_attempts"`
	Strict      bool     `json:"strict" yaml:"strict"`

	// Dictionary is the State of the dictionary the session draws from.
	Dictionary     any    `json:"dictionary" yaml:"dictionary"`
	DictionaryType string `json:"dictionary_type" yaml:"dictionary_type"`
}

// State implements introspection.Introspectable.
func (s *Session) State() any {
	state := State{
		ID:          s.id.String(),
		Score:       s.score,
		Enabled:     names(s.enabled),
		Fallback:    s.fallback.Name(),
		MaxAttempts: s.maxAttempts,
		Strict:      s.strict,
	}
	var dict any = s.dict
	if intro, ok := dict.(introspection.Introspectable); ok {
		state.Dictionary = intro.State()
	}
	if comp, ok := dict.(introspection.Component); ok {
		state.DictionaryType = comp.ComponentType()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Session) ComponentType() string {
	return "session"
}

var _ introspection.Introspectable = (*Session)(nil)
var _ introspection.Component = (*Session)(nil)
