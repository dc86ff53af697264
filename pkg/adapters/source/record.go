package source

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/verbdrill/pkg/grammar"
)

// Columns lists the header names a source must provide, in canonical order.
var Columns = []string{"word", "base", "person", "amount", "imperfective", "concrete", "gender", "mood", "meaning", "tense"}

// record is one raw row. Tags hold the column name and the accepted tokens.
type record struct {
	Word         string `col:"word" validate:"required"`
	Base         string `col:"base" validate:"required"`
	Person       string `col:"person" validate:"omitempty,oneof=1 2 3"`
	Amount       string `col:"amount" validate:"omitempty,oneof=Singular Plural"`
	Imperfective string `col:"imperfective" validate:"oneof=true false"`
	Concrete     string `col:"concrete" validate:"oneof=true false"`
	Gender       string `col:"gender" validate:"omitempty,oneof=Masculine Neutral Feminine"`
	Mood         string `col:"mood" validate:"omitempty,oneof=Indicative Imperative"`
	Meaning      string `col:"meaning"`
	Tense        string `col:"tense" validate:"omitempty,oneof=Present Past Future"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("col")
	})
	return v
}

// fromRows converts decoded rows, header first, into entries.
func fromRows(rows [][]string) ([]grammar.Entry, error) {
	if len(rows) == 0 {
		return nil, &ParseError{Err: errors.New("missing header row")}
	}
	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, &ParseError{Row: 1, Err: err}
	}

	entries := make([]grammar.Entry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec := recordOf(row, cols)
		if err := validate.Struct(rec); err != nil {
			pe := &ParseError{Row: i + 2, Err: err}
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				pe.Column = verrs[0].Field()
				pe.Err = fmt.Errorf("invalid value %q (%s)", verrs[0].Value(), verrs[0].Tag())
			}
			return nil, pe
		}
		e, err := rec.entry()
		if err != nil {
			return nil, &ParseError{Row: i + 2, Err: err}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	var missing []string
	for _, c := range Columns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func recordOf(row []string, cols map[string]int) record {
	get := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return record{
		Word:         get("word"),
		Base:         get("base"),
		Person:       get("person"),
		Amount:       get("amount"),
		Imperfective: get("imperfective"),
		Concrete:     get("concrete"),
		Gender:       get("gender"),
		Mood:         get("mood"),
		Meaning:      get("meaning"),
		Tense:        get("tense"),
	}
}

func (r record) entry() (grammar.Entry, error) {
	e := grammar.Entry{
		Word:         r.Word,
		Base:         r.Base,
		Meaning:      r.Meaning,
		Imperfective: r.Imperfective == "true",
		Concrete:     r.Concrete == "true",
	}
	var err error
	if e.Person, err = grammar.ParsePerson(r.Person); err != nil {
		return e, err
	}
	if e.Amount, err = grammar.ParseAmount(r.Amount); err != nil {
		return e, err
	}
	if e.Gender, err = grammar.ParseGender(r.Gender); err != nil {
		return e, err
	}
	if e.Mood, err = grammar.ParseMood(r.Mood); err != nil {
		return e, err
	}
	if e.Tense, err = grammar.ParseTense(r.Tense); err != nil {
		return e, err
	}
	return e, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
