package mutation

import "github.com/aretw0/verbdrill/pkg/grammar"

func changeGender(e grammar.Entry) (grammar.Entry, error) {
	switch e.Gender {
	case grammar.Masculine:
		e.Gender = grammar.Feminine
	case grammar.Neutral:
		e.Gender = grammar.Masculine
	case grammar.Feminine:
		e.Gender = grammar.Neutral
	default:
		return grammar.Entry{}, ErrInvalidMutation
	}
	return e, nil
}

// changePerson is only defined in the indicative: imperatives exist in the 2nd person alone.
func changePerson(e grammar.Entry) (grammar.Entry, error) {
	if e.Mood != grammar.Indicative {
		return grammar.Entry{}, ErrInvalidMutation
	}
	switch e.Person {
	case 1:
		e.Person = 2
	case 2:
		e.Person = 3
	case 3:
		e.Person = 1
	default:
		return grammar.Entry{}, ErrInvalidMutation
	}
	return e, nil
}

// changeAmount: plural forms carry no gender, and the singular past tense always does.
func changeAmount(e grammar.Entry) (grammar.Entry, error) {
	switch e.Amount {
	case grammar.Plural:
		e.Amount = grammar.Singular
		if e.Tense == grammar.Past {
			e.Gender = grammar.Masculine
		}
	case grammar.Singular:
		e.Amount = grammar.Plural
		e.Gender = grammar.GenderNone
	default:
		return grammar.Entry{}, ErrInvalidMutation
	}
	return e, nil
}

// changeImperfective moves to the aspect partner. A perfective verb has no present tense:
// its present-looking forms are future, so present and future swap along with the aspect.
func changeImperfective(e grammar.Entry) (grammar.Entry, error) {
	e.Imperfective = !e.Imperfective
	switch e.Tense {
	case grammar.Present:
		e.Tense = grammar.Future
	case grammar.Future:
		e.Tense = grammar.Present
	}
	return e, nil
}

func changeConcrete(e grammar.Entry) (grammar.Entry, error) {
	e.Concrete = !e.Concrete
	return e, nil
}

// changeTense cycles present -> future -> past -> present.
// The past tense agrees in gender and number but not in person.
func changeTense(e grammar.Entry) (grammar.Entry, error) {
	switch e.Tense {
	case grammar.Present:
		e.Tense = grammar.Future
		e.Imperfective = false
	case grammar.Future:
		e.Tense = grammar.Past
		if e.Amount == grammar.Singular {
			e.Gender = grammar.Masculine
		}
		e.Person = grammar.PersonNone
	case grammar.Past:
		e.Tense = grammar.Present
		e.Imperfective = true
		e.Gender = grammar.GenderNone
		e.Person = 3
	default:
		return grammar.Entry{}, ErrInvalidMutation
	}
	return e, nil
}

// changeMood: the imperative has neither tense nor gender and is always 2nd person.
// Going back lands on a fixed indicative form, not on the one the imperative came from.
func changeMood(e grammar.Entry) (grammar.Entry, error) {
	switch e.Mood {
	case grammar.Indicative:
		e.Mood = grammar.Imperative
		e.Person = 2
		e.Gender = grammar.GenderNone
		e.Tense = grammar.TenseNone
	case grammar.Imperative:
		e.Mood = grammar.Indicative
		e.Person = grammar.PersonNone
		e.Gender = grammar.Feminine
		e.Amount = grammar.Singular
		e.Tense = grammar.Past
	default:
		return grammar.Entry{}, ErrInvalidMutation
	}
	return e, nil
}
