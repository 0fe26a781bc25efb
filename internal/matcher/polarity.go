package matcher

import (
	"strings"
	"unicode"
)

// Polarity is the stance a choice label takes on its question.
type Polarity int

const (
	Affirmative Polarity = iota
	Negative
	Decline
)

func (p Polarity) String() string {
	switch p {
	case Negative:
		return "negative"
	case Decline:
		return "decline"
	default:
		return "affirmative"
	}
}

var declinePhrases = []string{
	"wish to answer",
	"want to answer",
	"not to answer",
	"prefer not",
	"decline",
	"not wish to",
	"choose not to",
}

var negativeWords = map[string]bool{
	"no":    true,
	"not":   true,
	"none":  true,
	"never": true,
}

// PolarityOf classifies a lower-cased choice label. Labels that neither
// decline nor negate read as affirmative statements ("I am authorized to
// work", "Yes").
func PolarityOf(label string) Polarity {
	label = strings.ToLower(label)
	if containsAny(label, declinePhrases) {
		return Decline
	}

	words := strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})
	for _, w := range words {
		if negativeWords[w] || strings.HasSuffix(w, "n't") || strings.HasSuffix(w, "n’t") {
			return Negative
		}
	}

	return Affirmative
}
