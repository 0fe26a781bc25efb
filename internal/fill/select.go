package fill

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/dom"
)

// Select picks the option of a native select matching value. aliases are
// alternative spellings of value tried when no direct match exists.
func (f *Filler) Select(_ context.Context, el dom.Element, value string, aliases []string) bool {
	if value == "" {
		return false
	}

	options, err := el.Options()
	if err != nil {
		f.logger.Warn("reading select options failed", zap.Error(err))
		return false
	}

	option, ok := MatchOption(options, value, aliases)
	if !ok {
		f.logger.Debug("no select option matches", zap.String("value", value), zap.Int("options", len(options)))
		return false
	}

	if err := assign(el, option.Value); err != nil {
		f.logger.Warn("filling select failed", zap.String("option", option.Text), zap.Error(err))
		return false
	}

	return true
}

func assign(el dom.Element, value string) error {
	if err := el.SetValue(value); err != nil {
		return fmt.Errorf("assigning: %w", err)
	}

	if err := el.Dispatch(dom.SyntheticSequence...); err != nil {
		return fmt.Errorf("dispatching events: %w", err)
	}

	return nil
}

// MatchOption resolves value against options in three tiers, the first hit
// winning:
//
//  1. exact case-insensitive match of option text or value;
//  2. substring match: option text or value contains value, or value
//     contains the option text;
//  3. one of aliases appears as a whole word in the option text or value.
func MatchOption(options []dom.Option, value string, aliases []string) (dom.Option, bool) {
	want := normalize(value)
	if want == "" {
		return dom.Option{}, false
	}

	for _, o := range options {
		if normalize(o.Text) == want || normalize(o.Value) == want {
			return o, true
		}
	}

	for _, o := range options {
		text, val := normalize(o.Text), normalize(o.Value)
		if text != "" && (strings.Contains(text, want) || strings.Contains(want, text)) {
			return o, true
		}
		// Option values are often short codes ("es", "in") that any long
		// answer contains, so they are only matched one way.
		if val != "" && strings.Contains(val, want) {
			return o, true
		}
	}

	for _, alias := range aliases {
		alias = normalize(alias)
		if alias == "" {
			continue
		}
		for _, o := range options {
			if hasWord(o.Text, alias) || hasWord(o.Value, alias) {
				return o, true
			}
		}
	}

	return dom.Option{}, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// hasWord reports whether phrase occurs in s on word boundaries.
func hasWord(s, phrase string) bool {
	words := strings.FieldsFunc(normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	target := strings.Fields(phrase)
	if len(target) == 0 {
		return false
	}

	for i := 0; i+len(target) <= len(words); i++ {
		match := true
		for j, w := range target {
			if words[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}

	return false
}
