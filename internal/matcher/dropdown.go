package matcher

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/job-autofill/internal/dom"
)

// MaxDropdownDepth bounds the ancestor walk of ClassifyDropdown.
const MaxDropdownDepth = 8

// DropdownRule classifies a custom dropdown by the text of a surrounding
// container.
type DropdownRule struct {
	Category Category
	// Any matches when the text holds one of the phrases.
	Any []string
	// All matches when the text holds every phrase.
	All []string
	// MaxLen, when set, rejects texts of MaxLen characters or more. Long
	// containers usually hold legal disclaimers mentioning many topics.
	MaxLen int
	Unless []string
}

// Match evaluates the rule against lower-cased container text.
func (r DropdownRule) Match(text string) bool {
	if r.MaxLen > 0 && utf8.RuneCountInString(text) >= r.MaxLen {
		return false
	}
	if containsAny(text, r.Unless) {
		return false
	}
	if containsAny(text, r.Any) {
		return true
	}
	return len(r.All) > 0 && containsAll(text, r.All)
}

// DropdownRules is an ordered table; the first match wins.
type DropdownRules []DropdownRule

// Classify returns the first matching category, or None.
func (rs DropdownRules) Classify(text string) Category {
	for _, r := range rs {
		if r.Match(text) {
			return r.Category
		}
	}
	return None
}

// CustomDropdownRules classify React-Select style widgets.
var CustomDropdownRules = DropdownRules{
	{Category: Source, Any: []string{"how did you learn", "how did you hear"}},
	{Category: Disability, Any: []string{"disability status"}, MaxLen: 500},
	{Category: Veteran, Any: []string{"vevraa"}},
	{Category: Veteran, All: []string{"veteran", "protected"}},
	{Category: Relocation, Any: []string{"open to relocation"}, MaxLen: 200},
	{Category: WorkAuthorization, Any: []string{"legally permitted", "work in the country", "permitted to work"}},
	{Category: Sponsorship, Any: []string{"require sponsorship", "will you now or in the future"}},
	{Category: WorkPreference, Any: []string{"prefer to work", "on-site, hybrid"}},
	{Category: Country, Any: []string{"country"}, MaxLen: 100, Unless: []string{"address", "permitted", "legally"}},
}

// ClassifyDropdown walks up to MaxDropdownDepth ancestors of el, starting at
// its parent, and classifies the first container whose text matches.
func ClassifyDropdown(el dom.Element, rules DropdownRules) (Category, error) {
	container, err := el.Parent()
	if err != nil {
		return None, fmt.Errorf("reading parent: %w", err)
	}

	for depth := 0; depth < MaxDropdownDepth && container != nil; depth++ {
		text, err := container.Text()
		if err != nil {
			return None, fmt.Errorf("reading container text: %w", err)
		}

		if category := rules.Classify(strings.ToLower(text)); category != None {
			return category, nil
		}

		if container, err = container.Parent(); err != nil {
			return None, fmt.Errorf("reading parent: %w", err)
		}
	}

	return None, nil
}
