package matcher

import "strings"

// Rule maps a label signal to a category. A rule matches when any of its
// positive predicates holds and none of its Unless guards does.
type Rule struct {
	Category Category
	// Contains matches the label signal or the placeholder.
	Contains []string
	// LabelContains matches the label signal only.
	LabelContains []string
	// LabelAll matches when the label signal holds every phrase.
	LabelAll []string
	// Equals matches the whole label signal or placeholder.
	Equals []string
	// Unless suppresses the rule when the label signal holds any phrase.
	Unless []string
}

// Match evaluates the rule against s.
func (r Rule) Match(s Signal) bool {
	label := s.Text()
	if containsAny(label, r.Unless) {
		return false
	}

	switch {
	case containsAny(label, r.Contains), containsAny(s.Placeholder, r.Contains):
		return true
	case containsAny(label, r.LabelContains):
		return true
	case len(r.LabelAll) > 0 && containsAll(label, r.LabelAll):
		return true
	case equalsAny(label, r.Equals), equalsAny(s.Placeholder, r.Equals):
		return true
	}

	return false
}

// Rules is an ordered rule table; the first match wins.
type Rules []Rule

// Classify returns the category of the first matching rule, or None.
func (rs Rules) Classify(s Signal) Category {
	for _, r := range rs {
		if r.Match(s) {
			return r.Category
		}
	}
	return None
}

// TextRules classify text inputs and textareas.
var TextRules = Rules{
	{Category: FirstName, Contains: []string{"first name"}},
	{Category: LastName, Contains: []string{"last name"}},
	{Category: Email, Contains: []string{"email"}, Unless: []string{"address"}},
	{Category: Phone, Contains: []string{"phone number"}},
	{Category: Street, Contains: []string{"address line 1"}},
	{Category: City, Contains: []string{"city"}},
	{Category: PostalCode, Contains: []string{"postal"}, LabelContains: []string{"zip"}},
	{Category: State, Contains: []string{"state"}, Unless: []string{"united"}},
	{Category: Salary, Contains: []string{"salary"}},
	{Category: FullName, LabelContains: []string{"full name"}, Equals: []string{"name:"}},
	{Category: Date, Contains: []string{"date:"}, Equals: []string{"date"}},
}

// SelectRules classify native selects by their label signal.
var SelectRules = Rules{
	{Category: Country, LabelContains: []string{"country"}},
	{Category: State, LabelContains: []string{"state", "province"}},
	{Category: PhoneType, LabelAll: []string{"phone", "type"}},
	{Category: Source, LabelContains: []string{"hear", "source"}},
}

// ChoiceRules classify radios and checkboxes by screening-question topic.
var ChoiceRules = Rules{
	{Category: WorkAuthorization, LabelContains: []string{"authorized", "legally", "permit", "eligible to work"}},
	{Category: Sponsorship, LabelContains: []string{"sponsor", "visa"}},
	{Category: Relocation, LabelContains: []string{"relocat", "willing to move"}},
	{Category: Disability, LabelContains: []string{"disability"}},
	{Category: Veteran, LabelContains: []string{"veteran", "military"}},
}

func containsAny(s string, phrases []string) bool {
	if s == "" {
		return false
	}
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func containsAll(s string, phrases []string) bool {
	for _, p := range phrases {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

func equalsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if s == p {
			return true
		}
	}
	return false
}
