package autofill

import (
	"fmt"

	"github.com/spigell/job-autofill/internal/dom"
	"github.com/spigell/job-autofill/internal/fill"
	"github.com/spigell/job-autofill/internal/matcher"
	"github.com/spigell/job-autofill/internal/profile"
)

// Finding is the dry-run verdict for one control.
type Finding struct {
	Pass     string `json:"pass"`
	Kind     string `json:"kind"`
	Category string `json:"category,omitempty"`
	Label    string `json:"label,omitempty"`
	Value    string `json:"value,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Skipped  string `json:"skipped,omitempty"`
}

// Inspect classifies the visible controls of doc the way a run would and
// reports what it would write, without touching the page. Dropdown and
// date answers are resolved without opening the widgets.
func Inspect(doc dom.Document, p *profile.Profile, today string) ([]Finding, error) {
	var findings []Finding

	controls, err := doc.Query(dom.FillableSelector)
	if err != nil {
		return nil, err
	}

	for _, el := range controls {
		if ok, _ := el.Visible(); !ok || ownedByLaterPass(el) {
			continue
		}

		field, err := matcher.Describe(el)
		if err != nil {
			return nil, fmt.Errorf("describing control: %w", err)
		}

		findings = append(findings, inspectField(field, p, today))
	}

	dropdowns, err := doc.Query(DropdownSelector)
	if err != nil {
		return nil, err
	}

	seen := make(map[matcher.Category]bool)
	for _, el := range dropdowns {
		if ok, _ := el.Visible(); !ok {
			continue
		}

		category, err := matcher.ClassifyDropdown(el, matcher.CustomDropdownRules)
		if err != nil {
			return nil, fmt.Errorf("classifying dropdown: %w", err)
		}

		value, _ := el.Value()
		f := Finding{Pass: "dropdowns", Kind: "dropdown", Category: category.String(), Value: value}

		switch {
		case category == matcher.None:
			f.Skipped = "unknown question"
		case value != "" && value != dropdownPlaceholder:
			f.Skipped = "already answered"
		case seen[category]:
			f.Skipped = "category already handled"
		default:
			seen[category] = true
			f.Answer = dropdownAnswer(p, category)
		}

		findings = append(findings, f)
	}

	dates, err := doc.Query(DateSelector)
	if err != nil {
		return nil, err
	}

	for _, el := range dates {
		if !isDateInput(el) {
			continue
		}
		if ok, _ := el.Visible(); !ok {
			continue
		}

		value, _ := el.Value()
		f := Finding{Pass: "dates", Kind: dom.KindDate.String(), Category: matcher.Date.String(), Label: el.Attr("placeholder"), Value: value}
		if value != "" && value != fill.DatePlaceholder {
			f.Skipped = "already set"
		} else {
			f.Answer = today
		}

		findings = append(findings, f)
	}

	return findings, nil
}

func inspectField(field matcher.Field, p *profile.Profile, today string) Finding {
	label := field.Signal.Text()
	f := Finding{Pass: "fields", Kind: field.Kind.String(), Label: label, Value: field.Value}

	switch {
	case field.Kind == dom.KindFile:
		f.Skipped = "file upload"
		return f
	case field.Filled():
		f.Skipped = "already filled"
		return f
	}

	var category matcher.Category
	switch {
	case field.Kind.Textual():
		category = matcher.TextRules.Classify(field.Signal)
		f.Answer = textAnswer(p, category, today)
	case field.Kind == dom.KindSelect:
		category = matcher.SelectRules.Classify(field.Signal)
		f.Answer, _ = selectAnswer(p, category)
	case field.Kind.Choice():
		category = matcher.ChoiceRules.Classify(field.Signal)
		if want, ok := choiceAnswer(p, category); ok {
			f.Answer = choiceVerdict(field, matcher.PolarityOf(label) == want)
		}
	}
	f.Category = category.String()

	if f.Answer == "" && f.Skipped == "" {
		f.Skipped = "no answer"
	}

	return f
}

func choiceVerdict(field matcher.Field, agree bool) string {
	switch {
	case field.Kind == dom.KindRadio && agree:
		return "select"
	case field.Kind == dom.KindRadio:
		return ""
	case agree:
		return "check"
	default:
		return "uncheck"
	}
}
