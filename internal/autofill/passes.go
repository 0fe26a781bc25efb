package autofill

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/dom"
	"github.com/spigell/job-autofill/internal/fill"
	"github.com/spigell/job-autofill/internal/logger"
	"github.com/spigell/job-autofill/internal/matcher"
	"github.com/spigell/job-autofill/internal/profile"
	"github.com/spigell/job-autofill/internal/utils"
)

const (
	// DropdownSelector matches the inputs of custom dropdown widgets.
	DropdownSelector = `input[placeholder="` + dropdownPlaceholder + `"]`
	// DateSelector is narrowed further by isDateInput.
	DateSelector = "input"

	dropdownPlaceholder = "Select"
	labelLogLimit       = 60
)

// Pass is one sweep over the page.
type Pass interface {
	Name() string
	Apply(ctx context.Context, deps Deps) (Step, error)
}

// Deps aggregates dependencies shared across all passes of a run.
type Deps struct {
	Doc     dom.Document
	Filler  *fill.Filler
	Profile *profile.Profile
	Logger  *zap.Logger
}

// Step describes the result of one pass.
type Step struct {
	Found  int
	Filled int
}

// DefaultPasses returns the passes of a run in order: the per-control
// sweep, then the custom dropdowns, then the date pickers. The last two
// need multi-step interactions, so they run globally after the sweep.
func DefaultPasses() []Pass {
	return []Pass{&fieldsPass{}, &dropdownPass{}, &datePass{}}
}

func runPasses(ctx context.Context, deps Deps, passes []Pass) (Stats, error) {
	var stats Stats

	for _, pass := range passes {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		step, err := pass.Apply(ctx, deps)
		stats.Found += step.Found
		stats.Filled += step.Filled
		if err != nil {
			return stats, fmt.Errorf("%s: %w", pass.Name(), err)
		}

		deps.Logger.Info("fill pass",
			zap.String("name", pass.Name()),
			zap.Int("found", step.Found),
			zap.Int("filled", step.Filled),
		)
	}

	return stats, nil
}

// visible is the gate in front of every control; a control whose state
// cannot be read is treated as hidden.
func visible(log *zap.Logger, el dom.Element) bool {
	ok, err := el.Visible()
	if err != nil {
		log.Debug("reading visibility failed", zap.Error(err))
		return false
	}
	return ok
}

func controlLogger(log *zap.Logger, kind dom.Kind, category matcher.Category, label string) *zap.Logger {
	return logger.WithFields(log, logger.ControlFields(kind.String(), category.String(), utils.TruncateForLog(label, labelLogLimit))...)
}

type fieldsPass struct{}

func (p *fieldsPass) Name() string { return "fields" }

func (p *fieldsPass) Apply(ctx context.Context, deps Deps) (Step, error) {
	var step Step

	controls, err := deps.Doc.Query(dom.FillableSelector)
	if err != nil {
		return step, err
	}

	for _, el := range controls {
		if err := ctx.Err(); err != nil {
			return step, err
		}

		if !visible(deps.Logger, el) {
			continue
		}

		field, err := matcher.Describe(el)
		if err != nil {
			deps.Logger.Debug("describing control failed", zap.Error(err))
			continue
		}

		if field.Kind == dom.KindFile || field.Filled() || ownedByLaterPass(el) {
			continue
		}

		step.Found++

		filled, err := p.fill(ctx, deps, field)
		if err != nil {
			return step, err
		}
		if filled {
			step.Filled++
		}
	}

	return step, nil
}

// fill routes one control to its strategy. The error is only ever a
// cancellation of ctx.
func (p *fieldsPass) fill(ctx context.Context, deps Deps, field matcher.Field) (bool, error) {
	timing := deps.Filler.Timing()
	label := field.Signal.Text()

	switch {
	case field.Kind.Textual():
		category := matcher.TextRules.Classify(field.Signal)
		log := controlLogger(deps.Logger, field.Kind, category, label)

		filled := false
		if value := textAnswer(deps.Profile, category, deps.Filler.Today()); value != "" {
			filled = deps.Filler.Text(ctx, field.Element, value)
		}
		logControl(log, filled)

		return filled, utils.WaitFor(ctx, timing.BetweenFields)

	case field.Kind == dom.KindSelect:
		category := matcher.SelectRules.Classify(field.Signal)
		log := controlLogger(deps.Logger, field.Kind, category, label)

		filled := false
		if value, aliases := selectAnswer(deps.Profile, category); value != "" {
			filled = deps.Filler.Select(ctx, field.Element, value, aliases)
		}
		logControl(log, filled)

		return filled, utils.WaitFor(ctx, timing.BetweenFields)

	case field.Kind == dom.KindRadio:
		category := matcher.ChoiceRules.Classify(field.Signal)
		log := controlLogger(deps.Logger, field.Kind, category, label)

		filled := false
		if want, ok := choiceAnswer(deps.Profile, category); ok && matcher.PolarityOf(label) == want {
			filled = deps.Filler.Radio(ctx, field.Element)
		}
		logControl(log, filled)

		return filled, utils.WaitFor(ctx, timing.AfterRadio)

	case field.Kind == dom.KindCheckbox:
		category := matcher.ChoiceRules.Classify(field.Signal)
		log := controlLogger(deps.Logger, field.Kind, category, label)

		filled := false
		if want, ok := choiceAnswer(deps.Profile, category); ok {
			filled = deps.Filler.Checkbox(ctx, field.Element, matcher.PolarityOf(label) == want)
		}
		logControl(log, filled)

		return filled, utils.WaitFor(ctx, timing.AfterRadio)
	}

	return false, nil
}

func logControl(log *zap.Logger, filled bool) {
	if filled {
		log.Debug("control filled")
		return
	}
	log.Debug("control left as is")
}

type dropdownPass struct{}

func (p *dropdownPass) Name() string { return "dropdowns" }

func (p *dropdownPass) Apply(ctx context.Context, deps Deps) (Step, error) {
	var step Step

	inputs, err := deps.Doc.Query(DropdownSelector)
	if err != nil {
		return step, err
	}

	processed := make(map[matcher.Category]bool)

	for _, el := range inputs {
		if err := ctx.Err(); err != nil {
			return step, err
		}

		if !visible(deps.Logger, el) {
			continue
		}

		value, err := el.Value()
		if err != nil {
			deps.Logger.Debug("reading dropdown value failed", zap.Error(err))
			continue
		}
		if value != "" && value != dropdownPlaceholder {
			continue
		}

		category, err := matcher.ClassifyDropdown(el, matcher.CustomDropdownRules)
		if err != nil {
			deps.Logger.Debug("classifying dropdown failed", zap.Error(err))
			continue
		}

		if category == matcher.None || processed[category] {
			continue
		}
		processed[category] = true

		answer := dropdownAnswer(deps.Profile, category)
		if answer == "" {
			continue
		}

		step.Found++

		log := controlLogger(deps.Logger, dom.KindText, category, "")
		filled := deps.Filler.Dropdown(ctx, el, answer)
		logControl(log.With(zap.String("answer", answer)), filled)

		if filled {
			step.Filled++
		}
	}

	return step, nil
}

type datePass struct{}

func (p *datePass) Name() string { return "dates" }

func (p *datePass) Apply(ctx context.Context, deps Deps) (Step, error) {
	var step Step

	inputs, err := deps.Doc.Query(DateSelector)
	if err != nil {
		return step, err
	}

	for _, el := range inputs {
		if err := ctx.Err(); err != nil {
			return step, err
		}

		if !isDateInput(el) || !visible(deps.Logger, el) {
			continue
		}

		value, err := el.Value()
		if err != nil {
			deps.Logger.Debug("reading date value failed", zap.Error(err))
			continue
		}
		if value != "" && value != fill.DatePlaceholder {
			continue
		}

		step.Found++

		filled := deps.Filler.Date(ctx, el)
		logControl(controlLogger(deps.Logger, dom.KindDate, matcher.Date, el.Attr("placeholder")), filled)

		if filled {
			step.Filled++
		}
	}

	return step, nil
}

// ownedByLaterPass reports whether the dropdown or date pass counts and
// fills el, so the per-control sweep leaves it alone.
func ownedByLaterPass(el dom.Element) bool {
	return el.Attr("placeholder") == dropdownPlaceholder || isDateInput(el)
}

func isDateInput(el dom.Element) bool {
	if dom.KindOf(el) == dom.KindDate {
		return true
	}
	return strings.Contains(strings.ToLower(el.Attr("placeholder")), "date")
}
