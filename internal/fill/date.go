package fill

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/dom"
	"github.com/spigell/job-autofill/internal/utils"
)

// DatePlaceholder is the text date pickers show while empty.
const DatePlaceholder = "Select date"

// TodaySelector matches the elements that may be a picker's "Today" control.
const TodaySelector = "button, div, span"

// Date sets a date picker to the current day. It prefers the picker's own
// "Today" control and falls back to typing the date.
func (f *Filler) Date(ctx context.Context, el dom.Element) bool {
	filled, err := f.date(ctx, el)
	if err != nil {
		f.logger.Warn("filling date failed", zap.Error(err))
		if err := f.doc.ClickBody(); err != nil {
			f.logger.Debug("closing date picker failed", zap.Error(err))
		}
		return false
	}
	return filled
}

func (f *Filler) date(ctx context.Context, el dom.Element) (bool, error) {
	if err := el.Click(); err != nil {
		return false, fmt.Errorf("opening: %w", err)
	}

	if err := el.Focus(); err != nil {
		return false, fmt.Errorf("focusing: %w", err)
	}

	var today dom.Element
	found, err := utils.Poll(ctx, f.timing.PollInterval, f.timing.DateOpen, func() (bool, error) {
		var err error
		today, err = f.findToday()
		return today != nil, err
	})
	if err != nil {
		return false, fmt.Errorf("waiting for picker: %w", err)
	}

	filled := false
	if found {
		if err := today.Click(); err != nil {
			return false, fmt.Errorf("clicking today: %w", err)
		}
		if err := utils.WaitFor(ctx, f.timing.AfterToday); err != nil {
			return false, err
		}
		filled = true
	} else {
		value, err := el.Value()
		if err != nil {
			return false, fmt.Errorf("reading value: %w", err)
		}

		if value == "" || value == DatePlaceholder {
			if err := assign(el, f.dateValue(el)); err != nil {
				return false, err
			}
			filled = true
		}
	}

	if err := f.doc.ClickBody(); err != nil {
		return false, fmt.Errorf("closing: %w", err)
	}

	if err := utils.WaitFor(ctx, f.timing.AfterDateClose); err != nil {
		return false, err
	}

	return filled, nil
}

// dateValue formats today for el: native date inputs only accept ISO dates.
func (f *Filler) dateValue(el dom.Element) string {
	if dom.KindOf(el) == dom.KindDate {
		return f.now().Format(isoDateLayout)
	}
	return f.Today()
}

func (f *Filler) findToday() (dom.Element, error) {
	candidates, err := f.doc.Query(TodaySelector)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		text, err := candidate.Text()
		if err != nil {
			return nil, err
		}
		if normalize(text) != "today" {
			continue
		}

		visible, err := candidate.Visible()
		if err != nil {
			return nil, err
		}
		if visible {
			return candidate, nil
		}
	}

	return nil, nil
}
