package fill

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/dom"
	"github.com/spigell/job-autofill/internal/utils"
)

// OptionSelectors locate the rendered options of an open custom dropdown,
// most specific first.
var OptionSelectors = []string{
	`[role="listbox"] [role="option"]`,
	`[role="listbox"] > div`,
	`[class*="menu"] [class*="option"]`,
	`[class*="dropdown"] [class*="option"]`,
	`[class*="select"] [class*="option"]`,
}

// Dropdown opens a custom dropdown, clicks the first visible option whose
// text contains value or is contained in it, and closes the panel again.
func (f *Filler) Dropdown(ctx context.Context, el dom.Element, value string) bool {
	if value == "" {
		return false
	}

	filled, err := f.dropdown(ctx, el, value)
	if err != nil {
		f.logger.Warn("filling dropdown failed", zap.String("value", value), zap.Error(err))
		if err := f.doc.ClickBody(); err != nil {
			f.logger.Debug("closing dropdown failed", zap.Error(err))
		}
		return false
	}

	return filled
}

func (f *Filler) dropdown(ctx context.Context, el dom.Element, value string) (bool, error) {
	if err := el.Click(); err != nil {
		return false, fmt.Errorf("opening: %w", err)
	}

	if err := el.Focus(); err != nil {
		return false, fmt.Errorf("focusing: %w", err)
	}

	var option dom.Element
	found, err := utils.Poll(ctx, f.timing.PollInterval, f.timing.DropdownOpen, func() (bool, error) {
		var err error
		option, err = f.findOption(value)
		return option != nil, err
	})
	if err != nil {
		return false, fmt.Errorf("waiting for options: %w", err)
	}

	if found {
		if err := option.Click(); err != nil {
			return false, fmt.Errorf("clicking option: %w", err)
		}
		if err := utils.WaitFor(ctx, f.timing.AfterOption); err != nil {
			return false, err
		}
	} else {
		f.logger.Debug("no dropdown option matches", zap.String("value", value))
	}

	if err := f.doc.ClickBody(); err != nil {
		return false, fmt.Errorf("closing: %w", err)
	}

	if err := utils.WaitFor(ctx, f.timing.AfterClose); err != nil {
		return false, err
	}

	return found, nil
}

func (f *Filler) findOption(value string) (dom.Element, error) {
	want := normalize(value)

	for _, selector := range OptionSelectors {
		candidates, err := f.doc.Query(selector)
		if err != nil {
			return nil, err
		}

		for _, candidate := range candidates {
			visible, err := candidate.Visible()
			if err != nil {
				return nil, err
			}
			if !visible {
				continue
			}

			text, err := candidate.Text()
			if err != nil {
				return nil, err
			}

			text = normalize(text)
			if text == "" {
				continue
			}
			if strings.Contains(text, want) || strings.Contains(want, text) {
				return candidate, nil
			}
		}
	}

	return nil, nil
}
