package fill

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/dom"
	"github.com/spigell/job-autofill/internal/utils"
)

// Checkbox brings el to the desired checked state with a real click, so
// the page's own handlers run. It reports false when el already was in
// that state.
func (f *Filler) Checkbox(ctx context.Context, el dom.Element, check bool) bool {
	changed, err := f.checkbox(ctx, el, check)
	if err != nil {
		f.logger.Warn("filling checkbox failed", zap.Bool("check", check), zap.Error(err))
		return false
	}
	return changed
}

func (f *Filler) checkbox(ctx context.Context, el dom.Element, check bool) (bool, error) {
	checked, err := el.Checked()
	if err != nil {
		return false, fmt.Errorf("reading checked state: %w", err)
	}

	if checked == check {
		return false, nil
	}

	if err := el.Click(); err != nil {
		return false, fmt.Errorf("clicking: %w", err)
	}

	if err := utils.WaitFor(ctx, f.timing.AfterFill); err != nil {
		return false, err
	}

	if err := el.Dispatch(dom.SyntheticSequence...); err != nil {
		return false, fmt.Errorf("dispatching events: %w", err)
	}

	return true, nil
}

// Radio selects el. A member that is already selected is left alone and
// reported as not filled.
func (f *Filler) Radio(_ context.Context, el dom.Element) bool {
	checked, err := el.Checked()
	if err != nil {
		f.logger.Warn("reading radio state failed", zap.Error(err))
		return false
	}

	if checked {
		return false
	}

	if err := el.Click(); err != nil {
		f.logger.Warn("clicking radio failed", zap.Error(err))
		return false
	}

	if err := el.Dispatch(dom.EventChange); err != nil {
		f.logger.Debug("dispatching radio change failed", zap.Error(err))
	}

	return true
}
