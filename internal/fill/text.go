package fill

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/dom"
	"github.com/spigell/job-autofill/internal/utils"
)

// Text writes value into a text input or textarea. An empty value is
// never written.
func (f *Filler) Text(ctx context.Context, el dom.Element, value string) bool {
	if value == "" {
		return false
	}

	if err := f.text(ctx, el, value); err != nil {
		f.logger.Warn("filling text field failed", zap.Error(err))
		return false
	}

	return true
}

func (f *Filler) text(ctx context.Context, el dom.Element, value string) error {
	if err := el.Focus(); err != nil {
		return fmt.Errorf("focusing: %w", err)
	}

	if err := utils.WaitFor(ctx, f.timing.FocusSettle); err != nil {
		return err
	}

	if err := el.SetValue(""); err != nil {
		return fmt.Errorf("clearing: %w", err)
	}

	if err := el.SetValue(value); err != nil {
		return fmt.Errorf("assigning: %w", err)
	}

	if err := el.Dispatch(dom.SyntheticSequence...); err != nil {
		return fmt.Errorf("dispatching events: %w", err)
	}

	if err := utils.WaitFor(ctx, f.timing.AfterFill); err != nil {
		return err
	}

	if err := el.Blur(); err != nil {
		return fmt.Errorf("blurring: %w", err)
	}

	return nil
}
