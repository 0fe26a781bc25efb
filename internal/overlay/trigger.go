package overlay

import (
	"context"
	"fmt"

	"github.com/ysmood/gson"
	"go.uber.org/zap"
)

// Binding is the window function the floating button calls after the user
// confirms.
const Binding = "__autofillTrigger"

// Page is the part of a live page the trigger needs.
type Page interface {
	Helper
	Expose(name string, fn func(gson.JSON) (any, error)) (func() error, error)
}

// Trigger manages the floating button.
type Trigger struct {
	page   Page
	site   *Site
	logger *zap.Logger
}

// NewTrigger returns a Trigger offered on site's pages.
func NewTrigger(page Page, site *Site, logger *zap.Logger) *Trigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trigger{page: page, site: site, logger: logger}
}

// Bind exposes the button's callback. Every confirmed click runs fire in its
// own goroutine with the button in its busy state. The returned func
// removes the binding.
func (t *Trigger) Bind(ctx context.Context, fire func(context.Context) error) (func() error, error) {
	return t.page.Expose(Binding, func(gson.JSON) (any, error) {
		go t.handle(ctx, fire)
		return nil, nil
	})
}

func (t *Trigger) handle(ctx context.Context, fire func(context.Context) error) {
	t.logger.Info("trigger clicked")

	if err := t.Busy(true); err != nil {
		t.logger.Debug("marking trigger busy failed", zap.Error(err))
	}

	defer func() {
		if err := t.Busy(false); err != nil {
			t.logger.Debug("restoring trigger failed", zap.Error(err))
		}
	}()

	if err := fire(ctx); err != nil {
		t.logger.Warn("triggered run failed", zap.Error(err))
	}
}

// Show installs the button. The page only renders it while its address
// matches the site pattern, and re-adds it after DOM rewrites.
func (t *Trigger) Show() error {
	if _, err := t.page.Call("installTrigger", Binding, t.site.Pattern()); err != nil {
		return fmt.Errorf("installing trigger: %w", err)
	}
	return nil
}

// Hide removes the button.
func (t *Trigger) Hide() error {
	if _, err := t.page.Call("removeTrigger"); err != nil {
		return fmt.Errorf("removing trigger: %w", err)
	}
	return nil
}

// Busy switches the button between its busy and ready states.
func (t *Trigger) Busy(busy bool) error {
	if _, err := t.page.Call("setTriggerBusy", busy); err != nil {
		return fmt.Errorf("setting trigger state: %w", err)
	}
	return nil
}

// Shown reports whether the button is on the page.
func (t *Trigger) Shown() (bool, error) {
	res, err := t.page.Call("hasTrigger")
	if err != nil {
		return false, fmt.Errorf("checking trigger: %w", err)
	}
	return res.Bool(), nil
}
