package overlay

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/logger"
	"github.com/spigell/job-autofill/internal/utils"
)

// WatchInterval is how often the page address is polled.
const WatchInterval = time.Second

// Toggler shows or hides the trigger.
type Toggler interface {
	Show() error
	Hide() error
}

// Watcher follows single-page navigations. It never touches form state.
type Watcher struct {
	url      func() string
	site     *Site
	toggle   Toggler
	interval time.Duration
	logger   *zap.Logger
}

// NewWatcher polls url every interval; zero means WatchInterval.
func NewWatcher(url func() string, site *Site, toggle Toggler, interval time.Duration, log *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = WatchInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{url: url, site: site, toggle: toggle, interval: interval, logger: log}
}

// Run polls until ctx is done. The trigger state is set on the first poll
// and again whenever the address changes.
func (w *Watcher) Run(ctx context.Context) error {
	last := ""
	synced := false

	for {
		current := w.url()
		if !synced || current != last {
			if err := w.sync(current); err != nil {
				// Retried on the next tick; the new document may not carry
				// the helper yet.
				w.logger.Debug("updating trigger failed", zap.Error(err))
				synced = false
			} else {
				synced = true
			}
			last = current
		}

		if err := utils.WaitFor(ctx, w.interval); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func (w *Watcher) sync(url string) error {
	log := logger.WithPage(w.logger, url)

	if w.site.Matches(url) {
		log.Debug("showing trigger")
		return w.toggle.Show()
	}

	log.Debug("hiding trigger")
	return w.toggle.Hide()
}
