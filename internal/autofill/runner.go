// Package autofill runs the fill passes over a page and reports the
// outcome.
package autofill

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/dom"
	"github.com/spigell/job-autofill/internal/fill"
	"github.com/spigell/job-autofill/internal/logger"
	"github.com/spigell/job-autofill/internal/overlay"
	"github.com/spigell/job-autofill/internal/profile"
)

// ErrRunInProgress is returned when a run is requested while another one
// has not finished.
var ErrRunInProgress = errors.New("autofill run already in progress")

// Notifier shows run outcomes on the page.
type Notifier interface {
	Show(overlay.Notification) error
	Clear() error
}

// Reporter receives run outcomes.
type Reporter interface {
	Completed(url string, stats Stats, elapsed time.Duration)
	Failed(url string, err error)
	Rejected(url string)
}

// Runner fills pages with one profile. At most one run is active at a time.
type Runner struct {
	profile   *profile.Profile
	timing    fill.Timing
	logger    *zap.Logger
	notifier  Notifier
	reporters []Reporter
	passes    []Pass
	now       func() time.Time

	running atomic.Bool
}

// Option customises a Runner.
type Option func(*Runner)

// WithNotifier shows the summary and failures through n.
func WithNotifier(n Notifier) Option {
	return func(r *Runner) { r.notifier = n }
}

// WithReporter adds a receiver of run outcomes.
func WithReporter(rep Reporter) Option {
	return func(r *Runner) { r.reporters = append(r.reporters, rep) }
}

// WithPasses replaces DefaultPasses.
func WithPasses(passes ...Pass) Option {
	return func(r *Runner) { r.passes = passes }
}

// WithClock replaces the clock used for date answers.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New returns a Runner answering with p.
func New(p *profile.Profile, timing fill.Timing, log *zap.Logger, opts ...Option) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	r := &Runner{
		profile: p,
		timing:  timing,
		logger:  log,
		passes:  DefaultPasses(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Running reports whether a run is in progress.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Run performs one sweep of doc. Per-control failures only lower the filled
// count; the returned error is reserved for failures of the run itself.
func (r *Runner) Run(ctx context.Context, doc dom.Document) (Stats, error) {
	if err := r.acquire(doc.URL()); err != nil {
		return Stats{}, err
	}
	defer r.running.Store(false)

	return r.run(ctx, doc)
}

// Launch reserves the runner before returning and performs the run in a new
// goroutine, so a nil error means the run is under way. done, when set,
// receives the outcome after the runner is free again.
func (r *Runner) Launch(ctx context.Context, doc dom.Document, done func(Stats, error)) error {
	if err := r.acquire(doc.URL()); err != nil {
		return err
	}

	go func() {
		stats, err := r.run(ctx, doc)
		r.running.Store(false)
		if done != nil {
			done(stats, err)
		}
	}()

	return nil
}

func (r *Runner) acquire(url string) error {
	if r.running.CompareAndSwap(false, true) {
		return nil
	}

	r.logger.Warn("autofill rejected", zap.String(logger.FieldPageURL, url), zap.Error(ErrRunInProgress))
	for _, rep := range r.reporters {
		rep.Rejected(url)
	}
	return ErrRunInProgress
}

func (r *Runner) run(ctx context.Context, doc dom.Document) (stats Stats, err error) {
	url := doc.URL()

	log := logger.WithPage(r.logger, url)
	started := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("autofill panicked: %v", rec)
		}

		if err == nil {
			return
		}

		log.Error("autofill failed", zap.Error(err), zap.Int("found", stats.Found), zap.Int("filled", stats.Filled))
		r.notify(log, overlay.Failure())
		for _, rep := range r.reporters {
			rep.Failed(url, err)
		}
	}()

	log.Info("autofill started")

	if r.notifier != nil {
		if err := r.notifier.Clear(); err != nil {
			log.Debug("clearing notification failed", zap.Error(err))
		}
	}

	deps := Deps{
		Doc:     doc,
		Filler:  fill.New(doc, r.timing, log, fill.WithClock(r.now)),
		Profile: r.profile,
		Logger:  log,
	}

	stats, err = runPasses(ctx, deps, r.passes)
	if err != nil {
		return stats, err
	}

	elapsed := time.Since(started)
	log.Info("autofill completed",
		zap.Int("found", stats.Found),
		zap.Int("filled", stats.Filled),
		zap.Duration("elapsed", elapsed),
	)

	r.notify(log, overlay.Summary(stats.Filled))
	for _, rep := range r.reporters {
		rep.Completed(url, stats, elapsed)
	}

	return stats, nil
}

// Inspect reports what a run would do on doc without changing it.
func (r *Runner) Inspect(doc dom.Document) ([]Finding, error) {
	today := fill.New(doc, r.timing, r.logger, fill.WithClock(r.now)).Today()
	return Inspect(doc, r.profile, today)
}

func (r *Runner) notify(log *zap.Logger, note overlay.Notification) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Show(note); err != nil {
		log.Warn("showing notification failed", zap.Error(err))
	}
}
