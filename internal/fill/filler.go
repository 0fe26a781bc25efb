// Package fill holds the strategies that write one answer into one control.
//
// Strategies never fail the caller: errors are logged and reported as
// "not filled", so a broken control never stops the rest of a run.
package fill

import (
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/dom"
)

// Timing holds the pauses taken around page mutations. Reactive front-ends
// re-render asynchronously, so every step leaves them a moment to settle.
// Open windows (DropdownOpen, DateOpen) are polled rather than slept through.
type Timing struct {
	FocusSettle    time.Duration `mapstructure:"focus-settle"`
	AfterFill      time.Duration `mapstructure:"after-fill"`
	BetweenFields  time.Duration `mapstructure:"between-fields"`
	AfterRadio     time.Duration `mapstructure:"after-radio"`
	DropdownOpen   time.Duration `mapstructure:"dropdown-open"`
	AfterOption    time.Duration `mapstructure:"after-option"`
	AfterClose     time.Duration `mapstructure:"after-close"`
	DateOpen       time.Duration `mapstructure:"date-open"`
	AfterToday     time.Duration `mapstructure:"after-today"`
	AfterDateClose time.Duration `mapstructure:"after-date-close"`
	PollInterval   time.Duration `mapstructure:"poll-interval"`
}

// DefaultTiming returns the pauses that work on Eightfold application pages.
func DefaultTiming() Timing {
	return Timing{
		FocusSettle:    100 * time.Millisecond,
		AfterFill:      50 * time.Millisecond,
		BetweenFields:  100 * time.Millisecond,
		AfterRadio:     50 * time.Millisecond,
		DropdownOpen:   400 * time.Millisecond,
		AfterOption:    300 * time.Millisecond,
		AfterClose:     150 * time.Millisecond,
		DateOpen:       300 * time.Millisecond,
		AfterToday:     200 * time.Millisecond,
		AfterDateClose: 100 * time.Millisecond,
		PollInterval:   50 * time.Millisecond,
	}
}

// Filler applies fill strategies to the controls of one document.
type Filler struct {
	doc    dom.Document
	timing Timing
	logger *zap.Logger
	now    func() time.Time
}

// Option customises a Filler.
type Option func(*Filler)

// WithClock replaces the clock used for date answers.
func WithClock(now func() time.Time) Option {
	return func(f *Filler) {
		f.now = now
	}
}

// New returns a Filler working on doc.
func New(doc dom.Document, timing Timing, logger *zap.Logger, opts ...Option) *Filler {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Filler{
		doc:    doc,
		timing: timing,
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Timing returns the pauses the filler was built with.
func (f *Filler) Timing() Timing {
	return f.timing
}

// Today renders the current date the way US application forms expect it.
func (f *Filler) Today() string {
	return f.now().Format(usDateLayout)
}

const (
	usDateLayout  = "01/02/2006"
	isoDateLayout = "2006-01-02"
)
