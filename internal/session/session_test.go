package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/autofill"
	"github.com/spigell/job-autofill/internal/dom"
	"github.com/spigell/job-autofill/internal/dom/htmldoc"
	"github.com/spigell/job-autofill/internal/dom/rodpage"
	"github.com/spigell/job-autofill/internal/fill"
	"github.com/spigell/job-autofill/internal/overlay"
	"github.com/spigell/job-autofill/internal/profile"
)

const form = `<html><body><label>First Name <input id="fn"></label></body></html>`

type fakePage struct {
	*htmldoc.Document
	ready    bool
	injected int
}

func (p *fakePage) Ready() (bool, error) { return p.ready, nil }

func (p *fakePage) Inject() error {
	p.injected++
	p.ready = true
	return nil
}

func newPage(t *testing.T, url string, ready bool) *fakePage {
	t.Helper()

	doc, err := htmldoc.ParseString(form, url)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return &fakePage{Document: doc, ready: ready}
}

func newSession(t *testing.T, page Page, runner Runner) *Session {
	t.Helper()

	site, err := overlay.NewSite("", "")
	if err != nil {
		t.Fatalf("site: %v", err)
	}
	if runner == nil {
		runner = autofill.New(profile.Default(), fill.Timing{}, zap.NewNop())
	}
	return New(context.Background(), page, site, runner, zap.NewNop())
}

func TestStartOutsideSite(t *testing.T) {
	t.Parallel()

	page := newPage(t, "https://example.com/careers/apply", false)
	s := newSession(t, page, nil)

	if err := s.Start(); !errors.Is(err, overlay.ErrNotApplicationPage) {
		t.Fatalf("expected ErrNotApplicationPage, got %v", err)
	}
	if _, err := s.Run(context.Background()); !errors.Is(err, overlay.ErrNotApplicationPage) {
		t.Fatalf("expected ErrNotApplicationPage, got %v", err)
	}

	if page.injected != 0 {
		t.Fatalf("expected no injection outside the site")
	}
	if got := page.First("#fn").Attr("value"); got != "" {
		t.Fatalf("expected field to stay untouched, got %q", got)
	}
	if events := page.Events("#fn"); len(events) != 0 {
		t.Fatalf("expected no interaction, got %v", events)
	}
}

func TestStartWithoutHelper(t *testing.T) {
	t.Parallel()

	page := newPage(t, "https://acme.eightfold.ai/careers/apply", false)
	s := newSession(t, page, nil)

	if err := s.Start(); !errors.Is(err, rodpage.ErrNotInjected) {
		t.Fatalf("expected ErrNotInjected, got %v", err)
	}
	if got := page.First("#fn").Attr("value"); got != "" {
		t.Fatalf("expected field to stay untouched, got %q", got)
	}
}

func TestStartRunsInBackground(t *testing.T) {
	t.Parallel()

	page := newPage(t, "https://acme.eightfold.ai/careers/apply", true)
	s := newSession(t, page, nil)

	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Wait()

	if got := page.First("#fn").Attr("value"); got != "John" {
		t.Fatalf("expected field to be filled, got %q", got)
	}
}

type busyRunner struct{}

func (busyRunner) Run(context.Context, dom.Document) (autofill.Stats, error) {
	return autofill.Stats{}, errors.New("must not run")
}

func (busyRunner) Launch(context.Context, dom.Document, func(autofill.Stats, error)) error {
	return autofill.ErrRunInProgress
}

func TestStartWhileRunning(t *testing.T) {
	t.Parallel()

	s := newSession(t, newPage(t, "https://acme.eightfold.ai/careers/apply", true), busyRunner{})

	if err := s.Start(); !errors.Is(err, autofill.ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
}

func TestConcurrentStartsLaunchOneRun(t *testing.T) {
	t.Parallel()

	gate := &gatePass{release: make(chan struct{})}
	runner := autofill.New(profile.Default(), fill.Timing{}, zap.NewNop(), autofill.WithPasses(gate))
	s := newSession(t, newPage(t, "https://acme.eightfold.ai/careers/apply", true), runner)

	const starts = 8
	errs := make(chan error, starts)
	var wg sync.WaitGroup
	for i := 0; i < starts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Start()
		}()
	}
	wg.Wait()
	close(errs)

	started, rejected := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			started++
		case errors.Is(err, autofill.ErrRunInProgress):
			rejected++
		default:
			t.Fatalf("unexpected error %v", err)
		}
	}

	if started != 1 || rejected != starts-1 {
		t.Fatalf("expected exactly one accepted start, got %d started and %d rejected", started, rejected)
	}

	close(gate.release)
	s.Wait()
}

// gatePass holds the run until release is closed.
type gatePass struct {
	release chan struct{}
}

func (p *gatePass) Name() string { return "gate" }

func (p *gatePass) Apply(ctx context.Context, _ autofill.Deps) (autofill.Step, error) {
	select {
	case <-p.release:
	case <-ctx.Done():
	}
	return autofill.Step{}, nil
}

func TestRunInjectsMissingHelper(t *testing.T) {
	t.Parallel()

	page := newPage(t, "https://acme.eightfold.ai/careers/apply", false)
	s := newSession(t, page, nil)

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if page.injected != 1 {
		t.Fatalf("expected one injection, got %d", page.injected)
	}
	if stats.Filled != 1 {
		t.Fatalf("expected the field to be filled, got %+v", stats)
	}
}
