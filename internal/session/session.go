// Package session binds the autofill runner to one browser tab: it gates
// requests on the target site, makes sure the page helper is present and
// starts runs.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/autofill"
	"github.com/spigell/job-autofill/internal/dom"
	"github.com/spigell/job-autofill/internal/dom/rodpage"
	"github.com/spigell/job-autofill/internal/logger"
	"github.com/spigell/job-autofill/internal/overlay"
)

// Page is a tab that can carry the page helper.
type Page interface {
	dom.Document
	Ready() (bool, error)
	Inject() error
}

// Runner performs autofill runs.
type Runner interface {
	Run(ctx context.Context, doc dom.Document) (autofill.Stats, error)
	Launch(ctx context.Context, doc dom.Document, done func(autofill.Stats, error)) error
}

// Session serves start requests for one page.
type Session struct {
	ctx    context.Context
	page   Page
	site   *overlay.Site
	runner Runner
	logger *zap.Logger

	wg sync.WaitGroup
}

// New returns a Session. Runs started by Start live as long as ctx.
func New(ctx context.Context, page Page, site *overlay.Site, runner Runner, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{ctx: ctx, page: page, site: site, runner: runner, logger: log}
}

// Start launches a run in the background and returns once it is under way.
// Pages outside the site are refused before anything touches them, a page
// without the helper yields rodpage.ErrNotInjected, and a busy runner
// yields autofill.ErrRunInProgress. A nil error means the run holds the
// runner.
func (s *Session) Start() error {
	url := s.page.URL()
	if err := s.site.Check(url); err != nil {
		return err
	}

	ready, err := s.page.Ready()
	if err != nil {
		return err
	}
	if !ready {
		return fmt.Errorf("starting autofill: %w", rodpage.ErrNotInjected)
	}

	s.wg.Add(1)
	// Outcomes reach the user through the runner's notifier and reporters.
	err = s.runner.Launch(s.ctx, s.page, func(autofill.Stats, error) { s.wg.Done() })
	if err != nil {
		s.wg.Done()
		return err
	}

	logger.WithPage(s.logger, url).Info("autofill requested")
	return nil
}

// Run fills the page and waits for the result, injecting the helper first
// when it is missing.
func (s *Session) Run(ctx context.Context) (autofill.Stats, error) {
	if err := s.site.Check(s.page.URL()); err != nil {
		return autofill.Stats{}, err
	}

	if err := s.EnsureHelper(); err != nil {
		return autofill.Stats{}, err
	}

	return s.runner.Run(ctx, s.page)
}

// Inject installs the page helper.
func (s *Session) Inject() error {
	logger.WithPage(s.logger, s.page.URL()).Info("injecting page helper")
	return s.page.Inject()
}

// Wait blocks until every run started by Start has returned.
func (s *Session) Wait() {
	s.wg.Wait()
}

// EnsureHelper injects the page helper unless the current document has it.
func (s *Session) EnsureHelper() error {
	ready, err := s.page.Ready()
	if err != nil {
		return err
	}
	if ready {
		return nil
	}
	return s.Inject()
}
