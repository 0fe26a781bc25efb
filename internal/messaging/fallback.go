package messaging

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-autofill/internal/dom/rodpage"
)

// Starter accepts start requests for one page.
type Starter interface {
	Start() error
	Inject() error
}

// StartWithFallback sends a start request. When the page has lost its
// helper it injects it and retries exactly once.
func StartWithFallback(s Starter, log *zap.Logger) error {
	err := s.Start()
	if err == nil || !errors.Is(err, rodpage.ErrNotInjected) {
		return err
	}

	log.Warn("page helper missing, injecting", zap.Error(err))

	if err := s.Inject(); err != nil {
		log.Error("injecting page helper failed", zap.Error(err))
		return fmt.Errorf("injecting page helper: %w", err)
	}

	if err := s.Start(); err != nil {
		log.Error("starting autofill after injection failed", zap.Error(err))
		return fmt.Errorf("retrying start: %w", err)
	}

	return nil
}
