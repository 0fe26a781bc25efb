package browser

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	m := NewManager(Config{}, nil)
	if m.cfg.NavigationTimeout != defaultNavigationTimeout {
		t.Fatalf("expected default navigation timeout, got %v", m.cfg.NavigationTimeout)
	}

	m = NewManager(Config{NavigationTimeout: time.Second}, nil)
	if m.cfg.NavigationTimeout != time.Second {
		t.Fatalf("expected configured timeout to be kept, got %v", m.cfg.NavigationTimeout)
	}
}

func TestOpenPageBeforeStart(t *testing.T) {
	t.Parallel()

	m := NewManager(Config{}, nil)
	if _, err := m.OpenPage(context.Background(), "https://acme.eightfold.ai/careers"); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("closing an idle manager: %v", err)
	}
}
