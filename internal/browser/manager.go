// Package browser starts Chrome (or attaches to a running one) and opens
// the tabs the autofill engine works in.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"go.uber.org/zap"
)

// ErrNotStarted is returned when a page is requested before Start.
var ErrNotStarted = errors.New("browser is not started")

const defaultNavigationTimeout = 30 * time.Second

// Config configures the browser.
type Config struct {
	// RemoteURL is the DevTools WebSocket URL of a running Chrome. Empty
	// launches a local one.
	RemoteURL string `mapstructure:"remote-url"`
	// Bin overrides the Chrome binary of a local launch.
	Bin string `mapstructure:"bin"`
	// UserDataDir keeps cookies, so an applicant stays signed in.
	UserDataDir string `mapstructure:"user-data-dir"`
	Headless    bool   `mapstructure:"headless"`
	// Stealth hides the usual automation fingerprints from the page.
	Stealth           bool          `mapstructure:"stealth"`
	NavigationTimeout time.Duration `mapstructure:"navigation-timeout"`
}

func (c *Config) defaults() {
	if c.NavigationTimeout <= 0 {
		c.NavigationTimeout = defaultNavigationTimeout
	}
}

// Manager owns one browser connection.
type Manager struct {
	cfg    Config
	logger *zap.Logger

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// NewManager returns a Manager. Call Start before opening pages.
func NewManager(cfg Config, logger *zap.Logger) *Manager {
	cfg.defaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{cfg: cfg, logger: logger}
}

// Start launches or attaches to Chrome.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		return nil
	}

	controlURL := m.cfg.RemoteURL
	if controlURL == "" {
		l := launcher.New().
			Headless(m.cfg.Headless).
			Set("disable-blink-features", "AutomationControlled")
		if m.cfg.Bin != "" {
			l = l.Bin(m.cfg.Bin)
		}
		if m.cfg.UserDataDir != "" {
			l = l.UserDataDir(m.cfg.UserDataDir)
		}

		u, err := l.Context(ctx).Launch()
		if err != nil {
			return fmt.Errorf("launching chrome: %w", err)
		}

		controlURL = u
		m.lnch = l
		m.logger.Info("launched local chrome", zap.Bool("headless", m.cfg.Headless))
	} else {
		m.logger.Info("connecting to remote chrome", zap.String("url", controlURL))
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		m.cleanup()
		return fmt.Errorf("connecting to chrome: %w", err)
	}

	m.browser = b
	return nil
}

// OpenPage opens a tab on url and waits for it to load. A slow load is
// logged, not fatal: application pages keep streaming scripts.
func (m *Manager) OpenPage(ctx context.Context, url string) (*rod.Page, error) {
	m.mu.Lock()
	b := m.browser
	m.mu.Unlock()

	if b == nil {
		return nil, ErrNotStarted
	}

	var (
		page *rod.Page
		err  error
	)
	if m.cfg.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("creating tab: %w", err)
	}

	if url == "" {
		return page, nil
	}

	navCtx, cancel := context.WithTimeout(ctx, m.cfg.NavigationTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}

	if err := page.Context(navCtx).WaitLoad(); err != nil {
		m.logger.Warn("page load wait timed out", zap.String("page_url", url), zap.Error(err))
	}

	return page, nil
}

// Close disconnects and stops a launched Chrome.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.browser != nil {
		if m.lnch != nil {
			err = m.browser.Close()
		}
		m.browser = nil
	}
	m.cleanup()
	return err
}

func (m *Manager) cleanup() {
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
}
