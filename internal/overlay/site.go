package overlay

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultPattern matches Eightfold careers pages.
	DefaultPattern = `\.eightfold\.ai/careers`
	// DefaultHost gates every page-level action.
	DefaultHost = "eightfold.ai"
)

// ErrNotApplicationPage is returned for pages outside the target site.
var ErrNotApplicationPage = errors.New("not an application page")

// Site describes the pages the trigger is offered on.
type Site struct {
	raw     string
	host    string
	pattern *regexp.Regexp
}

// NewSite compiles pattern case-insensitively. Empty arguments fall back to
// the Eightfold defaults.
func NewSite(pattern, host string) (*Site, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if host == "" {
		host = DefaultHost
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling site pattern: %w", err)
	}

	return &Site{raw: pattern, host: strings.ToLower(host), pattern: re}, nil
}

// Pattern returns the uncompiled pattern, for use inside the page.
func (s *Site) Pattern() string { return s.raw }

// Host returns the host gate.
func (s *Site) Host() string { return s.host }

// OnHost reports whether url belongs to the target site at all.
func (s *Site) OnHost(url string) bool {
	return strings.Contains(strings.ToLower(url), s.host)
}

// Matches reports whether url is an application page.
func (s *Site) Matches(url string) bool {
	return s.OnHost(url) && s.pattern.MatchString(url)
}

// Check returns ErrNotApplicationPage unless url matches.
func (s *Site) Check(url string) error {
	if !s.Matches(url) {
		return fmt.Errorf("%q: %w", url, ErrNotApplicationPage)
	}
	return nil
}
