// Package rodpage implements dom.Document over a live Chrome tab driven by
// go-rod. DOM work goes through a helper script injected into the page.
package rodpage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/ysmood/gson"

	"github.com/spigell/job-autofill/internal/dom"
)

//go:embed helper.js
var helperJS string

const helperVersion = 1

// ErrNotInjected is returned when the page helper is missing, usually after
// a navigation replaced the document.
var ErrNotInjected = errors.New("page helper is not injected")

// Page is a rod page with the autofill helper.
type Page struct {
	page *rod.Page
}

var _ dom.Document = (*Page)(nil)

// New wraps page. Calls made through the result are bound to page's context.
func New(page *rod.Page) *Page {
	return &Page{page: page}
}

// Rod exposes the underlying page.
func (p *Page) Rod() *rod.Page { return p.page }

func (p *Page) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Ready reports whether the current document carries the helper.
func (p *Page) Ready() (bool, error) {
	res, err := p.page.Eval(fmt.Sprintf(`() => !!(window.__autofill && window.__autofill.version === %d)`, helperVersion))
	if err != nil {
		return false, fmt.Errorf("checking page helper: %w", err)
	}
	return res.Value.Bool(), nil
}

// Inject installs the helper into the current document.
func (p *Page) Inject() error {
	if _, err := p.page.Eval(helperJS); err != nil {
		return fmt.Errorf("injecting page helper: %w", err)
	}
	return nil
}

// Persist installs the helper into every future document of the tab. The
// returned func removes it again.
func (p *Page) Persist() (func() error, error) {
	remove, err := p.page.EvalOnNewDocument("(" + helperJS + ")()")
	if err != nil {
		return nil, fmt.Errorf("registering page helper: %w", err)
	}
	return remove, nil
}

// Call invokes a page-level helper function.
func (p *Page) Call(method string, args ...any) (gson.JSON, error) {
	params := append([]any{method}, args...)
	res, err := p.page.Eval(`(method, ...args) => window.__autofill[method](...args)`, params...)
	if err != nil {
		return gson.JSON{}, p.explain(method, err)
	}
	return res.Value, nil
}

// Expose registers a Go function callable from the page as window[name].
func (p *Page) Expose(name string, fn func(gson.JSON) (any, error)) (func() error, error) {
	stop, err := p.page.Expose(name, func(arg gson.JSON) (interface{}, error) {
		return fn(arg)
	})
	if err != nil {
		return nil, fmt.Errorf("exposing %s: %w", name, err)
	}
	return stop, nil
}

func (p *Page) Query(selector string) ([]dom.Element, error) {
	found, err := p.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}

	elements := make([]dom.Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, &Element{page: p, el: el})
	}
	return elements, nil
}

func (p *Page) ClickBody() error {
	_, err := p.Call("clickBody")
	return err
}

// explain turns helper lookup failures into ErrNotInjected.
func (p *Page) explain(method string, err error) error {
	if ready, rerr := p.Ready(); rerr == nil && !ready {
		return fmt.Errorf("%s: %w", method, ErrNotInjected)
	}
	return fmt.Errorf("%s: %w", method, err)
}

func decode(v gson.JSON, target any) error {
	raw, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
