// Package htmldoc implements dom.Document over a parsed HTML snapshot. It is
// used to inspect saved application pages offline and as the page fixture of
// the engine's tests. Mutations (values, checked state) are applied to the
// parsed tree and every interaction is recorded per element.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/spigell/job-autofill/internal/dom"
)

// Document is a mutable, in-memory page.
type Document struct {
	doc    *goquery.Document
	url    string
	events map[*html.Node][]string
	hooks  []func(*Element)
}

// Parse reads an HTML page. url is reported by URL.
func Parse(r io.Reader, url string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	return &Document{
		doc:    doc,
		url:    url,
		events: make(map[*html.Node][]string),
	}, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s, url string) (*Document, error) {
	return Parse(strings.NewReader(s), url)
}

func (d *Document) URL() string { return d.url }

// SetURL simulates a navigation that keeps the document.
func (d *Document) SetURL(url string) { d.url = url }

func (d *Document) Query(selector string) ([]dom.Element, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", selector, err)
	}

	found := d.doc.FindMatcher(matcher)
	elements := make([]dom.Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, d.wrap(s))
	})

	return elements, nil
}

func (d *Document) ClickBody() error {
	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return fmt.Errorf("document has no body")
	}

	return d.wrap(body).Click()
}

// OnClick registers a hook run after every click, letting tests emulate
// widgets that react to clicks (opening panels, picking dates).
func (d *Document) OnClick(fn func(el *Element)) {
	d.hooks = append(d.hooks, fn)
}

// First returns the first element matching selector, or nil.
func (d *Document) First(selector string) *Element {
	s := d.doc.Find(selector).First()
	if s.Length() == 0 {
		return nil
	}
	return d.wrap(s)
}

// Events returns every interaction recorded for the elements matching
// selector, in order.
func (d *Document) Events(selector string) []string {
	var out []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, d.events[s.Get(0)]...)
	})
	return out
}

func (d *Document) wrap(s *goquery.Selection) *Element {
	return &Element{doc: d, sel: s.First()}
}

func (d *Document) record(n *html.Node, event string) {
	d.events[n] = append(d.events[n], event)
}
