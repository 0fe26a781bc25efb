package htmldoc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/spigell/job-autofill/internal/dom"
)

// Element is a node of a Document.
type Element struct {
	doc *Document
	sel *goquery.Selection
}

var _ dom.Element = (*Element)(nil)

func (e *Element) node() *html.Node { return e.sel.Get(0) }

func (e *Element) Tag() string { return e.node().Data }

func (e *Element) Attr(name string) string { return e.sel.AttrOr(name, "") }

// SetAttr sets an attribute on the element.
func (e *Element) SetAttr(name, value string) { setAttr(e.node(), name, value) }

// RemoveAttr removes an attribute from the element.
func (e *Element) RemoveAttr(name string) { removeAttr(e.node(), name) }

// Matches reports whether the element matches a selector.
func (e *Element) Matches(selector string) bool { return e.sel.Is(selector) }

// Events returns the interactions recorded for this element.
func (e *Element) Events() []string { return e.doc.events[e.node()] }

// Visible mirrors the browser's offsetParent check: an element inside a
// hidden subtree, or one removed from the document, has no layout parent.
func (e *Element) Visible() (bool, error) {
	if strings.EqualFold(e.Attr("type"), "hidden") && e.Tag() == "input" {
		return false, nil
	}

	n := e.node()
	for ; n != nil; n = n.Parent {
		if n.Type == html.DocumentNode {
			return true, nil
		}
		if n.Type != html.ElementNode {
			continue
		}
		if hasAttr(n, "hidden") || hiddenByStyle(attr(n, "style")) {
			return false, nil
		}
	}

	return false, nil
}

func (e *Element) Value() (string, error) {
	switch e.Tag() {
	case "textarea":
		return e.sel.Text(), nil
	case "select":
		options := e.sel.Find("option")
		selected := options.FilterFunction(func(_ int, s *goquery.Selection) bool {
			_, ok := s.Attr("selected")
			return ok
		}).First()
		if selected.Length() == 0 {
			selected = options.First()
		}
		if selected.Length() == 0 {
			return "", nil
		}
		return optionOf(selected).Value, nil
	default:
		return e.Attr("value"), nil
	}
}

func (e *Element) Checked() (bool, error) {
	_, ok := e.sel.Attr("checked")
	return ok, nil
}

func (e *Element) Text() (string, error) { return e.sel.Text(), nil }

func (e *Element) LabelText() (string, error) {
	if label := e.sel.Closest("label"); label.Length() > 0 {
		return label.Text(), nil
	}

	id := e.Attr("id")
	if id == "" {
		return "", nil
	}

	var text string
	e.doc.doc.Find("label").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.AttrOr("for", "") == id {
			text = s.Text()
			return false
		}
		return true
	})

	return text, nil
}

func (e *Element) Parent() (dom.Element, error) {
	parent := e.node().Parent
	if parent == nil || parent.Type != html.ElementNode {
		return nil, nil
	}
	return e.doc.wrap(e.sel.Parent()), nil
}

func (e *Element) Options() ([]dom.Option, error) {
	if e.Tag() != "select" {
		return nil, fmt.Errorf("%s element has no options", e.Tag())
	}

	var options []dom.Option
	e.sel.Find("option").Each(func(_ int, s *goquery.Selection) {
		options = append(options, optionOf(s))
	})
	return options, nil
}

func (e *Element) Focus() error {
	e.doc.record(e.node(), "focus")
	return nil
}

func (e *Element) Blur() error {
	e.doc.record(e.node(), "blur")
	return nil
}

func (e *Element) SetValue(value string) error {
	if _, ok := e.sel.Attr("disabled"); ok {
		return fmt.Errorf("%s element is disabled", e.Tag())
	}

	switch e.Tag() {
	case "textarea":
		n := e.node()
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			n.RemoveChild(c)
			c = next
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	case "select":
		var matched *html.Node
		e.sel.Find("option").Each(func(_ int, s *goquery.Selection) {
			removeAttr(s.Get(0), "selected")
			if matched == nil && optionOf(s).Value == value {
				matched = s.Get(0)
			}
		})
		if matched == nil {
			return fmt.Errorf("select has no option with value %q", value)
		}
		setAttr(matched, "selected", "")
	default:
		setAttr(e.node(), "value", value)
	}

	e.doc.record(e.node(), "set:"+value)
	return nil
}

func (e *Element) Click() error {
	n := e.node()

	if e.Tag() == "input" {
		switch strings.ToLower(e.Attr("type")) {
		case "checkbox":
			if hasAttr(n, "checked") {
				removeAttr(n, "checked")
			} else {
				setAttr(n, "checked", "")
			}
		case "radio":
			e.uncheckGroup()
			setAttr(n, "checked", "")
		}
	}

	e.doc.record(n, "click")
	for _, hook := range e.doc.hooks {
		hook(e)
	}
	return nil
}

func (e *Element) Dispatch(events ...dom.Event) error {
	for _, ev := range events {
		e.doc.record(e.node(), string(ev))
	}
	return nil
}

func (e *Element) uncheckGroup() {
	name := e.Attr("name")
	if name == "" {
		return
	}

	e.doc.doc.Find(`input[type="radio"]`).Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr("name", "") == name {
			removeAttr(s.Get(0), "checked")
		}
	})
}

func optionOf(s *goquery.Selection) dom.Option {
	text := strings.Join(strings.Fields(s.Text()), " ")
	value, ok := s.Attr("value")
	if !ok {
		value = text
	}
	return dom.Option{Text: text, Value: value}
}

func hiddenByStyle(style string) bool {
	style = strings.ReplaceAll(strings.ToLower(style), " ", "")
	return strings.Contains(style, "display:none")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}
