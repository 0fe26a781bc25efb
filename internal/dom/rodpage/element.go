package rodpage

import (
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/ysmood/gson"

	"github.com/spigell/job-autofill/internal/dom"
)

// Element is a live DOM element.
type Element struct {
	page *Page
	el   *rod.Element
	tag  string
}

var _ dom.Element = (*Element)(nil)

func (e *Element) Tag() string {
	if e.tag == "" {
		res, err := e.el.Eval(`function() { return this.tagName.toLowerCase() }`)
		if err != nil {
			return ""
		}
		e.tag = res.Value.Str()
	}
	return e.tag
}

func (e *Element) Attr(name string) string {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return ""
	}
	return *v
}

func (e *Element) Visible() (bool, error) {
	v, err := e.call("visible")
	return v.Bool(), err
}

func (e *Element) Value() (string, error) {
	v, err := e.el.Property("value")
	if err != nil {
		return "", fmt.Errorf("reading value: %w", err)
	}
	if v.Nil() {
		return "", nil
	}
	return v.Str(), nil
}

func (e *Element) Checked() (bool, error) {
	v, err := e.el.Property("checked")
	if err != nil {
		return false, fmt.Errorf("reading checked: %w", err)
	}
	return v.Bool(), nil
}

func (e *Element) Text() (string, error) {
	v, err := e.el.Property("textContent")
	if err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	if v.Nil() {
		return "", nil
	}
	return v.Str(), nil
}

func (e *Element) LabelText() (string, error) {
	v, err := e.call("label")
	return v.Str(), err
}

func (e *Element) Parent() (dom.Element, error) {
	parent, err := e.el.Parent()
	if err != nil {
		var notFound *rod.ElementNotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading parent: %w", err)
	}
	return &Element{page: e.page, el: parent}, nil
}

func (e *Element) Options() ([]dom.Option, error) {
	v, err := e.call("options")
	if err != nil {
		return nil, err
	}

	var raw []struct {
		Text  string `json:"text"`
		Value string `json:"value"`
	}
	if err := decode(v, &raw); err != nil {
		return nil, fmt.Errorf("decoding options: %w", err)
	}

	options := make([]dom.Option, 0, len(raw))
	for _, o := range raw {
		options = append(options, dom.Option{Text: o.Text, Value: o.Value})
	}
	return options, nil
}

func (e *Element) Focus() error { return e.el.Focus() }

func (e *Element) Blur() error { return e.el.Blur() }

func (e *Element) SetValue(value string) error {
	_, err := e.call("setValue", value)
	return err
}

func (e *Element) Click() error {
	_, err := e.call("click")
	return err
}

func (e *Element) Dispatch(events ...dom.Event) error {
	types := make([]string, 0, len(events))
	for _, ev := range events {
		types = append(types, string(ev))
	}
	_, err := e.call("dispatch", types)
	return err
}

func (e *Element) call(method string, args ...any) (gson.JSON, error) {
	params := append([]any{method}, args...)
	res, err := e.el.Eval(`function(method, ...args) { return window.__autofill[method](this, ...args) }`, params...)
	if err != nil {
		return gson.JSON{}, e.page.explain(method, err)
	}
	return res.Value, nil
}
