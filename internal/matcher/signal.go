package matcher

import (
	"fmt"
	"strings"

	"github.com/spigell/job-autofill/internal/dom"
)

// Signal holds the lower-cased texts a control can be recognised by.
type Signal struct {
	Label       string
	Placeholder string
	Name        string
	Aria        string
}

// Text returns the label signal: the first non-empty of label, placeholder,
// name and aria-label.
func (s Signal) Text() string {
	for _, v := range []string{s.Label, s.Placeholder, s.Name, s.Aria} {
		if v != "" {
			return v
		}
	}
	return ""
}

// SignalOf reads the signal of el.
func SignalOf(el dom.Element) (Signal, error) {
	label, err := el.LabelText()
	if err != nil {
		return Signal{}, fmt.Errorf("reading label: %w", err)
	}

	return Signal{
		Label:       strings.ToLower(label),
		Placeholder: strings.ToLower(el.Attr("placeholder")),
		Name:        strings.ToLower(el.Attr("name")),
		Aria:        strings.ToLower(el.Attr("aria-label")),
	}, nil
}

// Field is the per-scan view of one control.
type Field struct {
	Element dom.Element
	Kind    dom.Kind
	Signal  Signal
	Value   string
	Checked bool
}

// Describe builds the Field of el.
func Describe(el dom.Element) (Field, error) {
	signal, err := SignalOf(el)
	if err != nil {
		return Field{}, err
	}

	field := Field{Element: el, Kind: dom.KindOf(el), Signal: signal}

	if field.Value, err = el.Value(); err != nil {
		return Field{}, fmt.Errorf("reading value: %w", err)
	}

	if field.Kind.Choice() {
		if field.Checked, err = el.Checked(); err != nil {
			return Field{}, fmt.Errorf("reading checked state: %w", err)
		}
	}

	return field, nil
}

// Filled reports whether the control already holds text. Choice controls
// are never considered filled here: their state is a selection.
func (f Field) Filled() bool {
	return !f.Kind.Choice() && f.Value != ""
}
