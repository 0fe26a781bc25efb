// Package dom describes the small slice of the browser DOM the autofill
// engine needs. Two backends implement it: rodpage drives a live Chrome tab
// and htmldoc works on a parsed HTML snapshot.
package dom

import "strings"

// Kind is the fill-relevant type of a form control.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindTextarea
	KindSelect
	KindCheckbox
	KindRadio
	KindDate
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTextarea:
		return "textarea"
	case KindSelect:
		return "select"
	case KindCheckbox:
		return "checkbox"
	case KindRadio:
		return "radio"
	case KindDate:
		return "date"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Textual reports whether the control receives free text.
func (k Kind) Textual() bool {
	return k == KindText || k == KindTextarea
}

// Choice reports whether the control is filled by selection state rather
// than by text presence.
func (k Kind) Choice() bool {
	return k == KindCheckbox || k == KindRadio
}

// Event is a DOM event type dispatched after a programmatic mutation.
type Event string

const (
	EventInput   Event = "input"
	EventChange  Event = "change"
	EventBlur    Event = "blur"
	EventKeyDown Event = "keydown"
	EventKeyUp   Event = "keyup"
)

// SyntheticSequence is the event sequence reactive front-ends listen for.
var SyntheticSequence = []Event{EventInput, EventChange, EventBlur, EventKeyDown, EventKeyUp}

// Option is one entry of a native select.
type Option struct {
	Text  string
	Value string
}

// Document is the page being filled.
type Document interface {
	// URL returns the current address of the page.
	URL() string
	// Query returns the elements matching a CSS selector in document order.
	Query(selector string) ([]Element, error)
	// ClickBody clicks the page body, closing open popups.
	ClickBody() error
}

// Element is a single DOM element.
type Element interface {
	Tag() string
	Attr(name string) string
	Visible() (bool, error)
	Value() (string, error)
	Checked() (bool, error)
	// Text returns the element's text content.
	Text() (string, error)
	// LabelText returns the text of the closest enclosing label, or of the
	// label pointing at the element's id. Empty when there is none.
	LabelText() (string, error)
	// Parent returns nil, nil at the top of the tree.
	Parent() (Element, error)
	Options() ([]Option, error)

	Focus() error
	Blur() error
	// SetValue assigns through the native value setter so that frameworks
	// wrapping the property still observe the change.
	SetValue(value string) error
	Click() error
	Dispatch(events ...Event) error
}

// KindOf classifies an element by tag and type attribute.
func KindOf(el Element) Kind {
	switch strings.ToLower(el.Tag()) {
	case "textarea":
		return KindTextarea
	case "select":
		return KindSelect
	case "input":
	default:
		return KindUnknown
	}

	switch strings.ToLower(strings.TrimSpace(el.Attr("type"))) {
	case "", "text", "email", "tel":
		return KindText
	case "checkbox":
		return KindCheckbox
	case "radio":
		return KindRadio
	case "date":
		return KindDate
	case "file":
		return KindFile
	default:
		return KindUnknown
	}
}

// FillableSelector matches every control the field pass inspects.
const FillableSelector = `input:not([type="hidden"]):not([type="submit"]):not([type="button"]), select, textarea`
