// Package overlay renders the in-page controls: the notification box, the
// floating trigger button and the URL watcher that shows or hides it.
package overlay

import (
	"fmt"
	"html"
	"time"

	"github.com/ysmood/gson"
)

// Kind colours a notification.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// DefaultDuration is how long a notification stays on screen.
const DefaultDuration = 5 * time.Second

// Notification is an overlay message. Message is HTML; a zero Duration
// keeps it on screen until cleared.
type Notification struct {
	Message  string
	Kind     Kind
	Duration time.Duration
}

// Summary is the notification shown after a completed run.
func Summary(filled int) Notification {
	return Notification{
		Message:  fmt.Sprintf("<strong>Fields Filled: %d</strong><br><p>Please review the filled fields.</p>", filled),
		Kind:     KindSuccess,
		Duration: DefaultDuration,
	}
}

// Failure is the generic notification shown when a run breaks.
func Failure() Notification {
	return Notification{
		Message:  "An error occurred during autofill. Please try again.",
		Kind:     KindError,
		Duration: DefaultDuration,
	}
}

// Text builds a notification from plain text.
func Text(kind Kind, text string, d time.Duration) Notification {
	return Notification{Message: html.EscapeString(text), Kind: kind, Duration: d}
}

// Helper calls functions of the injected page helper.
type Helper interface {
	Call(method string, args ...any) (gson.JSON, error)
}

// Notifier shows notifications through the page helper.
type Notifier struct {
	helper Helper
}

// NewNotifier returns a Notifier drawing through helper.
func NewNotifier(helper Helper) *Notifier {
	return &Notifier{helper: helper}
}

// Show replaces any visible notification with n.
func (n *Notifier) Show(note Notification) error {
	kind := note.Kind
	if kind == "" {
		kind = KindInfo
	}

	if _, err := n.helper.Call("notify", note.Message, string(kind), note.Duration.Milliseconds()); err != nil {
		return fmt.Errorf("showing notification: %w", err)
	}
	return nil
}

// Clear removes the visible notification, if any.
func (n *Notifier) Clear() error {
	if _, err := n.helper.Call("clearNotification"); err != nil {
		return fmt.Errorf("clearing notification: %w", err)
	}
	return nil
}
