// Package messaging carries start requests to a session and run outcomes
// back to whoever asked: a local HTTP relay for requests and a WebSocket
// stream for outcomes.
package messaging

import "github.com/spigell/job-autofill/internal/autofill"

// Action names a message kind.
type Action string

const (
	ActionStart    Action = "startAutofill"
	ActionComplete Action = "autofillComplete"
	ActionError    Action = "autofillError"
)

// StatusStarted acknowledges a start request.
const StatusStarted = "started"

// Message is the envelope of every request and notification.
type Message struct {
	Action Action          `json:"action"`
	URL    string          `json:"url,omitempty"`
	Stats  *autofill.Stats `json:"stats,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Ack answers a start request.
type Ack struct {
	Status string `json:"status"`
}

// Complete builds the notification sent after a finished run.
func Complete(url string, stats autofill.Stats) Message {
	return Message{Action: ActionComplete, URL: url, Stats: &stats}
}

// Failure builds the notification sent after a failed run or request.
func Failure(url string, err error) Message {
	return Message{Action: ActionError, URL: url, Error: err.Error()}
}
