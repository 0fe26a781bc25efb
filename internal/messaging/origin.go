package messaging

import (
	"net/http"
	"strings"
)

// Origins lists the browser origins allowed to use the relay, for example
// "chrome-extension://<id>". Requests without an Origin header come from
// non-browser clients and are always allowed; any other origin is refused,
// since a loopback listener is still reachable from every page the user
// has open.
type Origins []string

// Allowed reports whether r may reach the relay.
func (o Origins) Allowed(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}

	for _, allowed := range o {
		if strings.EqualFold(strings.TrimRight(strings.TrimSpace(allowed), "/"), origin) {
			return true
		}
	}
	return false
}
