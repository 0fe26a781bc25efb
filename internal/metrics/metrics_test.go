package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/spigell/job-autofill/internal/autofill"
)

func TestReporter(t *testing.T) {
	t.Parallel()

	m := New()
	m.Completed("u", autofill.Stats{Found: 10, Filled: 7}, 2*time.Second)
	m.Completed("u", autofill.Stats{Found: 3, Filled: 0}, time.Second)
	m.Failed("u", errors.New("boom"))
	m.Rejected("u")
	m.Rejected("u")

	tests := map[string]float64{
		OutcomeCompleted: 2,
		OutcomeFailed:    1,
		OutcomeRejected:  2,
	}
	for outcome, want := range tests {
		if got := testutil.ToFloat64(m.runs.WithLabelValues(outcome)); got != want {
			t.Fatalf("%s: expected %v, got %v", outcome, want, got)
		}
	}

	if got := testutil.ToFloat64(m.fields.WithLabelValues("found")); got != 13 {
		t.Fatalf("expected 13 found fields, got %v", got)
	}
	if got := testutil.ToFloat64(m.fields.WithLabelValues("filled")); got != 7 {
		t.Fatalf("expected 7 filled fields, got %v", got)
	}

	if n := testutil.CollectAndCount(m.duration); n != 1 {
		t.Fatalf("expected one histogram, got %d", n)
	}
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := New()
	m.Rejected("u")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `autofill_runs_total{outcome="rejected"} 1`) {
		t.Fatalf("expected runs counter in output, got:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Fatalf("expected runtime collectors in output")
	}
}
