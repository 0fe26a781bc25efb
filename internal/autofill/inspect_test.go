package autofill

import (
	"testing"

	"github.com/spigell/job-autofill/internal/matcher"
	"github.com/spigell/job-autofill/internal/profile"
)

func TestInspectReportsWithoutTouchingPage(t *testing.T) {
	t.Parallel()

	doc := newPage(t, applicationPage)
	p := profile.Default()

	findings, err := Inspect(doc, p, "03/04/2025")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	byAnswer := make(map[string]int)
	bySkip := make(map[string]int)
	for _, f := range findings {
		byAnswer[f.Answer]++
		bySkip[f.Skipped]++
	}

	if byAnswer[p.FirstName] != 1 {
		t.Fatalf("expected the hidden duplicate to be left out, got %d first name answers", byAnswer[p.FirstName])
	}
	if byAnswer[p.HowDidYouHear] != 1 {
		t.Fatalf("expected the source dropdown to be answered, got %+v", findings)
	}
	if byAnswer["select"] != 1 {
		t.Fatalf("expected one radio to be selected, got %d", byAnswer["select"])
	}
	if byAnswer["03/04/2025"] != 1 {
		t.Fatalf("expected the date picker to get today, got %+v", findings)
	}
	if bySkip["file upload"] != 1 || bySkip["already filled"] != 1 {
		t.Fatalf("unexpected skip reasons %v", bySkip)
	}

	if got := doc.First("#fn").Attr("value"); got != "" {
		t.Fatalf("inspect must not write values, got %q", got)
	}
	if events := doc.Events("#fn"); len(events) != 0 {
		t.Fatalf("inspect must not dispatch events, got %v", events)
	}
}

func TestInspectDropdownCategoryOnce(t *testing.T) {
	t.Parallel()

	doc := newPage(t, `
<div><p>Are you a protected veteran?</p><input id="v1" placeholder="Select"></div>
<div><p>Are you a protected veteran?</p><input id="v2" placeholder="Select"></div>
<div><p>Are you open to relocation?</p><input id="r" placeholder="Select"></div>`)

	findings, err := Inspect(doc, profile.Default(), "03/04/2025")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	var dropdowns []Finding
	for _, f := range findings {
		if f.Pass == "dropdowns" {
			dropdowns = append(dropdowns, f)
		}
	}

	if len(dropdowns) != 3 {
		t.Fatalf("expected three dropdown findings, got %+v", dropdowns)
	}
	if dropdowns[0].Answer == "" || dropdowns[1].Skipped != "category already handled" || dropdowns[2].Category != matcher.Relocation.String() {
		t.Fatalf("unexpected dropdown verdicts %+v", dropdowns)
	}
}

func TestInspectUnknownDropdown(t *testing.T) {
	t.Parallel()

	doc := newPage(t, `<div><p>Favourite colour</p><input id="c" placeholder="Select"></div>`)

	findings, err := Inspect(doc, profile.Default(), "03/04/2025")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	last := findings[len(findings)-1]
	if last.Pass != "dropdowns" || last.Skipped != "unknown question" || last.Answer != "" {
		t.Fatalf("unexpected verdict %+v", last)
	}
}

func TestRunnerInspectUsesClock(t *testing.T) {
	t.Parallel()

	doc := newPage(t, `<input id="start" placeholder="Select date">`)

	findings, err := newRunner(nil).Inspect(doc)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	last := findings[len(findings)-1]
	if last.Pass != "dates" || last.Answer != "03/04/2025" {
		t.Fatalf("unexpected verdict %+v", last)
	}
}
