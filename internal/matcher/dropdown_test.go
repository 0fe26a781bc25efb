package matcher

import (
	"strings"
	"testing"

	"github.com/spigell/job-autofill/internal/dom/htmldoc"
)

func TestDropdownRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Category
	}{
		{name: "source", text: "how did you hear about this job?select", want: Source},
		{name: "disability", text: "disability status", want: Disability},
		{name: "disability too long", text: "disability status " + strings.Repeat("x", 500), want: None},
		{name: "vevraa", text: "vevraa self identification", want: Veteran},
		{name: "veteran protected", text: "are you a protected veteran", want: Veteran},
		{name: "veteran alone", text: "veteran", want: None},
		{name: "relocation", text: "are you open to relocation?", want: Relocation},
		{name: "work permit", text: "are you legally permitted to work here?", want: WorkAuthorization},
		{name: "sponsorship", text: "will you now or in the future require sponsorship?", want: Sponsorship},
		{name: "work preference", text: "do you prefer to work on-site, hybrid or remote?", want: WorkPreference},
		{name: "country", text: "country", want: Country},
		{name: "country in address", text: "address country", want: None},
		{name: "country too long", text: "country " + strings.Repeat("y", 100), want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CustomDropdownRules.Classify(tt.text); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassifyDropdownWalksAncestors(t *testing.T) {
	doc, err := htmldoc.ParseString(`<html><body>
<section>
  <h3>Country</h3>
  <div><div><div><input id="c" placeholder="Select"></div></div></div>
</section>
<section>
  <p>Legal disclaimer about country of residence and more.</p>
  <div><input id="far" placeholder="Select"></div>
</section>
<div>1</div><div><div><div><div><div><div><div><div><div><p>country</p><input id="deep" placeholder="Select"></div></div></div></div></div></div></div></div></div>
</body></html>`, "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got, err := ClassifyDropdown(doc.First("#c"), CustomDropdownRules)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got != Country {
		t.Fatalf("expected country, got %s", got)
	}

	got, _ = ClassifyDropdown(doc.First("#far"), CustomDropdownRules)
	if got != Country {
		t.Fatalf("expected short section to classify as country, got %s", got)
	}

	got, _ = ClassifyDropdown(doc.First("#deep"), CustomDropdownRules)
	if got != Country {
		t.Fatalf("expected direct parent text to classify, got %s", got)
	}
}

func TestClassifyDropdownDepthLimit(t *testing.T) {
	inner := `<input id="x" placeholder="Select">`
	for i := 0; i < MaxDropdownDepth; i++ {
		inner = "<div>" + inner + "</div>"
	}
	doc, err := htmldoc.ParseString(`<html><body><div><p>how did you hear</p>`+inner+`</div></body></html>`, "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got, err := ClassifyDropdown(doc.First("#x"), CustomDropdownRules)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got != None {
		t.Fatalf("expected phrase beyond depth limit to be ignored, got %s", got)
	}
}

func TestDescribe(t *testing.T) {
	doc, err := htmldoc.ParseString(`<html><body>
<label for="fn">First Name</label><input id="fn" placeholder="Enter first name" value="Jo">
<label><input type="radio" id="r" checked> Yes</label>
</body></html>`, "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	field, err := Describe(doc.First("#fn"))
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if field.Signal.Text() != "first name" || field.Signal.Placeholder != "enter first name" {
		t.Fatalf("unexpected signal: %+v", field.Signal)
	}
	if !field.Filled() {
		t.Fatalf("expected text field with value to be filled")
	}

	radio, err := Describe(doc.First("#r"))
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if !radio.Checked || radio.Filled() {
		t.Fatalf("expected checked radio that is never considered filled: %+v", radio)
	}
	if radio.Signal.Text() != " yes" {
		t.Fatalf("unexpected radio label %q", radio.Signal.Text())
	}
}
