package matcher

import "testing"

func TestPolarityOf(t *testing.T) {
	t.Parallel()

	tests := map[string]Polarity{
		"Yes":                               Affirmative,
		"No":                                Negative,
		"I am authorized to work":           Affirmative,
		"I am not authorized to work":       Negative,
		"I don't require sponsorship":       Negative,
		"I do not require sponsorship":      Negative,
		"No, I do not have a disability":    Negative,
		"Yes, I have a disability":          Affirmative,
		"I don't wish to answer":            Decline,
		"I prefer not to say":               Decline,
		"I am not a protected veteran":      Negative,
		"I identify as a protected veteran": Affirmative,
		"I know my rights":                  Affirmative,
		"Nothing to declare":                Affirmative,
		"I can’t relocate":                  Negative,
	}

	for label, want := range tests {
		if got := PolarityOf(label); got != want {
			t.Fatalf("%q: expected %s, got %s", label, want, got)
		}
	}
}
