// Package profile holds the applicant record used to answer form fields.
package profile

import (
	"errors"
	"strings"
)

// Disability answers understood by the choice strategies.
const (
	DisabilityYes     = "Yes"
	DisabilityNo      = "No"
	DisabilityDecline = "Decline"
)

// Address is the applicant's current mailing address.
type Address struct {
	Street  string `mapstructure:"street"`
	City    string `mapstructure:"city"`
	State   string `mapstructure:"state"`
	ZipCode string `mapstructure:"zip-code"`
	Country string `mapstructure:"country"`
}

// Profile is the immutable applicant record. It is decoded once at start-up.
type Profile struct {
	FirstName   string  `mapstructure:"first-name"`
	LastName    string  `mapstructure:"last-name"`
	FullName    string  `mapstructure:"full-name"`
	Email       string  `mapstructure:"email"`
	PhoneType   string  `mapstructure:"phone-type"`
	PhoneNumber string  `mapstructure:"phone-number"`
	Address     Address `mapstructure:"address"`

	DesiredSalary  string `mapstructure:"desired-salary"`
	WorkPreference string `mapstructure:"work-preference"`

	AuthorizedToWork   bool   `mapstructure:"authorized-to-work"`
	RequireSponsorship bool   `mapstructure:"require-sponsorship"`
	WillingToRelocate  bool   `mapstructure:"willing-to-relocate"`
	DisabilityStatus   string `mapstructure:"disability-status"`
	VeteranStatus      string `mapstructure:"veteran-status"`
	HowDidYouHear      string `mapstructure:"how-did-you-hear"`

	// Aliases lists alternative spellings of profile values, keyed by the
	// lower-cased value. Native selects fall back to them when neither an
	// exact nor a substring match exists.
	Aliases map[string][]string `mapstructure:"aliases"`
}

// Default returns the built-in sample applicant.
func Default() *Profile {
	return &Profile{
		FirstName:   "John",
		LastName:    "Doe",
		FullName:    "John Michael Doe",
		Email:       "john.doe@example.com",
		PhoneType:   "mobile",
		PhoneNumber: "5551234567",
		Address: Address{
			Street:  "123 Main Street",
			City:    "San Francisco",
			State:   "California",
			ZipCode: "94101",
			Country: "United States",
		},
		DesiredSalary:      "150000",
		WorkPreference:     "Hybrid",
		AuthorizedToWork:   true,
		RequireSponsorship: false,
		WillingToRelocate:  true,
		DisabilityStatus:   DisabilityNo,
		VeteranStatus:      "Not a Veteran",
		HowDidYouHear:      "LinkedIn",
		Aliases:            DefaultAliases(),
	}
}

// DefaultAliases covers the country spellings seen on application forms.
func DefaultAliases() map[string][]string {
	return map[string][]string{
		"united states":  {"united states of america", "usa", "us"},
		"united kingdom": {"great britain", "uk", "gb"},
	}
}

// Validate reports the first missing mandatory attribute.
func (p *Profile) Validate() error {
	if p == nil {
		return errors.New("profile is required")
	}

	required := []struct {
		name  string
		value string
	}{
		{"first-name", p.FirstName},
		{"last-name", p.LastName},
		{"email", p.Email},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return errors.New("profile." + field.name + " is required")
		}
	}

	return nil
}

// DisplayName returns the full name, composing it from its parts when unset.
func (p *Profile) DisplayName() string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// AliasesFor returns the alternative spellings registered for value.
func (p *Profile) AliasesFor(value string) []string {
	if p == nil || p.Aliases == nil {
		return nil
	}
	return p.Aliases[strings.ToLower(strings.TrimSpace(value))]
}

// DisabilityAnswer is the option text picked in a disability dropdown.
func (p *Profile) DisabilityAnswer() string {
	switch {
	case strings.EqualFold(p.DisabilityStatus, DisabilityNo):
		return "No, I don't have a disability, or a history/record of having a disability"
	case strings.EqualFold(p.DisabilityStatus, DisabilityYes):
		return "Yes, I have a disability, or have a history/record of having a disability"
	default:
		return "I don't wish to answer"
	}
}

// VeteranAnswer is the option text picked in a veteran status dropdown.
func (p *Profile) VeteranAnswer() string {
	status := strings.ToLower(p.VeteranStatus)
	switch {
	case strings.Contains(status, "not"):
		return "not a protected veteran"
	case strings.Contains(status, "wish"), strings.Contains(status, "decline"), status == "":
		return "I don't wish to answer"
	default:
		return "I identify as one or more of the classifications of protected veteran"
	}
}

// YesNo renders a boolean screening answer.
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
