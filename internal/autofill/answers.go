package autofill

import (
	"strings"

	"github.com/spigell/job-autofill/internal/matcher"
	"github.com/spigell/job-autofill/internal/profile"
)

func textAnswer(p *profile.Profile, c matcher.Category, today string) string {
	switch c {
	case matcher.FirstName:
		return p.FirstName
	case matcher.LastName:
		return p.LastName
	case matcher.FullName:
		return p.DisplayName()
	case matcher.Email:
		return p.Email
	case matcher.Phone:
		return p.PhoneNumber
	case matcher.Street:
		return p.Address.Street
	case matcher.City:
		return p.Address.City
	case matcher.PostalCode:
		return p.Address.ZipCode
	case matcher.State:
		return p.Address.State
	case matcher.Salary:
		return p.DesiredSalary
	case matcher.Date:
		return today
	default:
		return ""
	}
}

func selectAnswer(p *profile.Profile, c matcher.Category) (string, []string) {
	var value string
	switch c {
	case matcher.Country:
		value = p.Address.Country
	case matcher.State:
		value = p.Address.State
	case matcher.PhoneType:
		value = p.PhoneType
	case matcher.Source:
		value = p.HowDidYouHear
	}
	return value, p.AliasesFor(value)
}

func dropdownAnswer(p *profile.Profile, c matcher.Category) string {
	switch c {
	case matcher.Source:
		return p.HowDidYouHear
	case matcher.Disability:
		return p.DisabilityAnswer()
	case matcher.Veteran:
		return p.VeteranAnswer()
	case matcher.Relocation:
		return profile.YesNo(p.WillingToRelocate)
	case matcher.WorkAuthorization:
		return profile.YesNo(p.AuthorizedToWork)
	case matcher.Sponsorship:
		return profile.YesNo(p.RequireSponsorship)
	case matcher.Country:
		return p.Address.Country
	case matcher.WorkPreference:
		return p.WorkPreference
	default:
		return ""
	}
}

// choiceAnswer is the label polarity the profile agrees with for a
// screening question. ok is false for topics the profile has no answer to.
func choiceAnswer(p *profile.Profile, c matcher.Category) (matcher.Polarity, bool) {
	switch c {
	case matcher.WorkAuthorization:
		return polarity(p.AuthorizedToWork), true
	case matcher.Sponsorship:
		return polarity(p.RequireSponsorship), true
	case matcher.Relocation:
		return polarity(p.WillingToRelocate), true
	case matcher.Disability:
		switch {
		case strings.EqualFold(p.DisabilityStatus, profile.DisabilityYes):
			return matcher.Affirmative, true
		case strings.EqualFold(p.DisabilityStatus, profile.DisabilityNo):
			return matcher.Negative, true
		default:
			return matcher.Decline, true
		}
	case matcher.Veteran:
		return matcher.PolarityOf(p.VeteranAnswer()), true
	default:
		return matcher.Affirmative, false
	}
}

func polarity(yes bool) matcher.Polarity {
	if yes {
		return matcher.Affirmative
	}
	return matcher.Negative
}
