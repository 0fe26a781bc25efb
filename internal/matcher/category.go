// Package matcher classifies form controls into screening-question
// categories using ordered substring rule tables.
package matcher

// Category is a semantic question topic a control can be matched to.
type Category string

const (
	None              Category = ""
	FirstName         Category = "first_name"
	LastName          Category = "last_name"
	FullName          Category = "full_name"
	Email             Category = "email"
	Phone             Category = "phone"
	PhoneType         Category = "phone_type"
	Street            Category = "street"
	City              Category = "city"
	PostalCode        Category = "postal_code"
	State             Category = "state"
	Country           Category = "country"
	Salary            Category = "salary"
	Date              Category = "date"
	WorkAuthorization Category = "work_authorization"
	Sponsorship       Category = "sponsorship"
	Relocation        Category = "relocation"
	Disability        Category = "disability"
	Veteran           Category = "veteran"
	Source            Category = "source"
	WorkPreference    Category = "work_preference"
)

func (c Category) String() string {
	if c == None {
		return "unclassified"
	}
	return string(c)
}
