package types

import "strings"

// PersonLite is the search projection of a person. Field names are the wire
// format of /person/json/search.
type PersonLite struct {
	Id     int
	Name   string
	Gender string `json:",omitempty"`
}

// Label returns the display name.
func (p PersonLite) Label() string {
	return p.Name
}

// BuildFullName joins the name parts as `First "Nick" Middle Last`, skipping empty parts.
func BuildFullName(firstName, middleName, lastName, nickName string) string {
	var b strings.Builder
	b.WriteString(firstName)
	if nickName != "" {
		b.WriteString(` "` + nickName + `"`)
	}
	if middleName != "" {
		b.WriteString(" " + middleName)
	}
	if lastName != "" {
		b.WriteString(" " + lastName)
	}
	return b.String()
}

// GenderName expands the stored gender code.
func GenderName(code string) string {
	if code == "M" {
		return "Male"
	}
	return "Female"
}

// Identifier returns the id a selected label resolves to.
func (p PersonLite) Identifier() int {
	return p.Id
}
