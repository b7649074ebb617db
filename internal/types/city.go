package types

import "fmt"

// CityLite is the search projection of a city. Field names are the wire
// format of /city/json/search.
type CityLite struct {
	Id          int
	Name        string
	RegionAbbr  string
	CountryAbbr string
}

// Label renders the city as "<name>, <region>, <country>", which tells apart
// cities sharing a name.
func (c CityLite) Label() string {
	return fmt.Sprintf("%s, %s, %s", c.Name, c.RegionAbbr, c.CountryAbbr)
}

// Identifier returns the id a selected label resolves to.
func (c CityLite) Identifier() int {
	return c.Id
}
