package models

// Country is a selectable country. Code is ISO 3166 alpha-2.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Currency is a selectable ISO 4217 currency.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// EntryPoint is a border post, port or airport.
type EntryPoint struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Mode        string `json:"mode,omitempty"`
}

// HSCode is one harmonized-system classification entry.
type HSCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
