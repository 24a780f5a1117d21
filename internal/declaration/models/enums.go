package models

// Citizenship classes accepted on the passenger step.
type Citizenship string

const (
	CitizenshipKenyan      Citizenship = "Kenyan"
	CitizenshipForeigner   Citizenship = "Foreigner"
	CitizenshipEastAfrican Citizenship = "East African"
	CitizenshipDiplomat    Citizenship = "Diplomat"
)

func (c Citizenship) IsValid() bool {
	switch c {
	case CitizenshipKenyan, CitizenshipForeigner, CitizenshipEastAfrican, CitizenshipDiplomat:
		return true
	}
	return false
}

// Gender as captured on travel documents.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// ConveyanceMode is how the passenger arrives.
type ConveyanceMode string

const (
	ConveyanceAir  ConveyanceMode = "Air"
	ConveyanceSea  ConveyanceMode = "Sea"
	ConveyanceLand ConveyanceMode = "Land"
)

func (m ConveyanceMode) IsValid() bool {
	switch m {
	case ConveyanceAir, ConveyanceSea, ConveyanceLand:
		return true
	}
	return false
}

// YesNo is a tri-state answer: unset, Yes or No.
type YesNo string

const (
	Unset YesNo = ""
	Yes   YesNo = "Yes"
	No    YesNo = "No"
)

func (y YesNo) IsValid() bool {
	return y == Yes || y == No
}

func (y YesNo) IsYes() bool {
	return y == Yes
}
