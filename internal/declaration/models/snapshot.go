package models

import (
	"strings"

	id "travelgate/pkg/domain"
	dErrors "travelgate/pkg/domain-errors"
	pstrings "travelgate/pkg/platform/strings"
)

// Snapshot is the remote copy of a declaration as returned by the
// get-declaration call. Dates arrive in wire form.
type Snapshot struct {
	ReferenceNumber   id.ReferenceNumber `json:"reference_number"`
	Citizenship       string             `json:"citizenship"`
	Surname           string             `json:"surname"`
	FirstName         string             `json:"first_name"`
	PassportNumber    string             `json:"passport_number"`
	Nationality       string             `json:"nationality"`
	DateOfBirth       string             `json:"date_of_birth"`
	Profession        string             `json:"profession"`
	Gender            string             `json:"gender"`
	TaxPIN            string             `json:"tax_pin"`
	Phone             string             `json:"phone"`
	Email             string             `json:"email"`
	HotelResidence    string             `json:"hotel_residence"`
	PhysicalAddress   string             `json:"physical_address"`
	ArrivalDate       string             `json:"arrival_date"`
	ArrivingFrom      string             `json:"arriving_from"`
	ConveyanceMode    string             `json:"conveyance_mode"`
	VehicleNumber     string             `json:"vehicle_number"`
	PointOfEntry      string             `json:"point_of_entry"`
	CountriesVisited  []string           `json:"countries_visited"`
	HasItemsToDeclare string             `json:"has_items_to_declare"`
	Assessments       []AssessmentLine   `json:"assessments"`
}

// MergeSnapshot copies the snapshot's non-empty fields into the form. Local
// values survive where the snapshot is blank. The tax PIN is merged through
// SetTaxPIN so a changed PIN still resets the OTP challenge.
func (f *DeclarationForm) MergeSnapshot(s *Snapshot) error {
	if s == nil {
		return nil
	}
	if !s.ReferenceNumber.IsZero() && s.ReferenceNumber != f.ReferenceNumber {
		return dErrors.New(dErrors.CodeInvariantViolation, "snapshot belongs to a different declaration")
	}

	str := func(v string) *string {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		return &v
	}
	date := func(v string) *string {
		return str(DisplayDate(v))
	}

	pu := PassengerUpdate{
		Surname:         str(s.Surname),
		FirstName:       str(s.FirstName),
		PassportNumber:  str(s.PassportNumber),
		Nationality:     str(s.Nationality),
		DateOfBirth:     date(s.DateOfBirth),
		Profession:      str(s.Profession),
		Phone:           str(s.Phone),
		Email:           str(s.Email),
		HotelResidence:  str(s.HotelResidence),
		PhysicalAddress: str(s.PhysicalAddress),
	}
	if c := Citizenship(strings.TrimSpace(s.Citizenship)); c.IsValid() {
		pu.Citizenship = &c
	}
	if g := Gender(strings.TrimSpace(s.Gender)); g.IsValid() {
		pu.Gender = &g
	}
	if err := f.ApplyPassenger(pu); err != nil {
		return err
	}
	if pin := strings.TrimSpace(s.TaxPIN); pin != "" {
		f.SetTaxPIN(pin)
	}

	tu := TravelUpdate{
		ArrivalDate:   date(s.ArrivalDate),
		ArrivingFrom:  str(s.ArrivingFrom),
		VehicleNumber: str(s.VehicleNumber),
		PointOfEntry:  str(s.PointOfEntry),
	}
	if m := ConveyanceMode(strings.TrimSpace(s.ConveyanceMode)); m.IsValid() {
		tu.ConveyanceMode = &m
	}
	f.ApplyTravel(tu)

	if visited := pstrings.DedupeCodes(s.CountriesVisited); len(visited) > 0 {
		if len(visited) > MaxCountriesVisited {
			visited = visited[:MaxCountriesVisited]
		}
		f.Travel.CountriesVisited = visited
	}
	if y := YesNo(strings.TrimSpace(s.HasItemsToDeclare)); y.IsValid() {
		f.HasItemsToDeclare = y
	}
	if len(s.Assessments) > 0 {
		f.ReplaceAssessments(s.Assessments)
	}
	return nil
}
