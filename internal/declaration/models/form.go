package models

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	id "travelgate/pkg/domain"
	dErrors "travelgate/pkg/domain-errors"
	pstrings "travelgate/pkg/platform/strings"
)

const (
	// MaxCountriesVisited bounds the recently-visited list.
	MaxCountriesVisited = 6
	// MaxPhysicalAddress bounds the physical address in runes.
	MaxPhysicalAddress = 200
	// TaxPINLength is the only shape check applied before sending an OTP.
	TaxPINLength = 11
)

var upper = cases.Upper(language.Und)

// OTPChallenge tracks the tax-PIN verification gate.
type OTPChallenge struct {
	Sent     bool      `json:"sent"`
	Verified bool      `json:"verified"`
	SentAt   time.Time `json:"sent_at,omitzero"`
}

// Passenger holds identity and contact fields.
type Passenger struct {
	Citizenship     Citizenship  `json:"citizenship" validate:"required,citizenship"`
	Surname         string       `json:"surname" validate:"required"`
	FirstName       string       `json:"first_name" validate:"required"`
	PassportNumber  string       `json:"passport_number" validate:"required"`
	Nationality     string       `json:"nationality" validate:"required,len=2,alpha"`
	DateOfBirth     string       `json:"date_of_birth" validate:"required,dmy"`
	Profession      string       `json:"profession"`
	Gender          Gender       `json:"gender" validate:"required,gender"`
	TaxPIN          string       `json:"tax_pin"`
	OTP             OTPChallenge `json:"otp" validate:"-"`
	Phone           string       `json:"phone" validate:"required"`
	Email           string       `json:"email" validate:"required,email"`
	HotelResidence  string       `json:"hotel_residence"`
	PhysicalAddress string       `json:"physical_address" validate:"max=200"`
}

// Travel holds arrival fields.
type Travel struct {
	ArrivalDate      string         `json:"arrival_date" validate:"required,dmy"`
	ArrivingFrom     string         `json:"arriving_from" validate:"required,len=2,alpha"`
	ConveyanceMode   ConveyanceMode `json:"conveyance_mode" validate:"required,conveyance"`
	VehicleNumber    string         `json:"vehicle_number"`
	PointOfEntry     string         `json:"point_of_entry" validate:"required"`
	CountriesVisited []string       `json:"countries_visited"`
}

// DeclarationForm is the wizard aggregate. The reference number is its
// identity once assigned.
type DeclarationForm struct {
	ReferenceNumber   id.ReferenceNumber `json:"reference_number"`
	Passenger         Passenger          `json:"passenger"`
	Travel            Travel             `json:"travel"`
	HasItemsToDeclare YesNo              `json:"has_items_to_declare"`
	Flags             map[Category]YesNo `json:"flags"`
	Items             ItemBook           `json:"items"`
	Assessments       []AssessmentLine   `json:"assessments"`
}

// NewDeclarationForm returns an empty form.
func NewDeclarationForm() *DeclarationForm {
	return &DeclarationForm{
		Flags: make(map[Category]YesNo),
		Items: make(ItemBook),
	}
}

// Initialize assigns the reference number exactly once.
func (f *DeclarationForm) Initialize(ref id.ReferenceNumber) error {
	ref = id.ReferenceNumber(strings.TrimSpace(string(ref)))
	if ref.IsZero() {
		return dErrors.New(dErrors.CodeUnavailable, "no reference number was issued, please try again")
	}
	if !f.ReferenceNumber.IsZero() && f.ReferenceNumber != ref {
		return dErrors.New(dErrors.CodeInvariantViolation, "reference number is already assigned")
	}
	f.ReferenceNumber = ref
	return nil
}

// HasReference reports whether the form can be submitted.
func (f *DeclarationForm) HasReference() bool {
	return !f.ReferenceNumber.IsZero()
}

// PassengerUpdate carries optional passenger fields; nil leaves a field as is.
// The tax PIN and OTP state are changed only through SetTaxPIN and the OTP
// operations.
type PassengerUpdate struct {
	Citizenship     *Citizenship
	Surname         *string
	FirstName       *string
	PassportNumber  *string
	Nationality     *string
	DateOfBirth     *string
	Profession      *string
	Gender          *Gender
	Phone           *string
	Email           *string
	HotelResidence  *string
	PhysicalAddress *string
}

// ApplyPassenger writes the provided fields. Last write wins.
func (f *DeclarationForm) ApplyPassenger(u PassengerUpdate) error {
	if u.PhysicalAddress != nil && utf8.RuneCountInString(strings.TrimSpace(*u.PhysicalAddress)) > MaxPhysicalAddress {
		return dErrors.NewValidation("physical address is too long", map[string]string{"physical_address": markerInvalid})
	}
	p := &f.Passenger
	setTrim := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	if u.Citizenship != nil {
		p.Citizenship = Citizenship(strings.TrimSpace(string(*u.Citizenship)))
	}
	if u.Surname != nil {
		p.Surname = upper.String(strings.TrimSpace(*u.Surname))
	}
	if u.FirstName != nil {
		p.FirstName = upper.String(strings.TrimSpace(*u.FirstName))
	}
	setTrim(&p.PassportNumber, u.PassportNumber)
	if u.Nationality != nil {
		p.Nationality = pstrings.NormalizeCode(*u.Nationality)
	}
	setTrim(&p.DateOfBirth, u.DateOfBirth)
	setTrim(&p.Profession, u.Profession)
	if u.Gender != nil {
		p.Gender = Gender(strings.TrimSpace(string(*u.Gender)))
	}
	setTrim(&p.Phone, u.Phone)
	setTrim(&p.Email, u.Email)
	setTrim(&p.HotelResidence, u.HotelResidence)
	setTrim(&p.PhysicalAddress, u.PhysicalAddress)
	return nil
}

// SetTaxPIN records the PIN. Changing it after an OTP was sent resets the
// challenge to unsent and unverified.
func (f *DeclarationForm) SetTaxPIN(pin string) {
	pin = strings.ToUpper(strings.TrimSpace(pin))
	if pin == f.Passenger.TaxPIN {
		return
	}
	f.Passenger.TaxPIN = pin
	if f.Passenger.OTP.Sent {
		f.Passenger.OTP = OTPChallenge{}
	}
}

// RequiresOTP reports whether the PIN path is active for this passenger.
func (f *DeclarationForm) RequiresOTP() bool {
	return f.Passenger.Citizenship == CitizenshipKenyan && f.Passenger.TaxPIN != ""
}

// OTPBlocks reports whether an issued but unverified challenge gates the
// passenger step.
func (f *DeclarationForm) OTPBlocks() bool {
	return f.RequiresOTP() && f.Passenger.OTP.Sent && !f.Passenger.OTP.Verified
}

// MarkOTPSent records a newly issued challenge.
func (f *DeclarationForm) MarkOTPSent(at time.Time) {
	f.Passenger.OTP = OTPChallenge{Sent: true, SentAt: at}
}

// MarkOTPVerified completes the challenge.
func (f *DeclarationForm) MarkOTPVerified() {
	f.Passenger.OTP.Verified = true
}

// TravelUpdate carries optional travel fields. Countries visited are managed
// through AddCountryVisited and RemoveCountryVisited.
type TravelUpdate struct {
	ArrivalDate    *string
	ArrivingFrom   *string
	ConveyanceMode *ConveyanceMode
	VehicleNumber  *string
	PointOfEntry   *string
}

// ApplyTravel writes the provided fields. Last write wins.
func (f *DeclarationForm) ApplyTravel(u TravelUpdate) {
	t := &f.Travel
	if u.ArrivalDate != nil {
		t.ArrivalDate = strings.TrimSpace(*u.ArrivalDate)
	}
	if u.ArrivingFrom != nil {
		t.ArrivingFrom = pstrings.NormalizeCode(*u.ArrivingFrom)
	}
	if u.ConveyanceMode != nil {
		t.ConveyanceMode = ConveyanceMode(strings.TrimSpace(string(*u.ConveyanceMode)))
	}
	if u.VehicleNumber != nil {
		t.VehicleNumber = strings.ToUpper(strings.TrimSpace(*u.VehicleNumber))
	}
	if u.PointOfEntry != nil {
		t.PointOfEntry = strings.TrimSpace(*u.PointOfEntry)
	}
}

// AddCountryVisited appends a country code. Duplicates and a seventh entry
// are rejected.
func (f *DeclarationForm) AddCountryVisited(code string) error {
	code = pstrings.NormalizeCode(code)
	if code == "" {
		return dErrors.NewValidation("country code is required", map[string]string{"code": markerRequired})
	}
	if slices.Contains(f.Travel.CountriesVisited, code) {
		return dErrors.NewValidation("country already added", map[string]string{"code": "Duplicate"})
	}
	if len(f.Travel.CountriesVisited) >= MaxCountriesVisited {
		return dErrors.NewValidation("at most 6 countries can be listed", map[string]string{"countries_visited": "Limit reached"})
	}
	f.Travel.CountriesVisited = append(f.Travel.CountriesVisited, code)
	return nil
}

// RemoveCountryVisited drops a code, reporting whether it was present.
func (f *DeclarationForm) RemoveCountryVisited(code string) bool {
	code = pstrings.NormalizeCode(code)
	i := slices.Index(f.Travel.CountriesVisited, code)
	if i < 0 {
		return false
	}
	f.Travel.CountriesVisited = slices.Delete(f.Travel.CountriesVisited, i, i+1)
	return true
}

// DeclarationFlags carries the declaration step answers; nil leaves a value as is.
type DeclarationFlags struct {
	HasItemsToDeclare *YesNo
	Categories        map[Category]YesNo
}

// ApplyFlags writes the provided answers.
func (f *DeclarationForm) ApplyFlags(u DeclarationFlags) error {
	if u.HasItemsToDeclare != nil {
		if v := *u.HasItemsToDeclare; v != Unset && !v.IsValid() {
			return dErrors.NewValidation("invalid answer", map[string]string{"has_items_to_declare": markerInvalid})
		}
		f.HasItemsToDeclare = *u.HasItemsToDeclare
	}
	for c, v := range u.Categories {
		if !c.IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, "unknown category")
		}
		if v != Unset && !v.IsValid() {
			return dErrors.NewValidation("invalid answer", map[string]string{c.Slug(): markerInvalid})
		}
	}
	if f.Flags == nil {
		f.Flags = make(map[Category]YesNo)
	}
	for c, v := range u.Categories {
		f.Flags[c] = v
	}
	return nil
}

// Flag returns a category's answer.
func (f *DeclarationForm) Flag(c Category) YesNo {
	return f.Flags[c]
}

// AddItem validates an item and appends it to the category's list.
func (f *DeclarationForm) AddItem(c Category, it Item) error {
	if !c.HasItems() {
		return dErrors.New(dErrors.CodeInvalidInput, "category does not hold items")
	}
	if it == nil || it.Shape() != c.Shape() {
		return dErrors.New(dErrors.CodeInvalidInput, "item does not match category")
	}
	normalized, markers := ValidateItem(it)
	if len(markers) > 0 {
		return dErrors.NewValidation("item is incomplete", markers)
	}
	if f.Items == nil {
		f.Items = make(ItemBook)
	}
	f.Items[c] = append(f.Items[c], normalized)
	return nil
}

// RemoveItem deletes the item at index from the category's list.
func (f *DeclarationForm) RemoveItem(c Category, index int) error {
	items := f.Items[c]
	if index < 0 || index >= len(items) {
		return dErrors.New(dErrors.CodeNotFound, "item not found")
	}
	f.Items[c] = slices.Delete(slices.Clone(items), index, index+1)
	return nil
}

// ReplaceAssessments swaps in the server-computed lines in full.
func (f *DeclarationForm) ReplaceAssessments(lines []AssessmentLine) {
	out := make([]AssessmentLine, len(lines))
	for i, l := range lines {
		out[i] = l.normalized()
	}
	f.Assessments = out
}
