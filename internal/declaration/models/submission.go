package models

import (
	id "travelgate/pkg/domain"
)

// SubmissionItem is one flattened item as the assessment API expects it.
// Keys a variant does not carry are omitted, not zeroed.
type SubmissionItem struct {
	Type               string  `json:"type"`
	ClassificationCode string  `json:"classification_code"`
	HSCode             string  `json:"hscode,omitempty"`
	Description        string  `json:"description,omitempty"`
	Make               string  `json:"make,omitempty"`
	Model              string  `json:"model,omitempty"`
	IMEI               string  `json:"imei,omitempty"`
	CertificateNumber  string  `json:"certificate_number,omitempty"`
	Quantity           *int    `json:"quantity,omitempty"`
	Value              *Amount `json:"value,omitempty"`
	Currency           string  `json:"currency,omitempty"`
	ValueOfFund        *Amount `json:"value_of_fund,omitempty"`
	SourceOfFund       string  `json:"source_of_fund,omitempty"`
	PurposeOfFund      string  `json:"purpose_of_fund,omitempty"`
	Attachment         string  `json:"attachment,omitempty"`
}

func tagged(c Category) SubmissionItem {
	return SubmissionItem{Type: c.Slug(), ClassificationCode: c.ClassificationCode()}
}

func optionalInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func (i GoodsItem) flatten(c Category) SubmissionItem {
	out := tagged(c)
	out.HSCode = i.HSCode
	out.Description = i.Description
	out.Quantity = optionalInt(i.Quantity)
	out.Value = i.Value
	out.Currency = i.Currency
	out.Attachment = i.Attachment
	return out
}

func (i FundsItem) flatten(c Category) SubmissionItem {
	out := tagged(c)
	out.Currency = i.Currency
	out.ValueOfFund = i.ValueOfFund
	out.SourceOfFund = i.SourceOfFund
	out.PurposeOfFund = i.PurposeOfFund
	out.Attachment = i.Attachment
	return out
}

func (i DeviceItem) flatten(c Category) SubmissionItem {
	out := tagged(c)
	out.Make = i.Make
	out.Model = i.Model
	out.IMEI = i.IMEI
	out.Quantity = optionalInt(i.Quantity)
	out.Value = i.Value
	out.Currency = i.Currency
	out.Attachment = i.Attachment
	return out
}

func (i ReimportationItem) flatten(c Category) SubmissionItem {
	out := tagged(c)
	out.CertificateNumber = i.CertificateNumber
	out.Description = i.Description
	out.Quantity = optionalInt(i.Quantity)
	out.Value = i.Value
	out.Currency = i.Currency
	out.Attachment = i.Attachment
	return out
}

// FlattenItems builds the ordered submission list: categories in
// classification-code order, list order within each, and only categories
// flagged Yes. Nothing is submitted unless the passenger has items to declare.
func (f *DeclarationForm) FlattenItems() []SubmissionItem {
	if !f.HasItemsToDeclare.IsYes() {
		return nil
	}
	var out []SubmissionItem
	for _, c := range ItemCategories() {
		if !f.Flag(c).IsYes() {
			continue
		}
		for _, it := range f.Items[c] {
			out = append(out, it.flatten(c))
		}
	}
	return out
}

// HasProhibitedItems reports the prohibited flag as a boolean.
func (f *DeclarationForm) HasProhibitedItems() bool {
	return f.HasItemsToDeclare.IsYes() && f.Flag(CategoryProhibited).IsYes()
}

// ItemsSubmission is the items/assessment request body.
type ItemsSubmission struct {
	ReferenceNumber    id.ReferenceNumber `json:"reference_number"`
	Items              []SubmissionItem   `json:"items"`
	HasProhibitedItems bool               `json:"has_prohibited_items"`
	ComputeAssessments bool               `json:"compute_assessments"`
}

// ItemsSubmission shapes the items payload. ok is false when there is
// nothing to submit: no flagged items and no prohibited goods.
func (f *DeclarationForm) ItemsSubmission() (ItemsSubmission, bool) {
	items := f.FlattenItems()
	prohibited := f.HasProhibitedItems()
	if len(items) == 0 && !prohibited {
		return ItemsSubmission{}, false
	}
	if items == nil {
		items = []SubmissionItem{}
	}
	return ItemsSubmission{
		ReferenceNumber:    f.ReferenceNumber,
		Items:              items,
		HasProhibitedItems: prohibited,
		ComputeAssessments: true,
	}, true
}

// PassengerSubmission is the passenger-info request body.
type PassengerSubmission struct {
	ReferenceNumber id.ReferenceNumber `json:"reference_number"`
	Citizenship     Citizenship        `json:"citizenship"`
	Surname         string             `json:"surname"`
	FirstName       string             `json:"first_name"`
	PassportNumber  string             `json:"passport_number"`
	Nationality     string             `json:"nationality"`
	DateOfBirth     string             `json:"date_of_birth"`
	Profession      string             `json:"profession,omitempty"`
	Gender          Gender             `json:"gender"`
	TaxPIN          string             `json:"tax_pin,omitempty"`
	Phone           string             `json:"phone"`
	Email           string             `json:"email"`
	HotelResidence  string             `json:"hotel_residence,omitempty"`
	PhysicalAddress string             `json:"physical_address,omitempty"`
}

// PassengerSubmission shapes the passenger payload with the date converted
// to its wire form.
func (f *DeclarationForm) PassengerSubmission() PassengerSubmission {
	p := f.Passenger
	return PassengerSubmission{
		ReferenceNumber: f.ReferenceNumber,
		Citizenship:     p.Citizenship,
		Surname:         p.Surname,
		FirstName:       p.FirstName,
		PassportNumber:  p.PassportNumber,
		Nationality:     p.Nationality,
		DateOfBirth:     WireDate(p.DateOfBirth),
		Profession:      p.Profession,
		Gender:          p.Gender,
		TaxPIN:          p.TaxPIN,
		Phone:           p.Phone,
		Email:           p.Email,
		HotelResidence:  p.HotelResidence,
		PhysicalAddress: p.PhysicalAddress,
	}
}

// TravelSubmission is the travel-info request body.
type TravelSubmission struct {
	ReferenceNumber  id.ReferenceNumber `json:"reference_number"`
	ArrivalDate      string             `json:"arrival_date"`
	ArrivingFrom     string             `json:"arriving_from"`
	ConveyanceMode   ConveyanceMode     `json:"conveyance_mode"`
	VehicleNumber    string             `json:"vehicle_number,omitempty"`
	PointOfEntry     string             `json:"point_of_entry"`
	CountriesVisited []string           `json:"countries_visited"`
}

// TravelSubmission shapes the travel payload.
func (f *DeclarationForm) TravelSubmission() TravelSubmission {
	t := f.Travel
	visited := t.CountriesVisited
	if visited == nil {
		visited = []string{}
	}
	return TravelSubmission{
		ReferenceNumber:  f.ReferenceNumber,
		ArrivalDate:      WireDate(t.ArrivalDate),
		ArrivingFrom:     t.ArrivingFrom,
		ConveyanceMode:   t.ConveyanceMode,
		VehicleNumber:    t.VehicleNumber,
		PointOfEntry:     t.PointOfEntry,
		CountriesVisited: visited,
	}
}
