package handler

import (
	"time"

	"travelgate/internal/declaration/models"
	"travelgate/internal/declaration/wizard"
)

// PassengerRequest is a partial passenger update. Absent fields are left as is.
type PassengerRequest struct {
	Citizenship     *models.Citizenship `json:"citizenship"`
	Surname         *string             `json:"surname"`
	FirstName       *string             `json:"first_name"`
	PassportNumber  *string             `json:"passport_number"`
	Nationality     *string             `json:"nationality"`
	DateOfBirth     *string             `json:"date_of_birth"`
	Profession      *string             `json:"profession"`
	Gender          *models.Gender      `json:"gender"`
	Phone           *string             `json:"phone"`
	Email           *string             `json:"email"`
	HotelResidence  *string             `json:"hotel_residence"`
	PhysicalAddress *string             `json:"physical_address"`
}

func (r PassengerRequest) toUpdate() models.PassengerUpdate {
	return models.PassengerUpdate{
		Citizenship:     r.Citizenship,
		Surname:         r.Surname,
		FirstName:       r.FirstName,
		PassportNumber:  r.PassportNumber,
		Nationality:     r.Nationality,
		DateOfBirth:     r.DateOfBirth,
		Profession:      r.Profession,
		Gender:          r.Gender,
		Phone:           r.Phone,
		Email:           r.Email,
		HotelResidence:  r.HotelResidence,
		PhysicalAddress: r.PhysicalAddress,
	}
}

type TaxPINRequest struct {
	TaxPIN string `json:"tax_pin"`
}

type OTPVerifyRequest struct {
	Code string `json:"code"`
}

type TravelRequest struct {
	ArrivalDate    *string                `json:"arrival_date"`
	ArrivingFrom   *string                `json:"arriving_from"`
	ConveyanceMode *models.ConveyanceMode `json:"conveyance_mode"`
	VehicleNumber  *string                `json:"vehicle_number"`
	PointOfEntry   *string                `json:"point_of_entry"`
}

func (r TravelRequest) toUpdate() models.TravelUpdate {
	return models.TravelUpdate{
		ArrivalDate:    r.ArrivalDate,
		ArrivingFrom:   r.ArrivingFrom,
		ConveyanceMode: r.ConveyanceMode,
		VehicleNumber:  r.VehicleNumber,
		PointOfEntry:   r.PointOfEntry,
	}
}

type CountryRequest struct {
	Code string `json:"code"`
}

// FlagsRequest keys categories by slug or classification code.
type FlagsRequest struct {
	HasItemsToDeclare *models.YesNo                    `json:"has_items_to_declare"`
	Categories        map[models.Category]models.YesNo `json:"categories"`
}

func (r FlagsRequest) toUpdate() models.DeclarationFlags {
	return models.DeclarationFlags{
		HasItemsToDeclare: r.HasItemsToDeclare,
		Categories:        r.Categories,
	}
}

// DeclarationResponse is the wizard view rendered for the active step.
type DeclarationResponse struct {
	SessionID       string                  `json:"session_id"`
	Step            string                  `json:"step"`
	ReferenceNumber string                  `json:"reference_number,omitempty"`
	OTPRequired     bool                    `json:"otp_required"`
	Form            *models.DeclarationForm `json:"form"`
	TotalTax        models.Amount           `json:"total_tax"`
	Checkout        *models.FinalizeResult  `json:"checkout,omitempty"`
	Warning         string                  `json:"warning,omitempty"`
	ExpiresAt       time.Time               `json:"expires_at"`
}

func toResponse(d *models.Declaration) DeclarationResponse {
	return DeclarationResponse{
		SessionID:       d.SessionID.String(),
		Step:            d.Step.String(),
		ReferenceNumber: d.Form.ReferenceNumber.String(),
		OTPRequired:     d.Form.RequiresOTP(),
		Form:            d.Form,
		TotalTax:        models.TotalTax(d.Form.Assessments),
		Checkout:        d.Checkout,
		ExpiresAt:       d.ExpiresAt,
	}
}

type StartResponse struct {
	SessionToken string              `json:"session_token"`
	Declaration  DeclarationResponse `json:"declaration"`
}

type PaymentResponse struct {
	Mode          wizard.PaymentMode  `json:"mode"`
	RedirectURL   string              `json:"redirect_url,omitempty"`
	InvoiceNumber string              `json:"invoice_number,omitempty"`
	Message       string              `json:"message,omitempty"`
	Declaration   DeclarationResponse `json:"declaration"`
}

type HSCodeResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
