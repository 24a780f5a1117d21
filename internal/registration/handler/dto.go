package handler

import (
	"time"

	"travelgate/internal/registration/models"
)

type StartRequest struct {
	Type  models.RegistrationType `json:"type"`
	Phone string                  `json:"phone"`
}

type OTPVerifyRequest struct {
	Code string `json:"code"`
}

type DetailsRequest struct {
	FirstName          string `json:"first_name"`
	Surname            string `json:"surname"`
	IDNumber           string `json:"id_number"`
	DateOfBirth        string `json:"date_of_birth"`
	BusinessName       string `json:"business_name"`
	RegistrationNumber string `json:"registration_number"`
	Email              string `json:"email"`
	PostalAddress      string `json:"postal_address"`
}

func (r DetailsRequest) toDetails() models.Details {
	return models.Details{
		FirstName:          r.FirstName,
		Surname:            r.Surname,
		IDNumber:           r.IDNumber,
		DateOfBirth:        r.DateOfBirth,
		BusinessName:       r.BusinessName,
		RegistrationNumber: r.RegistrationNumber,
		Email:              r.Email,
		PostalAddress:      r.PostalAddress,
	}
}

type RegistrationResponse struct {
	SessionID   string                  `json:"session_id"`
	Type        models.RegistrationType `json:"type"`
	Phone       string                  `json:"phone"`
	OTPSent     bool                    `json:"otp_sent"`
	OTPVerified bool                    `json:"otp_verified"`
	Submitted   bool                    `json:"submitted"`
	PIN         string                  `json:"pin,omitempty"`
	ExpiresAt   time.Time               `json:"expires_at"`
}

type StartResponse struct {
	SessionToken string               `json:"session_token"`
	Registration RegistrationResponse `json:"registration"`
}

type SubmitResponse struct {
	PIN          string               `json:"pin"`
	Message      string               `json:"message,omitempty"`
	Registration RegistrationResponse `json:"registration"`
}

func toResponse(r *models.Registration) RegistrationResponse {
	return RegistrationResponse{
		SessionID:   r.SessionID.String(),
		Type:        r.Type,
		Phone:       r.Phone,
		OTPSent:     r.OTP.Sent,
		OTPVerified: r.OTP.Verified,
		Submitted:   r.IsSubmitted(),
		PIN:         r.PIN,
		ExpiresAt:   r.ExpiresAt,
	}
}
