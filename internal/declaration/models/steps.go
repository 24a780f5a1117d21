package models

import (
	dErrors "travelgate/pkg/domain-errors"
)

// ValidatePassengerStep checks the fields required to leave PassengerInfo,
// including the OTP gate for Kenyan passengers who requested a challenge.
func (f *DeclarationForm) ValidatePassengerStep() error {
	markers := fieldMarkers(f.Passenger)
	if f.OTPBlocks() {
		if markers == nil {
			markers = make(map[string]string)
		}
		markers["otp"] = "Not verified"
	}
	if len(markers) > 0 {
		return dErrors.NewValidation("passenger details are incomplete", markers)
	}
	return nil
}

// ValidateTravelStep checks the fields required to leave TravelInfo.
func (f *DeclarationForm) ValidateTravelStep() error {
	if markers := fieldMarkers(f.Travel); len(markers) > 0 {
		return dErrors.NewValidation("travel details are incomplete", markers)
	}
	return nil
}

// ValidateDeclarationsStep checks that the items question was answered.
func (f *DeclarationForm) ValidateDeclarationsStep() error {
	if !f.HasItemsToDeclare.IsValid() {
		return dErrors.NewValidation("declaration answer is required", map[string]string{"has_items_to_declare": markerRequired})
	}
	return nil
}
