package models

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	declmodels "travelgate/internal/declaration/models"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// Validate returns per-field markers for d, or nil when it can be submitted.
func (d Details) Validate() map[string]string {
	out := make(map[string]string)
	if err := validatorInstance().Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return map[string]string{"_": "Invalid"}
		}
		for _, fe := range verrs {
			marker := "Invalid"
			if strings.HasPrefix(fe.Tag(), "required") {
				marker = "Required"
			}
			out[fe.Field()] = marker
		}
	}
	if d.Type == TypeIndividual && d.DateOfBirth != "" && !declmodels.IsDMY(d.DateOfBirth) {
		out["date_of_birth"] = "Invalid"
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ToSubmission shapes the request body. Dates go out as ISO 8601 UTC.
func (d Details) ToSubmission(phone string) Submission {
	return Submission{
		Type:               d.Type,
		Phone:              phone,
		FirstName:          d.FirstName,
		Surname:            d.Surname,
		IDNumber:           d.IDNumber,
		DateOfBirth:        declmodels.WireDate(d.DateOfBirth),
		BusinessName:       d.BusinessName,
		RegistrationNumber: d.RegistrationNumber,
		Email:              d.Email,
		PostalAddress:      d.PostalAddress,
	}
}

// ValidatePhone checks the selected phone is an E.164 number.
func ValidatePhone(phone string) map[string]string {
	if strings.TrimSpace(phone) == "" {
		return map[string]string{"phone": "Required"}
	}
	if err := validatorInstance().Var(strings.TrimSpace(phone), "e164"); err != nil {
		return map[string]string{"phone": "Invalid"}
	}
	return nil
}
