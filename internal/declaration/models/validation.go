package models

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	markerRequired = "Required"
	markerInvalid  = "Invalid"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance returns the shared validator configured for this package:
// JSON field names in error markers, Amount treated as its decimal string, and
// the custom enum/date tags.
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
		v.RegisterCustomTypeFunc(func(f reflect.Value) any {
			if a, ok := f.Interface().(Amount); ok {
				return a.String()
			}
			return nil
		}, Amount{})
		_ = v.RegisterValidation("dmy", func(fl validator.FieldLevel) bool {
			return IsDMY(fl.Field().String())
		})
		_ = v.RegisterValidation("citizenship", func(fl validator.FieldLevel) bool {
			return Citizenship(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
			return Gender(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("conveyance", func(fl validator.FieldLevel) bool {
			return ConveyanceMode(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("yesno", func(fl validator.FieldLevel) bool {
			return YesNo(fl.Field().String()).IsValid()
		})
		validate = v
	})
	return validate
}

// fieldMarkers validates v and returns per-field markers, or nil when valid.
// Missing values are marked "Required"; malformed ones "Invalid".
func fieldMarkers(v any) map[string]string {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": markerInvalid}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		marker := markerInvalid
		switch fe.Tag() {
		case "required", "gt":
			marker = markerRequired
		}
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = marker
		}
	}
	return out
}

// ValidateItem normalizes the item and returns its per-field markers.
func ValidateItem(it Item) (Item, map[string]string) {
	it = it.normalize()
	markers := fieldMarkers(it)
	if markers == nil {
		markers = amountMarkers(it)
	}
	return it, markers
}

// amountMarkers rejects negative money, which the struct tags cannot express.
func amountMarkers(it Item) map[string]string {
	check := func(field string, a *Amount) map[string]string {
		if a != nil && a.IsNegative() {
			return map[string]string{field: markerInvalid}
		}
		return nil
	}
	switch v := it.(type) {
	case GoodsItem:
		return check("value", v.Value)
	case FundsItem:
		return check("value_of_fund", v.ValueOfFund)
	case DeviceItem:
		return check("value", v.Value)
	case ReimportationItem:
		return check("value", v.Value)
	}
	return nil
}
