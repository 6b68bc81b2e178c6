package accountdelivery

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidAmount checks that a string field parses as a non-negative decimal.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	amount, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return false
	}

	return !d.IsNegative()
}
