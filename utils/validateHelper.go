package utils

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CIN: L/U + 5 digit industry code + 2 letter state + 4 digit year + 3 letter ownership + 6 digit number.
var cinPattern = regexp.MustCompile(`^[LU][0-9]{5}[A-Z]{2}[0-9]{4}[A-Z]{3}[0-9]{6}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// IsValidCIN reports whether cin has the 21 character Corporate Identification Number shape.
func IsValidCIN(cin string) bool {
	return cinPattern.MatchString(strings.ToUpper(strings.TrimSpace(cin)))
}

// customValidations are the project's tags on top of the validator's built-ins.
var customValidations = map[string]validator.Func{
	"cin": func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return v == "" || IsValidCIN(v)
	},
	"phone": func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return v == "" || ValidatePhoneNumber(v, CountryCode) == nil
	},
}

func newValidator(tags map[string]validator.Func) (*validator.Validate, error) {
	v := validator.New()
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register validation %q: %w", tag, err)
		}
	}
	return v, nil
}

// GetValidator returns the shared validator with the project's custom tags
// registered. It panics if a tag cannot be registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v, err := newValidator(customValidations)
		if err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

func ValidateInput(input any) error {
	return GetValidator().Struct(input)
}
