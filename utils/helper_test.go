package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func TestIsValidCIN(t *testing.T) {
	tests := []struct {
		cin  string
		want bool
	}{
		{"U29100MH2010PTC123456", true},
		{" l17110mh1973plc019786 ", true},
		{"12345", false},
		{"X29100MH2010PTC123456", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidCIN(tt.cin); got != tt.want {
			t.Errorf("IsValidCIN(%q) = %v, want %v", tt.cin, got, tt.want)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	if err := ValidatePhoneNumber("+91 98200 12345", CountryCode); err != nil {
		t.Errorf("valid number rejected: %v", err)
	}
	if err := ValidatePhoneNumber("12", CountryCode); err == nil {
		t.Errorf("expected an error for a short number")
	}
}

func TestProcessValidationErrors(t *testing.T) {
	type input struct {
		Name string `validate:"required"`
		CIN  string `validate:"cin"`
	}
	got := ProcessValidationErrors(ValidateInput(&input{CIN: "bad"}))
	if got["Name"] != "required" || got["CIN"] != "cin" {
		t.Fatalf("unexpected errors %v", got)
	}

	got = ProcessValidationErrors(errors.New("boom"))
	if got["_"] != "boom" {
		t.Fatalf("unexpected errors %v", got)
	}
}

func TestGetFinancialYearRange(t *testing.T) {
	start, end := GetFinancialYearRange(time.April, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC))
	if !start.Equal(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}

	start, _ = GetFinancialYearRange(time.April, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	if start.Year() != 2025 {
		t.Errorf("start = %v, want April 2025", start)
	}
}

func TestUniqueSliceAndDereference(t *testing.T) {
	got := UniqueSlice([]int{3, 1, 3, 2, 1})
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("UniqueSlice = %v", got)
	}
	var nilPtr *int
	if DereferencePtr(nilPtr) != 0 || DereferencePtr(nilPtr, 7) != 7 {
		t.Fatalf("nil pointer should yield the default")
	}
	v := 5
	if DereferencePtr(&v, 7) != 5 {
		t.Fatalf("pointer value ignored")
	}
	ist := time.FixedZone("IST", 5*3600+1800)
	if got := DateOnly(time.Date(2025, time.June, 30, 2, 0, 0, 0, ist)); !got.Equal(time.Date(2025, time.June, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("DateOnly = %v", got)
	}
}

func TestNewValidator(t *testing.T) {
	v, err := newValidator(customValidations)
	if err != nil {
		t.Fatalf("newValidator: %v", err)
	}
	type input struct {
		CIN   string `validate:"cin"`
		Phone string `validate:"phone"`
	}
	if err := v.Struct(&input{CIN: "U29100MH2010PTC123456", Phone: "+91 98200 12345"}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	got := ProcessValidationErrors(v.Struct(&input{CIN: "bad", Phone: "12"}))
	if got["CIN"] != "cin" || got["Phone"] != "phone" {
		t.Fatalf("custom tags not applied: %v", got)
	}

	if _, err := newValidator(map[string]validator.Func{"": func(validator.FieldLevel) bool { return true }}); err == nil {
		t.Fatalf("expected an error for an empty tag")
	}
}
