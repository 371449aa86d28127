package addressbook

import (
	"testing"

	"github.com/sawaikart/padharo/internal/domain"
	"github.com/stretchr/testify/assert"
)

func validPayload() AddressPayload {
	return AddressPayload{
		Name:    "Asha Sharma",
		Phone:   "9876543210",
		Street:  "12 MI Road",
		City:    "Jaipur",
		State:   "Rajasthan",
		ZipCode: "302001",
		Country: "India",
	}
}

func TestValidatePayload_Valid(t *testing.T) {
	assert.NoError(t, ValidatePayload(validPayload()))
}

func TestValidatePayload_FieldFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AddressPayload)
		field  string
	}{
		{"missing name", func(p *AddressPayload) { p.Name = "" }, "Name"},
		{"short phone", func(p *AddressPayload) { p.Phone = "98765" }, "Phone"},
		{"alpha phone", func(p *AddressPayload) { p.Phone = "98765abcde" }, "Phone"},
		{"missing street", func(p *AddressPayload) { p.Street = "" }, "Street"},
		{"missing city", func(p *AddressPayload) { p.City = "" }, "City"},
		{"short pin", func(p *AddressPayload) { p.ZipCode = "3020" }, "ZipCode"},
		{"alpha pin", func(p *AddressPayload) { p.ZipCode = "30200a" }, "ZipCode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)

			err := ValidatePayload(p)
			assert.True(t, domain.IsValidationError(err), "expected validation error")

			fields := domain.GetValidationFields(err)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidatePayload_CollectsAllFields(t *testing.T) {
	p := validPayload()
	p.Name = ""
	p.Phone = "12"

	err := ValidatePayload(p)
	fields := domain.GetValidationFields(err)
	assert.Len(t, fields, 2)
}

func TestValidateDigits(t *testing.T) {
	// Character-by-character validation accepts partial numeric input
	assert.NoError(t, ValidateDigits("phone", ""))
	assert.NoError(t, ValidateDigits("phone", "9"))
	assert.NoError(t, ValidateDigits("phone", "987654"))
	assert.NoError(t, ValidateDigits("zip_code", "302001"))

	assert.Error(t, ValidateDigits("phone", "98a"))
	assert.Error(t, ValidateDigits("zip_code", "30 2001"))
	assert.Error(t, ValidateDigits("zip_code", "-302"))
}
