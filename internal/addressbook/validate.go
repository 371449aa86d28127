package addressbook

import (
	"github.com/go-playground/validator/v10"
	"github.com/sawaikart/padharo/internal/domain"
)

// AddressPayload is the inbound create/update form. Validation runs before
// any address book call; field errors stay in the form layer.
type AddressPayload struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,len=10,numeric"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code" validate:"required,len=6,numeric"`
	Country string `json:"country"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages keeps user-facing copy per field; validator tags drive which
// one fires.
var fieldMessages = map[string]string{
	"Name":    "Name is required",
	"Phone":   "Phone must be exactly 10 digits",
	"Street":  "Street is required",
	"City":    "City is required",
	"ZipCode": "PIN code must be exactly 6 digits",
}

// ValidatePayload checks required fields and digit constraints. Returns a
// domain.ValidationError carrying every failed field at once.
func ValidatePayload(p AddressPayload) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.WrapError(err, domain.EINVALID, "address.validate", "invalid address payload")
	}

	var out error
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		out = domain.AddFieldError(out, fe.Field(), msg)
	}
	return out
}

// ValidateDigits rejects non-numeric input character-by-character as typed.
// Used by the live field-validation endpoint for phone and PIN inputs; a
// partial value is fine as long as every rune so far is a digit.
func ValidateDigits(field, value string) error {
	for _, r := range value {
		if r < '0' || r > '9' {
			return domain.NewValidationError("address.validate_digits", field, "Only digits are allowed")
		}
	}
	return nil
}

// ToAddress converts a validated payload into the domain shape.
func (p AddressPayload) ToAddress() domain.Address {
	return domain.Address{
		ID:      p.ID,
		Label:   p.Label,
		Name:    p.Name,
		Phone:   p.Phone,
		Street:  p.Street,
		City:    p.City,
		State:   p.State,
		ZipCode: p.ZipCode,
		Country: p.Country,
	}
}
