package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ShippingAddress is the first checkout step. Every field is required.
type ShippingAddress struct {
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,phone"`
	Street     string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"pincode" validate:"required,pincode"`
}

var (
	validate *validator.Validate

	pincodeRe   = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	phoneRe     = regexp.MustCompile(`^\+?[0-9]{10,13}$`)
	phoneStrip  = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	fieldLabels = map[string]string{
		"full_name": "Full name",
		"email":     "Email",
		"phone":     "Phone number",
		"address":   "Address",
		"city":      "City",
		"state":     "State",
		"pincode":   "PIN code",
	}
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report json names so errors line up with the form fields
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Indian postal index number: six digits, no leading zero
	validate.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pincodeRe.MatchString(fl.Field().String())
	})

	validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(phoneStrip.Replace(fl.Field().String()))
	})
}

// Normalize trims surrounding whitespace from every field.
func (a ShippingAddress) Normalize() ShippingAddress {
	return ShippingAddress{
		FullName:   strings.TrimSpace(a.FullName),
		Email:      strings.TrimSpace(a.Email),
		Phone:      strings.TrimSpace(a.Phone),
		Street:     strings.TrimSpace(a.Street),
		City:       strings.TrimSpace(a.City),
		State:      strings.TrimSpace(a.State),
		PostalCode: strings.TrimSpace(a.PostalCode),
	}
}

// Validate returns a *ValidationError listing every bad field, or nil.
func (a ShippingAddress) Validate() error {
	err := validate.Struct(a)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		label := fieldLabels[fe.Field()]
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = label + " is required"
		case "email":
			fields[fe.Field()] = "Invalid email address"
		default:
			fields[fe.Field()] = "Invalid " + strings.ToLower(label)
		}
	}
	return &ValidationError{Fields: fields}
}
