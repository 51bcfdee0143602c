package validator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Validator is a validator that validates the given struct.
type Validator interface {
	// Validate validates the given struct
	Validate(s any) error
	// ValidateVar validates a single value against a tag, e.g. "min=1,dive,gt=0"
	ValidateVar(field any, tag string) error
}

type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator creates a new default validator.
// It returns a new DefaultValidator and an error if the validator registration fails.
func NewDefaultValidator() (*DefaultValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonFieldName)

	// Register custom validators
	if err := v.RegisterValidation("maxdecimals", validateMaxDecimals); err != nil {
		return nil, fmt.Errorf("register maxdecimals validator: %w", err)
	}

	return &DefaultValidator{v: v}, nil
}

func (v DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

func (v DefaultValidator) ValidateVar(field any, tag string) error {
	return v.v.Var(field, tag)
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "maxdecimals":
		return fmt.Sprintf("must have at most %s decimal places", fe.Param())
	default:
		return "is invalid"
	}
}

// validateMaxDecimals checks a float field has no more than param decimal places.
func validateMaxDecimals(fl validator.FieldLevel) bool {
	places, err := strconv.Atoi(fl.Param())
	if err != nil || places < 0 {
		return false
	}

	f := fl.Field().Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return len(s)-i-1 <= places
		}
	}
	return true
}
