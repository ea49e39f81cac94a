package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// GetValidator returns the shared validator, registering custom tags on first use
func GetValidator() *Validator {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("groupname", validateGroupName)
		validate = &Validator{validate: v}
	})
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateVar validates a single value against a tag expression
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

func validateGroupName(fl validator.FieldLevel) bool {
	return domain.ValidateGroupName(fl.Field().String()) == nil
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by field name so internal struct names are not leaked.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "groupname":
			errs[field] = ErrMsgInvalidNameError
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte", "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}
