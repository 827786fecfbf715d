package storage

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/contacts-api/internal/types"
)

// validate is shared; a *validator.Validate caches struct metadata and is
// safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name ("email") rather than the Go field
	// name ("Email"), since that is what API clients sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks in against the tags on types.ContactInput and returns
// a *ValidationError describing every failed field, or nil.
func Validate(in types.ContactInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate contact: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return &ValidationError{Fields: msgs}
}
