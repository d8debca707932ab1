package qaps

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateHeader checks the required header fields for submission: customer,
// project, product type, and plant must be present and the order quantity
// positive. Violations wrap ErrIncompleteHeader with the offending field
// names so they can be surfaced as user-facing validation feedback.
func ValidateHeader(h Header) error {
	err := validate.Struct(h)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}

	return fmt.Errorf("%w: %s", ErrIncompleteHeader, strings.Join(fields, ", "))
}
