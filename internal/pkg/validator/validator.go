package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"hvacops/internal/pkg/apperr"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// report request field names, not Go field names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// Validate struct fields. Returns nil or an *apperr.ValidationError listing
// the failing fields in declaration order.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &apperr.ValidationError{Details: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Details[fe.Field()]; seen {
			continue
		}
		out.Fields = append(out.Fields, fe.Field())
		out.Details[fe.Field()] = fe.Tag()
	}
	return out
}
