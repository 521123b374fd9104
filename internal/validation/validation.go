// Package validation wraps go-playground/validator with the tags and error
// shape used by railmap's hand-authored YAML files.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/agentstation/railmap/pkg/colors"
	"github.com/agentstation/railmap/pkg/errors"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with railmap's custom tags
// registered:
//
//	linecolor  a "#RGB" or "#RRGGBB" color, '#' optional
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(yamlName)
		_ = v.RegisterValidation("linecolor", func(fl validator.FieldLevel) bool {
			_, err := colors.ParseHex(fl.Field().String())
			return err == nil
		})
		instance = v
	})
	return instance
}

// Struct validates s and converts the first failure into a
// *errors.ValidationError naming the YAML path of the offending field.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.WrapValidation("", err)
	}

	fe := fieldErrs[0]
	return &errors.ValidationError{
		Field:   fieldPath(fe.Namespace()),
		Value:   fe.Value(),
		Message: describe(fe),
	}
}

// yamlName reports fields by their YAML key so messages match the file.
func yamlName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "unique":
		return fmt.Sprintf("must have unique %s values", fe.Param())
	case "linecolor":
		return "must be a 3 or 6 digit hex color"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
