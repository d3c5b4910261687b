package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Errors maps a JSON field name to the validation tag it failed.
type Errors map[string]string

// Missing reports whether any failure is an absent required field.
func (e Errors) Missing() bool {
	for _, tag := range e {
		if tag == "required" {
			return true
		}
	}
	return false
}

// Validate struct fields
func Validate(v any) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs := make(Errors)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs[""] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = fe.Tag()
	}
	return errs
}
