package validation

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("truthy", truthy)
		validate = v
	})
	return validate
}

// truthy rejects empty values and zero, so "" and "0" count as missing.
func truthy(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return Filled(field.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() != 0
	case reflect.Float32, reflect.Float64:
		return field.Float() != 0
	default:
		return !field.IsZero()
	}
}

// Filled reports whether a raw input value counts as present. Only "" and the
// literal "0" are missing; "0.0", " 0 " and "-0" are kept as typed.
func Filled(value string) bool {
	return value != "" && value != "0"
}

// Complete reports whether every record has all of its fields filled. A single
// record and a list share this predicate; an empty list is complete.
func Complete[T any](records ...T) bool {
	v := validatorInstance()
	for _, record := range records {
		if err := v.Struct(record); err != nil {
			return false
		}
	}
	return true
}
