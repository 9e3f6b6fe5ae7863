/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package schema

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

var messages = map[string]string{
	"min":          "length must be at least {param} characters",
	"max":          "length must be at most {param} characters",
	"gte":          "must be greater than or equal to {param}",
	"lte":          "must be less than or equal to {param}",
	"calendardate": "must be a calendar date in " + DateFormat + " format",
}

func registerCalendarDate(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return ValidateDate(value) == nil
}

// jsonName reports fields by their wire name rather than the Go one.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func init() {
	validate = val.New()
	validate.RegisterTagNameFunc(jsonName)

	if err := validate.RegisterValidation("calendardate", registerCalendarDate); err != nil {
		panic(err)
	}
}

// check runs the struct tag rules over data and appends anything broken to
// the decoder, prefixing paths with root. Paths already reported during
// decoding are skipped.
func (d *decoder) check(root string, data any) {
	err := validate.Struct(data)
	if err == nil {
		return
	}

	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		d.fail(pathOrRoot(root), err.Error(), nil)
		return
	}

	for _, valErr := range valErrors {
		// Drop the leading struct type name from the namespace.
		_, field, _ := strings.Cut(valErr.Namespace(), ".")
		field = join(root, field)

		if d.covered(field) {
			continue
		}

		d.fail(field, message(valErr), valErr.Value())
	}
}

func message(valErr val.FieldError) string {
	msg, ok := messages[valErr.Tag()]
	if !ok {
		return "failed rule " + valErr.Tag()
	}

	return strings.ReplaceAll(msg, "{param}", valErr.Param())
}

// covered is true when field, or any object containing it, already failed.
func (d *decoder) covered(field string) bool {
	for {
		if d.reported[field] {
			return true
		}

		i := strings.LastIndex(field, ".")
		if i < 0 {
			return false
		}

		field = field[:i]
	}
}
