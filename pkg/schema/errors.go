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
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotEnvelope is matched by a SchemaError raised when an object lacks the
// bookingid/booking pair that identifies a creation response.
var ErrNotEnvelope = errors.New("object is not a booking envelope")

// absent marks a violation raised for a key that was not present at all.
type absent struct{}

func (absent) String() string {
	return "<absent>"
}

// Violation is a single field level breach of the booking schema.
type Violation struct {
	// Field is the dotted path of the offending field, e.g. booking.bookingdates.checkin.
	Field string
	// Constraint describes the rule that was broken.
	Constraint string
	// Value is what was received.
	Value any
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (got %s)", v.Field, v.Constraint, formatValue(v.Value))
}

// SchemaError reports every violation found while validating a payload.
//
//nolint:revive // the name is part of the suite's error taxonomy
type SchemaError struct {
	// Model is the name of the schema that was being validated.
	Model      string
	Violations []Violation

	cause error
}

func (e *SchemaError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "invalid %s: %d violation(s)", e.Model, len(e.Violations))

	for _, v := range e.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v.String())
	}

	return b.String()
}

func (e *SchemaError) Unwrap() error {
	return e.cause
}

// Fields returns the paths of all violating fields in report order.
func (e *SchemaError) Fields() []string {
	fields := make([]string, len(e.Violations))

	for i := range e.Violations {
		fields[i] = e.Violations[i].Field
	}

	return fields
}

// Violation looks up the first violation for the given field path.
func (e *SchemaError) Violation(field string) (Violation, bool) {
	for _, v := range e.Violations {
		if v.Field == field {
			return v, true
		}
	}

	return Violation{}, false
}

// RuleError is raised when schema valid data breaks a business rule.
type RuleError struct {
	Rule     string
	Expected string
	Actual   string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("business rule %q violated: expected %s, got %s", e.Rule, e.Expected, e.Actual)
}

func formatValue(value any) string {
	switch t := value.(type) {
	case absent:
		return t.String()
	case json.RawMessage:
		return string(t)
	case nil:
		return "null"
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	return string(data)
}
