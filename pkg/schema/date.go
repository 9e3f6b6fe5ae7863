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
	"regexp"
	"time"
)

// DateFormat is the only date representation the booking API uses.
const DateFormat = "YYYY-MM-DD"

const dateLayout = "2006-01-02"

// time.Parse tolerates signs in the year, so the shape is pinned down first.
var dateShape = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// ValidateDate accepts value only if it is a real calendar date written
// exactly as YYYY-MM-DD.
func ValidateDate(value string) error {
	if _, err := ParseDate(value); err != nil {
		return &SchemaError{
			Model: "date",
			Violations: []Violation{
				{
					Field:      "$",
					Constraint: "must be a calendar date in " + DateFormat + " format",
					Value:      value,
				},
			},
		}
	}

	return nil
}

// ParseDate parses a booking date, it shares the rules of ValidateDate.
func ParseDate(value string) (time.Time, error) {
	if !dateShape.MatchString(value) {
		return time.Time{}, &time.ParseError{
			Layout:  dateLayout,
			Value:   value,
			Message: ": expected " + DateFormat,
		}
	}

	return time.Parse(dateLayout, value)
}

// FormatDate renders t in the booking API date format.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
