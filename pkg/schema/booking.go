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
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BookingDates is the stay period of a booking.
//
// Ordering is deliberately absent from the schema, see CheckOrder.
type BookingDates struct {
	Checkin  string `json:"checkin" validate:"calendardate"`
	Checkout string `json:"checkout" validate:"calendardate"`
}

// CheckOrder enforces the business rule that a stay ends after it begins.
// The dates must already be schema valid.
func (d BookingDates) CheckOrder() error {
	nights, err := d.Nights()
	if err != nil {
		return err
	}

	if nights <= 0 {
		return &RuleError{
			Rule:     "checkin before checkout",
			Expected: fmt.Sprintf("checkin < checkout (%s)", d.Checkout),
			Actual:   fmt.Sprintf("checkin %s", d.Checkin),
		}
	}

	return nil
}

// Nights returns the number of nights between checkin and checkout, which
// is negative when the dates are inverted.
func (d BookingDates) Nights() (int, error) {
	checkin, err := ParseDate(d.Checkin)
	if err != nil {
		return 0, fmt.Errorf("parsing checkin: %w", err)
	}

	checkout, err := ParseDate(d.Checkout)
	if err != nil {
		return 0, fmt.Errorf("parsing checkout: %w", err)
	}

	return int(checkout.Sub(checkin).Hours() / 24), nil
}

// BookingData is a booking as returned by GET and PUT, and as nested in the
// creation envelope.
type BookingData struct {
	Firstname       string       `json:"firstname" validate:"min=2,max=50"`
	Lastname        string       `json:"lastname" validate:"min=2,max=50"`
	TotalPrice      int          `json:"totalprice" validate:"gte=0,lte=999999"`
	DepositPaid     bool         `json:"depositpaid"`
	BookingDates    BookingDates `json:"bookingdates"`
	AdditionalNeeds *string      `json:"additionalneeds,omitempty"`
}

func (*BookingData) isResponse() {}

// Payload implements Response.
func (b *BookingData) Payload() *BookingData {
	return b
}

// NormalizeName applies the title casing used for guest names, e.g.
// "mARY jANE" becomes "Mary Jane". Every run of cased letters is a word, so
// "o'brien" becomes "O'Brien" and "abc1def" becomes "Abc1Def".
func NormalizeName(name string) string {
	caser := cases.Title(language.Und)

	var b strings.Builder

	start, inWord := 0, false

	for i, r := range name {
		if cased := isCased(r); cased != inWord {
			b.WriteString(titleRun(caser, name[start:i], inWord))
			start, inWord = i, cased
		}
	}

	b.WriteString(titleRun(caser, name[start:], inWord))

	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

func titleRun(caser cases.Caser, run string, word bool) string {
	if !word {
		return run
	}

	return caser.String(run)
}

func decodeBookingDates(d *decoder, path string, raw json.RawMessage) BookingDates {
	var dates BookingDates

	fields, ok := d.object(path, raw)
	if !ok {
		return dates
	}

	dates.Checkin = d.requiredString(fields, path, "checkin")
	dates.Checkout = d.requiredString(fields, path, "checkout")

	return dates
}

// decodeBookingData reads a booking object. Unknown keys are ignored at this
// level, only the envelope is strict.
func decodeBookingData(d *decoder, path string, fields map[string]json.RawMessage) *BookingData {
	booking := &BookingData{
		Firstname:       d.requiredString(fields, path, "firstname"),
		Lastname:        d.requiredString(fields, path, "lastname"),
		TotalPrice:      d.requiredInt(fields, path, "totalprice"),
		DepositPaid:     d.requiredBool(fields, path, "depositpaid"),
		AdditionalNeeds: d.optionalString(fields, path, "additionalneeds"),
	}

	if raw, ok := d.lookup(fields, path, "bookingdates"); ok {
		booking.BookingDates = decodeBookingDates(d, join(path, "bookingdates"), raw)
	}

	d.check(path, booking)

	booking.Firstname = NormalizeName(booking.Firstname)
	booking.Lastname = NormalizeName(booking.Lastname)

	return booking
}
