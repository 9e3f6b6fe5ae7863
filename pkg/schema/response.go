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
)

// Response is a validated booking API payload, either a *BookingResponse or
// a bare *BookingData.
type Response interface {
	isResponse()
	// Payload returns the booking carried by the response.
	Payload() *BookingData
}

// BookingResponse is the envelope returned when a booking is created.
type BookingResponse struct {
	BookingID int         `json:"bookingid"`
	Booking   BookingData `json:"booking"`
}

func (*BookingResponse) isResponse() {}

// Payload implements Response.
func (r *BookingResponse) Payload() *BookingData {
	return &r.Booking
}

func topLevel(d *decoder, body []byte) (map[string]json.RawMessage, bool) {
	return d.object("", body)
}

func result[T any](d *decoder, model string, value T, cause error) (T, error) {
	if !d.failed() {
		return value, nil
	}

	var zero T

	return zero, &SchemaError{
		Model:      model,
		Violations: d.violations,
		cause:      cause,
	}
}

// ValidateBookingResponse validates body as a creation envelope. Any key
// other than bookingid and booking is a violation. When either envelope key
// is missing the error also matches ErrNotEnvelope.
func ValidateBookingResponse(body []byte) (*BookingResponse, error) {
	d := newDecoder()

	fields, ok := topLevel(d, body)
	if !ok {
		return result[*BookingResponse](d, "BookingResponse", nil, nil)
	}

	var cause error

	_, hasID := fields["bookingid"]
	_, hasBooking := fields["booking"]

	if !hasID || !hasBooking {
		cause = ErrNotEnvelope
	}

	response := &BookingResponse{
		BookingID: d.requiredInt(fields, "", "bookingid"),
	}

	if raw, ok := d.lookup(fields, "", "booking"); ok {
		if bookingFields, ok := d.object("booking", raw); ok {
			response.Booking = *decodeBookingData(d, "booking", bookingFields)
		}
	}

	d.forbidExtra(fields, "", "bookingid", "booking")

	return result(d, "BookingResponse", response, cause)
}

// ValidateBooking validates body as a bare booking. Unknown keys are
// accepted.
func ValidateBooking(body []byte) (*BookingData, error) {
	d := newDecoder()

	fields, ok := topLevel(d, body)
	if !ok {
		return result[*BookingData](d, "BookingData", nil, nil)
	}

	return result(d, "BookingData", decodeBookingData(d, "", fields), nil)
}

// Validate decodes any booking API response. The strict envelope is tried
// first; objects that are not envelopes are validated as a bare booking.
func Validate(body []byte) (Response, error) {
	response, err := ValidateBookingResponse(body)
	if err == nil {
		return response, nil
	}

	if !errors.Is(err, ErrNotEnvelope) {
		return nil, err
	}

	booking, err := ValidateBooking(body)
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// ValidateMap validates an already decoded JSON object.
func ValidateMap(data map[string]any) (Response, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}

	return Validate(body)
}
