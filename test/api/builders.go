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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booking-conformance/pkg/fake"
	"github.com/nscaledev/booking-conformance/pkg/schema"
)

// BookingPayloadBuilder builds booking payloads for testing.
type BookingPayloadBuilder struct {
	payload map[string]any
}

// NewBookingPayload creates a new booking payload builder with random,
// schema valid defaults.
func NewBookingPayload(gen *fake.Generator) *BookingPayloadBuilder {
	return &BookingPayloadBuilder{
		payload: gen.Booking(nil),
	}
}

// WithFirstname sets the guest's first name.
func (b *BookingPayloadBuilder) WithFirstname(name string) *BookingPayloadBuilder {
	b.payload["firstname"] = name
	return b
}

// WithLastname sets the guest's last name.
func (b *BookingPayloadBuilder) WithLastname(name string) *BookingPayloadBuilder {
	b.payload["lastname"] = name
	return b
}

// WithTotalPrice sets the price.
func (b *BookingPayloadBuilder) WithTotalPrice(price int) *BookingPayloadBuilder {
	b.payload["totalprice"] = price
	return b
}

// WithDepositPaid sets the deposit flag.
func (b *BookingPayloadBuilder) WithDepositPaid(paid bool) *BookingPayloadBuilder {
	b.payload["depositpaid"] = paid
	return b
}

// WithDates replaces the whole stay.
func (b *BookingPayloadBuilder) WithDates(checkin, checkout string) *BookingPayloadBuilder {
	b.payload["bookingdates"] = map[string]any{
		"checkin":  checkin,
		"checkout": checkout,
	}

	return b
}

// WithAdditionalNeeds sets the free text needs.
func (b *BookingPayloadBuilder) WithAdditionalNeeds(needs string) *BookingPayloadBuilder {
	b.payload["additionalneeds"] = needs
	return b
}

// With sets an arbitrary top level key, e.g. to send a wrongly typed value.
func (b *BookingPayloadBuilder) With(key string, value any) *BookingPayloadBuilder {
	b.payload[key] = value
	return b
}

// Without removes a top level key.
func (b *BookingPayloadBuilder) Without(key string) *BookingPayloadBuilder {
	delete(b.payload, key)
	return b
}

// Build returns the completed booking payload.
func (b *BookingPayloadBuilder) Build() map[string]any {
	return b.payload
}

// VerifyBookingMatches checks a validated booking carries what was sent,
// names compared after normalization, and that the stay is ordered.
func VerifyBookingMatches(booking *schema.BookingData, payload map[string]any) {
	Expect(booking).NotTo(BeNil())

	Expect(booking.Firstname).To(Equal(schema.NormalizeName(payload["firstname"].(string)))) //nolint:forcetypeassert // safe: we control payload structure
	Expect(booking.Lastname).To(Equal(schema.NormalizeName(payload["lastname"].(string))))   //nolint:forcetypeassert // safe: we control payload structure
	Expect(booking.TotalPrice).To(BeEquivalentTo(payload["totalprice"]))
	Expect(booking.DepositPaid).To(Equal(payload["depositpaid"]))

	dates := payload["bookingdates"].(map[string]any) //nolint:forcetypeassert // safe: we control payload structure
	Expect(booking.BookingDates.Checkin).To(Equal(dates["checkin"]))
	Expect(booking.BookingDates.Checkout).To(Equal(dates["checkout"]))

	if needs, ok := payload["additionalneeds"]; ok {
		Expect(booking.AdditionalNeeds).NotTo(BeNil())
		Expect(*booking.AdditionalNeeds).To(Equal(needs))
	}

	// Ordering is a business rule, not part of the schema.
	Expect(booking.BookingDates.CheckOrder()).To(Succeed())
}
