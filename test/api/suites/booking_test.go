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

//nolint:testpackage,revive // test package in suites is standard for these tests
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booking-conformance/pkg/booker"
	"github.com/nscaledev/booking-conformance/pkg/schema"
	"github.com/nscaledev/booking-conformance/test/api"
)

var _ = Describe("Booking Operations", func() {
	Context("When creating a booking", func() {
		Describe("Given a randomly generated payload", func() {
			It("should return a valid booking response", func() {
				payload := api.NewBookingPayload(gen).Build()

				created, resp, err := client.CreateBooking(ctx, payload)
				fixtures.DeleteCreated(ctx, fixtures.AuthToken(ctx), created, resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				Expect(created.BookingID).To(BeNumerically(">", 0))
				api.VerifyBookingMatches(&created.Booking, payload)

				GinkgoWriter.Printf("Created booking %d for %s %s\n", created.BookingID, created.Booking.Firstname, created.Booking.Lastname)
			})
		})

		Describe("Given a fixed payload", func() {
			It("should echo it back inside the envelope", func() {
				payload := api.NewBookingPayload(gen).
					WithFirstname("Jim").
					WithLastname("Brown").
					WithTotalPrice(111).
					WithDepositPaid(true).
					WithDates("2024-01-01", "2024-01-02").
					WithAdditionalNeeds("Breakfast").
					Build()

				resp, err := client.Send(ctx, booker.Request{
					Method: http.MethodPost,
					Path:   client.Endpoints().Bookings(),
					Body:   payload,
				})
				Expect(err).NotTo(HaveOccurred())
				fixtures.DeleteCreated(ctx, fixtures.AuthToken(ctx), nil, resp)
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				validated, err := schema.Validate(resp.Body)
				Expect(err).NotTo(HaveOccurred())

				envelope, ok := validated.(*schema.BookingResponse)
				Expect(ok).To(BeTrue(), "POST /booking should answer with the envelope shape")

				Expect(envelope.BookingID).To(BeNumerically(">", 0))
				Expect(envelope.Booking.Firstname).To(Equal("Jim"))
				Expect(envelope.Booking.Lastname).To(Equal("Brown"))
				Expect(envelope.Booking.TotalPrice).To(Equal(111))
				Expect(envelope.Booking.DepositPaid).To(BeTrue())
				Expect(envelope.Booking.BookingDates.Checkin).To(Equal("2024-01-01"))
				Expect(envelope.Booking.BookingDates.Checkout).To(Equal("2024-01-02"))
				Expect(envelope.Booking.BookingDates.Nights()).To(Equal(1))
				Expect(envelope.Booking.AdditionalNeeds).To(HaveValue(Equal("Breakfast")))
			})
		})

		Describe("Given boundary values", func() {
			DescribeTable("should accept the booking",
				func(build func(*api.BookingPayloadBuilder) *api.BookingPayloadBuilder) {
					payload := build(api.NewBookingPayload(gen)).Build()

					created, resp, err := client.CreateBooking(ctx, payload)
					fixtures.DeleteCreated(ctx, fixtures.AuthToken(ctx), created, resp)
					Expect(err).NotTo(HaveOccurred())

					api.VerifyBookingMatches(&created.Booking, payload)
				},
				Entry("shortest names", func(b *api.BookingPayloadBuilder) *api.BookingPayloadBuilder {
					return b.WithFirstname("Al").WithLastname("Li")
				}),
				Entry("longest names", func(b *api.BookingPayloadBuilder) *api.BookingPayloadBuilder {
					return b.WithFirstname("Abcdefghijabcdefghijabcdefghijabcdefghijabcdefghij")
				}),
				Entry("free stay", func(b *api.BookingPayloadBuilder) *api.BookingPayloadBuilder {
					return b.WithTotalPrice(0)
				}),
				Entry("highest price", func(b *api.BookingPayloadBuilder) *api.BookingPayloadBuilder {
					return b.WithTotalPrice(999999)
				}),
				Entry("no additional needs", func(b *api.BookingPayloadBuilder) *api.BookingPayloadBuilder {
					return b.Without("additionalneeds")
				}),
			)
		})
	})

	Context("When reading a booking", func() {
		var booking *api.BookingFixture

		BeforeEach(func() {
			booking = fixtures.ExistingBooking(ctx, fixtures.AuthToken(ctx), nil)
		})

		It("should return the bare booking object", func() {
			got, resp, err := client.GetBooking(ctx, booking.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			validated, err := schema.Validate(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(validated).To(BeAssignableToTypeOf(&schema.BookingData{}))

			api.VerifyBookingMatches(got, booking.Payload)
		})

		It("should return 404 for an unknown booking", func() {
			_, _, err := client.GetBooking(ctx, 999999999)
			Expect(booker.IsStatus(err, http.StatusNotFound)).To(BeTrue(), "unexpected error: %v", err)
		})
	})

	Context("When updating a booking", func() {
		var (
			token   string
			booking *api.BookingFixture
		)

		BeforeEach(func() {
			token = fixtures.AuthToken(ctx)
			booking = fixtures.ExistingBooking(ctx, token, nil)
		})

		It("should replace every field", func() {
			payload := api.NewBookingPayload(gen).WithAdditionalNeeds("Late checkout").Build()

			updated, resp, err := client.UpdateBooking(ctx, booking.ID, token, payload)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			api.VerifyBookingMatches(updated, payload)

			got, _, err := client.GetBooking(ctx, booking.ID)
			Expect(err).NotTo(HaveOccurred())
			api.VerifyBookingMatches(got, payload)
		})
	})

	Context("When deleting a booking", func() {
		It("should return 201 and the booking should be gone", func() {
			token := fixtures.AuthToken(ctx)
			id := fixtures.ExistingBookingID(ctx, token)

			resp, err := client.DeleteBooking(ctx, id, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			after, err := client.Send(ctx, booker.Request{
				Method: http.MethodGet,
				Path:   client.Endpoints().Booking(id),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(after.StatusCode).NotTo(Equal(http.StatusOK))
		})
	})

	Context("When sending malformed payloads", func() {
		It("should not create a booking without a first name", func() {
			payload := api.NewBookingPayload(gen).Without("firstname").Build()

			resp, err := client.Send(ctx, booker.Request{
				Method: http.MethodPost,
				Path:   client.Endpoints().Bookings(),
				Body:   payload,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).NotTo(Equal(http.StatusOK))
		})
	})
})
