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
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booking-conformance/pkg/booker"
	"github.com/nscaledev/booking-conformance/pkg/sla"
	"github.com/nscaledev/booking-conformance/test/api"
)

const sequentialCreates = 10

var _ = Describe("Booking Performance", Label("performance"), func() {
	Context("When timing individual operations", func() {
		var (
			token   string
			booking *api.BookingFixture
		)

		BeforeEach(func() {
			token = fixtures.AuthToken(ctx)
			booking = fixtures.ExistingBooking(ctx, token, nil)
		})

		It("should create within the SLA", func() {
			created, resp, err := client.CreateBooking(ctx, gen.Booking(nil))
			fixtures.DeleteCreated(ctx, token, created, resp)
			Expect(err).NotTo(HaveOccurred())

			Expect(thresholds.Check(sla.Create, resp.Duration)).To(Succeed())
			GinkgoWriter.Printf("POST /booking: %.3fs\n", resp.Duration.Seconds())
		})

		It("should read within the SLA", func() {
			_, resp, err := client.GetBooking(ctx, booking.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(thresholds.Check(sla.Get, resp.Duration)).To(Succeed())
			GinkgoWriter.Printf("GET /booking/%d: %.3fs\n", booking.ID, resp.Duration.Seconds())
		})

		It("should update within the SLA", func() {
			_, resp, err := client.UpdateBooking(ctx, booking.ID, token, gen.Booking(nil))
			Expect(err).NotTo(HaveOccurred())

			Expect(thresholds.Check(sla.Update, resp.Duration)).To(Succeed())
			GinkgoWriter.Printf("PUT /booking/%d: %.3fs\n", booking.ID, resp.Duration.Seconds())
		})

		It("should delete within the SLA", func() {
			resp, err := client.DeleteBooking(ctx, booking.ID, token)
			Expect(err).NotTo(HaveOccurred())

			Expect(thresholds.Check(sla.Delete, resp.Duration)).To(Succeed())
			GinkgoWriter.Printf("DELETE /booking/%d: %.3fs\n", booking.ID, resp.Duration.Seconds())
		})
	})

	Context("When creating bookings back to back", func() {
		It("should not degrade", func() {
			token := fixtures.AuthToken(ctx)

			var series sla.Series

			for range sequentialCreates {
				created, resp, err := client.CreateBooking(ctx, gen.Booking(nil))

				if id, ok := booker.CreatedID(created, resp); ok {
					if _, err := client.DeleteBooking(ctx, id, token); err != nil {
						GinkgoWriter.Printf("Warning: Failed to delete booking %d: %v\n", id, err)
					}
				}

				Expect(err).NotTo(HaveOccurred())
				series.Add(resp.Duration)
			}

			Expect(thresholds.CheckSequential(sla.Create, &series)).To(Succeed())
			GinkgoWriter.Printf("Sequential creates: avg=%.3fs, max=%.3fs\n", series.Mean().Seconds(), series.Max().Seconds())
		})
	})

	Context("When varying the payload size", func() {
		DescribeTable("should create within the SLA",
			func(firstname, lastname string, price int, checkout, needs string) {
				payload := api.NewBookingPayload(gen).
					WithFirstname(firstname).
					WithLastname(lastname).
					WithTotalPrice(price).
					WithDates("2024-01-01", checkout).
					WithAdditionalNeeds(needs).
					Build()

				created, resp, err := client.CreateBooking(ctx, payload)
				fixtures.DeleteCreated(ctx, fixtures.AuthToken(ctx), created, resp)
				Expect(err).NotTo(HaveOccurred())

				Expect(thresholds.Check(sla.Create, resp.Duration)).To(Succeed())
				GinkgoWriter.Printf("Payload of %d bytes: %.3fs\n", len(resp.Body), resp.Duration.Seconds())
			},
			Entry("small", "Al", "Bo", 100, "2024-01-02", "x"),
			Entry("large", strings.Repeat("A", 50), strings.Repeat("B", 50), 999999, "2024-12-31", strings.Repeat("X", 500)),
		)
	})
})
