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
	"github.com/nscaledev/booking-conformance/pkg/config"
)

var _ = Describe("Security and Authentication", func() {
	Context("When requesting a token", func() {
		Describe("Given valid credentials", func() {
			It("should return 200 with a token", func() {
				resp, err := client.Send(ctx, booker.Request{
					Method: http.MethodPost,
					Path:   client.Endpoints().Auth(),
					Body:   cfg.Credentials,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				token := fixtures.AuthToken(ctx)
				Expect(token).NotTo(BeEmpty(), "Auth response should carry a token")
			})
		})

		Describe("Given invalid credentials", func() {
			It("should refuse to issue a token", func() {
				_, err := client.Authenticate(ctx, config.Credentials{
					Username: cfg.Credentials.Username,
					Password: "not-the-password",
				})
				Expect(err).To(MatchError(booker.ErrBadCredentials))
			})
		})
	})

	Context("When modifying a booking", func() {
		var bookingID int

		BeforeEach(func() {
			bookingID = fixtures.ExistingBookingID(ctx, fixtures.AuthToken(ctx))
		})

		Describe("Given an invalid token", func() {
			It("should reject the update with 403 Forbidden", func() {
				resp, err := client.Send(ctx, booker.Request{
					Method: http.MethodPut,
					Path:   client.Endpoints().Booking(bookingID),
					Body:   gen.Booking(nil),
					Token:  "invalidtoken123",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
				Expect(string(resp.Body)).To(ContainSubstring("Forbidden"))
			})

			It("should reject the delete with 403 Forbidden", func() {
				resp, err := client.Send(ctx, booker.Request{
					Method: http.MethodDelete,
					Path:   client.Endpoints().Booking(bookingID),
					Token:  "invalid_token",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			})
		})

		Describe("Given no token", func() {
			It("should reject an empty update with 403 Forbidden", func() {
				resp, err := client.Send(ctx, booker.Request{
					Method: http.MethodPut,
					Path:   client.Endpoints().Booking(bookingID),
					Body:   map[string]any{},
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
				Expect(string(resp.Body)).To(ContainSubstring("Forbidden"))
			})
		})
	})
})
