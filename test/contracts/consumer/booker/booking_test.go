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

package booker_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive
	"github.com/pact-foundation/pact-go/v2/consumer"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/pact-foundation/pact-go/v2/models"

	"github.com/nscaledev/booking-conformance/pkg/booker"
	"github.com/nscaledev/booking-conformance/pkg/config"
	"github.com/nscaledev/booking-conformance/pkg/schema"
)

var testingT *testing.T //nolint:gochecknoglobals

func TestContracts(t *testing.T) { //nolint:paralleltest
	testingT = t

	RegisterFailHandler(Fail)
	RunSpecs(t, "Booking Consumer Contract Suite")
}

const (
	token       = "abc123"
	bookingID   = 1
	datePattern = `^\d{4}-\d{2}-\d{2}$`
)

// createClient creates a booking client for the mock server.
func createClient(mock consumer.MockServerConfig) *booker.Client {
	return booker.New(&config.Config{
		BaseURL:        fmt.Sprintf("http://%s", net.JoinHostPort(mock.Host, fmt.Sprintf("%d", mock.Port))),
		AuthPath:       "/auth",
		BookingPath:    "/booking",
		PingPath:       "/ping",
		RequestTimeout: 5 * time.Second,
	})
}

func bookingBody() map[string]interface{} {
	return map[string]interface{}{
		"firstname":   matchers.String("Jim"),
		"lastname":    matchers.String("Brown"),
		"totalprice":  matchers.Integer(111),
		"depositpaid": matchers.Like(true),
		"bookingdates": map[string]interface{}{
			"checkin":  matchers.Regex("2018-01-01", datePattern),
			"checkout": matchers.Regex("2019-01-01", datePattern),
		},
		"additionalneeds": matchers.String("Breakfast"),
	}
}

func bookingPayload() map[string]any {
	return map[string]any{
		"firstname":   "Jim",
		"lastname":    "Brown",
		"totalprice":  111,
		"depositpaid": true,
		"bookingdates": map[string]any{
			"checkin":  "2018-01-01",
			"checkout": "2019-01-01",
		},
		"additionalneeds": "Breakfast",
	}
}

func expectJimBrown(booking *schema.BookingData) {
	Expect(booking.Firstname).To(Equal("Jim"))
	Expect(booking.Lastname).To(Equal("Brown"))
	Expect(booking.TotalPrice).To(Equal(111))
	Expect(booking.DepositPaid).To(BeTrue())
	Expect(booking.BookingDates.CheckOrder()).To(Succeed())
}

var _ = Describe("Booking Service Contract", func() {
	var (
		pact *consumer.V4HTTPMockProvider
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		pact, err = consumer.NewV4Pact(consumer.MockHTTPProviderConfig{
			Consumer: "booking-conformance",
			Provider: "restful-booker",
			PactDir:  "../pacts",
		})
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	Describe("Authenticate", func() {
		Context("when the credentials are valid", func() {
			It("returns a token", func() {
				pact.AddInteraction().
					Given("the admin user exists").
					UponReceiving("a request for a token").
					WithRequest("POST", "/auth", func(b *consumer.V4RequestBuilder) {
						b.JSONBody(map[string]interface{}{
							"username": matchers.String("admin"),
							"password": matchers.String("password123"),
						})
					}).
					WillRespondWith(200, func(b *consumer.V4ResponseBuilder) {
						b.JSONBody(map[string]interface{}{
							"token": matchers.String(token),
						})
					})

				test := func(mock consumer.MockServerConfig) error {
					got, err := createClient(mock).Authenticate(ctx, config.Credentials{Username: "admin", Password: "password123"})
					if err != nil {
						return fmt.Errorf("authenticating: %w", err)
					}

					Expect(got).To(Equal(token))

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})

	Describe("CreateBooking", func() {
		Context("when the payload is valid", func() {
			It("returns the booking wrapped with its id", func() {
				pact.AddInteraction().
					UponReceiving("a request to create a booking").
					WithRequest("POST", "/booking", func(b *consumer.V4RequestBuilder) {
						b.JSONBody(bookingBody())
					}).
					WillRespondWith(200, func(b *consumer.V4ResponseBuilder) {
						b.JSONBody(map[string]interface{}{
							"bookingid": matchers.Integer(bookingID),
							"booking":   bookingBody(),
						})
					})

				test := func(mock consumer.MockServerConfig) error {
					created, _, err := createClient(mock).CreateBooking(ctx, bookingPayload())
					if err != nil {
						return fmt.Errorf("creating booking: %w", err)
					}

					Expect(created.BookingID).To(BeNumerically(">", 0))
					expectJimBrown(&created.Booking)

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})

	Describe("GetBooking", func() {
		Context("when the booking exists", func() {
			It("returns the bare booking", func() {
				pact.AddInteraction().
					GivenWithParameter(models.ProviderState{
						Name: "booking exists",
						Parameters: map[string]interface{}{
							"bookingID": bookingID,
						},
					}).
					UponReceiving("a request for a booking").
					WithRequest("GET", fmt.Sprintf("/booking/%d", bookingID)).
					WillRespondWith(200, func(b *consumer.V4ResponseBuilder) {
						b.JSONBody(bookingBody())
					})

				test := func(mock consumer.MockServerConfig) error {
					booking, _, err := createClient(mock).GetBooking(ctx, bookingID)
					if err != nil {
						return fmt.Errorf("getting booking: %w", err)
					}

					expectJimBrown(booking)

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})

	Describe("UpdateBooking", func() {
		Context("when the token is valid", func() {
			It("returns the updated booking", func() {
				pact.AddInteraction().
					GivenWithParameter(models.ProviderState{
						Name: "booking exists",
						Parameters: map[string]interface{}{
							"bookingID": bookingID,
						},
					}).
					UponReceiving("an authorized request to update a booking").
					WithRequest("PUT", fmt.Sprintf("/booking/%d", bookingID), func(b *consumer.V4RequestBuilder) {
						b.Header("Cookie", matchers.Like("token="+token))
						b.JSONBody(bookingBody())
					}).
					WillRespondWith(200, func(b *consumer.V4ResponseBuilder) {
						b.JSONBody(bookingBody())
					})

				test := func(mock consumer.MockServerConfig) error {
					booking, _, err := createClient(mock).UpdateBooking(ctx, bookingID, token, bookingPayload())
					if err != nil {
						return fmt.Errorf("updating booking: %w", err)
					}

					expectJimBrown(booking)

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})

		Context("when the token is invalid", func() {
			It("is forbidden", func() {
				pact.AddInteraction().
					GivenWithParameter(models.ProviderState{
						Name: "booking exists",
						Parameters: map[string]interface{}{
							"bookingID": bookingID,
						},
					}).
					UponReceiving("an unauthorized request to update a booking").
					WithRequest("PUT", fmt.Sprintf("/booking/%d", bookingID), func(b *consumer.V4RequestBuilder) {
						b.Header("Cookie", matchers.Like("token=invalidtoken123"))
						b.JSONBody(bookingBody())
					}).
					WillRespondWith(403, func(b *consumer.V4ResponseBuilder) {
						b.Body("text/plain", []byte("Forbidden"))
					})

				test := func(mock consumer.MockServerConfig) error {
					_, resp, err := createClient(mock).UpdateBooking(ctx, bookingID, "invalidtoken123", bookingPayload())

					Expect(booker.IsStatus(err, http.StatusForbidden)).To(BeTrue(), "unexpected error: %v", err)
					Expect(string(resp.Body)).To(ContainSubstring("Forbidden"))

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})

	Describe("DeleteBooking", func() {
		Context("when the token is valid", func() {
			It("answers 201 Created", func() {
				pact.AddInteraction().
					GivenWithParameter(models.ProviderState{
						Name: "booking exists",
						Parameters: map[string]interface{}{
							"bookingID": bookingID,
						},
					}).
					UponReceiving("an authorized request to delete a booking").
					WithRequest("DELETE", fmt.Sprintf("/booking/%d", bookingID), func(b *consumer.V4RequestBuilder) {
						b.Header("Cookie", matchers.Like("token="+token))
					}).
					WillRespondWith(201, func(b *consumer.V4ResponseBuilder) {
						b.Body("text/plain", []byte("Created"))
					})

				test := func(mock consumer.MockServerConfig) error {
					resp, err := createClient(mock).DeleteBooking(ctx, bookingID, token)
					if err != nil {
						return fmt.Errorf("deleting booking: %w", err)
					}

					Expect(resp.StatusCode).To(Equal(http.StatusCreated))

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})
})
