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

package api

//go:generate mockgen -source=fixtures.go -destination=mock/interfaces.go -package=mock

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nscaledev/booking-conformance/pkg/booker"
	"github.com/nscaledev/booking-conformance/pkg/config"
	"github.com/nscaledev/booking-conformance/pkg/fake"
	"github.com/nscaledev/booking-conformance/pkg/schema"
)

// TB is the part of testing.TB the fixtures need. Both *testing.T and
// ginkgo.GinkgoT() satisfy it.
type TB interface {
	Helper()
	Cleanup(f func())
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// BookingAPI is the subset of the API client used to provision resources.
type BookingAPI interface {
	Authenticate(ctx context.Context, credentials config.Credentials) (string, error)
	CreateBooking(ctx context.Context, payload any) (*schema.BookingResponse, *booker.Response, error)
	DeleteBooking(ctx context.Context, id int, token string) (*booker.Response, error)
}

// Fixtures provisions per test resources on the API and guarantees their
// release once the test has finished, whatever its outcome.
type Fixtures struct {
	t      TB
	client BookingAPI
	config *config.Config
	gen    *fake.Generator
	logger zerolog.Logger
}

// NewFixtures binds fixtures to one test.
func NewFixtures(t TB, client BookingAPI, config *config.Config, gen *fake.Generator, logger zerolog.Logger) *Fixtures {
	return &Fixtures{
		t:      t,
		client: client,
		config: config,
		gen:    gen,
		logger: logger,
	}
}

// AuthToken obtains a token with the configured credentials. Any failure
// aborts the calling test immediately.
func (f *Fixtures) AuthToken(ctx context.Context) string {
	f.t.Helper()

	token, err := f.client.Authenticate(ctx, f.config.Credentials)
	if err != nil {
		f.t.Fatalf("authentication failed for user %q: %v", f.config.Credentials.Username, err)
	}

	return token
}

// BookingFixture is a booking created for a single test.
type BookingFixture struct {
	ID      int
	Payload map[string]any
	Created *schema.BookingResponse
}

// ExistingBooking creates a random booking and schedules its deletion with
// token. Deletion runs whether the test passes or fails, so we don't need to
// clean up manually. A failed deletion is logged but does not fail the test.
func (f *Fixtures) ExistingBooking(ctx context.Context, token string, overrides map[string]any) *BookingFixture {
	f.t.Helper()

	payload := f.gen.Booking(overrides)

	created, resp, err := f.client.CreateBooking(ctx, payload)

	// Cleanup is registered before any failure is reported, a response that
	// fails validation still created a booking.
	f.DeleteCreated(ctx, token, created, resp)

	if err != nil {
		f.t.Fatalf("creating booking fixture: %v", err)
	}

	f.logger.Debug().Int("bookingID", created.BookingID).Msg("created booking fixture")

	return &BookingFixture{
		ID:      created.BookingID,
		Payload: payload,
		Created: created,
	}
}

// DeleteAfter schedules deletion of a booking the test created itself.
func (f *Fixtures) DeleteAfter(ctx context.Context, id int, token string) {
	f.t.Helper()

	// The test's context may be gone by the time cleanup runs.
	ctx = context.WithoutCancel(ctx)

	f.t.Cleanup(func() {
		f.release(ctx, id, token)
	})
}

// DeleteCreated schedules deletion of the booking a create call made, even
// when its response failed validation. It reports whether an id was found.
func (f *Fixtures) DeleteCreated(ctx context.Context, token string, created *schema.BookingResponse, resp *booker.Response) bool {
	f.t.Helper()

	id, ok := booker.CreatedID(created, resp)
	if !ok {
		return false
	}

	f.DeleteAfter(ctx, id, token)

	return true
}

// ExistingBookingID is ExistingBooking for tests that only need the ID.
func (f *Fixtures) ExistingBookingID(ctx context.Context, token string) int {
	f.t.Helper()

	return f.ExistingBooking(ctx, token, nil).ID
}

func (f *Fixtures) release(ctx context.Context, id int, token string) {
	ctx, cancel := context.WithTimeout(ctx, f.config.RequestTimeout)
	defer cancel()

	if _, err := f.client.DeleteBooking(ctx, id, token); err != nil {
		f.logger.Warn().Err(err).Int("bookingID", id).Msg("failed to delete booking fixture")
		f.t.Logf("Warning: Failed to delete booking %d: %v", id, err)

		return
	}

	f.logger.Debug().Int("bookingID", id).Msg("deleted booking fixture")
}
