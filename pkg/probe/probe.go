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

// Package probe runs a booking lifecycle against a live API and reports
// each step against its contract and latency expectations.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/nscaledev/booking-conformance/pkg/booker"
	"github.com/nscaledev/booking-conformance/pkg/config"
	"github.com/nscaledev/booking-conformance/pkg/fake"
	"github.com/nscaledev/booking-conformance/pkg/logger"
	"github.com/nscaledev/booking-conformance/pkg/schema"
	"github.com/nscaledev/booking-conformance/pkg/sla"
)

// maxConsecutiveFailures opens the circuit on back to back creates.
const maxConsecutiveFailures = 3

// ErrAborted is returned when a step the rest of the run depends on fails.
var ErrAborted = errors.New("probe aborted")

// Options tune a probe run.
type Options struct {
	// Iterations is the number of back to back creates, zero skips them.
	Iterations int
	// Rate limits the back to back creates in requests per second, zero
	// means unlimited.
	Rate float64
	// Thresholds override the configured SLAs.
	Thresholds sla.Thresholds
	// Logger defaults to discarding everything.
	Logger *zerolog.Logger
}

type runner struct {
	client     *booker.Client
	gen        *fake.Generator
	config     *config.Config
	thresholds sla.Thresholds
	logger     zerolog.Logger
	report     *Report
	token      string
}

// Run performs the lifecycle, create then read then update then delete, and
// the performance scenarios. Failed checks are recorded in the report, an
// error is only returned when a step the rest depend on fails, in which case
// the partial report is returned too.
func Run(ctx context.Context, client *booker.Client, gen *fake.Generator, config *config.Config, options Options) (*Report, error) {
	thresholds := options.Thresholds
	if thresholds == nil {
		thresholds = sla.FromConfig(config.SLA)
	}

	r := &runner{
		client:     client,
		gen:        gen,
		config:     config,
		thresholds: thresholds,
		report: &Report{
			RunID:   uuid.NewString(),
			BaseURL: config.BaseURL,
			Started: time.Now(),
		},
	}

	log := zerolog.Nop()
	if options.Logger != nil {
		log = *options.Logger
	}

	r.logger = log.With().Str("runID", r.report.RunID).Logger()

	err := r.run(ctx, options)

	r.report.Finished = time.Now()

	if err != nil {
		logger.ErrorWithStack(r.logger, err, "probe aborted")

		return r.report, fmt.Errorf("%w: %w", ErrAborted, err)
	}

	return r.report, nil
}

func (r *runner) run(ctx context.Context, options Options) error {
	if err := r.ping(ctx); err != nil {
		return err
	}

	if err := r.authenticate(ctx); err != nil {
		return err
	}

	if err := r.lifecycle(ctx); err != nil {
		return err
	}

	if err := r.sequential(ctx, options.Iterations, options.Rate); err != nil {
		return err
	}

	return r.payloadSizes(ctx)
}

// record adds a check, and its SLA check when the call has one.
func (r *runner) record(name string, op sla.Operation, resp *booker.Response, err error) {
	check := Check{Name: name, Err: err}

	if resp != nil {
		check.Duration = resp.Duration
		check.TraceID = resp.TraceID
	}

	r.report.add(check)

	event := r.logger.Info()
	if err != nil {
		event = r.logger.Warn().Err(err)
	}

	event.Str("check", name).Dur("duration", check.Duration).Msg("check completed")

	if op == "" || resp == nil {
		return
	}

	r.report.add(Check{
		Name:     fmt.Sprintf("%s latency", name),
		Duration: resp.Duration,
		Err:      r.thresholds.Check(op, resp.Duration),
	})
}

func (r *runner) ping(ctx context.Context) error {
	resp, err := r.client.Ping(ctx)
	r.record("ping", "", resp, err)

	return err
}

func (r *runner) authenticate(ctx context.Context) error {
	start := time.Now()

	token, err := r.client.Authenticate(ctx, r.config.Credentials)

	r.report.add(Check{Name: "authenticate", Duration: time.Since(start), Err: err})

	if err != nil {
		return fmt.Errorf("authentication failed for user %q: %w", r.config.Credentials.Username, err)
	}

	r.token = token

	return nil
}

func (r *runner) lifecycle(ctx context.Context) error {
	payload := r.gen.BookingData()

	created, resp, err := r.client.CreateBooking(ctx, payload)
	if err == nil {
		err = match(payload, created.Booking)
	}

	r.record("create booking", sla.Create, resp, err)

	// A response that fails validation may still have created the booking,
	// the rest of the lifecycle then runs against it and deletes it.
	id, ok := booker.CreatedID(created, resp)
	if !ok {
		return err
	}

	got, resp, err := r.client.GetBooking(ctx, id)
	if err == nil {
		err = match(payload, *got)
	}

	r.record("get booking", sla.Get, resp, err)

	update := r.gen.BookingData()

	updated, resp, err := r.client.UpdateBooking(ctx, id, r.token, update)
	if err == nil {
		err = match(update, *updated)
	}

	r.record("update booking", sla.Update, resp, err)

	resp, err = r.client.DeleteBooking(ctx, id, r.token)
	r.record("delete booking", sla.Delete, resp, err)

	_, resp, err = r.client.GetBooking(ctx, id)
	if booker.IsStatus(err, http.StatusNotFound) {
		err = nil
	} else if err == nil {
		err = &schema.RuleError{
			Rule:     "deleted booking is gone",
			Expected: fmt.Sprintf("status %d", http.StatusNotFound),
			Actual:   fmt.Sprintf("status %d", resp.StatusCode),
		}
	}

	r.record("get deleted booking", "", resp, err)

	return nil
}

func (r *runner) sequential(ctx context.Context, iterations int, perSecond float64) error {
	if iterations <= 0 {
		return nil
	}

	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	limiter := rate.NewLimiter(limit, 1)

	// Stop hammering a shared service that is already failing.
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "sequential creates",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("circuit breaker state changed")
		},
	})

	var series sla.Series

	for i := range iterations {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting to create booking %d: %w", i+1, err)
		}

		out, err := breaker.Execute(func() (any, error) {
			created, resp, err := r.client.CreateBooking(ctx, r.gen.Booking(nil))

			if id, ok := booker.CreatedID(created, resp); ok {
				r.release(ctx, id)
			}

			if err != nil {
				return resp, err
			}

			series.Add(resp.Duration)

			return resp, nil
		})

		if errors.Is(err, gobreaker.ErrOpenState) {
			r.report.add(Check{Name: fmt.Sprintf("sequential creates skipped (%d)", iterations-i), Err: err})

			break
		}

		if err != nil {
			resp, _ := out.(*booker.Response)
			r.record(fmt.Sprintf("sequential create %d", i+1), "", resp, err)
		}
	}

	r.report.add(Check{
		Name:     fmt.Sprintf("sequential creates (%d)", series.Len()),
		Duration: series.Mean(),
		Err:      r.thresholds.CheckSequential(sla.Create, &series),
	})

	return nil
}

func (r *runner) payloadSizes(ctx context.Context) error {
	samples := []struct {
		name    string
		payload map[string]any
	}{
		{
			name: "small",
			payload: r.gen.Booking(map[string]any{
				"firstname":       "Al",
				"lastname":        "Bo",
				"totalprice":      100,
				"depositpaid":     false,
				"bookingdates":    map[string]any{"checkin": "2024-01-01", "checkout": "2024-01-02"},
				"additionalneeds": "x",
			}),
		},
		{
			name: "large",
			payload: r.gen.Booking(map[string]any{
				"firstname":       strings.Repeat("A", 50),
				"lastname":        strings.Repeat("B", 50),
				"totalprice":      999999,
				"depositpaid":     true,
				"bookingdates":    map[string]any{"checkin": "2024-01-01", "checkout": "2024-12-31"},
				"additionalneeds": strings.Repeat("X", 500),
			}),
		},
	}

	for _, sample := range samples {
		created, resp, err := r.client.CreateBooking(ctx, sample.payload)
		r.record(fmt.Sprintf("create %s payload", sample.name), sla.Create, resp, err)

		if id, ok := booker.CreatedID(created, resp); ok {
			r.release(ctx, id)
		}
	}

	return nil
}

// release deletes a booking the probe created, failures are only logged.
func (r *runner) release(ctx context.Context, id int) {
	if _, err := r.client.DeleteBooking(context.WithoutCancel(ctx), id, r.token); err != nil {
		r.logger.Warn().Err(err).Int("bookingID", id).Msg("failed to delete booking")
	}
}

// match checks a returned booking carries what was sent, names compared
// after normalization, and that the stay is ordered.
func match(want, got schema.BookingData) error {
	mismatch := func(field string, expected, actual any) error {
		return &schema.RuleError{
			Rule:     field + " matches request",
			Expected: fmt.Sprintf("%v", expected),
			Actual:   fmt.Sprintf("%v", actual),
		}
	}

	switch {
	case schema.NormalizeName(want.Firstname) != got.Firstname:
		return mismatch("firstname", schema.NormalizeName(want.Firstname), got.Firstname)
	case schema.NormalizeName(want.Lastname) != got.Lastname:
		return mismatch("lastname", schema.NormalizeName(want.Lastname), got.Lastname)
	case want.TotalPrice != got.TotalPrice:
		return mismatch("totalprice", want.TotalPrice, got.TotalPrice)
	case want.DepositPaid != got.DepositPaid:
		return mismatch("depositpaid", want.DepositPaid, got.DepositPaid)
	case want.BookingDates != got.BookingDates:
		return mismatch("bookingdates", want.BookingDates, got.BookingDates)
	}

	return got.BookingDates.CheckOrder()
}
