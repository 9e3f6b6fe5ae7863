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

// Package sla holds the latency expectations of the booking API and the
// helpers used to check observed timings against them.
package sla

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/nscaledev/booking-conformance/pkg/config"
)

// Operation names an API call that carries a latency SLA.
type Operation string

const (
	// Create is POST /booking.
	Create Operation = "create"
	// Get is GET /booking/{id}.
	Get Operation = "get"
	// Update is PUT /booking/{id}.
	Update Operation = "update"
	// Delete is DELETE /booking/{id}.
	Delete Operation = "delete"
)

// ErrNoSamples is returned when a sequential check has nothing to measure,
// e.g. every call failed.
var ErrNoSamples = errors.New("no successful calls to measure")

// Thresholds are the maximum acceptable latencies.
type Thresholds map[Operation]time.Duration

// Defaults mirrors the documented SLAs of the booking API.
func Defaults() Thresholds {
	return Thresholds{
		Create: 1500 * time.Millisecond,
		Get:    500 * time.Millisecond,
		Update: 1500 * time.Millisecond,
		Delete: time.Second,
	}
}

// FromConfig builds thresholds from loaded configuration.
func FromConfig(c config.SLA) Thresholds {
	return Thresholds{
		Create: c.Create,
		Get:    c.Get,
		Update: c.Update,
		Delete: c.Delete,
	}
}

// BreachError reports an operation that was slower than its SLA.
type BreachError struct {
	Operation Operation
	Threshold time.Duration
	Observed  time.Duration
	// Aggregate describes what Observed is, e.g. "mean of 10", empty for a
	// single call.
	Aggregate string
}

func (e *BreachError) Error() string {
	what := "response time"
	if e.Aggregate != "" {
		what = e.Aggregate + " response time"
	}

	return fmt.Sprintf("SLA exceeded for %s: %s %.3fs >= %.3fs", e.Operation, what, e.Observed.Seconds(), e.Threshold.Seconds())
}

// Check fails when observed is not strictly below the threshold. Operations
// without a threshold always pass.
func (t Thresholds) Check(op Operation, observed time.Duration) error {
	threshold, ok := t[op]
	if !ok {
		return nil
	}

	if observed >= threshold {
		return &BreachError{
			Operation: op,
			Threshold: threshold,
			Observed:  observed,
		}
	}

	return nil
}

// Series accumulates the latencies of repeated calls.
type Series struct {
	samples []time.Duration
}

// Add records one latency.
func (s *Series) Add(d time.Duration) {
	s.samples = append(s.samples, d)
}

// Len is the number of recorded latencies.
func (s *Series) Len() int {
	return len(s.samples)
}

// Mean is the average latency, zero for an empty series.
func (s *Series) Mean() time.Duration {
	if len(s.samples) == 0 {
		return 0
	}

	var total time.Duration

	for _, d := range s.samples {
		total += d
	}

	return total / time.Duration(len(s.samples))
}

// Max is the slowest latency, zero for an empty series.
func (s *Series) Max() time.Duration {
	if len(s.samples) == 0 {
		return 0
	}

	return slices.Max(s.samples)
}

// CheckSequential detects gradual degradation: the mean must meet the SLA
// and no single call may take twice as long. An empty series fails with
// ErrNoSamples.
func (t Thresholds) CheckSequential(op Operation, s *Series) error {
	threshold, ok := t[op]
	if !ok {
		return nil
	}

	if s.Len() == 0 {
		return fmt.Errorf("%w for %s", ErrNoSamples, op)
	}

	if mean := s.Mean(); mean >= threshold {
		return &BreachError{
			Operation: op,
			Threshold: threshold,
			Observed:  mean,
			Aggregate: fmt.Sprintf("mean of %d", s.Len()),
		}
	}

	if peak := s.Max(); peak >= 2*threshold {
		return &BreachError{
			Operation: op,
			Threshold: 2 * threshold,
			Observed:  peak,
			Aggregate: fmt.Sprintf("max of %d", s.Len()),
		}
	}

	return nil
}
