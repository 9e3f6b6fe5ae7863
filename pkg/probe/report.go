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

package probe

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nscaledev/booking-conformance/pkg/schema"
	"github.com/nscaledev/booking-conformance/pkg/sla"
)

// Check is the outcome of one step of a probe.
type Check struct {
	Name     string
	Duration time.Duration
	TraceID  string
	Err      error
}

// Passed reports whether the step met its expectations.
func (c Check) Passed() bool {
	return c.Err == nil
}

// Kind classifies a failure by the error taxonomy, schema or business rule
// or transport.
func (c Check) Kind() string {
	var (
		schemaErr *schema.SchemaError
		ruleErr   *schema.RuleError
		breachErr *sla.BreachError
	)

	switch {
	case c.Err == nil:
		return ""
	case errors.As(c.Err, &schemaErr):
		return "schema"
	case errors.As(c.Err, &ruleErr), errors.As(c.Err, &breachErr), errors.Is(c.Err, sla.ErrNoSamples):
		return "business"
	}

	return "transport"
}

// Report collects the checks of a probe run.
type Report struct {
	RunID    string
	BaseURL  string
	Started  time.Time
	Finished time.Time
	Checks   []Check
}

func (r *Report) add(c Check) {
	r.Checks = append(r.Checks, c)
}

// Failed returns the checks that did not pass.
func (r *Report) Failed() []Check {
	var failed []Check

	for _, c := range r.Checks {
		if !c.Passed() {
			failed = append(failed, c)
		}
	}

	return failed
}

// Passed is true when every check passed.
func (r *Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Print writes a human readable summary.
func (r *Report) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Probe %s against %s\n", r.RunID, r.BaseURL); err != nil {
		return err
	}

	for _, c := range r.Checks {
		status := "PASS"
		if !c.Passed() {
			status = "FAIL"
		}

		line := fmt.Sprintf("%s  %-32s %8.3fs", status, c.Name, c.Duration.Seconds())
		if c.Err != nil {
			line += fmt.Sprintf("  [%s] %v", c.Kind(), c.Err)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d checks, %d failed, took %s\n", len(r.Checks), len(r.Failed()), r.Finished.Sub(r.Started).Round(time.Millisecond))

	return err
}
