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

package booker

import (
	"context"
	"crypto/rand"
	"net/http"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// traceState tags every request so API side logs can be filtered to the
// suite's traffic.
const traceState = "test-automation=ginkgo"

// newSpanContext creates a fresh sampled trace for a single request, so a
// failure can be found in the API's logs by its trace ID.
func newSpanContext(state trace.TraceState) trace.SpanContext {
	var (
		traceID trace.TraceID
		spanID  trace.SpanID
	)

	_, _ = rand.Read(traceID[:])
	_, _ = rand.Read(spanID[:])

	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		TraceState: state,
		Remote:     true,
	})
}

// injectTraceContext adds W3C traceparent and tracestate headers and
// returns the trace ID used.
func injectTraceContext(ctx context.Context, propagator propagation.TextMapPropagator, state trace.TraceState, header http.Header) string {
	spanContext := newSpanContext(state)

	propagator.Inject(trace.ContextWithSpanContext(ctx, spanContext), propagation.HeaderCarrier(header))

	return spanContext.TraceID().String()
}
