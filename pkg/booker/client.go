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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/nscaledev/booking-conformance/pkg/config"
	"github.com/nscaledev/booking-conformance/pkg/constants"
	"github.com/nscaledev/booking-conformance/pkg/schema"
)

// TokenCookie is the cookie the API reads the auth token from.
const TokenCookie = "token"

// Request is a raw call to the API.
type Request struct {
	Method string
	Path   string
	// Body is encoded as JSON unless it is already a []byte.
	Body any
	// Token, when set, is sent in the token cookie.
	Token  string
	Header http.Header
}

// Response is what came back, along with how long it took.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Duration covers the whole round trip including reading the body.
	Duration time.Duration
	TraceID  string
}

// Client talks to the booking API. All calls share one timeout policy: the
// configured request timeout bounds every request, and callers can shorten
// it further through the context. Nothing is retried.
type Client struct {
	baseURL    string
	client     *http.Client
	config     *config.Config
	endpoints  *Endpoints
	logger     zerolog.Logger
	propagator propagation.TextMapPropagator
	traceState trace.TraceState
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger used for request and error logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client. A copy is used with
// its timeout set to the configured request timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// New creates a client for the API described by config.
func New(config *config.Config, options ...Option) *Client {
	state, _ := trace.ParseTraceState(traceState)

	c := &Client{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		client:     &http.Client{},
		config:     config,
		endpoints:  NewEndpoints(config),
		logger:     zerolog.Nop(),
		propagator: propagation.TraceContext{},
		traceState: state,
	}

	for _, o := range options {
		o(c)
	}

	// The client may be shared, e.g. http.DefaultClient, so work on a copy.
	client := *c.client
	client.Timeout = config.RequestTimeout
	c.client = &client

	return c
}

// Endpoints exposes the endpoint table, for tests that hand craft requests.
func (c *Client) Endpoints() *Endpoints {
	return c.endpoints
}

func encodeBody(body any) (io.Reader, error) {
	switch t := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(t), nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	return bytes.NewReader(data), nil
}

//nolint:cyclop
func (c *Client) doRequest(ctx context.Context, r Request, expectedStatus int) (*Response, error) {
	body, err := encodeBody(r.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range r.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("User-Agent", constants.UserAgent())

	if r.Token != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: r.Token})
	}

	traceID := injectTraceContext(ctx, c.propagator, c.traceState, req.Header)

	log := c.logger.With().Str("method", r.Method).Str("path", r.Path).Str("traceID", traceID).Logger()

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("http request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, r.Method, r.Path, err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	duration := time.Since(start)

	if err != nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Dur("duration", duration).Msg("reading response body")
		return nil, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Duration:   duration,
		TraceID:    traceID,
	}

	if c.config.LogRequests {
		log.Info().Int("status", resp.StatusCode).Dur("duration", duration).Msg("request completed")
	}

	if c.config.LogResponses && len(respBody) > 0 {
		log.Info().Str("body", string(respBody)).Msg("response body")
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		log.Warn().Int("expected", expectedStatus).Int("status", resp.StatusCode).Str("body", string(respBody)).
			Msgf("unexpected status, use trace ID %s to search logs for this request", traceID)

		return response, &StatusError{
			Method:   r.Method,
			Path:     r.Path,
			Expected: expectedStatus,
			Actual:   resp.StatusCode,
			Body:     string(respBody),
			TraceID:  traceID,
		}
	}

	return response, nil
}

// Send performs a raw request without checking the status code.
func (c *Client) Send(ctx context.Context, r Request) (*Response, error) {
	return c.doRequest(ctx, r, 0)
}

// Ping checks the API is up, it answers 201.
func (c *Client) Ping(ctx context.Context) (*Response, error) {
	resp, err := c.doRequest(ctx, Request{Method: http.MethodGet, Path: c.endpoints.Ping()}, http.StatusCreated)
	if err != nil {
		return resp, fmt.Errorf("pinging API: %w", err)
	}

	return resp, nil
}

type authResponse struct {
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// Authenticate exchanges credentials for a token to use with PUT and
// DELETE.
func (c *Client) Authenticate(ctx context.Context, credentials config.Credentials) (string, error) {
	resp, err := c.doRequest(ctx, Request{Method: http.MethodPost, Path: c.endpoints.Auth(), Body: credentials}, http.StatusOK)
	if err != nil {
		return "", fmt.Errorf("authenticating: %w", err)
	}

	var auth authResponse
	if err := json.Unmarshal(resp.Body, &auth); err != nil {
		return "", fmt.Errorf("%w: decoding auth response: %w", ErrMalformedResponse, err)
	}

	if auth.Token == "" {
		if auth.Reason != "" {
			return "", fmt.Errorf("%w: %s", ErrBadCredentials, auth.Reason)
		}

		return "", fmt.Errorf("%w: auth response carried no token: %s", ErrMalformedResponse, string(resp.Body))
	}

	return auth.Token, nil
}

// CreateBooking posts a booking and validates the creation envelope.
func (c *Client) CreateBooking(ctx context.Context, payload any) (*schema.BookingResponse, *Response, error) {
	resp, err := c.doRequest(ctx, Request{Method: http.MethodPost, Path: c.endpoints.Bookings(), Body: payload}, http.StatusOK)
	if err != nil {
		return nil, resp, fmt.Errorf("creating booking: %w", err)
	}

	booking, err := schema.ValidateBookingResponse(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("validating create response: %w", err)
	}

	return booking, resp, nil
}

// CreatedID returns the id of the booking a create call made. When the
// response failed validation the id is read from the raw body, so whatever
// was created can still be deleted. It reports false when nothing was
// created or the id cannot be recovered.
func CreatedID(created *schema.BookingResponse, resp *Response) (int, bool) {
	if created != nil {
		return created.BookingID, true
	}

	if resp == nil || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &fields); err != nil {
		return 0, false
	}

	id, err := strconv.Atoi(string(fields["bookingid"]))
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// GetBooking reads a booking and validates it.
func (c *Client) GetBooking(ctx context.Context, id int) (*schema.BookingData, *Response, error) {
	resp, err := c.doRequest(ctx, Request{Method: http.MethodGet, Path: c.endpoints.Booking(id)}, http.StatusOK)
	if err != nil {
		return nil, resp, fmt.Errorf("getting booking %d: %w", id, err)
	}

	booking, err := schema.ValidateBooking(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("validating booking %d: %w", id, err)
	}

	return booking, resp, nil
}

// UpdateBooking replaces a booking, the token must be valid.
func (c *Client) UpdateBooking(ctx context.Context, id int, token string, payload any) (*schema.BookingData, *Response, error) {
	resp, err := c.doRequest(ctx, Request{Method: http.MethodPut, Path: c.endpoints.Booking(id), Body: payload, Token: token}, http.StatusOK)
	if err != nil {
		return nil, resp, fmt.Errorf("updating booking %d: %w", id, err)
	}

	booking, err := schema.ValidateBooking(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("validating updated booking %d: %w", id, err)
	}

	return booking, resp, nil
}

// DeleteBooking removes a booking, the API answers 201 on success.
func (c *Client) DeleteBooking(ctx context.Context, id int, token string) (*Response, error) {
	resp, err := c.doRequest(ctx, Request{Method: http.MethodDelete, Path: c.endpoints.Booking(id), Token: token}, http.StatusCreated)
	if err != nil {
		return resp, fmt.Errorf("deleting booking %d: %w", id, err)
	}

	return resp, nil
}

// IsStatus reports whether err carries an unexpected response with the given
// status code.
func IsStatus(err error, status int) bool {
	var statusErr *StatusError

	return errors.As(err, &statusErr) && statusErr.Actual == status
}
