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

// Package bookertest provides an in-memory imitation of the booking API for
// unit tests. It follows the live service's quirks: credentials are refused
// with a 200, deletes answer 201, and touching a missing booking with PUT or
// DELETE answers 405.
package bookertest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nscaledev/booking-conformance/pkg/config"
)

// Credentials the server accepts.
const (
	Username = "admin"
	Password = "password123"
)

// Mutator rewrites a JSON response body before it is sent, it is used to
// simulate schema drift.
type Mutator func(r *http.Request, body map[string]any) map[string]any

// Server is a running fake API.
type Server struct {
	*httptest.Server

	lock     sync.Mutex
	bookings map[int]map[string]any
	nextID   int
	tokens   map[string]bool
	calls    map[string]int

	latency time.Duration
	mutator Mutator
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every response.
func WithLatency(latency time.Duration) Option {
	return func(s *Server) {
		s.latency = latency
	}
}

// WithMutator rewrites JSON responses.
func WithMutator(mutator Mutator) Option {
	return func(s *Server) {
		s.mutator = mutator
	}
}

// New starts a server that is closed when the test ends.
func New(t testing.TB, options ...Option) *Server {
	t.Helper()

	s := &Server{
		bookings: map[int]map[string]any{},
		nextID:   1,
		tokens:   map[string]bool{},
		calls:    map[string]int{},
	}

	for _, o := range options {
		o(s)
	}

	router := chi.NewRouter()
	router.Use(s.count, s.delay)

	router.Get("/ping", s.ping)
	router.Post("/auth", s.auth)
	router.Post("/booking", s.create)
	router.Get("/booking/{id}", s.get)
	router.Put("/booking/{id}", s.update)
	router.Delete("/booking/{id}", s.delete)

	s.Server = httptest.NewServer(router)

	t.Cleanup(s.Close)

	return s
}

// Config returns configuration pointing at the server.
func (s *Server) Config() *config.Config {
	return &config.Config{
		BaseURL:     s.URL,
		AuthPath:    "/auth",
		BookingPath: "/booking",
		PingPath:    "/ping",
		Credentials: config.Credentials{
			Username: Username,
			Password: Password,
		},
		RequestTimeout: 5 * time.Second,
		SLA: config.SLA{
			Create: 1500 * time.Millisecond,
			Get:    500 * time.Millisecond,
			Update: 1500 * time.Millisecond,
			Delete: time.Second,
		},
		LogLevel: "debug",
	}
}

// Calls returns how many times a route was hit, e.g. Calls("DELETE /booking/{id}").
func (s *Server) Calls(route string) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.calls[route]
}

// Exists reports whether a booking is stored.
func (s *Server) Exists(id int) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.bookings[id]

	return ok
}

// Len is the number of stored bookings.
func (s *Server) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.bookings)
}

// IssueToken creates a valid token without going through /auth.
func (s *Server) IssueToken() string {
	s.lock.Lock()
	defer s.lock.Unlock()

	token := uuid.NewString()
	s.tokens[token] = true

	return token
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		route := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()

		s.lock.Lock()
		s.calls[route]++
		s.lock.Unlock()
	})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.latency > 0 {
			time.Sleep(s.latency)
		}

		next.ServeHTTP(w, r)
	})
}

func text(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, http.StatusText(status))
}

func (s *Server) json(w http.ResponseWriter, r *http.Request, body map[string]any) {
	if s.mutator != nil {
		body = s.mutator(r, body)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) authorized(r *http.Request) bool {
	cookie, err := r.Cookie("token")
	if err != nil {
		return false
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	return s.tokens[cookie.Value]
}

func bookingID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}

	return id, true
}

func decode(r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, false
	}

	return body, true
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	text(w, http.StatusCreated)
}

func (s *Server) auth(w http.ResponseWriter, r *http.Request) {
	var credentials config.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		text(w, http.StatusBadRequest)
		return
	}

	if credentials.Username != Username || credentials.Password != Password {
		s.json(w, r, map[string]any{"reason": "Bad credentials"})
		return
	}

	s.json(w, r, map[string]any{"token": s.IssueToken()})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	body, ok := decode(r)
	if !ok {
		text(w, http.StatusInternalServerError)
		return
	}

	s.lock.Lock()
	id := s.nextID
	s.nextID++
	s.bookings[id] = body
	s.lock.Unlock()

	s.json(w, r, map[string]any{"bookingid": id, "booking": body})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		text(w, http.StatusNotFound)
		return
	}

	s.lock.Lock()
	booking, ok := s.bookings[id]
	s.lock.Unlock()

	if !ok {
		text(w, http.StatusNotFound)
		return
	}

	s.json(w, r, booking)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		text(w, http.StatusForbidden)
		return
	}

	id, ok := bookingID(r)
	if !ok {
		text(w, http.StatusMethodNotAllowed)
		return
	}

	body, ok := decode(r)
	if !ok {
		text(w, http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	_, exists := s.bookings[id]

	if exists {
		s.bookings[id] = body
	}
	s.lock.Unlock()

	if !exists {
		text(w, http.StatusMethodNotAllowed)
		return
	}

	s.json(w, r, body)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		text(w, http.StatusForbidden)
		return
	}

	id, ok := bookingID(r)
	if !ok {
		text(w, http.StatusMethodNotAllowed)
		return
	}

	s.lock.Lock()
	_, exists := s.bookings[id]
	delete(s.bookings, id)
	s.lock.Unlock()

	if !exists {
		text(w, http.StatusMethodNotAllowed)
		return
	}

	text(w, http.StatusCreated)
}
