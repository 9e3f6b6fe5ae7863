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

// Package fake generates random bookings that satisfy the booking schema.
package fake

import (
	"maps"
	"time"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v7"
	"k8s.io/utils/ptr"

	"github.com/nscaledev/booking-conformance/pkg/schema"
)

const (
	minPrice = 50
	maxPrice = 500

	// checkin falls within the next 30 days, checkout 31 to 60 days out,
	// so a generated stay is always correctly ordered.
	checkinWindow  = 30
	checkoutStart  = 31
	checkoutWindow = 60

	minNameLength = 2
	maxNameLength = 50
)

// Generator produces schema valid booking payloads. It is not safe for
// concurrent use.
type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes generation reproducible. A zero seed picks a random one.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.faker = gofakeit.New(seed)
	}
}

// WithClock overrides the source of "today" used for stay dates.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New returns a generator with a random seed unless WithSeed is given.
func New(options ...Option) *Generator {
	g := &Generator{
		faker: gofakeit.New(0),
		now:   time.Now,
	}

	for _, o := range options {
		o(g)
	}

	return g
}

func (g *Generator) name(source func() string) string {
	for {
		name := source()

		if n := utf8.RuneCountInString(name); n >= minNameLength && n <= maxNameLength {
			return name
		}
	}
}

func (g *Generator) today() time.Time {
	year, month, day := g.now().Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (g *Generator) day(from, to int) string {
	today := g.today()

	date := g.faker.DateRange(today.AddDate(0, 0, from), today.AddDate(0, 0, to))

	year, month, day := date.Date()

	return schema.FormatDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Dates returns a random, correctly ordered stay.
func (g *Generator) Dates() schema.BookingDates {
	return schema.BookingDates{
		Checkin:  g.day(0, checkinWindow),
		Checkout: g.day(checkoutStart, checkoutWindow),
	}
}

// Booking returns a payload in the shape the booking API accepts. Keys in
// overrides replace the generated ones wholesale, nested objects included.
func (g *Generator) Booking(overrides map[string]any) map[string]any {
	dates := g.Dates()

	payload := map[string]any{
		"firstname":   g.name(g.faker.FirstName),
		"lastname":    g.name(g.faker.LastName),
		"totalprice":  g.faker.IntRange(minPrice, maxPrice),
		"depositpaid": g.faker.Bool(),
		"bookingdates": map[string]any{
			"checkin":  dates.Checkin,
			"checkout": dates.Checkout,
		},
		"additionalneeds": g.faker.Word(),
	}

	maps.Copy(payload, overrides)

	return payload
}

// BookingData is the typed equivalent of Booking without overrides.
func (g *Generator) BookingData() schema.BookingData {
	return schema.BookingData{
		Firstname:       g.name(g.faker.FirstName),
		Lastname:        g.name(g.faker.LastName),
		TotalPrice:      g.faker.IntRange(minPrice, maxPrice),
		DepositPaid:     g.faker.Bool(),
		BookingDates:    g.Dates(),
		AdditionalNeeds: ptr.To(g.faker.Word()),
	}
}
