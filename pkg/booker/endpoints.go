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
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nscaledev/booking-conformance/pkg/config"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct {
	auth     string
	bookings string
	ping     string
}

// NewEndpoints creates a new Endpoints instance from configured paths.
func NewEndpoints(config *config.Config) *Endpoints {
	return &Endpoints{
		auth:     config.AuthPath,
		bookings: strings.TrimSuffix(config.BookingPath, "/"),
		ping:     config.PingPath,
	}
}

// Auth exchanges credentials for a token.
func (e *Endpoints) Auth() string {
	return e.auth
}

// Bookings is the booking collection.
func (e *Endpoints) Bookings() string {
	return e.bookings
}

// Booking addresses a single booking.
func (e *Endpoints) Booking(id int) string {
	return fmt.Sprintf("%s/%s", e.bookings, url.PathEscape(strconv.Itoa(id)))
}

// Ping is the health check.
func (e *Endpoints) Ping() string {
	return e.ping
}
