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

// Package api provides fixtures and payload builders for the booking API
// test suites.
//
// # Resource Lifecycle
//
// Every booking a test creates belongs to a third-party service shared by
// other users, so fixtures register its deletion as a test cleanup the
// moment it exists. Cleanups run whether the test passes, fails or panics.
// A failed deletion is logged with the booking ID and never turns a passing
// test into a failing one.
//
// # Separate Client Implementation
//
// The suites drive the API through pkg/booker rather than a generated
// client. Any change to the API contract must have a compensating change in
// pkg/schema, making drift explicit and reviewable.
package api
