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

package schema

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strconv"

	"github.com/spjmurray/go-util/pkg/set"
)

// decoder walks a JSON document one field at a time so that every type and
// presence problem is collected rather than stopping at the first.
type decoder struct {
	violations []Violation
	// reported records paths that already carry a violation, later passes
	// skip them so a missing field is not also reported as too short.
	reported map[string]bool
}

func newDecoder() *decoder {
	return &decoder{
		reported: map[string]bool{},
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func (d *decoder) fail(field, constraint string, value any) {
	d.violations = append(d.violations, Violation{
		Field:      field,
		Constraint: constraint,
		Value:      value,
	})
	d.reported[field] = true
}

func (d *decoder) failed() bool {
	return len(d.violations) > 0
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// display turns a raw value into something readable for a violation.
func display(raw json.RawMessage) any {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return raw
	}

	return value
}

// object decodes raw as a JSON object, the path is used for reporting.
func (d *decoder) object(path string, raw json.RawMessage) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage

	if len(bytes.TrimSpace(raw)) == 0 || isNull(raw) {
		d.fail(pathOrRoot(path), "must be a JSON object", display(raw))
		return nil, false
	}

	if err := json.Unmarshal(raw, &fields); err != nil {
		d.fail(pathOrRoot(path), "must be a JSON object", display(raw))
		return nil, false
	}

	return fields, true
}

func pathOrRoot(path string) string {
	if path == "" {
		return "$"
	}

	return path
}

func (d *decoder) lookup(fields map[string]json.RawMessage, path, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		d.fail(join(path, key), "is required", absent{})
		return nil, false
	}

	return raw, true
}

func (d *decoder) requiredString(fields map[string]json.RawMessage, path, key string) string {
	raw, ok := d.lookup(fields, path, key)
	if !ok {
		return ""
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		d.fail(join(path, key), "must be a string", display(raw))
	}

	return value
}

func (d *decoder) optionalString(fields map[string]json.RawMessage, path, key string) *string {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		d.fail(join(path, key), "must be a string when present", display(raw))
		return nil
	}

	return &value
}

// requiredInt accepts only integral JSON numbers, fractions are rejected
// rather than truncated.
func (d *decoder) requiredInt(fields map[string]json.RawMessage, path, key string) int {
	raw, ok := d.lookup(fields, path, key)
	if !ok {
		return 0
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		d.fail(join(path, key), "must be an integer", display(raw))
		return 0
	}

	number, ok := value.(json.Number)
	if !ok {
		d.fail(join(path, key), "must be an integer", value)
		return 0
	}

	i, err := strconv.Atoi(number.String())
	if err != nil {
		d.fail(join(path, key), "must be an integer", number)
		return 0
	}

	return i
}

func (d *decoder) requiredBool(fields map[string]json.RawMessage, path, key string) bool {
	raw, ok := d.lookup(fields, path, key)
	if !ok {
		return false
	}

	var value bool
	if err := json.Unmarshal(raw, &value); err != nil {
		d.fail(join(path, key), "must be a boolean", display(raw))
	}

	return value
}

// forbidExtra flags every key that is not in the allowed set.
func (d *decoder) forbidExtra(fields map[string]json.RawMessage, path string, allowed ...string) {
	present := set.New[string](slices.Collect(maps.Keys(fields))...)

	for _, key := range slices.Sorted(present.Difference(set.New[string](allowed...)).All()) {
		d.fail(join(path, key), "unexpected field", display(fields[key]))
	}
}
