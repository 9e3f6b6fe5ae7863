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

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. BOOKER_BASE_URL.
const Prefix = "BOOKER"

// ErrInvalid wraps every configuration loading or validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Credentials are posted to the auth endpoint to obtain a token.
type Credentials struct {
	Username string `envconfig:"USERNAME" default:"admin" json:"username"`
	Password string `envconfig:"PASSWORD" default:"password123" json:"password"`
}

// SLA holds the maximum acceptable latency per operation.
type SLA struct {
	Create time.Duration `envconfig:"CREATE" default:"1500ms"`
	Get    time.Duration `envconfig:"GET" default:"500ms"`
	Update time.Duration `envconfig:"UPDATE" default:"1500ms"`
	Delete time.Duration `envconfig:"DELETE" default:"1s"`
}

// Config is everything needed to reach and judge the booking API.
type Config struct {
	BaseURL     string `envconfig:"BASE_URL" default:"https://restful-booker.herokuapp.com"`
	AuthPath    string `envconfig:"AUTH_PATH" default:"/auth"`
	BookingPath string `envconfig:"BOOKING_PATH" default:"/booking"`
	PingPath    string `envconfig:"PING_PATH" default:"/ping"`

	Credentials Credentials `envconfig:"CREDENTIALS"`

	// RequestTimeout applies to every call made to the API.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	SLA SLA `envconfig:"SLA"`

	// FakerSeed makes generated bookings reproducible, zero means random.
	FakerSeed uint64 `envconfig:"FAKER_SEED"`

	SkipIntegration bool   `envconfig:"SKIP_INTEGRATION"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	LogRequests     bool   `envconfig:"LOG_REQUESTS"`
	LogResponses    bool   `envconfig:"LOG_RESPONSES"`
}

// envPaths are searched in order, relative to the working directory of the
// test binary or CLI.
var envPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"../../../.env",
}

// Load reads configuration from the environment, after merging in the first
// .env file found. Explicit paths take precedence over the search list.
// Variables already set in the environment always win over file values.
func Load(paths ...string) (*Config, error) {
	loadEnvFile(paths)

	config := &Config{}

	if err := envconfig.Process(Prefix, config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile(paths []string) {
	if len(paths) == 0 {
		paths = envPaths
	}

	var envPath string

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// No .env file, this is OK in CI where variables are set directly.
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// Validate checks that all required values are present and well formed,
// every problem is reported at once.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("%s_BASE_URL must be an absolute URL, got %q", Prefix, c.BaseURL))
	}

	paths := map[string]string{
		"AUTH_PATH":    c.AuthPath,
		"BOOKING_PATH": c.BookingPath,
		"PING_PATH":    c.PingPath,
	}

	for _, name := range []string{"AUTH_PATH", "BOOKING_PATH", "PING_PATH"} {
		if !strings.HasPrefix(paths[name], "/") {
			problems = append(problems, fmt.Sprintf("%s_%s must start with '/', got %q", Prefix, name, paths[name]))
		}
	}

	if c.Credentials.Username == "" || c.Credentials.Password == "" {
		problems = append(problems, fmt.Sprintf("%s_CREDENTIALS_USERNAME and %s_CREDENTIALS_PASSWORD must be set", Prefix, Prefix))
	}

	if c.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("%s_REQUEST_TIMEOUT must be positive, got %s", Prefix, c.RequestTimeout))
	}

	for name, threshold := range map[string]time.Duration{
		"CREATE": c.SLA.Create,
		"GET":    c.SLA.Get,
		"UPDATE": c.SLA.Update,
		"DELETE": c.SLA.Delete,
	} {
		if threshold <= 0 {
			problems = append(problems, fmt.Sprintf("%s_SLA_%s must be positive, got %s", Prefix, name, threshold))
		}
	}

	if len(problems) > 0 {
		slices.Sort(problems)

		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}

	return nil
}
