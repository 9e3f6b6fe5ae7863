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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nscaledev/booking-conformance/pkg/booker"
	"github.com/nscaledev/booking-conformance/pkg/config"
	"github.com/nscaledev/booking-conformance/pkg/constants"
	"github.com/nscaledev/booking-conformance/pkg/fake"
	"github.com/nscaledev/booking-conformance/pkg/logger"
	"github.com/nscaledev/booking-conformance/pkg/probe"
)

type options struct {
	baseURL    string
	iterations int
	rate       float64
	seed       uint64
	logLevel   string
	logFile    string
	envFile    string
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.baseURL, "base-url", "", "Booking API base URL, overrides BOOKER_BASE_URL.")
	f.IntVar(&o.iterations, "iterations", 10, "Number of back to back creates used to detect degradation.")
	f.Float64Var(&o.rate, "rate", 2, "Maximum back to back creates per second, 0 for unlimited.")
	f.Uint64Var(&o.seed, "seed", 0, "Seed for generated bookings, overrides BOOKER_FAKER_SEED.")
	f.StringVar(&o.logLevel, "log-level", "", "Log level, overrides BOOKER_LOG_LEVEL.")
	f.StringVar(&o.logFile, "log-file", "", "Also write logs to this file, rotated once it reaches 10MB.")
	f.StringVar(&o.envFile, "env-file", "", "Explicit .env file to load before the environment.")
}

func (o *options) apply(cfg *config.Config) error {
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}

	if o.seed != 0 {
		cfg.FakerSeed = o.seed
	}

	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	return cfg.Validate()
}

func main() {
	var o options

	o.addFlags(pflag.CommandLine)

	pflag.Parse()

	os.Exit(run(o))
}

// run returns the process exit code, non-zero when any check failed.
func run(o options) int {
	var paths []string
	if o.envFile != "" {
		paths = append(paths, o.envFile)
	}

	cfg, err := config.Load(paths...)
	if err != nil {
		fmt.Println(err)
		return 1
	}

	if err := o.apply(cfg); err != nil {
		fmt.Println(err)
		return 1
	}

	var out io.Writer = os.Stderr

	if o.logFile != "" {
		file := &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    10,
			MaxBackups: 3,
			LocalTime:  true,
		}

		defer file.Close()

		out = io.MultiWriter(os.Stderr, file)
	}

	log := logger.New(out, cfg.LogLevel)
	log.Info().Str("application", constants.Application).Str("version", constants.Version).Str("revision", constants.Revision).Msg("probe starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := booker.New(cfg, booker.WithLogger(log))
	gen := fake.New(fake.WithSeed(cfg.FakerSeed))

	report, err := probe.Run(ctx, client, gen, cfg, probe.Options{
		Iterations: o.iterations,
		Rate:       o.rate,
		Logger:     &log,
	})

	if report != nil {
		if perr := report.Print(os.Stdout); perr != nil {
			fmt.Println(perr)
		}
	}

	if err != nil || !report.Passed() {
		return 1
	}

	return 0
}
