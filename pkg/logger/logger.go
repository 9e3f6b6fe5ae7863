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

package logger

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level, or an unparsable one, is configured.
const DefaultLevel = zerolog.InfoLevel

// New returns a console logger writing to out at the given level.
func New(out io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}

	return zerolog.New(output).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel converts a textual level, falling back to DefaultLevel.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return DefaultLevel
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return DefaultLevel
	}

	return parsed
}

// ErrorWithStack logs err along with the stack of the caller.
func ErrorWithStack(logger zerolog.Logger, err error, msg string) {
	logger.Error().Msgf("%s: %+v", msg, errors.WithStack(err))
}
