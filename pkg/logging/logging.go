/*
Copyright 2025 The Declconf Authors.
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

// Package logging provides declconf-runtime's recommended logging interface.
//
// Logs are considered a good fit for information consumed by humans, rather
// than machines. This library emits only debug level logs; it is up to the
// caller to decide whether they are surfaced.
package logging

import (
	"github.com/go-logr/logr"
)

// A Logger logs messages. Messages should be a simple description of what
// happened. Keys and values may optionally be supplied, and should alternate
// string keys with arbitrary values.
type Logger interface {
	// Info logs an event that should usually be seen by folks operating a
	// process that uses this library.
	Info(msg string, keysAndValues ...any)

	// Debug logs an event that should usually only be seen by folks debugging
	// a process that uses this library.
	Debug(msg string, keysAndValues ...any)

	// WithValues returns a Logger that will include the supplied keys and
	// values with every logged event.
	WithValues(keysAndValues ...any) Logger
}

// NewNopLogger returns a Logger that does nothing.
func NewNopLogger() Logger { return nopLogger{} }

type nopLogger struct{}

func (l nopLogger) Info(_ string, _ ...any)  {}
func (l nopLogger) Debug(_ string, _ ...any) {}

func (l nopLogger) WithValues(_ ...any) Logger { return nopLogger{} }

// NewLogrLogger returns a Logger that is satisfied by the supplied
// logr.Logger, which may be satisfied in turn by various logging
// implementations. Debug messages are logged at V(1).
func NewLogrLogger(l logr.Logger) Logger {
	return logrLogger{log: l}
}

type logrLogger struct {
	log logr.Logger
}

func (l logrLogger) Info(msg string, keysAndValues ...any) {
	l.log.Info(msg, keysAndValues...)
}

func (l logrLogger) Debug(msg string, keysAndValues ...any) {
	l.log.V(1).Info(msg, keysAndValues...)
}

func (l logrLogger) WithValues(keysAndValues ...any) Logger {
	return logrLogger{log: l.log.WithValues(keysAndValues...)}
}
