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

// Package errors provides error wrapping helpers and the error kinds
// reconciliation can surface to its callers.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
func New(text string) error { return errors.New(text) }

// Errorf formats according to a format specifier and returns the string as a
// value that satisfies error.
func Errorf(format string, args ...any) error { return fmt.Errorf(format, args...) }

// Wrap returns an error annotating err with the supplied message. If err is
// nil, Wrap returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf returns an error annotating err with the formatted message. If err is
// nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's tree that matches target, and if one is
// found, sets target to that error value and returns true.
func As(err error, target any) bool { return errors.As(err, target) }

// Unwrap returns the result of calling the Unwrap method on err, if err's
// type contains an Unwrap method returning error. Otherwise, Unwrap returns
// nil.
func Unwrap(err error) error { return errors.Unwrap(err) }

// ErrInvalidType matches any error caused by a configuration tree containing
// a value that cannot be represented as a configuration value.
var ErrInvalidType = New("invalid configuration value")

// ErrUnbounded matches any error caused by a configuration tree that cannot
// be traversed within resource limits.
var ErrUnbounded = New("configuration cannot be traversed within resource limits")

// A TypeError indicates a configuration tree contains a value of a kind that
// cannot be represented as a configuration value, for example a mapping whose
// keys are not strings.
type TypeError struct {
	// Path of the offending value within the tree. Empty at the root.
	Path string

	// Reason the value is invalid.
	Reason string
}

func (e *TypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration value: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration value at %q: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrInvalidType.
func (e *TypeError) Is(target error) bool { return target == ErrInvalidType }

// A DepthError indicates a configuration tree is nested more deeply than the
// configured limit allows.
type DepthError struct {
	// Path at which the limit was exceeded.
	Path string

	// Limit that was exceeded.
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("configuration at %q exceeds maximum depth %d", e.Path, e.Limit)
}

// Is reports whether target is ErrUnbounded.
func (e *DepthError) Is(target error) bool { return target == ErrUnbounded }

// A CycleError indicates a configuration tree contains a container that is
// reachable from itself. Such a tree cannot be traversed.
type CycleError struct {
	// Path at which the cycle was detected.
	Path string
}

func (e *CycleError) Error() string {
	if e.Path == "" {
		return "configuration contains a cyclic reference"
	}
	return fmt.Sprintf("configuration contains a cyclic reference at %q", e.Path)
}

// Is reports whether target is ErrUnbounded.
func (e *CycleError) Is(target error) bool { return target == ErrUnbounded }
