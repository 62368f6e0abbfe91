/*
 * Copyright 2025 Dgraph Labs, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package y

import (
	"github.com/pkg/errors"
)

// AssertTrue panics if b is false. Failed assertions are programmer errors,
// not conditions a caller is expected to recover from.
func AssertTrue(b bool) {
	if !b {
		panic(errors.Errorf("Assert failed"))
	}
}

// AssertTruef is AssertTrue with a formatted message.
func AssertTruef(b bool, format string, args ...interface{}) {
	if !b {
		panic(errors.Errorf(format, args...))
	}
}

// DebugAssertf behaves like AssertTruef in debug builds and does nothing in
// builds tagged release.
func DebugAssertf(b bool, format string, args ...interface{}) {
	if DebugAssertions && !b {
		panic(errors.Errorf(format, args...))
	}
}

// Wrap wraps errors from external libraries with a stack trace.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Check panics with a stack trace if err is not nil.
func Check(err error) {
	if err != nil {
		panic(Wrap(err, ""))
	}
}

// CombineErrors joins two errors into one, separated by "; ". Nil errors are
// skipped.
func CombineErrors(one, other error) error {
	if one != nil && other != nil {
		return errors.Errorf("%v; %v", one, other)
	}
	if one != nil {
		return one
	}
	return other
}
