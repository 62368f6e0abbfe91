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

package arena

import (
	"sync/atomic"

	"github.com/termedit/stdext/y"
)

// Options are params for the arena package. Apply them with Configure.
type Options struct {
	// ScratchCapacity is the capacity each arena of a lazily initialized
	// ScratchSet reserves.
	ScratchCapacity int
	// MetricsEnabled records commits and reservations with opencensus.
	MetricsEnabled bool

	Logger y.Logger
}

// DefaultOptions sets a list of recommended options.
func DefaultOptions() Options {
	return Options{
		ScratchCapacity: 128 * y.MiB,
		MetricsEnabled:  true,
		Logger:          y.DefaultLogger(),
	}
}

// WithScratchCapacity returns a new Options value with ScratchCapacity set to
// the given value. Zero keeps the current value.
func (opt Options) WithScratchCapacity(capacity int) Options {
	if capacity != 0 {
		opt.ScratchCapacity = capacity
	}
	return opt
}

// WithMetricsEnabled returns a new Options value with MetricsEnabled set to
// the given value.
func (opt Options) WithMetricsEnabled(val bool) Options {
	opt.MetricsEnabled = val
	return opt
}

// WithLogger returns a new Options value with Logger set to the given value.
// A nil logger silences the package.
func (opt Options) WithLogger(val y.Logger) Options {
	opt.Logger = val
	return opt
}

// Errorf logs an ERROR log message to the logger specified in opts or to the
// global logger if no logger is specified in opts.
func (opt *Options) Errorf(format string, v ...interface{}) {
	if opt.Logger == nil {
		return
	}
	opt.Logger.Errorf(format, v...)
}

// Infof logs an INFO message to the logger specified in opts.
func (opt *Options) Infof(format string, v ...interface{}) {
	if opt.Logger == nil {
		return
	}
	opt.Logger.Infof(format, v...)
}

// Warningf logs a WARNING message to the logger specified in opts.
func (opt *Options) Warningf(format string, v ...interface{}) {
	if opt.Logger == nil {
		return
	}
	opt.Logger.Warningf(format, v...)
}

// Debugf logs a DEBUG message to the logger specified in opts.
func (opt *Options) Debugf(format string, v ...interface{}) {
	if opt.Logger == nil {
		return
	}
	opt.Logger.Debugf(format, v...)
}

var current atomic.Pointer[Options]

func init() {
	opt := DefaultOptions()
	current.Store(&opt)
}

// Configure replaces the package options. Arenas and scratch sets that are
// already reserved keep their capacity.
func Configure(opt Options) {
	if opt.ScratchCapacity <= 0 {
		opt.ScratchCapacity = DefaultOptions().ScratchCapacity
	}
	current.Store(&opt)
}

// CurrentOptions returns the options last passed to Configure.
func CurrentOptions() Options {
	return *current.Load()
}

func options() *Options {
	return current.Load()
}
