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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termedit/stdext/y"
)

type mockLogger struct {
	output string
}

func (l *mockLogger) Errorf(f string, v ...interface{}) {
	l.output = fmt.Sprintf("ERROR: "+f, v...)
}

func (l *mockLogger) Infof(f string, v ...interface{}) {
	l.output = fmt.Sprintf("INFO: "+f, v...)
}

func (l *mockLogger) Warningf(f string, v ...interface{}) {
	l.output = fmt.Sprintf("WARNING: "+f, v...)
}

func (l *mockLogger) Debugf(f string, v ...interface{}) {
	l.output = fmt.Sprintf("DEBUG: "+f, v...)
}

// withOptions installs opt for the duration of the test.
func withOptions(t *testing.T, opt Options) {
	prev := CurrentOptions()
	Configure(opt)
	t.Cleanup(func() { Configure(prev) })
}

func TestOptionsLog(t *testing.T) {
	l := &mockLogger{}
	opt := Options{Logger: l}

	opt.Errorf("test")
	require.Equal(t, "ERROR: test", l.output)
	opt.Infof("test")
	require.Equal(t, "INFO: test", l.output)
	opt.Warningf("test")
	require.Equal(t, "WARNING: test", l.output)
	opt.Debugf("test")
	require.Equal(t, "DEBUG: test", l.output)
}

// Logging through Options without a Logger is silently dropped.
func TestOptionsNoLog(t *testing.T) {
	opt := Options{}
	require.NotPanics(t, func() {
		opt.Errorf("test")
		opt.Infof("test")
		opt.Warningf("test")
		opt.Debugf("test")
	})
}

func TestOptionsBuilders(t *testing.T) {
	def := DefaultOptions()
	require.Equal(t, 128*y.MiB, def.ScratchCapacity)
	require.True(t, def.MetricsEnabled)
	require.NotNil(t, def.Logger)

	opt := def.WithScratchCapacity(y.MiB).WithMetricsEnabled(false).WithLogger(nil)
	require.Equal(t, y.MiB, opt.ScratchCapacity)
	require.False(t, opt.MetricsEnabled)
	require.Nil(t, opt.Logger)
	require.Equal(t, y.MiB, opt.WithScratchCapacity(0).ScratchCapacity)

	// The receiver is a copy.
	require.Equal(t, 128*y.MiB, def.ScratchCapacity)
}

func TestConfigure(t *testing.T) {
	withOptions(t, DefaultOptions().WithScratchCapacity(-1).WithMetricsEnabled(false))
	require.Equal(t, DefaultOptions().ScratchCapacity, CurrentOptions().ScratchCapacity)
	require.False(t, CurrentOptions().MetricsEnabled)

	Configure(DefaultOptions().WithScratchCapacity(4 * ChunkSize))
	require.Equal(t, 4*ChunkSize, CurrentOptions().ScratchCapacity)
}

func TestOutOfMemoryIsLogged(t *testing.T) {
	l := &mockLogger{}
	withOptions(t, DefaultOptions().WithLogger(l).WithMetricsEnabled(false))

	a := newTestArena(t, ChunkSize)
	require.Panics(t, func() { a.AllocRaw(2*ChunkSize, 1) })
	require.True(t, strings.HasPrefix(l.output, "ERROR: Arena out of memory"), l.output)
}

func TestScratchSetUsesConfiguredCapacity(t *testing.T) {
	l := &mockLogger{}
	withOptions(t, DefaultOptions().WithScratchCapacity(2*ChunkSize).WithLogger(l))

	ss := NewScratchSet(0)
	defer func() { require.NoError(t, ss.Release()) }()

	s := ss.Get(nil)
	defer s.Close()
	require.Equal(t, 2*ChunkSize, s.Stats().Capacity)
	require.Contains(t, l.output, "DEBUG: Scratch arenas reserved")
}
