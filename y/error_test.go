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
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombineWithBothErrorsPresent(t *testing.T) {
	combinedError := CombineErrors(errors.New("one"), errors.New("two"))
	require.Equal(t, "one; two", combinedError.Error())
}

func TestCombineErrorsWithOneErrorPresent(t *testing.T) {
	combinedError := CombineErrors(errors.New("one"), nil)
	require.Equal(t, "one", combinedError.Error())
}

func TestCombineErrorsWithOtherErrorPresent(t *testing.T) {
	combinedError := CombineErrors(nil, errors.New("other"))
	require.Equal(t, "other", combinedError.Error())
}

func TestCombineErrorsWithBothErrorsAsNil(t *testing.T) {
	combinedError := CombineErrors(nil, nil)
	require.NoError(t, combinedError)
}

func TestAssert(t *testing.T) {
	require.NotPanics(t, func() { AssertTrue(true) })
	require.PanicsWithError(t, "Assert failed", func() { AssertTrue(false) })
	require.PanicsWithError(t, "bad value 3", func() { AssertTruef(false, "bad value %d", 3) })
}

func TestDebugAssert(t *testing.T) {
	fail := func() { DebugAssertf(false, "checked") }
	if DebugAssertions {
		require.PanicsWithError(t, "checked", fail)
	} else {
		require.NotPanics(t, fail)
	}
}

func TestWrap(t *testing.T) {
	err := Wrapf(os.ErrNotExist, "while opening %s", "x")
	require.EqualError(t, err, "while opening x: file does not exist")
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorIs(t, Wrap(os.ErrClosed, "closing"), os.ErrClosed)
	require.NoError(t, Wrap(nil, "nothing"))

	require.NotPanics(t, func() { Check(nil) })
	require.Panics(t, func() { Check(os.ErrClosed) })
}
