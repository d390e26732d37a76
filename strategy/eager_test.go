/*
   Copyright 2025 The DIRPX Authors.

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

package strategy_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/strategy"
)

// settings is built while the test binary initializes its packages.
type settings struct {
	region string
}

var settingsBuilt atomic.Int32

var settingsAccessor = strategy.NewEager(func() *settings {
	settingsBuilt.Add(1)
	return &settings{region: "eu"}
})

func TestEager_PackageLevelVarBuiltAtInit(t *testing.T) {
	// No test has touched the accessor yet.
	assert.True(t, settingsAccessor.Initialized())
	assert.Equal(t, apis.Initialized, settingsAccessor.State())
	assert.EqualValues(t, 1, settingsBuilt.Load())

	assert.Equal(t, "eu", settingsAccessor.Instance().region)
	assert.Same(t, settingsAccessor.Instance(), settingsAccessor.Value())
	assert.EqualValues(t, 1, settingsBuilt.Load())

	_, err := settingsAccessor.Construct()
	assert.ErrorIs(t, err, strategy.ErrAlreadyInitialized)
}
