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

package enum_test

import (
	"encoding/json"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/enum"
)

// Building the value directly gives back the constant: the type admits
// no second value, so there is nothing for application code to reject.
func TestDirectConstructionIsTheConstant(t *testing.T) {
	var zero enum.Singleton
	literal := enum.Singleton{}
	fresh := *new(enum.Singleton)

	assert.True(t, zero == enum.Instance)
	assert.True(t, literal == enum.Instance)
	assert.True(t, fresh == enum.Instance)
	assert.Zero(t, unsafe.Sizeof(enum.Instance))
	assert.Len(t, enum.Values(), 1)
}

func TestPayloadIsShared(t *testing.T) {
	t.Cleanup(func() { enum.Instance.SetName(enum.DefaultName) })

	assert.Equal(t, enum.DefaultName, enum.Instance.Name())

	enum.Singleton{}.SetName("renamed")
	assert.Equal(t, "renamed", enum.Instance.Name())
}

func TestRoundTripYieldsTheConstant(t *testing.T) {
	type holder struct {
		Value enum.Singleton `json:"value" yaml:"value"`
	}

	js, err := json.Marshal(holder{Value: enum.Instance})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"INSTANCE"}`, string(js))

	var fromJSON holder
	require.NoError(t, json.Unmarshal(js, &fromJSON))
	assert.True(t, fromJSON.Value == enum.Instance)

	ys, err := yaml.Marshal(holder{Value: enum.Instance})
	require.NoError(t, err)

	var fromYAML holder
	require.NoError(t, yaml.Unmarshal(ys, &fromYAML))
	assert.True(t, fromYAML.Value == enum.Instance)
}

func TestUnknownConstantRejected(t *testing.T) {
	_, err := enum.Parse("OTHER")
	require.ErrorIs(t, err, enum.ErrUnknownConstant)

	var v enum.Singleton
	err = json.Unmarshal([]byte(`"SECOND"`), &v)
	require.ErrorIs(t, err, enum.ErrUnknownConstant)

	got, err := enum.Parse(enum.Token)
	require.NoError(t, err)
	assert.True(t, got == enum.Instance)
}

func TestConcurrentAccess(t *testing.T) {
	t.Cleanup(func() { enum.Instance.SetName(enum.DefaultName) })

	var wg sync.WaitGroup
	wg.Add(20)
	for i := range 20 {
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				enum.Instance.SetName("writer")
				return
			}
			_ = enum.Singleton{}.Name()
		}()
	}
	wg.Wait()

	assert.Equal(t, "writer", enum.Instance.Name())
	assert.Equal(t, apis.Enum, enum.Instance.Strategy())
	assert.Equal(t, "INSTANCE", enum.Instance.String())
}
