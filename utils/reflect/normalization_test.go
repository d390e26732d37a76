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

package reflect_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/config"
	uref "dirpx.dev/solo/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}
type PA *A

func TestNormalize_Pointers(t *testing.T) {
	conf := config.DefaultConfig()
	want := reflect.TypeFor[A]()

	cases := []struct {
		name string
		typ  reflect.Type
	}{
		{"plain", reflect.TypeFor[A]()},
		{"ptr", reflect.TypeFor[*A]()},
		{"ptr-ptr", reflect.TypeFor[**A]()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, conf)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestNormalize_NamedPointerTypeIsKept(t *testing.T) {
	got, err := uref.Normalize(reflect.TypeFor[PA](), config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[PA](), got)
}

func TestNormalize_ContainersAreNotUnwrapped(t *testing.T) {
	for _, typ := range []reflect.Type{
		reflect.TypeFor[[]A](),
		reflect.TypeFor[chan A](),
		reflect.TypeFor[map[string]A](),
		reflect.TypeFor[struct{}](),
	} {
		_, err := uref.Normalize(typ, config.DefaultConfig())
		assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed, typ.String())
	}
}

func TestNormalize_Errors(t *testing.T) {
	_, err := uref.Normalize(nil, config.DefaultConfig())
	assert.ErrorIs(t, err, uref.ErrReflectNilType)

	_, err = uref.Normalize(reflect.TypeFor[*int](), config.DefaultConfig())
	assert.ErrorIs(t, err, uref.ErrReflectTypeBuiltin)
}

func TestNormalize_MaxUnwrapLimit(t *testing.T) {
	conf := apis.Config{MaxUnwrap: 1}

	_, err := uref.Normalize(reflect.TypeFor[**A](), conf)
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed)

	got, err := uref.Normalize(reflect.TypeFor[*A](), conf)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[A](), got)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "reflect_test.A", uref.TypeName(reflect.TypeFor[A]()))
	assert.Equal(t, "reflect_test.A", uref.TypeName(reflect.TypeFor[*A]()))
	assert.Equal(t, "reflect_test.G[int]", uref.TypeNameOf[G[int]]())
	assert.Equal(t, "int", uref.TypeNameOf[int]())
	assert.Equal(t, "[]reflect_test.A", uref.TypeNameOf[[]A]())
	assert.Equal(t, "", uref.TypeName(nil))
}

// Instantiations of one generic type get distinct names, with the
// package path of each type argument shortened.
func TestTypeName_GenericInstantiations(t *testing.T) {
	assert.NotEqual(t, uref.TypeNameOf[G[int]](), uref.TypeNameOf[G[string]]())
	assert.Equal(t, "reflect_test.G[string]", uref.TypeNameOf[*G[string]]())
	assert.Equal(t, "reflect_test.G[reflect_test.A]", uref.TypeNameOf[G[A]]())
	assert.Equal(t, "reflect_test.G[*reflect_test.A]", uref.TypeNameOf[G[*A]]())
	assert.Equal(t, "reflect_test.G[reflect_test.G[int]]", uref.TypeNameOf[G[G[int]]]())
}

func TestTypeName_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if got := uref.TypeNameOf[*G[string]](); got != "reflect_test.G[string]" {
					t.Errorf("TypeNameOf = %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
