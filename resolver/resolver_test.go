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

package resolver_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/config"
	"dirpx.dev/solo/registry"
	"dirpx.dev/solo/resolver"
	"dirpx.dev/solo/strategy"
)

type hooked struct{ _ byte }

var canonicalHooked = &hooked{}

func (*hooked) ReadResolve() any { return canonicalHooked }

type silent struct{ _ byte }

func (*silent) ReadResolve() any { return nil }

type bare struct{ _ byte }

type fixed struct {
	out any
	ok  bool
	hit *int
}

func (f fixed) Resolve(any) (any, bool) {
	*f.hit++
	return f.out, f.ok
}

func TestNew_FirstHandlerWins(t *testing.T) {
	var first, second, third int
	r := resolver.New(
		fixed{ok: false, hit: &first},
		nil,
		fixed{out: "two", ok: true, hit: &second},
		fixed{out: "three", ok: true, hit: &third},
	)

	out, ok := r.Resolve(&bare{})
	require.True(t, ok)
	assert.Equal(t, "two", out)
	assert.Equal(t, []int{1, 1, 0}, []int{first, second, third})
}

func TestNew_Empty(t *testing.T) {
	out, ok := resolver.New().Resolve(&bare{})
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestHook(t *testing.T) {
	out, ok := resolver.Hook().Resolve(&hooked{})
	require.True(t, ok)
	assert.Same(t, canonicalHooked, out)

	_, ok = resolver.Hook().Resolve(&silent{})
	assert.False(t, ok, "a nil hook result is unhandled")

	_, ok = resolver.Hook().Resolve(&bare{})
	assert.False(t, ok)
}

func TestRegistry(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	acc := strategy.NewHolder(func() *bare { return &bare{} })
	require.NoError(t, reg.Register(reflect.TypeFor[bare](), acc))
	r := resolver.Registry(reg)

	out, ok := r.Resolve(&bare{})
	require.True(t, ok)
	assert.Same(t, acc.Instance(), out)
	assert.Equal(t, apis.Initialized, acc.State())

	_, ok = r.Resolve(&hooked{})
	assert.False(t, ok)

	_, ok = r.Resolve(nil)
	assert.False(t, ok)

	_, ok = resolver.Registry(nil).Resolve(&bare{})
	assert.False(t, ok)
}
