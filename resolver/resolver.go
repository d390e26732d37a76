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

package resolver

import (
	"reflect"

	"dirpx.dev/solo/apis"
)

// New constructs an apis.Resolver that tries the given resolvers in order.
// Nil resolvers are ignored. The returned resolver is safe for concurrent use
// provided the resolvers themselves are.
func New(resolvers ...apis.Resolver) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Resolver, 0, len(resolvers))
	for _, r := range resolvers {
		if r != nil {
			out = append(out, r)
		}
	}
	return chain{rs: out}
}

// chain is an immutable, order-preserving resolver over a set of resolvers.
type chain struct {
	rs []apis.Resolver
}

// Resolve runs resolvers in order until one handles the value.
func (c chain) Resolve(v any) (any, bool) {
	for _, r := range c.rs {
		if out, ok := r.Resolve(v); ok {
			return out, true
		}
	}
	return nil, false
}

// Hook returns the resolver that defers to apis.ReadResolver. A hook that
// returns nil leaves v unhandled.
func Hook() apis.Resolver {
	return hook{}
}

type hook struct{}

func (hook) Resolve(v any) (any, bool) {
	r, ok := v.(apis.ReadResolver)
	if !ok {
		return nil, false
	}
	out := r.ReadResolve()
	if out == nil {
		return nil, false
	}
	return out, true
}

// Registry returns a resolver that replaces a decoded value with the
// instance bound to its type in reg. It covers types that have no hook of
// their own. Looking up a deferred binding constructs its instance.
func Registry(reg apis.Registry) apis.Resolver {
	return registryResolver{reg: reg}
}

type registryResolver struct {
	reg apis.Registry
}

func (r registryResolver) Resolve(v any) (any, bool) {
	if r.reg == nil || v == nil {
		return nil, false
	}
	b, ok := r.reg.Lookup(reflect.TypeOf(v))
	if !ok {
		return nil, false
	}
	return b.Value(), true
}
