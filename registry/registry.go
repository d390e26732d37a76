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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/config"
	uref "dirpx.dev/solo/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("solo(registry): nil reflect.Type provided")
	// ErrNilBinding is returned when a nil binding is provided.
	ErrNilBinding = errors.New("solo(registry): nil binding provided")
	// ErrConflictingRegistration indicates an attempt to bind a type that
	// already has a different accessor. A type has exactly one accessor
	// for the life of the registry.
	ErrConflictingRegistration = errors.New("solo(registry): conflicting type registration")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps the normalized reflect.Type to its binding.
	m sync.Map // map[reflect.Type]apis.Binding
	// count tracks the number of bound types.
	count int
}

// Register binds the nearest named type of t to b.
// It is idempotent for the same (type, binding) pair.
func (r *registry) Register(t reflect.Type, b apis.Binding) error {
	if t == nil {
		return ErrNilType
	}
	if b == nil {
		return ErrNilBinding
	}

	key, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(key); ok {
		return sameBinding(old.(apis.Binding), b)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(key); ok {
		return sameBinding(old.(apis.Binding), b)
	}

	r.m.Store(key, b)
	r.count++
	return nil
}

func sameBinding(old, b apis.Binding) error {
	if old == b {
		return nil
	}
	return ErrConflictingRegistration
}

// Lookup returns the binding for a type if present.
func (r *registry) Lookup(t reflect.Type) (apis.Binding, bool) {
	if t == nil {
		return nil, false
	}
	key, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(key); ok {
		return v.(apis.Binding), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		t := key.(reflect.Type)
		entries = append(entries, apis.Entry{
			Type:    t,
			Name:    uref.TypeName(t),
			Binding: value.(apis.Binding),
		})
		return true
	})
	return entries
}

// Count returns the number of bound types.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset drops every binding.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}

// Migrate builds a registry for cfg and copies every binding of prev
// into it. Bindings whose type no longer normalizes under cfg are dropped.
func Migrate(cfg apis.Config, prev apis.Registry) apis.Registry {
	next := New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = next.Register(e.Type, e.Binding)
		}
	}
	return next
}
