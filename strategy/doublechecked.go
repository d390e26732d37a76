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

package strategy

import (
	"sync"
	"sync/atomic"

	"dirpx.dev/solo/apis"
)

// DoubleChecked only locks on the construction path.
//
// The slot must be an atomic.Pointer: its Store publishes the fully
// constructed value and its Load on the hot path synchronizes with that
// Store. Replacing it with a plain *T field brings back the partially
// constructed read that Lazy suffers from.
type DoubleChecked[T any] struct {
	core[T]
	mu   sync.Mutex
	slot atomic.Pointer[T]
}

var _ apis.Accessor[struct{}] = (*DoubleChecked[struct{}])(nil)

// NewDoubleChecked returns an accessor that constructs on first Instance call.
func NewDoubleChecked[T any](ctor apis.Constructor[T], opts ...Option) *DoubleChecked[T] {
	d := &DoubleChecked[T]{}
	d.setup(apis.DoubleChecked, ctor, opts)
	return d
}

// Instance returns the stored instance. Once initialized it never takes
// the lock.
func (d *DoubleChecked[T]) Instance() *T {
	// Fast read path: no lock once published.
	if v := d.slot.Load(); v != nil {
		return v
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if v := d.slot.Load(); v != nil {
		return v
	}

	v := d.canonical()
	d.slot.Store(v)
	d.published()
	return v
}

// Value implements apis.Binding.
func (d *DoubleChecked[T]) Value() any {
	return d.Instance()
}

// Construct builds a value outside the slot, or fails with
// ErrAlreadyInitialized once the instance exists and the guard is on.
func (d *DoubleChecked[T]) Construct() (*T, error) {
	return d.construct()
}
