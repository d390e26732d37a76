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
	"sync/atomic"

	"dirpx.dev/solo/apis"
)

// Lazy constructs on first access without any concurrency guard.
//
// The slot is read and written atomically, so there is no data race in
// the memory-model sense, but the check and the store are two separate
// steps. Goroutines that all see an empty slot each construct a value
// and each return their own; the last store wins. This defect is
// intentional and documented, it is what the other strategies fix.
type Lazy[T any] struct {
	core[T]
	slot atomic.Pointer[T]
}

var _ apis.Accessor[struct{}] = (*Lazy[struct{}])(nil)

// NewLazy returns an accessor that constructs on first Instance call.
func NewLazy[T any](ctor apis.Constructor[T], opts ...Option) *Lazy[T] {
	l := &Lazy[T]{}
	l.setup(apis.Lazy, ctor, opts)
	return l
}

// Instance returns the stored instance, constructing it if the slot is
// empty. Not safe for concurrent first access.
func (l *Lazy[T]) Instance() *T {
	if v := l.slot.Load(); v != nil {
		return v
	}
	v := l.canonical()
	l.slot.Store(v)
	l.published()
	return v
}

// Value implements apis.Binding.
func (l *Lazy[T]) Value() any {
	return l.Instance()
}

// Construct builds a value outside the slot. Before the first Instance
// call it succeeds even with the guard enabled.
func (l *Lazy[T]) Construct() (*T, error) {
	return l.construct()
}
