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

	"dirpx.dev/solo/apis"
)

// Holder keeps its instance behind a sync.OnceValue closure, which
// plays the role of a nested, otherwise unreferenced holder: the
// runtime runs it once, thread-safely, on the first call and never
// before. The accessor itself needs no explicit guard.
type Holder[T any] struct {
	core[T]
	hold func() *T
}

var _ apis.Accessor[struct{}] = (*Holder[struct{}])(nil)

// NewHolder returns an accessor whose construction is deferred to the
// first Instance call.
func NewHolder[T any](ctor apis.Constructor[T], opts ...Option) *Holder[T] {
	h := &Holder[T]{}
	h.setup(apis.Holder, ctor, opts)
	h.hold = sync.OnceValue(func() *T {
		v := h.canonical()
		h.published()
		return v
	})
	return h
}

// Instance dereferences the holder.
func (h *Holder[T]) Instance() *T {
	return h.hold()
}

// Value implements apis.Binding.
func (h *Holder[T]) Value() any {
	return h.hold()
}

// Construct builds a value outside the holder, or fails with
// ErrAlreadyInitialized once the holder has run and the guard is on.
func (h *Holder[T]) Construct() (*T, error) {
	return h.construct()
}
