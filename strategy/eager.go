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
	"dirpx.dev/solo/apis"
)

// Eager constructs its instance inside NewEager. Declared as a
// package-level variable, that is package initialization time, before
// any accessor call and whether or not the instance is ever used.
type Eager[T any] struct {
	core[T]
	instance *T
}

var _ apis.Accessor[struct{}] = (*Eager[struct{}])(nil)

// NewEager constructs the instance immediately and returns its accessor.
func NewEager[T any](ctor apis.Constructor[T], opts ...Option) *Eager[T] {
	e := &Eager[T]{}
	e.setup(apis.Eager, ctor, opts)
	e.instance = e.canonical()
	e.published()
	return e
}

// Instance returns the precomputed instance. No branching, no locking.
func (e *Eager[T]) Instance() *T {
	return e.instance
}

// Value implements apis.Binding.
func (e *Eager[T]) Value() any {
	return e.instance
}

// Construct always fails while the guard is enabled, because the
// canonical instance exists from the start.
func (e *Eager[T]) Construct() (*T, error) {
	return e.construct()
}
