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

// Synchronized wraps the whole accessor body in a mutex.
// Every call, including all calls after the first, serializes on mu.
type Synchronized[T any] struct {
	core[T]
	mu       sync.Mutex
	instance *T
}

var _ apis.Accessor[struct{}] = (*Synchronized[struct{}])(nil)

// NewSynchronized returns an accessor that constructs on first Instance call.
func NewSynchronized[T any](ctor apis.Constructor[T], opts ...Option) *Synchronized[T] {
	s := &Synchronized[T]{}
	s.setup(apis.Synchronized, ctor, opts)
	return s
}

// Instance returns the stored instance, constructing it under the lock
// if needed.
func (s *Synchronized[T]) Instance() *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instance == nil {
		s.instance = s.canonical()
		s.published()
	}
	return s.instance
}

// Value implements apis.Binding.
func (s *Synchronized[T]) Value() any {
	return s.Instance()
}

// Construct builds a value outside the slot, or fails with
// ErrAlreadyInitialized once the instance exists and the guard is on.
func (s *Synchronized[T]) Construct() (*T, error) {
	return s.construct()
}
