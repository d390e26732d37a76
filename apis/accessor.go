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

package apis

// Constructor builds a new value for an accessor. It is assumed infallible.
type Constructor[T any] func() *T

// Binding is the type-erased view of an accessor, as held by a Registry.
type Binding interface {
	// Strategy returns the initialization strategy of the accessor.
	Strategy() Strategy
	// State reports the lifecycle phase of the canonical instance.
	State() State
	// Initialized reports whether the canonical instance exists.
	// Once true it stays true for the life of the process.
	Initialized() bool
	// Value returns the canonical instance as any, constructing it if
	// the strategy defers construction.
	Value() any
}

// Accessor is a process-wide binding to exactly one *T.
type Accessor[T any] interface {
	Binding

	// Instance returns the canonical instance. Safe to call from any
	// goroutine at any time, except that Lazy accessors may hand out
	// more than one value under concurrent first access.
	Instance() *T

	// Construct is the direct-construction path. With the guard enabled
	// it fails with an AlreadyInitialized error once the canonical
	// instance exists; otherwise it returns a fresh value that is never
	// stored in the slot.
	Construct() (*T, error)
}

// State is the lifecycle phase of an accessor's canonical instance.
// It only moves forward: Uninitialized -> Initializing -> Initialized.
type State int32

const (
	// Uninitialized means no canonical construction has started.
	Uninitialized State = iota
	// Initializing means the canonical constructor is running.
	Initializing
	// Initialized means the canonical instance is published.
	Initialized
)

// String returns a lowercase token for s.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Initialized:
		return "initialized"
	default:
		return "unknown"
	}
}
