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

import "reflect"

// Registry maps a type identifier to its single accessor.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register binds the nearest named type of t to b.
	// Re-registering the same binding is a no-op; a different binding
	// for an already bound type is rejected.
	Register(t reflect.Type, b Binding) error
	// Lookup returns the binding for a type if present.
	Lookup(t reflect.Type) (b Binding, ok bool)
	// Entries returns a snapshot for diagnostics (order is unspecified).
	Entries() []Entry
	// Count returns the number of bound types.
	Count() int
	// Reset drops every binding. Instances already handed out are unaffected.
	Reset()
}

// Entry is a single (type, binding) association in a Registry snapshot.
type Entry struct {
	// Type is the bound reflect.Type.
	Type reflect.Type
	// Name is the "pkg.Type" name of Type.
	Name string
	// Binding is the accessor bound to Type.
	Binding Binding
}
