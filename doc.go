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

// Package solo provides process-wide singleton accessors.
//
// A singleton here is a binding from a Go type to exactly one *T,
// constructed at most once for the life of the process, safe under
// concurrent access, and protected against the two usual bypasses:
// direct construction after the instance exists, and serialization round
// trips that would materialize a copy.
//
// # Strategies
//
// Accessors come in interchangeable strategies (see apis.Strategy and
// package strategy):
//
//   - Eager: construct when the accessor is created. Declared as a
//     package-level variable, that is package initialization time.
//   - Lazy: construct on first access with a plain check-then-act. Unsafe
//     under concurrent first access, kept to show the defect.
//   - Synchronized: the whole accessor runs under a mutex.
//   - DoubleChecked: lock-free hot path on an atomic pointer; the mutex
//     is only taken, and the slot re-read, when it is empty.
//   - Holder: construction deferred to sync.OnceValue.
//   - Enum: a zero-size type with one value (package enum). Neither
//     construction nor decoding can produce another value.
//
// # Bypass resistance
//
// Every accessor has a Construct method, the direct-construction path.
// With the guard enabled (the default) it fails with
// strategy.ErrAlreadyInitialized once the canonical instance exists.
// It does not stop a construction that races the very first one.
//
// Round trips go through package codec. Types that implement
// apis.ReadResolver have their freshly decoded value replaced with the
// hook's result, normally the canonical instance:
//
//	func (*Settings) ReadResolve() any { return solo.MustInstance[Settings]() }
//
// # Global API
//
// The package keeps a read-mostly global snapshot (configuration,
// registry, logger) behind an atomic pointer:
//
//	acc, err := solo.Bind(newSettings)      // default strategy
//	acc, err := solo.BindWith(apis.Holder, newSettings)
//	s, err := solo.Instance[Settings]()
//	_, err = solo.Construct[Settings]()     // ErrAlreadyInitialized
//
// Reads load the snapshot without locking. Writers (SetConfig,
// SetRegistry, SetLogger, SetAll) take a short build mutex, assemble a
// new snapshot and publish it with an atomic swap. Bindings are never
// removed by reconfiguration, and an instance, once constructed, is
// never torn down or reset.
package solo
