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

// ReadResolver is the deserialization hook.
//
// Decoders call ReadResolve on a freshly decoded value and return its
// result instead, so a singleton can discard the decoded copy and hand
// back the canonical instance. Implementations should return a pointer
// of the same type as the receiver, or nil to keep the decoded value.
type ReadResolver interface {
	ReadResolve() any
}

// Resolver decides what a decoder hands back for a freshly decoded value.
//
// Resolve returns the replacement and true when it handles v, or false to
// let the next resolver in a chain try. Implementations must be safe for
// concurrent use.
type Resolver interface {
	Resolve(v any) (any, bool)
}
