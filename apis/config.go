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

// Config carries the knobs used when building and binding accessors.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Strategy is the strategy used when a caller does not pick one.
	Strategy Strategy

	// Guard enables the AlreadyInitialized check on the direct
	// construction path of every accessor built from this Config.
	Guard bool

	// MaxUnwrap limits pointer unwrapping when deriving registry keys,
	// so *T, **T and T share a binding.
	MaxUnwrap int
}
