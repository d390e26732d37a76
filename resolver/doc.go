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

// Package resolver provides decode-time resolvers for package codec.
//
// A resolver decides what Decode hands back for a freshly decoded value.
// Resolvers compose into an ordered chain with New; the first one that
// handles the value wins:
//
//	r := resolver.New(
//		resolver.Hook(),                    // the type's own ReadResolve
//		resolver.Registry(solo.Registry()), // the bound instance, if any
//	)
//	v, err := codec.Decode[Settings](codec.YAML(), data, codec.WithResolver(r))
//
// Hook is what Decode uses by default.
package resolver
