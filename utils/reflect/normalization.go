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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("solo(reflect): nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping pointers)
	// is not a named type (e.g., anonymous struct, func, map literal type).
	ErrReflectTypeNotNamed = errors.New("solo(reflect): type is not named")
	// ErrReflectTypeBuiltin indicates a predeclared type such as int or string,
	// which cannot carry a process-wide binding of its own.
	ErrReflectTypeBuiltin = errors.New("solo(reflect): builtin type cannot be bound")
)

// Normalize unwraps pointers up to cfg.MaxUnwrap levels and returns the
// named type underneath, so *T, **T and T share one identity.
//
// Only pointers are unwrapped: []T or chan T is a different thing than T
// and must not alias its binding. If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i < maxUnwrap && t.Kind() == reflect.Ptr && t.Name() == ""; i++ {
		t = t.Elem()
	}

	if t.Name() == "" {
		return nil, ErrReflectTypeNotNamed
	}
	if t.PkgPath() == "" {
		return nil, ErrReflectTypeBuiltin
	}
	return t, nil
}

// typeNameCache caches resolved "pkg.Type" names by reflect.Type.
var typeNameCache sync.Map // key: reflect.Type, val: string

// TypeName returns a short, stable "pkg.Type" name for t, used as the
// type field of log events and registry entries. Generic instantiations
// keep their type arguments with package paths shortened, so Box[int]
// and Box[string] stay distinct. Unnamed types fall back to t.String().
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}

	base := t
	for base.Kind() == reflect.Ptr && base.Name() == "" {
		base = base.Elem()
	}

	var name string
	switch {
	case base.Name() == "":
		name = t.String()
	case base.PkgPath() == "":
		name = base.Name()
	default:
		name = path.Base(base.PkgPath()) + "." + shortTypeArgs(base.Name())
	}

	typeNameCache.Store(t, name)
	return name
}

// TypeNameOf is TypeName for the static type T.
func TypeNameOf[T any]() string {
	return TypeName(reflect.TypeFor[T]())
}

// importPath matches the directory part of a package path inside a type
// argument list: "dirpx.dev/solo/x.A" keeps only "x.A".
var importPath = regexp.MustCompile(`(?:[\w.~-]+/)+`)

// shortTypeArgs shortens package paths in generic instantiation suffixes:
// "Box[example.com/pkg.T,int]" -> "Box[pkg.T,int]".
func shortTypeArgs(s string) string {
	if !strings.ContainsRune(s, '[') {
		return s
	}
	return importPath.ReplaceAllString(s, "")
}
