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

// Package codec serializes singleton values and applies the
// deserialization hook on the way back in.
//
// A decoded value is always a fresh allocation. If its type implements
// apis.ReadResolver, Decode discards the fresh value and returns what the
// hook yields, normally the process-wide canonical instance. Without the
// hook a round trip produces a second instance with equal contents.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/resolver"
)

var (
	// ErrUnknownCodec is returned by ByName for an unsupported name.
	ErrUnknownCodec = errors.New("solo(codec): unknown codec")
	// ErrNilValue is returned when encoding a nil pointer.
	ErrNilValue = errors.New("solo(codec): nil value")
)

// Codec is a wire format for singleton values.
type Codec interface {
	// Name returns the short format name ("yaml", "json").
	Name() string
	// Marshal encodes v.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes data into the value pointed to by v.
	Unmarshal(data []byte, v any) error
}

// YAML returns the gopkg.in/yaml.v3 codec.
func YAML() Codec { return yamlCodec{} }

// JSON returns the encoding/json codec.
func JSON() Codec { return jsonCodec{} }

// ByName selects a codec by its case-insensitive name.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return YAML(), nil
	case "json":
		return JSON(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// Names lists the supported codec names.
func Names() []string {
	return []string{"yaml", "json"}
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Option configures Decode.
type Option func(*options)

type options struct {
	resolver apis.Resolver
}

// WithoutResolve skips resolution, so the caller gets the freshly decoded
// value even when its type implements apis.ReadResolver.
func WithoutResolve() Option {
	return func(o *options) {
		o.resolver = nil
	}
}

// WithResolver replaces the default hook resolver with r, typically a
// resolver.New chain. A nil r behaves like WithoutResolve.
func WithResolver(r apis.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// Encode serializes v with c.
func Encode[T any](c Codec, v *T) ([]byte, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	data, err := c.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("solo(codec): %s encode: %w", c.Name(), err)
	}
	return data, nil
}

// Decode deserializes data into a fresh *T and then resolves it, by
// default through the type's apis.ReadResolver hook.
//
// The resolved value replaces the fresh one only when it is a non-nil *T;
// any other result keeps the fresh value.
func Decode[T any](c Codec, data []byte, opts ...Option) (*T, error) {
	o := options{resolver: resolver.Hook()}
	for _, opt := range opts {
		opt(&o)
	}

	fresh := new(T)
	if err := c.Unmarshal(data, fresh); err != nil {
		return nil, fmt.Errorf("solo(codec): %s decode: %w", c.Name(), err)
	}
	return ResolveWith(o.resolver, fresh), nil
}

// Resolve runs the deserialization hook on v, if it has one.
func Resolve[T any](v *T) *T {
	return ResolveWith(resolver.Hook(), v)
}

// ResolveWith resolves v with r. A nil r returns v unchanged.
func ResolveWith[T any](r apis.Resolver, v *T) *T {
	if r == nil {
		return v
	}
	out, ok := r.Resolve(v)
	if !ok {
		return v
	}
	if canonical, ok := out.(*T); ok && canonical != nil {
		return canonical
	}
	return v
}

// RoundTrip encodes v and decodes the result, as a serialization
// round trip through storage would.
func RoundTrip[T any](c Codec, v *T, opts ...Option) (*T, error) {
	data, err := Encode(c, v)
	if err != nil {
		return nil, err
	}
	return Decode[T](c, data, opts...)
}
