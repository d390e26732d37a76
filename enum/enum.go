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

// Package enum holds the enumerated singleton.
//
// Singleton is a zero-size struct. Its value set has exactly one element,
// so Singleton{} written anywhere is the same value as Instance and
// compares equal to it. Neither direct construction nor decoding can
// produce a second instance; the type system rules it out and no runtime
// check is involved.
//
// The payload lives in package state built during package initialization
// and is reached through methods, so every spelling of the value shares it.
package enum

import (
	"errors"
	"fmt"
	"sync"

	"dirpx.dev/solo/apis"
)

// ErrUnknownConstant is returned when decoding text that is not the
// single constant's token.
var ErrUnknownConstant = errors.New("solo(enum): unknown constant")

// Token is the text form of Instance.
const Token = "INSTANCE"

// DefaultName is the payload name set at package initialization.
const DefaultName = "moyu"

// Singleton is the enumerated singleton type.
type Singleton struct{}

// Instance is the only constant of Singleton.
var Instance Singleton

// state is the payload shared by every Singleton value.
var state = newPayload()

type payload struct {
	mu   sync.RWMutex
	name string
}

func newPayload() *payload {
	return &payload{name: DefaultName}
}

// Strategy returns apis.Enum.
func (Singleton) Strategy() apis.Strategy {
	return apis.Enum
}

// Name returns the payload name.
func (Singleton) Name() string {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.name
}

// SetName replaces the payload name for every holder of the value.
func (Singleton) SetName(name string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.name = name
}

// String implements fmt.Stringer.
func (Singleton) String() string {
	return Token
}

// MarshalText implements encoding.TextMarshaler. Only the tag is
// written; the payload stays with the process.
func (Singleton) MarshalText() ([]byte, error) {
	return []byte(Token), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Decoding the token
// yields the only value there is; anything else is rejected.
func (*Singleton) UnmarshalText(text []byte) error {
	if string(text) != Token {
		return fmt.Errorf("%w: %q", ErrUnknownConstant, text)
	}
	return nil
}

// Values lists every constant of Singleton.
func Values() []Singleton {
	return []Singleton{Instance}
}

// Parse returns the constant named by s.
func Parse(s string) (Singleton, error) {
	var v Singleton
	return v, v.UnmarshalText([]byte(s))
}
