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

package config

import (
	"dirpx.dev/solo/apis"
)

const (
	// DefaultStrategy is the strategy used by Bind when none is given.
	// DoubleChecked is safe and keeps the hot path lock-free.
	DefaultStrategy = apis.DoubleChecked
	// DefaultGuard enables the AlreadyInitialized check by default.
	DefaultGuard = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if !Bindable(cfg.Strategy) {
		cfg.Strategy = DefaultStrategy
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Strategy:  DefaultStrategy,
		Guard:     DefaultGuard,
		MaxUnwrap: DefaultMaxUnwrap,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// Bindable reports whether s can serve as the default strategy, that is
// whether it can wrap an arbitrary constructor. Enum cannot: it is a
// property of a type, not of an accessor.
func Bindable(s apis.Strategy) bool {
	return s.Valid() && s != apis.Enum
}

// WithStrategy sets the default strategy.
// An unknown value, or Enum, resets to DefaultStrategy.
func WithStrategy(s apis.Strategy) Option {
	return func(c *apis.Config) {
		if !Bindable(s) {
			c.Strategy = DefaultStrategy
			return
		}
		c.Strategy = s
	}
}

// WithGuard sets the Guard option.
func WithGuard(guard bool) Option {
	return func(c *apis.Config) {
		c.Guard = guard
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}
