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

package strategy

import (
	"errors"
	"fmt"
	"sync/atomic"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/config"
	"dirpx.dev/solo/logger"
	uref "dirpx.dev/solo/utils/reflect"
)

var (
	// ErrAlreadyInitialized is returned by Construct when the guard is
	// enabled and the canonical instance already exists. Callers are
	// expected to use Instance instead; the attempt is not retried.
	ErrAlreadyInitialized = errors.New("solo(strategy): already initialized")
	// ErrNilConstructor is the panic value for a nil constructor.
	ErrNilConstructor = errors.New("solo(strategy): nil constructor")
	// ErrNilInstance is the panic value for a constructor that returned nil.
	ErrNilInstance = errors.New("solo(strategy): constructor returned nil")
)

// Log messages emitted by every accessor.
const (
	MsgConstructed = "instance constructed"
	MsgRejected    = "construction rejected"
)

// Option configures an accessor.
type Option func(*options)

type options struct {
	guard bool
	lggr  logger.Logger
}

// WithGuard enables or disables the AlreadyInitialized check on Construct.
// The default is config.DefaultGuard.
func WithGuard(guard bool) Option {
	return func(o *options) {
		o.guard = guard
	}
}

// WithLogger sets the logger construction events are written to.
// A nil logger keeps the default no-op logger.
func WithLogger(lggr logger.Logger) Option {
	return func(o *options) {
		if lggr != nil {
			o.lggr = lggr
		}
	}
}

// core holds what every strategy shares: the constructor, the guard and
// the lifecycle phase of the canonical instance.
type core[T any] struct {
	ctor     apis.Constructor[T]
	guard    bool
	lggr     logger.Logger
	strategy apis.Strategy
	typeName string
	phase    atomic.Int32
}

func (c *core[T]) setup(s apis.Strategy, ctor apis.Constructor[T], opts []Option) {
	if ctor == nil {
		panic(ErrNilConstructor)
	}
	o := options{guard: config.DefaultGuard, lggr: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	c.ctor = ctor
	c.guard = o.guard
	c.lggr = o.lggr.Named("strategy")
	c.strategy = s
	c.typeName = uref.TypeNameOf[T]()
}

// Strategy returns the initialization strategy of the accessor.
func (c *core[T]) Strategy() apis.Strategy {
	return c.strategy
}

// State reports the lifecycle phase of the canonical instance.
func (c *core[T]) State() apis.State {
	return apis.State(c.phase.Load())
}

// Initialized reports whether the canonical instance has been published.
func (c *core[T]) Initialized() bool {
	return c.State() == apis.Initialized
}

// Guarded reports whether Construct enforces the AlreadyInitialized check.
func (c *core[T]) Guarded() bool {
	return c.guard
}

// newValue runs the constructor and records the construction event.
func (c *core[T]) newValue() *T {
	v := c.ctor()
	if v == nil {
		panic(ErrNilInstance)
	}
	c.lggr.Infow(MsgConstructed,
		"strategy", c.strategy.String(),
		"type", c.typeName,
		"addr", fmt.Sprintf("%p", v),
	)
	return v
}

// canonical builds the value destined for the slot, moving the phase
// forward around the constructor call. The caller publishes the value
// and then calls published.
func (c *core[T]) canonical() *T {
	c.phase.CompareAndSwap(int32(apis.Uninitialized), int32(apis.Initializing))
	return c.newValue()
}

func (c *core[T]) published() {
	c.phase.Store(int32(apis.Initialized))
}

// construct is the direct-construction path shared by all strategies.
// It never touches the slot.
func (c *core[T]) construct() (*T, error) {
	if c.guard && c.Initialized() {
		c.lggr.Warnw(MsgRejected,
			"strategy", c.strategy.String(),
			"type", c.typeName,
			"err", ErrAlreadyInitialized,
		)
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInitialized, c.typeName)
	}
	return c.newValue(), nil
}
