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

package demo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"dirpx.dev/solo"
	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/codec"
	"dirpx.dev/solo/config"
	"dirpx.dev/solo/logger"
	"dirpx.dev/solo/registry"
	"dirpx.dev/solo/strategy"
	uref "dirpx.dev/solo/utils/reflect"
)

var (
	// ErrInvalidGoroutines is returned when a concurrency run asks for
	// fewer than one goroutine.
	ErrInvalidGoroutines = errors.New("solo(demo): goroutines must be positive")
	// ErrUnknownStrategy is returned for a strategy the suite has no
	// subject for.
	ErrUnknownStrategy = errors.New("solo(demo): unknown strategy")
)

// Options configures a Suite.
type Options struct {
	// Logger receives construction events and experiment results.
	Logger logger.Logger
	// Guard enables the already-initialized check on direct construction.
	Guard bool
	// Delay is slept inside every constructor to widen race windows.
	Delay time.Duration
}

// DefaultOptions returns guarded options with no delay and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Logger: logger.Nop(),
		Guard:  config.DefaultGuard,
	}
}

// Suite binds one demo type per strategy into the process-wide registry
// and runs experiments against them.
type Suite struct {
	opts     Options
	lggr     logger.Logger
	subjects map[apis.Strategy]subject
}

// NewSuite binds the demo types. It fails if any of them is already bound,
// so a process holds at most one suite per global registry.
//
// Every type is checked before anything is bound, and the Eager type is
// bound last, so a failing NewSuite constructs nothing. Bindings are never
// removed: a concurrent binder that wins a race mid-way leaves the
// deferred types bound before it in place, still unconstructed.
func NewSuite(opts Options) (*Suite, error) {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if err := unbound(
		reflect.TypeFor[LazySingleton](),
		reflect.TypeFor[SynchronizedSingleton](),
		reflect.TypeFor[DoubleCheckedSingleton](),
		reflect.TypeFor[HolderSingleton](),
		reflect.TypeFor[EagerSingleton](),
	); err != nil {
		return nil, err
	}

	s := &Suite{
		opts:     opts,
		lggr:     opts.Logger.Named("demo"),
		subjects: make(map[apis.Strategy]subject, len(apis.Strategies())),
	}

	sopts := []strategy.Option{
		strategy.WithGuard(opts.Guard),
		strategy.WithLogger(opts.Logger),
	}
	d := opts.Delay

	var err error
	if s.subjects[apis.Lazy], err = bind(apis.Lazy, func() *LazySingleton {
		return &LazySingleton{newRecord("lazy", d)}
	}, sopts); err != nil {
		return nil, err
	}
	if s.subjects[apis.Synchronized], err = bind(apis.Synchronized, func() *SynchronizedSingleton {
		return &SynchronizedSingleton{newRecord("synchronized", d)}
	}, sopts); err != nil {
		return nil, err
	}
	if s.subjects[apis.DoubleChecked], err = bind(apis.DoubleChecked, func() *DoubleCheckedSingleton {
		return &DoubleCheckedSingleton{newRecord("double-checked", d)}
	}, sopts); err != nil {
		return nil, err
	}
	if s.subjects[apis.Holder], err = bind(apis.Holder, func() *HolderSingleton {
		return &HolderSingleton{newRecord("holder", d)}
	}, sopts); err != nil {
		return nil, err
	}
	if s.subjects[apis.Eager], err = bind(apis.Eager, func() *EagerSingleton {
		return &EagerSingleton{newRecord("eager", d)}
	}, sopts); err != nil {
		return nil, err
	}
	s.subjects[apis.Enum] = enumSubject()

	s.lggr.Debugw("suite bound", "types", len(s.subjects), "guard", opts.Guard, "delay", d.String())
	return s, nil
}

// unbound fails with registry.ErrConflictingRegistration for the first of
// types already bound in the global registry.
func unbound(types ...reflect.Type) error {
	reg := solo.Registry()
	for _, t := range types {
		if _, ok := reg.Lookup(t); ok {
			return fmt.Errorf("%w: %s", registry.ErrConflictingRegistration, uref.TypeName(t))
		}
	}
	return nil
}

// ConcurrencyResult reports how many distinct instances N goroutines saw.
type ConcurrencyResult struct {
	Strategy   apis.Strategy `json:"strategy" yaml:"strategy"`
	Goroutines int           `json:"goroutines" yaml:"goroutines"`
	Distinct   int           `json:"distinct" yaml:"distinct"`
}

// Single reports whether every goroutine saw the same instance.
func (r ConcurrencyResult) Single() bool { return r.Distinct == 1 }

// Concurrency releases n goroutines at once against the accessor for st
// and counts the distinct identities they observe. Goroutines that have
// not started when ctx is done do not call the accessor.
func (s *Suite) Concurrency(ctx context.Context, st apis.Strategy, n int) (ConcurrencyResult, error) {
	if n < 1 {
		return ConcurrencyResult{}, fmt.Errorf("%w: %d", ErrInvalidGoroutines, n)
	}
	sub, err := s.subject(st)
	if err != nil {
		return ConcurrencyResult{}, err
	}

	ids := make([]string, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			<-start
			if ctx.Err() != nil {
				return
			}
			ids[i] = sub.instance()
		}()
	}
	close(start)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return ConcurrencyResult{}, err
	}

	res := ConcurrencyResult{Strategy: st, Goroutines: n, Distinct: distinct(ids)}
	s.lggr.Infow("concurrency", "strategy", st.String(), "goroutines", n, "distinct", res.Distinct)
	return res, nil
}

// BypassResult reports what direct construction returned after the
// canonical instance existed.
type BypassResult struct {
	Strategy    apis.Strategy `json:"strategy" yaml:"strategy"`
	Canonical   string        `json:"canonical" yaml:"canonical"`
	Constructed string        `json:"constructed,omitempty" yaml:"constructed,omitempty"`
	Rejected    bool          `json:"rejected" yaml:"rejected"`
}

// Same reports whether direct construction produced the canonical value.
func (r BypassResult) Same() bool { return r.Constructed == r.Canonical }

// Bypass forces the canonical instance for st and then takes the direct
// construction path. A guarded accessor rejects it; an unguarded one
// yields a second instance. The enum subject always yields the constant.
func (s *Suite) Bypass(st apis.Strategy) (BypassResult, error) {
	sub, err := s.subject(st)
	if err != nil {
		return BypassResult{}, err
	}

	res := BypassResult{Strategy: st, Canonical: sub.instance()}
	id, err := sub.construct()
	switch {
	case errors.Is(err, strategy.ErrAlreadyInitialized):
		res.Rejected = true
	case err != nil:
		return BypassResult{}, err
	default:
		res.Constructed = id
	}

	s.lggr.Infow("bypass", "strategy", st.String(), "rejected", res.Rejected, "same", res.Same())
	return res, nil
}

// RoundTripResult reports whether a serialization round trip kept identity.
type RoundTripResult struct {
	Strategy apis.Strategy `json:"strategy" yaml:"strategy"`
	Codec    string        `json:"codec" yaml:"codec"`
	Resolve  bool          `json:"resolve" yaml:"resolve"`
	Before   string        `json:"before" yaml:"before"`
	After    string        `json:"after" yaml:"after"`
}

// Same reports whether the decoded value is the canonical instance.
func (r RoundTripResult) Same() bool { return r.Before == r.After }

// RoundTrip encodes the canonical instance for st with c and decodes it
// again. With resolve false the deserialization hook is skipped.
func (s *Suite) RoundTrip(st apis.Strategy, c codec.Codec, resolve bool) (RoundTripResult, error) {
	sub, err := s.subject(st)
	if err != nil {
		return RoundTripResult{}, err
	}
	var opts []codec.Option
	if !resolve {
		opts = append(opts, codec.WithoutResolve())
	}

	before, after, err := sub.roundTrip(c, opts)
	if err != nil {
		return RoundTripResult{}, err
	}
	res := RoundTripResult{
		Strategy: st,
		Codec:    c.Name(),
		Resolve:  resolve,
		Before:   before,
		After:    after,
	}
	s.lggr.Infow("round trip", "strategy", st.String(), "codec", c.Name(), "resolve", resolve, "same", res.Same())
	return res, nil
}

func (s *Suite) subject(st apis.Strategy) (subject, error) {
	sub, ok := s.subjects[st]
	if !ok {
		return subject{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, st)
	}
	return sub, nil
}

func distinct(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}

// bind binds ctor globally through solo.BindWith and wraps the accessor
// in a subject.
func bind[T any](st apis.Strategy, ctor apis.Constructor[T], opts []strategy.Option) (subject, error) {
	acc, err := solo.BindWith(st, ctor, opts...)
	if err != nil {
		return subject{}, err
	}
	return pointerSubject(acc), nil
}
