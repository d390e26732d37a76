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

package solo

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/builder"
	"dirpx.dev/solo/config"
	"dirpx.dev/solo/logger"
	"dirpx.dev/solo/registry"
	"dirpx.dev/solo/strategy"
	uref "dirpx.dev/solo/utils/reflect"
)

// init initializes the global state.
func init() {
	cfg := config.DefaultConfig()
	st.Store(&state{
		cfg:  cfg,
		reg:  registry.New(cfg),
		lggr: logger.Nop(),
	})
}

var (
	// ErrNotBound is returned when no accessor is bound to the requested type.
	ErrNotBound = errors.New("solo: type is not bound")
	// ErrBindingType is returned when the bound accessor does not produce
	// the requested type.
	ErrBindingType = errors.New("solo: binding has a different type")
)

// Bind builds an accessor for ctor with the global default strategy and
// binds it to T in the global registry.
func Bind[T any](ctor apis.Constructor[T]) (apis.Accessor[T], error) {
	return BindWith(st.Load().cfg.Strategy, ctor)
}

// BindWith builds an accessor for ctor with strategy s and binds it to T.
// opts apply after the global guard and logger, so they can override both.
//
// Binding a type claims it first and only then checks the registry, so of
// any number of concurrent binders for one type exactly one builds the
// accessor. The others, and every binder of an already bound type, fail
// with registry.ErrConflictingRegistration before anything is built; an
// Eager constructor never runs for a losing binding.
func BindWith[T any](s apis.Strategy, ctor apis.Constructor[T], opts ...strategy.Option) (apis.Accessor[T], error) {
	cur := st.Load()
	t, err := uref.Normalize(reflect.TypeFor[T](), cur.cfg)
	if err != nil {
		return nil, err
	}
	name := uref.TypeName(t)

	if _, busy := binding.LoadOrStore(t, struct{}{}); busy {
		return nil, fmt.Errorf("%w: %s", registry.ErrConflictingRegistration, name)
	}
	defer binding.Delete(t)

	cur = st.Load()
	if _, ok := cur.reg.Lookup(t); ok {
		return nil, fmt.Errorf("%w: %s", registry.ErrConflictingRegistration, name)
	}

	acc, err := builder.BuildWith(s, ctor, append([]strategy.Option{
		strategy.WithGuard(cur.cfg.Guard),
		strategy.WithLogger(cur.lggr),
	}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := cur.reg.Register(t, acc); err != nil {
		return nil, err
	}
	cur.lggr.Debugw("type bound", "type", name, "strategy", s.String())
	return acc, nil
}

// binding holds the normalized types with a BindWith in flight.
var binding sync.Map // map[reflect.Type]struct{}

// Register binds an existing accessor to T in the global registry.
func Register[T any](acc apis.Accessor[T]) error {
	if acc == nil {
		return registry.ErrNilBinding
	}
	return st.Load().reg.Register(reflect.TypeFor[T](), acc)
}

// Accessor returns the accessor bound to T.
func Accessor[T any]() (apis.Accessor[T], error) {
	t := reflect.TypeFor[T]()
	b, ok := st.Load().reg.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotBound, uref.TypeName(t))
	}
	acc, ok := b.(apis.Accessor[T])
	if !ok {
		return nil, fmt.Errorf("%w: %s bound to %T", ErrBindingType, uref.TypeName(t), b)
	}
	return acc, nil
}

// Instance returns the canonical instance bound to T.
func Instance[T any]() (*T, error) {
	acc, err := Accessor[T]()
	if err != nil {
		return nil, err
	}
	return acc.Instance(), nil
}

// MustInstance is like Instance but panics if T is not bound.
func MustInstance[T any]() *T {
	v, err := Instance[T]()
	if err != nil {
		panic(err)
	}
	return v
}

// Construct runs the direct-construction path of the accessor bound to T.
// It fails with strategy.ErrAlreadyInitialized once the instance exists
// and the accessor is guarded.
func Construct[T any]() (*T, error) {
	acc, err := Accessor[T]()
	if err != nil {
		return nil, err
	}
	return acc.Construct()
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// Unless the registry is pinned, it is rebuilt for cfg and existing
// bindings are migrated. Accessors are never rebuilt: cfg only applies
// to accessors bound afterwards. A default strategy that cannot wrap a
// constructor, such as Enum, is replaced by config.DefaultStrategy.
func SetConfig(cfg apis.Config) {
	cfg = config.NewConfig(func(c *apis.Config) { *c = cfg })

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nreg := old.reg
	if !old.preg {
		nreg = registry.Migrate(cfg, old.reg)
	}

	st.Store(&state{
		cfg:  cfg,
		reg:  nreg,
		lggr: old.lggr,
		preg: old.preg,
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces the global registry with reg and pins it.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{
		cfg:  old.cfg,
		reg:  reg,
		lggr: old.lggr,
		preg: true,
	})
}

// Logger returns the global logger.
func Logger() logger.Logger {
	return st.Load().lggr
}

// SetLogger sets the logger handed to accessors bound from now on.
func SetLogger(lggr logger.Logger) {
	if lggr == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{
		cfg:  old.cfg,
		reg:  old.reg,
		lggr: lggr,
		preg: old.preg,
	})
}

// SetAll replaces the whole global state in one step.
//
// A nil cfg keeps the current configuration. A nil reg installs a fresh,
// empty, unpinned registry; a non-nil reg is pinned. A nil lggr installs
// the no-op logger. This is the reset hook for tests.
func SetAll(cfg *apis.Config, reg apis.Registry, lggr logger.Logger) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = config.NewConfig(func(c *apis.Config) { *c = *cfg })
	}

	nreg := reg
	npreg := reg != nil
	if nreg == nil {
		nreg = registry.New(ncfg)
	}

	nlggr := lggr
	if nlggr == nil {
		nlggr = logger.Nop()
	}

	st.Store(&state{
		cfg:  ncfg,
		reg:  nreg,
		lggr: nlggr,
		preg: npreg,
	})
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops SetConfig from rebuilding the global registry.
func PinRegistry() {
	setPinned(true)
}

// UnpinRegistry lets SetConfig rebuild the global registry again.
func UnpinRegistry() {
	setPinned(false)
}

func setPinned(pinned bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{
		cfg:  old.cfg,
		reg:  old.reg,
		lggr: old.lggr,
		preg: pinned,
	})
}

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable once published via st.Store; writers create a new state and
// swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg is the global registry.
	reg apis.Registry
	// lggr is handed to accessors built by Bind.
	lggr logger.Logger
	// preg indicates whether reg is pinned.
	preg bool
}
