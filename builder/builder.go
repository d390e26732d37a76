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

package builder

import (
	"errors"
	"fmt"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/logger"
	"dirpx.dev/solo/strategy"
)

// ErrUnsupportedStrategy is returned for strategies that cannot wrap an
// arbitrary constructor. Enum is structural: see package enum.
var ErrUnsupportedStrategy = errors.New("solo(builder): unsupported strategy")

// Build returns an accessor for ctor using cfg.Strategy and cfg.Guard.
// A nil logger is replaced by a no-op logger. Eager accessors construct
// before Build returns.
func Build[T any](cfg apis.Config, ctor apis.Constructor[T], lggr logger.Logger) (apis.Accessor[T], error) {
	return BuildWith(cfg.Strategy, ctor,
		strategy.WithGuard(cfg.Guard),
		strategy.WithLogger(lggr),
	)
}

// BuildWith returns an accessor for ctor using s, configured by opts.
func BuildWith[T any](s apis.Strategy, ctor apis.Constructor[T], opts ...strategy.Option) (apis.Accessor[T], error) {
	if ctor == nil {
		return nil, strategy.ErrNilConstructor
	}

	switch s {
	case apis.Eager:
		return strategy.NewEager(ctor, opts...), nil
	case apis.Lazy:
		return strategy.NewLazy(ctor, opts...), nil
	case apis.Synchronized:
		return strategy.NewSynchronized(ctor, opts...), nil
	case apis.DoubleChecked:
		return strategy.NewDoubleChecked(ctor, opts...), nil
	case apis.Holder:
		return strategy.NewHolder(ctor, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStrategy, s)
	}
}
