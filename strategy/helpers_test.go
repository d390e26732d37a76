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

package strategy_test

import (
	"sync"
	"sync/atomic"
	"time"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/strategy"
)

// widget is the singleton payload used across strategy tests.
type widget struct {
	seq int64
}

// counter is a constructor that counts its calls and can sleep to widen
// the window between the empty-slot check and the store.
type counter struct {
	n     atomic.Int64
	delay time.Duration
}

func (c *counter) ctor() *widget {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return &widget{seq: c.n.Add(1)}
}

type factory struct {
	name     string
	strategy apis.Strategy
	deferred bool
	build    func(apis.Constructor[widget], ...strategy.Option) apis.Accessor[widget]
}

// safeFactories covers every strategy that guarantees a single instance.
var safeFactories = []factory{
	{
		name: "eager", strategy: apis.Eager, deferred: false,
		build: func(c apis.Constructor[widget], o ...strategy.Option) apis.Accessor[widget] {
			return strategy.NewEager(c, o...)
		},
	},
	{
		name: "synchronized", strategy: apis.Synchronized, deferred: true,
		build: func(c apis.Constructor[widget], o ...strategy.Option) apis.Accessor[widget] {
			return strategy.NewSynchronized(c, o...)
		},
	},
	{
		name: "double-checked", strategy: apis.DoubleChecked, deferred: true,
		build: func(c apis.Constructor[widget], o ...strategy.Option) apis.Accessor[widget] {
			return strategy.NewDoubleChecked(c, o...)
		},
	},
	{
		name: "holder", strategy: apis.Holder, deferred: true,
		build: func(c apis.Constructor[widget], o ...strategy.Option) apis.Accessor[widget] {
			return strategy.NewHolder(c, o...)
		},
	},
}

var lazyFactory = factory{
	name: "lazy", strategy: apis.Lazy, deferred: true,
	build: func(c apis.Constructor[widget], o ...strategy.Option) apis.Accessor[widget] {
		return strategy.NewLazy(c, o...)
	},
}

func allFactories() []factory {
	return append(append([]factory{}, safeFactories...), lazyFactory)
}

// hammer releases n goroutines at once against acc.Instance and returns
// what each of them got.
func hammer[T any](acc apis.Accessor[T], n int) []*T {
	start := make(chan struct{})
	out := make([]*T, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			<-start
			out[i] = acc.Instance()
		}()
	}
	close(start)
	wg.Wait()
	return out
}

func distinct[T any](vs []*T) int {
	seen := make(map[*T]struct{}, len(vs))
	for _, v := range vs {
		seen[v] = struct{}{}
	}
	return len(seen)
}
