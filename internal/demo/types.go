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
	"time"

	"github.com/google/uuid"

	"dirpx.dev/solo"
)

// Record is the payload every demo singleton carries. ID is assigned at
// construction, so a decoded copy keeps the ID while losing the identity.
type Record struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func newRecord(name string, delay time.Duration) Record {
	if delay > 0 {
		time.Sleep(delay)
	}
	return Record{ID: uuid.NewString(), Name: name}
}

// EagerSingleton is bound with the eager strategy.
type EagerSingleton struct {
	Record `yaml:",inline"`
}

// LazySingleton is bound with the unsynchronized lazy strategy.
type LazySingleton struct {
	Record `yaml:",inline"`
}

// SynchronizedSingleton is bound with the fully synchronized strategy.
type SynchronizedSingleton struct {
	Record `yaml:",inline"`
}

// DoubleCheckedSingleton is bound with the double-checked strategy.
type DoubleCheckedSingleton struct {
	Record `yaml:",inline"`
}

// HolderSingleton is bound with the deferred-holder strategy.
type HolderSingleton struct {
	Record `yaml:",inline"`
}

// ReadResolve hands back the canonical instance after decoding.
func (*EagerSingleton) ReadResolve() any { return canonical[EagerSingleton]() }

// ReadResolve hands back the canonical instance after decoding.
func (*LazySingleton) ReadResolve() any { return canonical[LazySingleton]() }

// ReadResolve hands back the canonical instance after decoding.
func (*SynchronizedSingleton) ReadResolve() any { return canonical[SynchronizedSingleton]() }

// ReadResolve hands back the canonical instance after decoding.
func (*DoubleCheckedSingleton) ReadResolve() any { return canonical[DoubleCheckedSingleton]() }

// ReadResolve hands back the canonical instance after decoding.
func (*HolderSingleton) ReadResolve() any { return canonical[HolderSingleton]() }

// canonical looks T up in the process-wide registry. An unbound type
// yields nil, which keeps the decoded value.
func canonical[T any]() any {
	v, err := solo.Instance[T]()
	if err != nil {
		return nil
	}
	return v
}
