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

package apis

import (
	"fmt"
	"strings"
)

// Strategy selects how a singleton accessor initializes and guards its
// instance slot.
//
// # Values
//
//   - Eager: construct when the accessor is created (package init).
//   - Lazy: construct on first access, no concurrency guard.
//   - Synchronized: construct on first access, whole accessor under a mutex.
//   - DoubleChecked: lock-free hot path, mutex and re-check on the miss path.
//   - Holder: deferred to the runtime's one-time initializer.
//   - Enum: zero-size type whose value set has a single element.
//
// Only Lazy is unsafe under concurrent first access. It exists to show
// the check-then-act defect and is intentionally left unfixed.
//
// # Contract
//
//   - Strategy is a stable, public API; existing values keep their meaning.
//   - Strategy values are plain integers and safe to share across goroutines.
type Strategy int

const (
	// Eager constructs the instance before any accessor call.
	Eager Strategy = iota

	// Lazy constructs on first access with a non-atomic check-then-act.
	//
	// Concurrent first callers may each observe an empty slot and each
	// construct a value. The last store wins; earlier values escape to
	// their callers. Do not use outside of demonstrations.
	Lazy

	// Synchronized serializes every accessor call on a mutex.
	//
	// Correct under arbitrary concurrency. Every call, including the ones
	// after initialization, pays for the lock.
	Synchronized

	// DoubleChecked reads an atomic slot without locking and only takes
	// the mutex when the slot is empty, re-reading it under the lock.
	//
	// The slot must be an atomic pointer. A plain field would allow a
	// reader to observe a partially constructed value.
	DoubleChecked

	// Holder defers construction to sync.OnceValue, which guarantees a
	// single, thread-safe initialization no earlier than first call.
	Holder

	// Enum binds the instance to a zero-size type. Every value of the
	// type is the instance, so neither direct construction nor decoding
	// can produce a second one.
	Enum
)

// Strategies lists every defined Strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Eager, Lazy, Synchronized, DoubleChecked, Holder, Enum}
}

// String returns the canonical token for cs.
func (cs Strategy) String() string {
	switch cs {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	case Synchronized:
		return "synchronized"
	case DoubleChecked:
		return "double-checked"
	case Holder:
		return "holder"
	case Enum:
		return "enum"
	default:
		return fmt.Sprintf("unknown(%d)", int(cs))
	}
}

// Safe reports whether concurrent first access yields a single instance.
func (cs Strategy) Safe() bool {
	return cs != Lazy && cs.Valid()
}

// Deferred reports whether construction waits for the first access.
func (cs Strategy) Deferred() bool {
	switch cs {
	case Lazy, Synchronized, DoubleChecked, Holder:
		return true
	default:
		return false
	}
}

// Valid reports whether cs is a defined Strategy.
func (cs Strategy) Valid() bool {
	return cs >= Eager && cs <= Enum
}

// ParseStrategy parses a textual representation of a Strategy.
//
// Matching is case-insensitive, surrounding whitespace is trimmed and
// '-' / '_' separators are ignored, so "double-checked", "DoubleChecked"
// and "double_checked" are equivalent. On failure it returns Eager and a
// non-nil error; callers must not rely on the value in that case.
func ParseStrategy(s string) (Strategy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Eager, fmt.Errorf("solo: empty strategy")
	}

	token := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(trimmed))
	switch token {
	case "eager":
		return Eager, nil
	case "lazy":
		return Lazy, nil
	case "synchronized", "sync":
		return Synchronized, nil
	case "doublechecked", "dcl":
		return DoubleChecked, nil
	case "holder":
		return Holder, nil
	case "enum":
		return Enum, nil
	default:
		return Eager, fmt.Errorf("solo: unknown strategy %q", s)
	}
}

// MustParseStrategy is like ParseStrategy but panics on invalid input.
// Use it for hard-coded values only.
func MustParseStrategy(s string) Strategy {
	strategy, err := ParseStrategy(s)
	if err != nil {
		panic(err)
	}
	return strategy
}

// MarshalText implements encoding.TextMarshaler.
// Unknown values are rejected so they never reach configuration files.
func (cs Strategy) MarshalText() ([]byte, error) {
	if !cs.Valid() {
		return nil, fmt.Errorf("solo: cannot marshal unknown strategy %d", int(cs))
	}
	return []byte(cs.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseStrategy.
// On error the receiver is left unchanged.
func (cs *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*cs = parsed
	return nil
}
