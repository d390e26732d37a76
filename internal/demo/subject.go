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
	"fmt"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/codec"
	"dirpx.dev/solo/enum"
)

// subject erases the type of a bound singleton so the suite can drive
// every strategy the same way. Identities are rendered as strings: the
// address for pointer singletons, the constant token for the enum.
type subject struct {
	instance  func() string
	construct func() (string, error)
	roundTrip func(c codec.Codec, opts []codec.Option) (before, after string, err error)
}

func pointerSubject[T any](acc apis.Accessor[T]) subject {
	return subject{
		instance: func() string { return identity(acc.Instance()) },
		construct: func() (string, error) {
			v, err := acc.Construct()
			if err != nil {
				return "", err
			}
			return identity(v), nil
		},
		roundTrip: func(c codec.Codec, opts []codec.Option) (string, string, error) {
			v := acc.Instance()
			got, err := codec.RoundTrip(c, v, opts...)
			if err != nil {
				return "", "", err
			}
			return identity(v), identity(got), nil
		},
	}
}

func enumSubject() subject {
	return subject{
		instance: func() string { return enum.Instance.String() },
		construct: func() (string, error) {
			return enum.Singleton{}.String(), nil
		},
		roundTrip: func(c codec.Codec, opts []codec.Option) (string, string, error) {
			v := enum.Instance
			got, err := codec.RoundTrip(c, &v, opts...)
			if err != nil {
				return "", "", err
			}
			return v.String(), got.String(), nil
		},
	}
}

func identity[T any](v *T) string {
	return fmt.Sprintf("%p", v)
}
