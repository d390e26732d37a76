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

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/builder"
	"dirpx.dev/solo/config"
	"dirpx.dev/solo/logger"
	"dirpx.dev/solo/strategy"
)

type userType struct{ id int }

func newUser() *userType { return &userType{id: 7} }

func TestBuild_EveryAccessorStrategy(t *testing.T) {
	for _, s := range apis.Strategies() {
		if s == apis.Enum {
			continue
		}
		t.Run(s.String(), func(t *testing.T) {
			cfg := config.NewConfig(config.WithStrategy(s))
			acc, err := builder.Build(cfg, newUser, logger.Test(t))
			require.NoError(t, err)

			assert.Equal(t, s, acc.Strategy())
			assert.Equal(t, 7, acc.Instance().id)
			assert.Same(t, acc.Instance(), acc.Instance())
		})
	}
}

func TestBuild_GuardFollowsConfig(t *testing.T) {
	guarded, err := builder.Build(config.NewConfig(config.WithGuard(true)), newUser, nil)
	require.NoError(t, err)
	guarded.Instance()
	_, err = guarded.Construct()
	assert.ErrorIs(t, err, strategy.ErrAlreadyInitialized)

	open, err := builder.Build(config.NewConfig(config.WithGuard(false)), newUser, nil)
	require.NoError(t, err)
	open.Instance()
	v, err := open.Construct()
	require.NoError(t, err)
	assert.NotSame(t, open.Instance(), v)
}

func TestBuild_UsesLogger(t *testing.T) {
	lggr, logs := logger.TestObserved(t, zapcore.InfoLevel)
	cfg := config.NewConfig(config.WithStrategy(apis.Eager))

	_, err := builder.Build(cfg, newUser, lggr)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage(strategy.MsgConstructed).Len())
}

func TestBuild_Errors(t *testing.T) {
	_, err := builder.Build[userType](config.DefaultConfig(), nil, nil)
	assert.ErrorIs(t, err, strategy.ErrNilConstructor)

	_, err = builder.BuildWith(apis.Enum, newUser)
	assert.ErrorIs(t, err, builder.ErrUnsupportedStrategy)

	_, err = builder.BuildWith(apis.Strategy(42), newUser)
	assert.ErrorIs(t, err, builder.ErrUnsupportedStrategy)
}
