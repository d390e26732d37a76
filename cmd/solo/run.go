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

package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/solo"
	"dirpx.dev/solo/apis"
	"dirpx.dev/solo/codec"
	"dirpx.dev/solo/config"
	"dirpx.dev/solo/internal/demo"
)

const (
	keyStrategy   = "strategy"
	keyGoroutines = "goroutines"
	keyDelay      = "delay"
	keyCodec      = "codec"
	keyResolve    = "resolve"
	keyGuard      = "guard"

	allStrategies = "all"
)

var errInvalidGoroutines = errors.New("goroutines must be positive")

// runOptions is the resolved view of the run flags, env and config file.
type runOptions struct {
	strategies []apis.Strategy
	goroutines int
	delay      time.Duration
	codec      codec.Codec
	resolve    bool
	guard      bool
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"r"},
		Short:   "Run the concurrency, bypass and round-trip experiments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadRunOptions(v)
			if err != nil {
				return err
			}
			return runExperiments(cmd, v, opts)
		},
	}

	f := cmd.Flags()
	f.StringP(keyStrategy, "s", allStrategies, "strategy to run, or \"all\"")
	f.IntP(keyGoroutines, "n", 32, "goroutines released at once in the concurrency run")
	f.Duration(keyDelay, time.Millisecond, "delay inside every constructor")
	f.String(keyCodec, "yaml", "round-trip codec ("+strings.Join(codec.Names(), ", ")+")")
	f.Bool(keyResolve, true, "apply the resolve hook after decoding")
	f.Bool(keyGuard, config.DefaultGuard, "reject direct construction once the instance exists")
	_ = v.BindPFlags(f)

	return cmd
}

func loadRunOptions(v *viper.Viper) (runOptions, error) {
	opts := runOptions{
		goroutines: v.GetInt(keyGoroutines),
		delay:      v.GetDuration(keyDelay),
		resolve:    v.GetBool(keyResolve),
		guard:      v.GetBool(keyGuard),
	}

	if name := v.GetString(keyStrategy); strings.EqualFold(name, allStrategies) {
		opts.strategies = apis.Strategies()
	} else {
		s, err := apis.ParseStrategy(name)
		if err != nil {
			return runOptions{}, err
		}
		opts.strategies = []apis.Strategy{s}
	}

	if opts.goroutines < 1 {
		return runOptions{}, fmt.Errorf("%w: %d", errInvalidGoroutines, opts.goroutines)
	}

	c, err := codec.ByName(v.GetString(keyCodec))
	if err != nil {
		return runOptions{}, err
	}
	opts.codec = c
	return opts, nil
}

// runExperiments installs a fresh process-wide state, binds the demo suite
// and prints one row per strategy.
func runExperiments(cmd *cobra.Command, v *viper.Viper, opts runOptions) error {
	lggr, err := newLogger(v)
	if err != nil {
		return err
	}
	defer func() { _ = lggr.Sync() }()

	cfg := config.NewConfig(config.WithGuard(opts.guard))
	solo.SetAll(&cfg, nil, lggr)

	suite, err := demo.NewSuite(demo.Options{
		Logger: lggr,
		Guard:  opts.guard,
		Delay:  opts.delay,
	})
	if err != nil {
		return fmt.Errorf("failed to bind demo types: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tGOROUTINES\tDISTINCT\tBYPASS\tROUND-TRIP")
	for _, s := range opts.strategies {
		// Concurrency goes first: it needs the accessor untouched.
		conc, err := suite.Concurrency(cmd.Context(), s, opts.goroutines)
		if err != nil {
			return err
		}
		by, err := suite.Bypass(s)
		if err != nil {
			return err
		}
		rt, err := suite.RoundTrip(s, opts.codec, opts.resolve)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", s, conc.Goroutines, conc.Distinct, bypassVerdict(by), sameCopy(rt.Same()))
	}
	return w.Flush()
}

func bypassVerdict(r demo.BypassResult) string {
	if r.Rejected {
		return "rejected"
	}
	return sameCopy(r.Same())
}

func sameCopy(same bool) string {
	if same {
		return "same"
	}
	return "copy"
}
