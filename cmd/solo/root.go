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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/solo/logger"
)

const (
	envPrefix  = "SOLO"
	configName = ".solo"

	keyConfig   = "config"
	keyLogLevel = "log-level"
)

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "solo",
		Short: "Compare singleton strategies under concurrency, bypass and round trips",
		Long: `solo binds one demo type per singleton strategy and runs three experiments
against each of them:

  concurrency  N goroutines call the accessor at once; count distinct instances
  bypass       direct construction after the instance exists
  round trip   encode and decode the instance, with or without the resolve hook

Examples:
  solo list
  solo run --strategy lazy --goroutines 64 --delay 5ms
  solo run --codec json --resolve=false
  SOLO_GUARD=false solo run`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v)
		},
	}

	root.PersistentFlags().String(keyConfig, "", "config file (default is .solo.yml)")
	root.PersistentFlags().String(keyLogLevel, "info", "log level (debug, info, warn, error)")
	_ = v.BindPFlag(keyConfig, root.PersistentFlags().Lookup(keyConfig))
	_ = v.BindPFlag(keyLogLevel, root.PersistentFlags().Lookup(keyLogLevel))

	root.AddCommand(newListCmd(), newRunCmd(v))
	return root
}

// initConfig wires the environment and reads the config file. A missing
// default file is not an error; a missing explicit one is.
func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	file := v.GetString(keyConfig)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(configName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func newLogger(v *viper.Viper) (logger.Logger, error) {
	lvl, err := zapcore.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", keyLogLevel, err)
	}
	cfg := logger.Config{Level: lvl}
	return cfg.New()
}
