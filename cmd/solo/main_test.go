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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/solo"
	"dirpx.dev/solo/codec"
	"dirpx.dev/solo/config"
)

// execute runs the CLI in-process and returns stdout split into rows of
// fields, header first.
func execute(t *testing.T, args ...string) ([][]string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		def := config.DefaultConfig()
		solo.SetAll(&def, nil, nil)
	})

	var out bytes.Buffer
	root := newRootCmd(viper.New())
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()

	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line != "" {
			rows = append(rows, strings.Fields(line))
		}
	}
	return rows, err
}

func TestList(t *testing.T) {
	rows, err := execute(t, "list")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"STRATEGY", "THREAD-SAFE", "DEFERRED"}, rows[0])
	assert.Contains(t, rows, []string{"lazy", "no", "yes"})
	assert.Contains(t, rows, []string{"eager", "yes", "no"})
	assert.Contains(t, rows, []string{"double-checked", "yes", "yes"})
	assert.Contains(t, rows, []string{"enum", "yes", "no"})
}

func TestRun_SingleStrategy(t *testing.T) {
	rows, err := execute(t, "run", "--strategy", "holder", "-n", "8", "--delay", "0s")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"holder", "8", "1", "rejected", "same"}, rows[1])
}

func TestRun_AllStrategies(t *testing.T) {
	rows, err := execute(t, "run", "--goroutines", "4", "--codec", "json")
	require.NoError(t, err)
	require.Len(t, rows, 7)

	for _, row := range rows[1:] {
		require.Len(t, row, 5)
		assert.Equal(t, "same", row[4], "round trip of %s", row[0])
		if row[0] == "enum" {
			assert.Equal(t, "same", row[3])
			continue
		}
		assert.Equal(t, "rejected", row[3], "bypass of %s", row[0])
	}
}

func TestRun_WithoutResolveAndGuard(t *testing.T) {
	rows, err := execute(t, "run", "-s", "dcl", "--resolve=false", "--guard=false")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"double-checked", "32", "1", "copy", "copy"}, rows[1])
}

func TestRun_Environment(t *testing.T) {
	t.Setenv("SOLO_GUARD", "false")
	t.Setenv("SOLO_GOROUTINES", "3")

	rows, err := execute(t, "run", "--strategy", "synchronized")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"synchronized", "3", "1", "copy", "same"}, rows[1])
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "solo.yml")
	require.NoError(t, os.WriteFile(file, []byte("strategy: eager\ngoroutines: 5\nresolve: false\n"), 0o600))

	rows, err := execute(t, "run", "--config", file)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"eager", "5", "1", "rejected", "copy"}, rows[1])
}

func TestRun_InvalidFlags(t *testing.T) {
	_, err := execute(t, "run", "--strategy", "bogus")
	assert.ErrorContains(t, err, "unknown strategy")

	_, err = execute(t, "run", "--goroutines", "0")
	assert.ErrorIs(t, err, errInvalidGoroutines)

	_, err = execute(t, "run", "--codec", "xml")
	assert.ErrorIs(t, err, codec.ErrUnknownCodec)

	_, err = execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
