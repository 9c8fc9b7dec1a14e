// Copyright 2025 matmul-bench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestLoadConfigDefault(t *testing.T) {
	conf, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), conf)
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
[benchmark]
sizes = [4, 8, 16]
samples = 3
warmup = 2
seed = 42
output_dir = "out"

[multiply]
threshold = 2
parallel = false
jobs = 1
`)
	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8, 16}, conf.Benchmark.Sizes)
	assert.Equal(t, 3, conf.Benchmark.Samples)
	assert.Equal(t, 2, conf.Benchmark.Warmup)
	assert.Equal(t, int64(42), conf.Benchmark.Seed)
	assert.Equal(t, "out", conf.Benchmark.OutputDir)
	assert.Equal(t, 2, conf.Multiply.Threshold)
	assert.False(t, conf.Multiply.Parallel)
	assert.Equal(t, 1, conf.Multiply.Jobs)
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeTempConfig(t, `
[benchmark]
samples = 5
`)
	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, conf.Benchmark.Samples)
	// unset keys fall back to defaults
	assert.Equal(t, GetDefaultConfig().Benchmark.Sizes, conf.Benchmark.Sizes)
	assert.Equal(t, GetDefaultConfig().Multiply.Threshold, conf.Multiply.Threshold)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(writeTempConfig(t, `
[benchmark]
samples = 0
`))
	assert.Error(t, err)

	_, err = LoadConfig(writeTempConfig(t, `
[multiply]
threshold = 0
`))
	assert.Error(t, err)

	// parallel mode with a single worker is a configuration error
	_, err = LoadConfig(writeTempConfig(t, `
[multiply]
parallel = true
jobs = 1
`))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestMultiplyOptions(t *testing.T) {
	conf := GetDefaultConfig()
	opts := conf.MultiplyOptions()
	assert.Equal(t, conf.Multiply.Threshold, opts.Threshold)
	assert.Equal(t, conf.Multiply.Parallel, opts.Parallel)
	assert.Equal(t, conf.Multiply.Jobs, opts.Jobs)
	assert.NoError(t, opts.Validate())
}
