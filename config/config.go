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
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"
	"modernc.org/mathutil"

	"github.com/nkusla/matmul-bench/matmul"
)

// Config is the configuration for matmul-bench.
type Config struct {
	Benchmark BenchmarkConfig `mapstructure:"benchmark"`
	Multiply  MultiplyConfig  `mapstructure:"multiply"`
}

// BenchmarkConfig configures the sampling harness.
type BenchmarkConfig struct {
	Sizes     []int  `mapstructure:"sizes" validate:"required,min=1,dive,gte=1"`
	Samples   int    `mapstructure:"samples" validate:"gte=1"`
	Warmup    int    `mapstructure:"warmup" validate:"gte=0"`
	Seed      int64  `mapstructure:"seed"`
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

// MultiplyConfig configures the recursive multiplication engines.
type MultiplyConfig struct {
	Threshold int  `mapstructure:"threshold" validate:"gte=1"`
	Parallel  bool `mapstructure:"parallel"`
	Jobs      int  `mapstructure:"jobs" validate:"gte=1"`
}

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() *Config {
	return &Config{
		Benchmark: BenchmarkConfig{
			Sizes:     []int{64, 128, 256, 512, 1024},
			Samples:   10,
			Warmup:    1,
			Seed:      0,
			OutputDir: "results",
		},
		Multiply: MultiplyConfig{
			Threshold: 64,
			Parallel:  true,
			Jobs:      mathutil.Max(2, runtime.NumCPU()),
		},
	}
}

func setDefault(v *viper.Viper) {
	defaults := GetDefaultConfig()
	v.SetDefault("benchmark.sizes", defaults.Benchmark.Sizes)
	v.SetDefault("benchmark.samples", defaults.Benchmark.Samples)
	v.SetDefault("benchmark.warmup", defaults.Benchmark.Warmup)
	v.SetDefault("benchmark.seed", defaults.Benchmark.Seed)
	v.SetDefault("benchmark.output_dir", defaults.Benchmark.OutputDir)
	v.SetDefault("multiply.threshold", defaults.Multiply.Threshold)
	v.SetDefault("multiply.parallel", defaults.Multiply.Parallel)
	v.SetDefault("multiply.jobs", defaults.Multiply.Jobs)
}

// LoadConfig loads the configuration from a TOML file. An empty path loads
// the defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Trace(err)
		}
	}
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// Validate checks the configuration before any benchmark starts.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Trace(err)
	}
	if c.Multiply.Parallel && c.Multiply.Jobs < 2 {
		return errors.NotValidf("parallel mode with %d job", c.Multiply.Jobs)
	}
	return nil
}

// MultiplyOptions converts the multiply section into engine options.
func (c *Config) MultiplyOptions() *matmul.Options {
	return &matmul.Options{
		Threshold: c.Multiply.Threshold,
		Parallel:  c.Multiply.Parallel,
		Jobs:      c.Multiply.Jobs,
	}
}
