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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nkusla/matmul-bench/base"
	"github.com/nkusla/matmul-bench/base/log"
	"github.com/nkusla/matmul-bench/benchmark"
	"github.com/nkusla/matmul-bench/cmd/version"
	"github.com/nkusla/matmul-bench/config"
	"github.com/nkusla/matmul-bench/matmul"
)

var benchCommand = &cobra.Command{
	Use:   "matmul-bench",
	Short: "Benchmark dense matrix multiplication algorithms.",
	Run: func(cmd *cobra.Command, args []string) {
		// Show version
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}

		// setup logger
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)

		conf := loadConfig(cmd)
		printBanner(conf)

		runner := &benchmark.Runner{
			Sizes:   conf.Benchmark.Sizes,
			Samples: conf.Benchmark.Samples,
			Warmup:  conf.Benchmark.Warmup,
			Seed:    conf.Benchmark.Seed,
		}
		start := time.Now()
		results := runner.Run(benchmark.Algorithms(conf.MultiplyOptions()))
		elapsed := time.Since(start)

		if err := benchmark.PrintTable(os.Stdout, results); err != nil {
			log.Logger().Fatal("failed to print results", zap.Error(err))
		}

		if err := os.MkdirAll(conf.Benchmark.OutputDir, 0755); err != nil {
			log.Logger().Fatal("failed to create output directory", zap.Error(err))
		}
		path := filepath.Join(conf.Benchmark.OutputDir,
			fmt.Sprintf("matmul_%s_%s_%dt_%d.csv",
				runtime.GOOS, runtime.GOARCH, conf.Multiply.Jobs, time.Now().Unix()))
		if err := benchmark.WriteCSV(path, results); err != nil {
			log.Logger().Fatal("failed to save results", zap.Error(err))
		}

		log.Logger().Info("benchmark completed",
			zap.String("output", path),
			zap.Duration("elapsed", elapsed))
	},
}

var checkCommand = &cobra.Command{
	Use:   "check",
	Short: "Validate that all algorithms agree with the naive reference.",
	Run: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Root().PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.Root().PersistentFlags(), debug)
		conf := loadConfig(cmd.Root())

		const tolerance = 1e-10
		rng := base.NewRandomGenerator(conf.Benchmark.Seed)
		opts := conf.MultiplyOptions()
		for _, n := range []int{4, 5, 8, 16, 33, 64} {
			a := matmul.NewRandomMatrix(rng, n, n)
			b := matmul.NewRandomMatrix(rng, n, n)
			want, err := matmul.Iterative(a, b)
			if err != nil {
				log.Logger().Fatal("iterative multiplication failed", zap.Error(err))
			}
			for _, algo := range benchmark.Algorithms(opts)[1:] {
				c, err := algo.Multiply(a, b)
				if err != nil {
					log.Logger().Fatal("multiplication failed",
						zap.String("algorithm", algo.Name), zap.Int("size", n), zap.Error(err))
				}
				if dist := matmul.FrobeniusDistance(c, want); dist >= tolerance {
					log.Logger().Fatal("result mismatch",
						zap.String("algorithm", algo.Name), zap.Int("size", n), zap.Float64("error", dist))
				} else {
					fmt.Printf("  %dx%d %s: error = %g\n", n, n, algo.Name, dist)
				}
			}
		}
		fmt.Println("all checks passed")
	},
}

func init() {
	benchCommand.AddCommand(checkCommand)
	benchCommand.PersistentFlags().Bool("version", false, "matmul-bench version")
	benchCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	benchCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	benchCommand.PersistentFlags().IntSlice("sizes", nil, "matrix sizes to benchmark")
	benchCommand.PersistentFlags().Int("threshold", 0, "recursion threshold")
	benchCommand.PersistentFlags().Int("samples", 0, "number of timed samples per algorithm")
	benchCommand.PersistentFlags().IntP("jobs", "j", 0, "number of parallel jobs")
	benchCommand.PersistentFlags().Bool("sequential", false, "disable parallel recursion")
	benchCommand.PersistentFlags().String("output-dir", "", "directory for CSV results")
	log.AddFlags(benchCommand.PersistentFlags())
}

// loadConfig loads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command) *config.Config {
	flags := cmd.PersistentFlags()
	configPath, _ := flags.GetString("config")
	if configPath != "" {
		log.Logger().Info("load config", zap.String("config", configPath))
	}
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		log.Logger().Fatal("failed to load config", zap.Error(err))
	}
	if flags.Changed("sizes") {
		conf.Benchmark.Sizes, _ = flags.GetIntSlice("sizes")
	}
	if flags.Changed("samples") {
		conf.Benchmark.Samples, _ = flags.GetInt("samples")
	}
	if flags.Changed("threshold") {
		conf.Multiply.Threshold, _ = flags.GetInt("threshold")
	}
	if flags.Changed("jobs") {
		conf.Multiply.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("sequential") {
		sequential, _ := flags.GetBool("sequential")
		conf.Multiply.Parallel = !sequential
	}
	if flags.Changed("output-dir") {
		conf.Benchmark.OutputDir, _ = flags.GetString("output-dir")
	}
	if err := conf.Validate(); err != nil {
		log.Logger().Fatal("invalid config", zap.Error(err))
	}
	return conf
}

func printBanner(conf *config.Config) {
	fmt.Println("Matrix Multiplication Benchmark")
	fmt.Printf("CPU:\t\t%s\n", cpuid.CPU.BrandName)
	fmt.Printf("Cores:\t\t%d physical, %d logical\n", cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
	fmt.Printf("Jobs:\t\t%d (parallel: %v)\n", conf.Multiply.Jobs, conf.Multiply.Parallel)
	fmt.Printf("Threshold:\t%d\n", conf.Multiply.Threshold)
	fmt.Printf("Sizes:\t\t%v\n", conf.Benchmark.Sizes)
	fmt.Println()
}

func main() {
	if err := benchCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute command", zap.Error(err))
	}
}
