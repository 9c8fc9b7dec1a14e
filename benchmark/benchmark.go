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

// Package benchmark samples the multiplication engines as black boxes and
// aggregates timing and memory statistics.
package benchmark

import (
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/nkusla/matmul-bench/base"
	"github.com/nkusla/matmul-bench/base/log"
	"github.com/nkusla/matmul-bench/matmul"
)

// Result is one benchmarked algorithm-size combination.
type Result struct {
	Size      int
	Algorithm string
	TimeMs    float64 // median over samples
	MeanMs    float64
	GFLOPS    float64 // 2n³ / median
	MemoryMB  float64 // peak heap delta while sampling
}

// Algorithm is a multiplication engine consumed as a black-box function.
type Algorithm struct {
	Name     string
	Multiply func(a, b *matmul.Matrix) (*matmul.Matrix, error)
}

// Algorithms returns the three engines bound to the given options.
func Algorithms(opts *matmul.Options) []Algorithm {
	return []Algorithm{
		{Name: "Iterative", Multiply: matmul.Iterative},
		{Name: "Divide-Conquer", Multiply: func(a, b *matmul.Matrix) (*matmul.Matrix, error) {
			return matmul.DivideConquer(a, b, opts)
		}},
		{Name: "Strassen", Multiply: func(a, b *matmul.Matrix) (*matmul.Matrix, error) {
			return matmul.Strassen(a, b, opts)
		}},
	}
}

// Runner drives warmup and repeated sampling over a list of matrix sizes.
type Runner struct {
	Sizes   []int
	Samples int
	Warmup  int
	Seed    int64
}

// Run benchmarks every algorithm at every size. A failed algorithm-size
// combination is logged and skipped; the remaining combinations still run.
func (r *Runner) Run(algorithms []Algorithm) []Result {
	rng := base.NewRandomGenerator(r.Seed)
	results := make([]Result, 0, len(r.Sizes)*len(algorithms))
	bar := progressbar.Default(int64(len(r.Sizes)*len(algorithms)*r.Samples), "benchmark")
	for _, n := range r.Sizes {
		a := matmul.NewRandomMatrix(rng, n, n)
		b := matmul.NewRandomMatrix(rng, n, n)
		for _, algo := range algorithms {
			result, err := r.benchmark(algo, a, b, bar)
			if err != nil {
				log.Logger().Error("benchmark failed",
					zap.String("algorithm", algo.Name),
					zap.Int("size", n),
					zap.Error(err))
				continue
			}
			log.Logger().Info("benchmark finished",
				zap.String("algorithm", algo.Name),
				zap.Int("size", n),
				zap.Float64("time_ms", result.TimeMs),
				zap.Float64("gflops", result.GFLOPS),
				zap.Float64("memory_mb", result.MemoryMB))
			results = append(results, result)
		}
	}
	_ = bar.Finish()
	return results
}

func (r *Runner) benchmark(algo Algorithm, a, b *matmul.Matrix, bar *progressbar.ProgressBar) (Result, error) {
	// warmup
	for i := 0; i < r.Warmup; i++ {
		if _, err := algo.Multiply(a, b); err != nil {
			return Result{}, err
		}
	}
	probe := newMemoryProbe()
	times := make([]float64, 0, r.Samples)
	for i := 0; i < r.Samples; i++ {
		start := time.Now()
		if _, err := algo.Multiply(a, b); err != nil {
			probe.Stop()
			return Result{}, err
		}
		times = append(times, float64(time.Since(start).Nanoseconds())/1e6)
		_ = bar.Add(1)
	}
	memoryMB := probe.Stop()
	sort.Float64s(times)
	median := stat.Quantile(0.5, stat.Empirical, times, nil)
	n := float64(a.Rows())
	return Result{
		Size:      a.Rows(),
		Algorithm: algo.Name,
		TimeMs:    median,
		MeanMs:    stat.Mean(times, nil),
		GFLOPS:    2 * n * n * n / (median / 1e3) / 1e9,
		MemoryMB:  memoryMB,
	}, nil
}
