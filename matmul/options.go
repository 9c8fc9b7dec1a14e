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

package matmul

import (
	"runtime"

	"github.com/juju/errors"
	"modernc.org/mathutil"

	"github.com/nkusla/matmul-bench/common/parallel"
)

// Options configures the recursive multipliers.
type Options struct {
	// Threshold is the dimension at or below which recursion delegates to
	// the iterative multiplier.
	Threshold int
	// Parallel dispatches recursive sub-products to a worker pool.
	Parallel bool
	// Jobs is the worker budget in parallel mode.
	Jobs int
}

// NewOptions creates options with default values.
func NewOptions() *Options {
	return &Options{
		Threshold: 64,
		Parallel:  true,
		Jobs:      mathutil.Max(2, runtime.NumCPU()),
	}
}

// Validate checks the options before any computation starts. Parallel mode
// with fewer than two jobs only adds fork-join overhead and is rejected.
func (opts *Options) Validate() error {
	if opts.Threshold < 1 {
		return errors.NotValidf("threshold %d", opts.Threshold)
	}
	if opts.Jobs < 1 {
		return errors.NotValidf("%d jobs", opts.Jobs)
	}
	if opts.Parallel && opts.Jobs < 2 {
		return errors.NotValidf("parallel mode with %d job", opts.Jobs)
	}
	return nil
}

func (opts *Options) pool() (parallel.Pool, error) {
	if opts.Parallel {
		return parallel.NewWorkerPool(opts.Jobs)
	}
	return parallel.NewSequentialPool(), nil
}

func validateDimensions(a, b *Matrix) error {
	if a.cols != b.rows {
		return errors.NotValidf("matrix dimensions must agree: A is %dx%d, B is %dx%d",
			a.rows, a.cols, b.rows, b.cols)
	}
	return nil
}
