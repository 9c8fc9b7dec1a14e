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
	"github.com/juju/errors"

	"github.com/nkusla/matmul-bench/common/parallel"
)

// DivideConquer computes C = A*B by recursive 8-way quadrant decomposition:
//
//	C11 = A11*B11 + A12*B21    C12 = A11*B12 + A12*B22
//	C21 = A21*B11 + A22*B21    C22 = A21*B12 + A22*B22
//
// Recursion stops at opts.Threshold and falls back to the iterative
// multiplier. In parallel mode the eight sub-products of each level are
// dispatched to a shared worker pool and joined before recombination.
func DivideConquer(a, b *Matrix, opts *Options) (*Matrix, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if err := validateDimensions(a, b); err != nil {
		return nil, errors.Trace(err)
	}
	pool, err := opts.pool()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return divideConquer(a, b, opts.Threshold, pool)
}

func divideConquer(a, b *Matrix, threshold int, pool parallel.Pool) (*Matrix, error) {
	m, n, p := a.rows, a.cols, b.cols
	if m <= threshold || n <= threshold || p <= threshold {
		return iterative(a, b), nil
	}

	// Split points round down, so the lower/right quadrants are one
	// row/column larger for odd dimensions.
	mHalf, nHalf, pHalf := m/2, n/2, p/2

	a11 := a.Submatrix(0, mHalf, 0, nHalf)
	a12 := a.Submatrix(0, mHalf, nHalf, n)
	a21 := a.Submatrix(mHalf, m, 0, nHalf)
	a22 := a.Submatrix(mHalf, m, nHalf, n)

	b11 := b.Submatrix(0, nHalf, 0, pHalf)
	b12 := b.Submatrix(0, nHalf, pHalf, p)
	b21 := b.Submatrix(nHalf, n, 0, pHalf)
	b22 := b.Submatrix(nHalf, n, pHalf, p)

	operands := [8][2]*Matrix{
		{a11, b11}, {a12, b21},
		{a11, b12}, {a12, b22},
		{a21, b11}, {a22, b21},
		{a21, b12}, {a22, b22},
	}
	products := make([]*Matrix, len(operands))
	tasks := make([]parallel.Task, len(operands))
	for i := range operands {
		i := i
		tasks[i] = func() error {
			var err error
			products[i], err = divideConquer(operands[i][0], operands[i][1], threshold, pool)
			return errors.Trace(err)
		}
	}
	if err := pool.Join(tasks...); err != nil {
		return nil, errors.Trace(err)
	}

	c11 := products[0].Add(products[1])
	c12 := products[2].Add(products[3])
	c21 := products[4].Add(products[5])
	c22 := products[6].Add(products[7])
	return CombineQuadrants(c11, c12, c21, c22), nil
}
