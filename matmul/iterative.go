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

	"github.com/nkusla/matmul-bench/common/floats"
)

// Iterative computes C = A*B with the standard O(n³) triple loop. It is the
// ground truth for the recursive multipliers and their base-case fallback.
func Iterative(a, b *Matrix) (*Matrix, error) {
	if err := validateDimensions(a, b); err != nil {
		return nil, errors.Trace(err)
	}
	return iterative(a, b), nil
}

// iterative runs the triple loop ordered j, k, i. With column-major storage,
// fixing j and k leaves the innermost step walking both C and A down
// contiguous columns, so the i loop collapses into a column kernel.
func iterative(a, b *Matrix) *Matrix {
	c := NewMatrix(a.rows, b.cols)
	for j := 0; j < b.cols; j++ {
		cj := c.col(j)
		for k := 0; k < a.cols; k++ {
			floats.MulConstAdd(a.col(k), b.At(k, j), cj)
		}
	}
	return c
}
