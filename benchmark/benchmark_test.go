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

package benchmark

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkusla/matmul-bench/matmul"
)

func testRunner() *Runner {
	return &Runner{
		Sizes:   []int{4, 8},
		Samples: 2,
		Warmup:  1,
		Seed:    0,
	}
}

func TestRun(t *testing.T) {
	opts := &matmul.Options{Threshold: 2, Parallel: false, Jobs: 1}
	results := testRunner().Run(Algorithms(opts))
	require.Len(t, results, 6)
	for _, r := range results {
		assert.Contains(t, []int{4, 8}, r.Size)
		assert.Contains(t, []string{"Iterative", "Divide-Conquer", "Strassen"}, r.Algorithm)
		assert.Greater(t, r.TimeMs, 0.0)
		assert.Greater(t, r.MeanMs, 0.0)
		assert.Greater(t, r.GFLOPS, 0.0)
		assert.GreaterOrEqual(t, r.MemoryMB, 0.0)
	}
}

func TestRunSkipsFailedAlgorithm(t *testing.T) {
	broken := Algorithm{Name: "Broken", Multiply: func(a, b *matmul.Matrix) (*matmul.Matrix, error) {
		return nil, assert.AnError
	}}
	opts := &matmul.Options{Threshold: 2, Parallel: false, Jobs: 1}
	results := testRunner().Run(append([]Algorithm{broken}, Algorithms(opts)...))
	// the broken algorithm is skipped, the rest still run
	assert.Len(t, results, 6)
	for _, r := range results {
		assert.NotEqual(t, "Broken", r.Algorithm)
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	err := PrintTable(&buf, []Result{
		{Size: 64, Algorithm: "Strassen", TimeMs: 1.5, GFLOPS: 0.35, MemoryMB: 1.25},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Strassen")
	assert.Contains(t, buf.String(), "64")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	err := WriteCSV(path, []Result{
		{Size: 64, Algorithm: "Iterative", TimeMs: 1.5, GFLOPS: 0.35, MemoryMB: 1.25},
		{Size: 128, Algorithm: "Strassen", TimeMs: 4.25, GFLOPS: 0.99, MemoryMB: 2.5},
	})
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "size,algorithm,time_ms,gflops,memory_mb", lines[0])
	assert.Equal(t, "64,Iterative,1.50,0.35,1.25", lines[1])
	assert.Equal(t, "128,Strassen,4.25,0.99,2.50", lines[2])
}
