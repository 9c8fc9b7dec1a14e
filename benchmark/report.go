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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/nkusla/matmul-bench/common/util"
)

const csvHeader = "size,algorithm,time_ms,gflops,memory_mb"

func rows(results []Result) [][]string {
	return lo.Map(results, func(r Result, _ int) []string {
		return []string{
			util.FormatInt(r.Size),
			r.Algorithm,
			util.FormatFloat(r.TimeMs, 2),
			util.FormatFloat(r.GFLOPS, 2),
			util.FormatFloat(r.MemoryMB, 2),
		}
	})
}

// PrintTable renders the results summary table.
func PrintTable(w io.Writer, results []Result) error {
	table := tablewriter.NewTable(w)
	table.Header("Size", "Algorithm", "Time (ms)", "GFLOPS", "Memory (MB)")
	for _, row := range rows(results) {
		if err := table.Append(row); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(table.Render())
}

// WriteCSV persists results as delimited text.
func WriteCSV(path string, results []Result) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	if _, err := fmt.Fprintln(file, csvHeader); err != nil {
		return errors.Trace(err)
	}
	for _, row := range rows(results) {
		if _, err := fmt.Fprintln(file, strings.Join(row, ",")); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
