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
	"runtime"
	"time"

	"go.uber.org/atomic"
)

const probePeriod = 10 * time.Millisecond

// memoryProbe tracks the peak heap size while a benchmark runs. It polls the
// runtime from its own goroutine; the multipliers themselves stay
// uninstrumented.
type memoryProbe struct {
	baseline uint64
	peak     *atomic.Uint64
	done     chan struct{}
}

func newMemoryProbe() *memoryProbe {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	probe := &memoryProbe{
		baseline: ms.HeapAlloc,
		peak:     atomic.NewUint64(ms.HeapAlloc),
		done:     make(chan struct{}),
	}
	go probe.poll()
	return probe
}

func (p *memoryProbe) poll() {
	ticker := time.NewTicker(probePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			for {
				peak := p.peak.Load()
				if ms.HeapAlloc <= peak || p.peak.CompareAndSwap(peak, ms.HeapAlloc) {
					break
				}
			}
		}
	}
}

// Stop ends polling and returns the peak heap delta in megabytes.
func (p *memoryProbe) Stop() float64 {
	close(p.done)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	for {
		peak := p.peak.Load()
		if ms.HeapAlloc <= peak || p.peak.CompareAndSwap(peak, ms.HeapAlloc) {
			break
		}
	}
	peak := p.peak.Load()
	if peak <= p.baseline {
		// the collector ran mid-benchmark and the heap shrank
		return 0
	}
	return float64(peak-p.baseline) / (1 << 20)
}
