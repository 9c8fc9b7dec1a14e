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

// Package parallel provides fork-join scheduling over a fixed worker budget.
package parallel

import (
	"sync"

	"github.com/juju/errors"
)

// Task is an independent unit of work. Tasks submitted to the same Join call
// must not share mutable state.
type Task func() error

// Pool runs a batch of independent tasks and blocks until all of them
// complete. Join returns the first task error; it never returns before every
// submitted task has finished.
type Pool interface {
	Join(tasks ...Task) error
}

// NewSequentialPool creates a pool that runs tasks inline on the caller.
func NewSequentialPool() Pool {
	return &sequentialPool{}
}

type sequentialPool struct{}

func (p *sequentialPool) Join(tasks ...Task) error {
	var firstErr error
	for _, t := range tasks {
		if err := safeRun(t); err != nil && firstErr == nil {
			firstErr = errors.Trace(err)
		}
	}
	return firstErr
}

// NewWorkerPool creates a pool with a fixed budget of nWorkers concurrent
// executors shared by all Join calls, including nested ones. The caller of
// Join counts as one executor, so the semaphore holds nWorkers-1 tokens and
// a task that cannot obtain a token runs inline. This keeps concurrency at
// the configured budget and makes nested joins deadlock-free.
func NewWorkerPool(nWorkers int) (Pool, error) {
	if nWorkers < 2 {
		return nil, errors.NotValidf("worker pool of %d workers gains no parallelism", nWorkers)
	}
	return &workerPool{sem: make(chan struct{}, nWorkers-1)}, nil
}

type workerPool struct {
	sem chan struct{}
}

func (p *workerPool) Join(tasks ...Task) error {
	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	for i, t := range tasks {
		select {
		case p.sem <- struct{}{}:
			wg.Add(1)
			go func(i int, t Task) {
				defer wg.Done()
				defer func() { <-p.sem }()
				errs[i] = safeRun(t)
			}(i, t)
		default:
			errs[i] = safeRun(t)
		}
	}
	wg.Wait()
	// check errors
	for _, err := range errs {
		if err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// safeRun converts a task panic into an error so that a failed task surfaces
// from Join instead of tearing down a pooled goroutine.
func safeRun(t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("task panicked: %v", r)
		}
	}()
	return t()
}
