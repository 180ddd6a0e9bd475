// Package batch implements the parallel batch executor (C10):
// distributing independent queries across a fixed worker pool while
// preserving input order in the output, and the single-threaded path
// that consults the per-query cache (C11).
//
// Grounded on bastiangx-wordserve/pkg/dictionary/loader.go's
// goroutine-per-worker pattern (backgroundLoader), adapted from
// background chunk loading to a bounded worker pool draining a job
// channel and writing into a pre-sized output slice by index - order
// falls out of writing by index rather than needing to resequence.
package batch

import (
	"runtime"
	"sync"

	"github.com/bastiangx/anahash/pkg/querycache"
	"github.com/bastiangx/anahash/pkg/variant"
	"github.com/charmbracelet/log"
)

// Executor runs queries against a Model, either across a worker pool
// or, when params.SingleThread is set, on the calling goroutine with
// the per-query cache consulted.
type Executor struct {
	Model   *variant.Model
	Workers int
	Logger  *log.Logger
}

// New creates an Executor with a worker count defaulting to
// runtime.NumCPU() when workers <= 0.
func New(model *variant.Model, workers int, logger *log.Logger) *Executor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Executor{Model: model, Workers: workers, Logger: logger}
}

// Run executes one query per input. When p.SingleThread is true, work
// runs sequentially on the calling goroutine and results are cached by
// fingerprint; otherwise work is sharded across Workers goroutines
// with no shared mutable state beyond the read-only Model, and the
// per-query cache is never touched (spec.md §5's confinement rule).
func (ex *Executor) Run(inputs []string, p variant.Params) [][]variant.Match {
	if p.SingleThread {
		return ex.runSingleThreaded(inputs, p)
	}
	return ex.runParallel(inputs, p)
}

func (ex *Executor) runSingleThreaded(inputs []string, p variant.Params) [][]variant.Match {
	cache := querycache.New(10000)
	out := make([][]variant.Match, len(inputs))
	for i, text := range inputs {
		fp := variant.Fingerprint(text, p)
		if cached, ok := cache.Get(fp); ok {
			out[i] = cached
			continue
		}
		result := ex.Model.FindVariants(text, p)
		cache.Put(fp, result)
		out[i] = result
	}
	return out
}

func (ex *Executor) runParallel(inputs []string, p variant.Params) [][]variant.Match {
	out := make([][]variant.Match, len(inputs))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := ex.Workers
	if workers > len(inputs) {
		workers = len(inputs)
	}
	if workers < 1 {
		workers = 1
	}

	if ex.Logger != nil {
		ex.Logger.Info("batch: starting workers", "count", workers, "inputs", len(inputs))
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = ex.Model.FindVariants(inputs[i], p)
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}
