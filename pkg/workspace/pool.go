package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gnana997/designc/pkg/compiler"
	"github.com/gnana997/designc/pkg/util"
)

// CompileJob represents a document to be compiled by the pool.
type CompileJob struct {
	Path  string
	JobID int
}

// CompileResult contains the compile output for a document.
type CompileResult struct {
	Path   string
	Output *compiler.Output
	JobID  int
}

// CompileError pairs a document path with its compile failure.
type CompileError struct {
	Path string
	Err  error
}

func (e CompileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// compileFunc compiles a single document by path.
type compileFunc func(ctx context.Context, path string) (*compiler.Output, error)

// Pool manages a pool of goroutines for parallel document compilation.
// Jobs flow through buffered channels; results and errors come out on
// separate channels so callers can tally both.
type Pool struct {
	numWorkers int
	jobs       chan CompileJob
	results    chan CompileResult
	errors     chan CompileError
	wg         sync.WaitGroup
	compile    compileFunc
	logger     *slog.Logger

	ctx        context.Context
	cancel     context.CancelFunc
	started    atomic.Bool
	stopped    atomic.Bool
	jobsClosed atomic.Bool

	jobsSubmitted atomic.Int64
	jobsProcessed atomic.Int64
	jobsFailed    atomic.Int64
}

// NewPool creates a compile pool. numWorkers of 0 auto-detects from
// CPU count, matching the theme parser pool so workers never block
// waiting for a parser.
func NewPool(ctx context.Context, numWorkers int, compile compileFunc, logger *slog.Logger) *Pool {
	if numWorkers <= 0 {
		numWorkers = util.GetOptimalPoolSize()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan CompileJob, numWorkers*2),
		results:    make(chan CompileResult, numWorkers),
		errors:     make(chan CompileError, numWorkers),
		compile:    compile,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start spawns the worker goroutines. Must be called before Submit.
func (p *Pool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		p.logger.Warn("compile pool already started")
		return
	}

	p.logger.Debug("starting compile pool", "workers", p.numWorkers)

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return

		case job, ok := <-p.jobs:
			if !ok {
				return
			}

			out, err := p.compile(p.ctx, job.Path)
			if err != nil {
				p.jobsFailed.Add(1)
				// Sends race cancellation so a worker never wedges on a
				// full buffer after the consumer has gone away.
				select {
				case p.errors <- CompileError{Path: job.Path, Err: err}:
				case <-p.ctx.Done():
					return
				}
				continue
			}

			p.jobsProcessed.Add(1)
			select {
			case p.results <- CompileResult{Path: job.Path, Output: out, JobID: job.JobID}:
			case <-p.ctx.Done():
				return
			}
			p.logger.Debug("compiled document", "worker_id", id, "path", job.Path)
		}
	}
}

// Submit enqueues a job. Blocks if the jobs channel is full.
func (p *Pool) Submit(job CompileJob) error {
	if p.stopped.Load() {
		return fmt.Errorf("compile pool is stopped")
	}

	p.jobsSubmitted.Add(1)

	select {
	case <-p.ctx.Done():
		return fmt.Errorf("compile pool cancelled")
	case p.jobs <- job:
		return nil
	}
}

// Results returns the results channel.
func (p *Pool) Results() <-chan CompileResult {
	return p.results
}

// Errors returns the errors channel.
func (p *Pool) Errors() <-chan CompileError {
	return p.errors
}

// FinishSubmitting closes the jobs channel so workers can exit once it
// drains. Idempotent.
func (p *Pool) FinishSubmitting() {
	if p.jobsClosed.CompareAndSwap(false, true) {
		close(p.jobs)
	}
}

// Wait blocks until all workers have finished. Call after
// FinishSubmitting.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Stop shuts the pool down, waiting for in-flight jobs. Idempotent.
func (p *Pool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}

	if p.jobsClosed.CompareAndSwap(false, true) {
		close(p.jobs)
	}

	p.wg.Wait()

	close(p.results)
	close(p.errors)
	p.cancel()

	p.logger.Debug("compile pool stopped",
		"jobs_submitted", p.jobsSubmitted.Load(),
		"jobs_processed", p.jobsProcessed.Load(),
		"jobs_failed", p.jobsFailed.Load())
}

// GetStats returns current pool statistics.
func (p *Pool) GetStats() PoolStats {
	return PoolStats{
		NumWorkers:    p.numWorkers,
		JobsSubmitted: p.jobsSubmitted.Load(),
		JobsProcessed: p.jobsProcessed.Load(),
		JobsFailed:    p.jobsFailed.Load(),
	}
}

// PoolStats contains compile pool statistics.
type PoolStats struct {
	NumWorkers    int
	JobsSubmitted int64
	JobsProcessed int64
	JobsFailed    int64
}
