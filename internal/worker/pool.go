// Package worker runs root-move searches on a fixed set of goroutines.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
)

// WorkItem is one root move to search.
type WorkItem struct {
	Index    int        // Position of the move in generation order
	Move     chess.Move // The root move
	Position chess.Position
}

// Result is the outcome of searching one root move.
type Result struct {
	Index int
	Move  chess.Move
	Score int
	Nodes uint64
	Err   error
}

// ProcessFunc searches a single work item.
type ProcessFunc func(item WorkItem) Result

// Pool manages a pool of workers for parallel root search.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan Result
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool. Default: 1 worker, buffer size of 32.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  32,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker searches queued moves until the queue is closed. Once the pool is
// stopped the remaining items are drained unsearched.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues a root move. It blocks while the queue is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop makes workers skip every item not yet started.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close ends submission, waits for the workers and then closes Results.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results delivers finished searches in completion order.
func (p *Pool) Results() <-chan Result {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run starts the pool, searches every item and returns the results indexed
// by WorkItem.Index, which must run from 0 to len(items)-1. Items skipped
// after Stop carry errors.ErrStopped. The pool cannot be reused.
func (p *Pool) Run(items []WorkItem) []Result {
	p.Start()
	go func() {
		for _, item := range items {
			p.Submit(item)
		}
		p.Close()
	}()

	results := make([]Result, len(items))
	seen := make([]bool, len(items))
	for r := range p.Results() {
		results[r.Index] = r
		seen[r.Index] = true
	}
	for i, ok := range seen {
		if !ok {
			results[i] = Result{Index: i, Move: items[i].Move, Err: errors.ErrStopped}
		}
	}
	return results
}
