package worker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
	"github.com/lgbarn/minimax-chess-go/internal/testutil"
)

// scoreByIndex scores each item by its index.
func scoreByIndex(item WorkItem) Result {
	return Result{Index: item.Index, Move: item.Move, Score: item.Index * 10, Nodes: 1}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(item WorkItem) Result {
		atomic.AddInt32(counter, 1)
		return scoreByIndex(item)
	}
}

func makeItems(n int) []WorkItem {
	items := make([]WorkItem, n)
	pos := chess.NewInitialPosition()
	for i := range items {
		items[i] = WorkItem{
			Index:    i,
			Move:     chess.Move{From: chess.Sq(1, i%8), To: chess.Sq(2, i%8), Piece: chess.Pawn},
			Position: pos,
		}
	}
	return items
}

func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(4), WithBufferSize(10))
	pool.Start()

	const numItems = 10
	for _, item := range makeItems(numItems) {
		pool.Submit(item)
	}
	go pool.Close()

	count := 0
	for range pool.Results() {
		count++
	}
	testutil.AssertEqual(t, count, numItems)
	testutil.AssertEqual(t, atomic.LoadInt32(&processed), int32(numItems))
}

func TestPoolCloseClosesResults(t *testing.T) {
	pool := NewPool(scoreByIndex, WithWorkers(3))
	pool.Start()
	pool.Close()

	select {
	case _, ok := <-pool.Results():
		testutil.AssertFalse(t, ok, "no results were submitted")
	case <-time.After(time.Second):
		t.Fatal("Results was not closed by Close")
	}
}

func TestPoolRunOrdersResults(t *testing.T) {
	variableDelay := func(item WorkItem) Result {
		if item.Index%2 == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		return scoreByIndex(item)
	}

	items := makeItems(20)
	results := NewPool(variableDelay, WithWorkers(4), WithBufferSize(2)).Run(items)

	testutil.AssertEqual(t, len(results), len(items))
	for i, r := range results {
		testutil.AssertEqual(t, r.Index, i)
		testutil.AssertEqual(t, r.Move, items[i].Move)
		testutil.AssertEqual(t, r.Score, i*10)
		testutil.AssertNoError(t, r.Err)
	}
}

func TestPoolRunEmpty(t *testing.T) {
	results := NewPool(scoreByIndex, WithWorkers(3)).Run(nil)
	testutil.AssertEqual(t, len(results), 0)
}

func TestPoolStopMarksSkippedItems(t *testing.T) {
	var pool *Pool
	stopAfterFirst := func(item WorkItem) Result {
		pool.Stop()
		return scoreByIndex(item)
	}
	pool = NewPool(stopAfterFirst, WithWorkers(1), WithBufferSize(1))

	results := pool.Run(makeItems(5))

	testutil.AssertNoError(t, results[0].Err)
	stopped := 0
	for _, r := range results {
		if r.Err == errors.ErrStopped {
			stopped++
		}
	}
	testutil.AssertTrue(t, stopped >= 1, "expected skipped items, got %d", stopped)
	testutil.AssertTrue(t, pool.IsStopped())
}

func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(scoreByIndex, WithWorkers(2))
	pool.Start()

	testutil.AssertFalse(t, pool.IsStopped(), "pool should not be stopped initially")
	pool.Stop()
	testutil.AssertTrue(t, pool.IsStopped(), "pool should be stopped after Stop()")

	pool.Close()
}

func TestPoolNoRace(t *testing.T) {
	var counter int32
	results := NewPool(countingProcessFunc(&counter), WithWorkers(8), WithBufferSize(5)).Run(makeItems(100))

	testutil.AssertEqual(t, len(results), 100)
	testutil.AssertEqual(t, atomic.LoadInt32(&counter), int32(100))
}

func TestNewPoolOptions(t *testing.T) {
	tests := []struct {
		name       string
		opts       []PoolOption
		workers    int
		bufferSize int
	}{
		{"defaults", nil, 1, 32},
		{"with workers", []PoolOption{WithWorkers(4)}, 4, 32},
		{"with buffer size", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"both", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid workers ignored", []PoolOption{WithWorkers(0)}, 1, 32},
		{"invalid buffer size ignored", []PoolOption{WithBufferSize(-5)}, 1, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(scoreByIndex, tt.opts...)
			testutil.AssertEqual(t, pool.NumWorkers(), tt.workers)
			testutil.AssertEqual(t, pool.bufferSize, tt.bufferSize)
		})
	}
}
