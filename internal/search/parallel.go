package search

import (
	"context"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
	"github.com/lgbarn/minimax-chess-go/internal/engine"
	"github.com/lgbarn/minimax-chess-go/internal/worker"
)

// searchParallel searches every root move with a full window on a worker
// pool and then picks the best in generation order with the same strict
// comparison as the sequential search. The chosen move and score match a
// sequential search; the node count is higher since no bound is shared.
func searchParallel(ctx context.Context, pos chess.Position, depth, workers int) (Result, error) {
	moves := engine.LegalMoves(pos)
	if len(moves) == 0 {
		return Result{Score: engine.Evaluate(pos), Nodes: 1}, nil
	}

	items := make([]worker.WorkItem, len(moves))
	for i, m := range moves {
		items[i] = worker.WorkItem{Index: i, Move: m, Position: engine.ApplyMove(pos, m)}
	}

	var pool *worker.Pool
	pool = worker.NewPool(func(item worker.WorkItem) worker.Result {
		if err := ctx.Err(); err != nil {
			pool.Stop()
			return worker.Result{Index: item.Index, Move: item.Move, Err: err}
		}
		t := &tree{ctx: ctx}
		_, score, err := t.search(item.Position, depth-1, engine.MinScore, engine.MaxScore)
		if err != nil {
			pool.Stop()
		}
		return worker.Result{Index: item.Index, Move: item.Move, Score: score, Nodes: t.nodes, Err: err}
	}, worker.WithWorkers(workers), worker.WithBufferSize(len(items)))

	results := pool.Run(items)

	maximizing := pos.ToMove == chess.White
	res := Result{Nodes: 1}
	for i, r := range results {
		if r.Err != nil {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			return Result{}, r.Err
		}
		res.Nodes += r.Nodes
		better := r.Score > res.Score
		if !maximizing {
			better = r.Score < res.Score
		}
		if i == 0 || better {
			res.Move, res.Score = r.Move, r.Score
		}
	}
	return res, nil
}
