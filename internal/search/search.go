// Package search implements a fixed-depth alpha-beta minimax search over
// the engine's legal move generator and mobility evaluator.
package search

import (
	"context"
	"fmt"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
	"github.com/lgbarn/minimax-chess-go/internal/config"
	"github.com/lgbarn/minimax-chess-go/internal/engine"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
)

// Result is the outcome of a search. Score is from white's point of view.
// Move is the null move when the root has no legal moves or depth is zero.
type Result struct {
	Move  chess.Move
	Score int
	Nodes uint64
	Depth int
}

// Searcher runs searches with the depth and worker count of its config.
// The config is read at the start of every search, so changes made between
// searches take effect on the next one.
type Searcher struct {
	cfg *config.Config
}

// NewSearcher creates a Searcher bound to cfg.
func NewSearcher(cfg *config.Config) *Searcher {
	return &Searcher{cfg: cfg}
}

// Search searches pos to the configured depth.
func (s *Searcher) Search(ctx context.Context, pos chess.Position) (Result, error) {
	return s.SearchDepth(ctx, pos, s.cfg.Search.Depth)
}

// SearchDepth searches pos to the given depth. White maximizes and black
// minimizes. Among equally scored moves the first in generation order wins.
// A cancelled context aborts the search between sibling moves and its
// error is returned.
func (s *Searcher) SearchDepth(ctx context.Context, pos chess.Position, depth int) (Result, error) {
	if depth < 0 || depth > config.MaxDepth {
		return Result{}, fmt.Errorf("depth %d: %w", depth, errors.ErrInvalidConfig)
	}

	var (
		res Result
		err error
	)
	if workers := s.cfg.Search.Workers; workers > 1 && depth > 0 {
		res, err = searchParallel(ctx, pos, depth, workers)
	} else {
		t := &tree{ctx: ctx}
		res.Move, res.Score, err = t.search(pos, depth, engine.MinScore, engine.MaxScore)
		res.Nodes = t.nodes
	}
	if err != nil {
		s.cfg.Logf(config.Verbose, "search aborted at depth %d: %v", depth, err)
		return Result{}, err
	}
	res.Depth = depth

	s.cfg.Logf(config.Verbose, "search depth %d: %s score %d nodes %d",
		depth, describe(res.Move), res.Score, res.Nodes)
	return res, nil
}

func describe(m chess.Move) string {
	if m.IsNull() {
		return "no move"
	}
	return fmt.Sprintf("%s %s-%s", m.Piece, m.From, m.To)
}

// tree holds the state of one sequential walk.
type tree struct {
	ctx   context.Context
	nodes uint64
}

// search dispatches on the side to move.
func (t *tree) search(pos chess.Position, depth, alpha, beta int) (chess.Move, int, error) {
	if pos.ToMove == chess.White {
		return t.maximize(pos, depth, alpha, beta)
	}
	return t.minimize(pos, depth, alpha, beta)
}

// leaf returns the moves to explore, or ok=false when pos is a leaf.
func (t *tree) leaf(pos chess.Position, depth int) ([]chess.Move, bool) {
	t.nodes++
	if depth == 0 {
		return nil, false
	}
	moves := engine.LegalMoves(pos)
	return moves, len(moves) > 0
}

func (t *tree) maximize(pos chess.Position, depth, alpha, beta int) (chess.Move, int, error) {
	moves, ok := t.leaf(pos, depth)
	if !ok {
		return chess.Move{}, engine.Evaluate(pos), nil
	}

	var best chess.Move
	bestScore := engine.MinScore
	for i, m := range moves {
		if err := t.ctx.Err(); err != nil {
			return chess.Move{}, 0, err
		}
		_, score, err := t.minimize(engine.ApplyMove(pos, m), depth-1, alpha, beta)
		if err != nil {
			return chess.Move{}, 0, err
		}
		if i == 0 || score > bestScore {
			best, bestScore = m, score
		}
		if bestScore > alpha {
			alpha = bestScore
		}
		if alpha >= beta {
			break
		}
	}
	return best, bestScore, nil
}

func (t *tree) minimize(pos chess.Position, depth, alpha, beta int) (chess.Move, int, error) {
	moves, ok := t.leaf(pos, depth)
	if !ok {
		return chess.Move{}, engine.Evaluate(pos), nil
	}

	var best chess.Move
	bestScore := engine.MaxScore
	for i, m := range moves {
		if err := t.ctx.Err(); err != nil {
			return chess.Move{}, 0, err
		}
		_, score, err := t.maximize(engine.ApplyMove(pos, m), depth-1, alpha, beta)
		if err != nil {
			return chess.Move{}, 0, err
		}
		if i == 0 || score < bestScore {
			best, bestScore = m, score
		}
		if bestScore < beta {
			beta = bestScore
		}
		if alpha >= beta {
			break
		}
	}
	return best, bestScore, nil
}
