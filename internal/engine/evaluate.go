package engine

import (
	"math"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
)

// Score bounds. A side that is checkmated scores the extreme against it.
const (
	MinScore = math.MinInt32
	MaxScore = math.MaxInt32
)

// Evaluate scores a position from white's point of view. A side to move
// with no legal moves that is in check is mated; every other position,
// stalemate included, scores the mobility differential.
func Evaluate(pos chess.Position) int {
	moves := LegalMoves(pos)
	if len(moves) == 0 && InCheck(pos, pos.ToMove) {
		if pos.ToMove == chess.White {
			return MinScore
		}
		return MaxScore
	}
	return mobility(pos, len(moves))
}

// Mobility returns white's legal move count minus black's, each counted as
// if that side were to move.
func Mobility(pos chess.Position) int {
	return mobility(pos, len(LegalMoves(pos)))
}

// mobility completes the differential given the side to move's count.
func mobility(pos chess.Position, toMoveCount int) int {
	otherCount := len(LegalMoves(pos.WithTurn(pos.ToMove.Opposite())))
	if pos.ToMove == chess.White {
		return toMoveCount - otherCount
	}
	return otherCount - toMoveCount
}

// IsMateScore reports whether score is one of the checkmate extremes.
func IsMateScore(score int) bool {
	return score == MinScore || score == MaxScore
}
