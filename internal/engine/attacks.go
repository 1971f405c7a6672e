package engine

import "github.com/lgbarn/minimax-chess-go/internal/chess"

// direction is a (rank, file) step.
type direction struct {
	dRank, dFile int
}

var (
	straightDirs = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs = []direction{{1, 1}, {-1, -1}, {1, -1}, {-1, 1}}
	queenDirs    = append(append([]direction{}, straightDirs...), diagonalDirs...)
	knightDirs   = []direction{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}, {2, -1}, {2, 1}, {-2, 1}, {-2, -1}}
	kingDirs     = queenDirs
)

// slideDirections returns the ray directions of a sliding piece kind.
func slideDirections(piece chess.Piece) []direction {
	switch chess.ExtractPiece(piece) {
	case chess.Rook:
		return straightDirs
	case chess.Bishop:
		return diagonalDirs
	case chess.Queen:
		return queenDirs
	}
	return nil
}

// DangerSquares returns every square attacked by the given colour. Slider
// rays stop at, and include, the first occupied square.
func DangerSquares(board *chess.Board, by chess.Colour) chess.SquareSet {
	var danger chess.SquareSet
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			piece := board[rank][file]
			if !piece.BelongsTo(by) {
				continue
			}
			danger |= pieceAttacks(board, chess.Sq(rank, file), piece)
		}
	}
	return danger
}

// pieceAttacks returns the squares attacked by the piece standing on from.
func pieceAttacks(board *chess.Board, from chess.Square, piece chess.Piece) chess.SquareSet {
	var set chess.SquareSet
	switch chess.ExtractPiece(piece) {
	case chess.Pawn:
		forward := chess.ColourOffset(chess.ExtractColour(piece))
		for _, dFile := range []int{-1, 1} {
			if to := from.Offset(forward, dFile); to.OnBoard() {
				set = set.Add(to)
			}
		}
	case chess.Knight:
		set = offsetSquares(from, knightDirs)
	case chess.King:
		set = offsetSquares(from, kingDirs)
	default:
		for _, dir := range slideDirections(piece) {
			for to := from.Offset(dir.dRank, dir.dFile); to.OnBoard(); to = to.Offset(dir.dRank, dir.dFile) {
				set = set.Add(to)
				if board.Get(to) != chess.Empty {
					break
				}
			}
		}
	}
	return set
}

// offsetSquares returns the on-board squares at fixed offsets from from.
// Offsets that would leave the board are dropped, so no move wraps to the
// opposite edge.
func offsetSquares(from chess.Square, offsets []direction) chess.SquareSet {
	var set chess.SquareSet
	for _, d := range offsets {
		if to := from.Offset(d.dRank, d.dFile); to.OnBoard() {
			set = set.Add(to)
		}
	}
	return set
}

// IsSquareAttacked returns true if the square is attacked by the given colour.
func IsSquareAttacked(board *chess.Board, sq chess.Square, by chess.Colour) bool {
	return DangerSquares(board, by).Has(sq)
}

// InCheck returns true if colour's king stands on a square attacked by the
// other side. A side without a king is never in check.
func InCheck(pos chess.Position, colour chess.Colour) bool {
	king := pos.KingSquare(colour)
	if king == chess.NoSquare {
		return false
	}
	return IsSquareAttacked(&pos.Board, king, colour.Opposite())
}

// kingDangerSquares computes the squares the side to move's king may not
// step onto. The king is lifted from the board first so that it does not
// shadow the squares behind it on an attacking ray.
func kingDangerSquares(pos *chess.Position, king chess.Square) chess.SquareSet {
	board := pos.Board
	board.Set(king, chess.Empty)
	return DangerSquares(&board, pos.ToMove.Opposite())
}
