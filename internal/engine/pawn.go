package engine

import "github.com/lgbarn/minimax-chess-go/internal/chess"

// applyPawnMove applies a pawn move, including en passant captures,
// promotions and the en passant file of a double step.
func applyPawnMove(pos *chess.Position, m chess.Move) {
	colour := pos.ToMove

	// The pawn taken en passant sits beside the mover, not on m.To.
	if m.Class == chess.EnPassantCapture {
		pos.Board.Set(chess.Sq(m.From.Rank, m.To.File), chess.Empty)
	}

	pos.Board.Set(m.From, chess.Empty)
	if m.Promotion != chess.Empty {
		pos.Board.Set(m.To, chess.MakeColouredPiece(colour, m.Promotion))
	} else {
		pos.Board.Set(m.To, chess.MakeColouredPiece(colour, chess.Pawn))
	}

	if abs(m.To.Rank-m.From.Rank) == 2 {
		pos.EnPassantFile = m.To.File
	}
}
