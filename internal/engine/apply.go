package engine

import (
	"fmt"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
)

// ApplyMove returns the position after m. The input position is not
// modified. m must come from LegalMoves (or, for legality probing, from
// pseudo-legal generation): no legality check is made, and a move whose
// source square does not hold the mover's piece panics.
func ApplyMove(pos chess.Position, m chess.Move) chess.Position {
	colour := pos.ToMove
	if m.IsNull() || pos.Board.Get(m.From) != chess.MakeColouredPiece(colour, m.Piece) {
		panic(fmt.Sprintf("engine: ApplyMove: no %s %s on %s", colour, m.Piece, m.From))
	}

	next := pos
	next.EnPassantFile = chess.NoFile
	captured := next.Board.Get(m.To)

	switch {
	case m.IsCastle():
		applyCastle(&next, m)
	case m.Piece == chess.Pawn:
		applyPawnMove(&next, m)
	default:
		next.Board.Set(m.From, chess.Empty)
		next.Board.Set(m.To, chess.MakeColouredPiece(colour, m.Piece))
	}

	updateCastlingRights(&next, m, captured)

	if m.Piece == chess.Pawn || captured != chess.Empty {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}
	if colour == chess.Black {
		next.MoveNumber++
	}
	next.ToMove = colour.Opposite()

	return next
}

// MakeMove applies m after confirming it is legal in pos.
func MakeMove(pos chess.Position, m chess.Move) (chess.Position, error) {
	for _, legal := range LegalMoves(pos) {
		if legal == m {
			return ApplyMove(pos, m), nil
		}
	}
	return pos, errors.Wrapf(errors.ErrIllegalMove, "%s %s-%s", m.Piece, m.From, m.To)
}

// updateCastlingRights removes rights when the king moves, when a rook
// leaves its home square, or when a rook is captured on its home square.
func updateCastlingRights(pos *chess.Position, m chess.Move, captured chess.Piece) {
	colour := pos.ToMove
	switch m.Piece {
	case chess.King:
		pos.Castling = pos.Castling.WithoutColour(colour)
	case chess.Rook:
		pos.Castling = pos.Castling.WithoutRookAt(m.From)
	}
	if captured == chess.MakeColouredPiece(colour.Opposite(), chess.Rook) {
		pos.Castling = pos.Castling.WithoutRookAt(m.To)
	}
}
