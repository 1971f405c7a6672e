package engine

import "github.com/lgbarn/minimax-chess-go/internal/chess"

// GameStatus summarises whether play can continue from a position.
type GameStatus int

const (
	Ongoing GameStatus = iota
	Checkmate
	Stalemate
	InsufficientMaterial
)

// String returns the string representation of a status.
func (s GameStatus) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	}
	return "ongoing"
}

// IsTerminal returns true if the side to move has no legal moves. It does
// not distinguish checkmate from stalemate.
func IsTerminal(pos chess.Position) bool {
	return !HasLegalMoves(pos)
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(pos chess.Position) bool {
	return InCheck(pos, pos.ToMove) && !HasLegalMoves(pos)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(pos chess.Position) bool {
	return !InCheck(pos, pos.ToMove) && !HasLegalMoves(pos)
}

// Status classifies the position. It is informational only; search and
// evaluation never consult it.
func Status(pos chess.Position) GameStatus {
	if !HasLegalMoves(pos) {
		if InCheck(pos, pos.ToMove) {
			return Checkmate
		}
		return Stalemate
	}
	if HasInsufficientMaterial(&pos.Board) {
		return InsufficientMaterial
	}
	return Ongoing
}

// HasInsufficientMaterial checks if neither side can deliver mate.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func HasInsufficientMaterial(board *chess.Board) bool {
	var whitePieces, blackPieces []chess.Piece
	var whiteBishopOnLight, blackBishopOnLight bool

	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			piece := board[rank][file]
			if piece == chess.Empty {
				continue
			}
			pieceType := chess.ExtractPiece(piece)
			switch pieceType {
			case chess.King:
				continue
			case chess.Pawn, chess.Rook, chess.Queen:
				return false
			}

			if chess.ExtractColour(piece) == chess.White {
				whitePieces = append(whitePieces, pieceType)
				if pieceType == chess.Bishop {
					whiteBishopOnLight = isLightSquare(rank, file)
				}
			} else {
				blackPieces = append(blackPieces, pieceType)
				if pieceType == chess.Bishop {
					blackBishopOnLight = isLightSquare(rank, file)
				}
			}
		}
	}

	switch {
	case len(whitePieces) == 0 && len(blackPieces) == 0:
		return true
	case len(whitePieces) == 0 && len(blackPieces) == 1:
		return blackPieces[0] == chess.Bishop || blackPieces[0] == chess.Knight
	case len(blackPieces) == 0 && len(whitePieces) == 1:
		return whitePieces[0] == chess.Bishop || whitePieces[0] == chess.Knight
	case len(whitePieces) == 1 && len(blackPieces) == 1:
		return whitePieces[0] == chess.Bishop && blackPieces[0] == chess.Bishop &&
			whiteBishopOnLight == blackBishopOnLight
	}
	return false
}

// isLightSquare returns true if the given square is a light square.
func isLightSquare(rank, file int) bool {
	return (rank+file)%2 == 1
}
