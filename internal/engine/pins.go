package engine

import "github.com/lgbarn/minimax-chess-go/internal/chess"

// Ray identifies one of the four lines through a square.
type Ray int

const (
	Vertical Ray = iota
	Horizontal
	Diagonal     // a1-h8 direction
	AntiDiagonal // a8-h1 direction
	numRays
)

// String returns the name of the ray.
func (r Ray) String() string {
	switch r {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case Diagonal:
		return "diagonal"
	case AntiDiagonal:
		return "anti-diagonal"
	}
	return "unknown"
}

// rayDirs lists the two walking directions of each ray.
var rayDirs = [numRays][2]direction{
	Vertical:     {{1, 0}, {-1, 0}},
	Horizontal:   {{0, 1}, {0, -1}},
	Diagonal:     {{1, 1}, {-1, -1}},
	AntiDiagonal: {{1, -1}, {-1, 1}},
}

// orthogonal reports whether the ray is a rank or file.
func (r Ray) orthogonal() bool {
	return r == Vertical || r == Horizontal
}

// rayOf returns the ray a step lies on.
func rayOf(dRank, dFile int) Ray {
	switch {
	case dFile == 0:
		return Vertical
	case dRank == 0:
		return Horizontal
	case (dRank > 0) == (dFile > 0):
		return Diagonal
	default:
		return AntiDiagonal
	}
}

// PinSet holds, per ray through the king, the friendly pieces pinned along
// that ray.
type PinSet [numRays]chess.SquareSet

// Pinned reports whether sq is pinned and, if so, along which ray.
func (p PinSet) Pinned(sq chess.Square) (Ray, bool) {
	for r := Vertical; r < numRays; r++ {
		if p[r].Has(sq) {
			return r, true
		}
	}
	return 0, false
}

// Pins computes the pieces of colour us pinned against the king on king.
// Walking out from the king, the first friendly piece is tentatively pinned;
// it is confirmed when the next occupied square holds an enemy slider that
// moves along this ray, and cancelled by anything else.
func Pins(board *chess.Board, king chess.Square, us chess.Colour) PinSet {
	var pins PinSet
	if !king.OnBoard() {
		return pins
	}
	for r := Vertical; r < numRays; r++ {
		for _, dir := range rayDirs[r] {
			if sq, ok := pinnedOnRay(board, king, dir, r, us); ok {
				pins[r] = pins[r].Add(sq)
			}
		}
	}
	return pins
}

// pinnedOnRay walks one direction from the king and returns the pinned
// friendly piece, if any.
func pinnedOnRay(board *chess.Board, king chess.Square, dir direction, r Ray, us chess.Colour) (chess.Square, bool) {
	candidate := chess.NoSquare
	for sq := king.Offset(dir.dRank, dir.dFile); sq.OnBoard(); sq = sq.Offset(dir.dRank, dir.dFile) {
		piece := board.Get(sq)
		if piece == chess.Empty {
			continue
		}
		if candidate == chess.NoSquare {
			if !piece.BelongsTo(us) {
				return chess.NoSquare, false
			}
			candidate = sq
			continue
		}
		if !piece.BelongsTo(us) && pinsAlong(piece, r) {
			return candidate, true
		}
		return chess.NoSquare, false
	}
	return chess.NoSquare, false
}

// pinsAlong reports whether a slider can pin along the ray.
func pinsAlong(piece chess.Piece, r Ray) bool {
	switch chess.ExtractPiece(piece) {
	case chess.Queen:
		return true
	case chess.Rook:
		return r.orthogonal()
	case chess.Bishop:
		return !r.orthogonal()
	}
	return false
}
