package engine

import "github.com/lgbarn/minimax-chess-go/internal/chess"

const (
	kingHomeFile      = 4
	kingsideRookFile  = 7
	queensideRookFile = 0
)

// castleGeometry describes the squares involved in one castling move.
type castleGeometry struct {
	class    chess.MoveClass
	rookFrom int
	rookTo   int
	kingTo   int
	// Files that must be empty.
	between []int
	// Files the king stands on or crosses, which must not be attacked.
	kingPath []int
}

var (
	kingsideCastle = castleGeometry{
		class:    chess.KingsideCastle,
		rookFrom: kingsideRookFile,
		rookTo:   5,
		kingTo:   6,
		between:  []int{5, 6},
		kingPath: []int{4, 5, 6},
	}
	queensideCastle = castleGeometry{
		class:    chess.QueensideCastle,
		rookFrom: queensideRookFile,
		rookTo:   3,
		kingTo:   2,
		between:  []int{1, 2, 3},
		kingPath: []int{4, 3, 2},
	}
)

// castleFor returns the geometry of a castling class.
func castleFor(class chess.MoveClass) castleGeometry {
	if class == chess.QueensideCastle {
		return queensideCastle
	}
	return kingsideCastle
}

// castlingMoves adds the castling moves available to the king on from.
func (g *generator) castlingMoves(from chess.Square) {
	rank := chess.HomeRank(g.us)
	if from != chess.Sq(rank, kingHomeFile) {
		return
	}
	if g.pos.Castling.Kingside(g.us) && g.canCastle(rank, kingsideCastle) {
		g.add(castleMove(rank, kingsideCastle))
	}
	if g.pos.Castling.Queenside(g.us) && g.canCastle(rank, queensideCastle) {
		g.add(castleMove(rank, queensideCastle))
	}
}

// canCastle checks the rook, the empty squares between king and rook and
// the danger squares on the king's path.
func (g *generator) canCastle(rank int, c castleGeometry) bool {
	if g.pos.Board.Get(chess.Sq(rank, c.rookFrom)) != chess.MakeColouredPiece(g.us, chess.Rook) {
		return false
	}
	for _, file := range c.between {
		if g.pos.Board.Get(chess.Sq(rank, file)) != chess.Empty {
			return false
		}
	}
	for _, file := range c.kingPath {
		if g.kingDanger.Has(chess.Sq(rank, file)) {
			return false
		}
	}
	return true
}

func castleMove(rank int, c castleGeometry) chess.Move {
	return chess.Move{
		From:  chess.Sq(rank, kingHomeFile),
		To:    chess.Sq(rank, c.kingTo),
		Piece: chess.King,
		Class: c.class,
	}
}

// applyCastle moves king and rook for a castling move.
func applyCastle(pos *chess.Position, m chess.Move) {
	c := castleFor(m.Class)
	rank := m.From.Rank

	king := pos.Board.Get(m.From)
	pos.Board.Set(m.From, chess.Empty)
	pos.Board.Set(chess.Sq(rank, c.kingTo), king)

	rookFrom := chess.Sq(rank, c.rookFrom)
	rook := pos.Board.Get(rookFrom)
	pos.Board.Set(rookFrom, chess.Empty)
	pos.Board.Set(chess.Sq(rank, c.rookTo), rook)
}
