package engine

import "github.com/lgbarn/minimax-chess-go/internal/chess"

// generator accumulates moves for the side to move of one position.
type generator struct {
	pos  *chess.Position
	us   chess.Colour
	them chess.Colour

	// When restricted, pins limit sliders and pawns, the king avoids
	// kingDanger, castling is considered and en passant is verified.
	// Otherwise the generator is pseudo-legal.
	restricted bool
	pins       PinSet
	kingDanger chess.SquareSet

	moves []chess.Move
}

// LegalMoves returns every legal move for the side to move, in generation
// order: squares a1..h8 rank by rank, and for each piece its moves in
// direction-table order. When the king is safe, pins and danger squares
// restrict the moves directly; when in check, pseudo-legal moves are
// filtered by playing them out.
func LegalMoves(pos chess.Position) []chess.Move {
	us := pos.ToMove
	king := pos.KingSquare(us)

	if king != chess.NoSquare && IsSquareAttacked(&pos.Board, king, us.Opposite()) {
		return legalMovesInCheck(pos)
	}

	g := newGenerator(&pos)
	g.restricted = true
	if king != chess.NoSquare {
		g.pins = Pins(&pos.Board, king, us)
		g.kingDanger = kingDangerSquares(&pos, king)
	}
	g.generate()
	return g.moves
}

// legalMovesInCheck is the slow path: every pseudo-legal move is applied and
// kept only if the mover's king is safe afterwards.
func legalMovesInCheck(pos chess.Position) []chess.Move {
	candidates := pseudoLegalMoves(pos)
	legal := candidates[:0]
	for _, m := range candidates {
		if !InCheck(ApplyMove(pos, m), pos.ToMove) {
			legal = append(legal, m)
		}
	}
	return legal
}

// pseudoLegalMoves generates moves by movement rules alone, ignoring pins
// and king safety. Castling is never produced.
func pseudoLegalMoves(pos chess.Position) []chess.Move {
	g := newGenerator(&pos)
	g.generate()
	return g.moves
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(pos chess.Position) bool {
	return len(LegalMoves(pos)) > 0
}

func newGenerator(pos *chess.Position) *generator {
	return &generator{
		pos:   pos,
		us:    pos.ToMove,
		them:  pos.ToMove.Opposite(),
		moves: make([]chess.Move, 0, 48),
	}
}

// generate dispatches on piece type for every friendly piece.
func (g *generator) generate() {
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			piece := g.pos.Board[rank][file]
			if !piece.BelongsTo(g.us) {
				continue
			}
			from := chess.Sq(rank, file)
			switch kind := chess.ExtractPiece(piece); kind {
			case chess.Pawn:
				g.pawnMoves(from)
			case chess.Knight:
				g.knightMoves(from)
			case chess.King:
				g.kingMoves(from)
			default:
				g.slidingMoves(from, kind)
			}
		}
	}
}

// pinRay returns the ray along which from is pinned, if restrictions apply.
func (g *generator) pinRay(from chess.Square) (Ray, bool) {
	if !g.restricted {
		return 0, false
	}
	return g.pins.Pinned(from)
}

// allowedAlong reports whether a step in the given direction keeps a pinned
// piece on its pin ray.
func (g *generator) allowedAlong(from chess.Square, dRank, dFile int) bool {
	r, pinned := g.pinRay(from)
	return !pinned || rayOf(dRank, dFile) == r
}

// target classifies the destination square for the mover.
func (g *generator) target(to chess.Square) (free, capture bool) {
	piece := g.pos.Board.Get(to)
	if piece == chess.Empty {
		return true, false
	}
	return false, piece.BelongsTo(g.them)
}

func (g *generator) add(m chess.Move) {
	g.moves = append(g.moves, m)
}

// addVerified adds m only if playing it leaves the mover's king safe. Used
// where a pin argument cannot decide legality.
func (g *generator) addVerified(m chess.Move) {
	if g.restricted && InCheck(ApplyMove(*g.pos, m), g.us) {
		return
	}
	g.add(m)
}

// pawnMoves generates pushes, captures, en passant and promotions.
func (g *generator) pawnMoves(from chess.Square) {
	forward := chess.ColourOffset(g.us)

	if g.allowedAlong(from, forward, 0) {
		one := from.Offset(forward, 0)
		if one.OnBoard() && g.pos.Board.Get(one) == chess.Empty {
			g.addPawnMove(from, one, false)
			two := one.Offset(forward, 0)
			if from.Rank == chess.PawnStartRank(g.us) && g.pos.Board.Get(two) == chess.Empty {
				g.add(chess.Move{From: from, To: two, Piece: chess.Pawn, Class: chess.DoublePawnPush})
			}
		}
	}

	epTarget := g.pos.EnPassantTarget()
	for _, dFile := range []int{-1, 1} {
		to := from.Offset(forward, dFile)
		if !to.OnBoard() {
			continue
		}
		if _, capture := g.target(to); capture {
			if g.allowedAlong(from, forward, dFile) {
				g.addPawnMove(from, to, true)
			}
			continue
		}
		if to == epTarget && g.pos.Board.Get(chess.Sq(from.Rank, to.File)) == chess.MakeColouredPiece(g.them, chess.Pawn) {
			// Removing two pawns from one rank can expose the king in ways
			// the pin sets do not describe, so en passant is always verified.
			g.addVerified(chess.Move{From: from, To: to, Piece: chess.Pawn, Capture: true, Class: chess.EnPassantCapture})
		}
	}
}

// addPawnMove adds a single-step pawn move, expanding promotions.
func (g *generator) addPawnMove(from, to chess.Square, capture bool) {
	if to.Rank != chess.PromotionRank(g.us) {
		g.add(chess.Move{From: from, To: to, Piece: chess.Pawn, Capture: capture})
		return
	}
	for _, promo := range chess.PromotionPieces {
		g.add(chess.Move{From: from, To: to, Piece: chess.Pawn, Capture: capture, Promotion: promo})
	}
}

// slidingMoves walks each ray of a rook, bishop or queen until blocked.
func (g *generator) slidingMoves(from chess.Square, kind chess.Piece) {
	for _, dir := range slideDirections(kind) {
		if !g.allowedAlong(from, dir.dRank, dir.dFile) {
			continue
		}
		for to := from.Offset(dir.dRank, dir.dFile); to.OnBoard(); to = to.Offset(dir.dRank, dir.dFile) {
			free, capture := g.target(to)
			if free || capture {
				g.add(chess.Move{From: from, To: to, Piece: kind, Capture: capture})
			}
			if !free {
				break
			}
		}
	}
}

// knightMoves generates knight jumps. A pinned knight never moves.
func (g *generator) knightMoves(from chess.Square) {
	if _, pinned := g.pinRay(from); pinned {
		return
	}
	g.offsetMoves(from, chess.Knight, knightDirs)
}

// kingMoves generates king steps and, when not in check, castling.
func (g *generator) kingMoves(from chess.Square) {
	g.offsetMoves(from, chess.King, kingDirs)
	if g.restricted {
		g.castlingMoves(from)
	}
}

// offsetMoves adds fixed-offset moves that land on the board and not on a
// friendly piece. King moves additionally avoid danger squares.
func (g *generator) offsetMoves(from chess.Square, kind chess.Piece, offsets []direction) {
	for _, d := range offsets {
		to := from.Offset(d.dRank, d.dFile)
		if !to.OnBoard() {
			continue
		}
		free, capture := g.target(to)
		if !free && !capture {
			continue
		}
		if kind == chess.King && g.restricted && g.kingDanger.Has(to) {
			continue
		}
		g.add(chess.Move{From: from, To: to, Piece: kind, Capture: capture})
	}
}
