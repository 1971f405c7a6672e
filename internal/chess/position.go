package chess

// Board is an 8x8 grid of signed piece codes indexed [rank][file].
type Board [BoardSize][BoardSize]Piece

// Get returns the piece on sq, or Empty when sq is off the board.
func (b *Board) Get(sq Square) Piece {
	if !sq.OnBoard() {
		return Empty
	}
	return b[sq.Rank][sq.File]
}

// Set places a piece on sq. Off-board squares are ignored.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.OnBoard() {
		b[sq.Rank][sq.File] = piece
	}
}

// FindKing returns the square of the given colour's king, or NoSquare.
func (b *Board) FindKing(colour Colour) Square {
	king := MakeColouredPiece(colour, King)
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if b[rank][file] == king {
				return Square{Rank: rank, File: file}
			}
		}
	}
	return NoSquare
}

// CastlingRights holds the four castling permissions. Rights are only
// ever removed during play.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// AllCastlingRights grants every castling option.
var AllCastlingRights = CastlingRights{true, true, true, true}

// Kingside reports the kingside right for colour.
func (c CastlingRights) Kingside(colour Colour) bool {
	if colour == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

// Queenside reports the queenside right for colour.
func (c CastlingRights) Queenside(colour Colour) bool {
	if colour == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

// WithoutColour drops both rights of colour.
func (c CastlingRights) WithoutColour(colour Colour) CastlingRights {
	if colour == White {
		c.WhiteKingside, c.WhiteQueenside = false, false
	} else {
		c.BlackKingside, c.BlackQueenside = false, false
	}
	return c
}

// WithoutRookAt drops the right tied to a rook home square, if sq is one.
func (c CastlingRights) WithoutRookAt(sq Square) CastlingRights {
	switch sq {
	case Square{Rank: 0, File: 7}:
		c.WhiteKingside = false
	case Square{Rank: 0, File: 0}:
		c.WhiteQueenside = false
	case Square{Rank: 7, File: 7}:
		c.BlackKingside = false
	case Square{Rank: 7, File: 0}:
		c.BlackQueenside = false
	}
	return c
}

// Any reports whether any right remains.
func (c CastlingRights) Any() bool {
	return c.WhiteKingside || c.WhiteQueenside || c.BlackKingside || c.BlackQueenside
}

// Position is the complete state of a game at one ply. It is a value:
// copies never share storage, and transitions produce new values.
type Position struct {
	Board Board

	// Who has the next move.
	ToMove Colour

	// File on which an en passant capture is available, or NoFile.
	EnPassantFile int

	Castling CastlingRights

	// Carried for protocol compatibility only.
	HalfmoveClock uint
	MoveNumber    uint
}

// NewPosition creates an empty position with white to move.
func NewPosition() Position {
	return Position{
		ToMove:        White,
		EnPassantFile: NoFile,
		MoveNumber:    1,
	}
}

// NewInitialPosition returns the standard chess starting position.
func NewInitialPosition() Position {
	p := NewPosition()
	backRank := []Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		p.Board[0][file] = W(backRank[file])
		p.Board[1][file] = W(Pawn)
		p.Board[6][file] = B(Pawn)
		p.Board[7][file] = B(backRank[file])
	}
	p.Castling = AllCastlingRights
	return p
}

// Piece returns the piece on sq.
func (p *Position) Piece(sq Square) Piece {
	return p.Board.Get(sq)
}

// KingSquare returns the square of colour's king, or NoSquare.
func (p *Position) KingSquare(colour Colour) Square {
	return p.Board.FindKing(colour)
}

// EnPassantTarget returns the square a capturing pawn would land on, or
// NoSquare when no en passant capture is available.
func (p *Position) EnPassantTarget() Square {
	if p.EnPassantFile == NoFile {
		return NoSquare
	}
	rank := 5
	if p.ToMove == Black {
		rank = 2
	}
	return Square{Rank: rank, File: p.EnPassantFile}
}

// WithTurn returns a copy of the position with the side to move replaced.
// The en passant file is dropped when the turn changes hands because it
// only ever belongs to the side that did not make the double step.
func (p Position) WithTurn(colour Colour) Position {
	if p.ToMove != colour {
		p.EnPassantFile = NoFile
	}
	p.ToMove = colour
	return p
}
