// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
// Its value is the sign carried by that colour's piece codes.
type Colour int8

const (
	Black Colour = -1
	White Colour = 1
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Sign returns +1 for White and -1 for Black.
func (c Colour) Sign() int {
	return int(c)
}

// Piece is a signed piece code as stored on the board. Zero is an empty
// square; magnitudes 1..6 are pawn, rook, knight, bishop, queen and king;
// positive codes are white and negative codes are black. Uncoloured piece
// kinds use the positive code.
type Piece int8

const (
	Empty Piece = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
	NumPieceValues
)

// String returns the name of the piece kind, ignoring colour.
func (p Piece) String() string {
	names := []string{"Empty", "Pawn", "Rook", "Knight", "Bishop", "Queen", "King"}
	k := ExtractPiece(p)
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'P', 'R', 'N', 'B', 'Q', 'K'}
	k := ExtractPiece(p)
	if int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// IsSlider reports whether the piece kind moves along rays.
func (p Piece) IsSlider() bool {
	switch ExtractPiece(p) {
	case Rook, Bishop, Queen:
		return true
	}
	return false
}

// MakeColouredPiece creates a coloured piece value.
func MakeColouredPiece(colour Colour, piece Piece) Piece {
	return ExtractPiece(piece) * Piece(colour)
}

// W creates a white piece.
func W(piece Piece) Piece {
	return MakeColouredPiece(White, piece)
}

// B creates a black piece.
func B(piece Piece) Piece {
	return MakeColouredPiece(Black, piece)
}

// ExtractColour extracts the colour from a coloured piece.
// The result is meaningless for Empty.
func ExtractColour(colouredPiece Piece) Colour {
	if colouredPiece < 0 {
		return Black
	}
	return White
}

// ExtractPiece extracts the piece type from a coloured piece.
func ExtractPiece(colouredPiece Piece) Piece {
	if colouredPiece < 0 {
		return -colouredPiece
	}
	return colouredPiece
}

// BelongsTo reports whether p is a piece of the given colour.
func (p Piece) BelongsTo(colour Colour) bool {
	return int(p)*colour.Sign() > 0
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	RankBase = '1'
	FileBase = 'a'

	// NoFile marks the absence of an en passant file.
	NoFile = -1
)

// Square is a (rank, file) pair. Rank 0 is chess rank 1 and file 0 is the
// a-file.
type Square struct {
	Rank int
	File int
}

// NoSquare is returned where a square cannot be found.
var NoSquare = Square{Rank: -1, File: -1}

// Sq is a shorthand for building a square.
func Sq(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

// OnBoard reports whether the square lies inside the 8x8 board.
func (s Square) OnBoard() bool {
	return s.Rank >= 0 && s.Rank < BoardSize && s.File >= 0 && s.File < BoardSize
}

// Offset returns the square displaced by the given rank and file deltas.
// The result may be off the board.
func (s Square) Offset(dRank, dFile int) Square {
	return Square{Rank: s.Rank + dRank, File: s.File + dFile}
}

// Index returns the 0..63 index of the square, rank-major.
func (s Square) Index() int {
	return s.Rank*BoardSize + s.File
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.OnBoard() {
		return "-"
	}
	return string([]byte{byte(FileBase + s.File), byte(RankBase + s.Rank)})
}

// ParseSquare parses an algebraic square name such as "e4".
func ParseSquare(text string) (Square, bool) {
	if len(text) != 2 {
		return NoSquare, false
	}
	sq := Square{Rank: int(text[1]) - RankBase, File: int(text[0]) - FileBase}
	if !sq.OnBoard() {
		return NoSquare, false
	}
	return sq, true
}

// HomeRank returns the back rank index for a colour.
func HomeRank(colour Colour) int {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}

// PawnStartRank returns the rank index from which pawns may double-step.
func PawnStartRank(colour Colour) int {
	if colour == White {
		return 1
	}
	return BoardSize - 2
}

// PromotionRank returns the rank index on which pawns promote.
func PromotionRank(colour Colour) int {
	if colour == White {
		return BoardSize - 1
	}
	return 0
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	return colour.Sign()
}

// SquareSet is a set of board squares stored as a 64-bit mask.
type SquareSet uint64

// Add returns the set with sq included.
func (s SquareSet) Add(sq Square) SquareSet {
	return s | 1<<uint(sq.Index())
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	if !sq.OnBoard() {
		return false
	}
	return s&(1<<uint(sq.Index())) != 0
}

// Count returns the number of squares in the set.
func (s SquareSet) Count() int {
	n := 0
	for s != 0 {
		s &= s - 1
		n++
	}
	return n
}

// Squares lists the members of the set in index order.
func (s SquareSet) Squares() []Square {
	var out []Square
	for i := 0; i < BoardSize*BoardSize; i++ {
		if s&(1<<uint(i)) != 0 {
			out = append(out, Square{Rank: i / BoardSize, File: i % BoardSize})
		}
	}
	return out
}
