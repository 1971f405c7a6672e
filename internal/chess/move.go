package chess

// MoveClass categorizes different types of chess moves.
type MoveClass int

const (
	NormalMove MoveClass = iota
	DoublePawnPush
	EnPassantCapture
	KingsideCastle
	QueensideCastle
)

// String returns the name of the move class.
func (c MoveClass) String() string {
	switch c {
	case NormalMove:
		return "Normal"
	case DoublePawnPush:
		return "DoublePawnPush"
	case EnPassantCapture:
		return "EnPassantCapture"
	case KingsideCastle:
		return "KingsideCastle"
	case QueensideCastle:
		return "QueensideCastle"
	}
	return "Unknown"
}

// Move is a structured chess move. Castling moves carry the king's source
// and destination squares. The zero Move is the empty move.
type Move struct {
	From Square
	To   Square

	// The kind of piece being moved (uncoloured).
	Piece Piece

	Capture bool

	// The piece kind promoted to (Empty if not a promotion).
	Promotion Piece

	Class MoveClass
}

// IsNull returns true for the empty move.
func (m Move) IsNull() bool {
	return m.Piece == Empty
}

// IsCapture returns true if this move is a capture.
func (m Move) IsCapture() bool {
	return m.Capture || m.Class == EnPassantCapture
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != Empty
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastle, QueensideCastle:
		return true
	default:
		return false
	}
}

// PromotionPieces lists the promotion choices in generation order.
var PromotionPieces = []Piece{Queen, Rook, Bishop, Knight}
