// Package notation converts moves between the engine's move values, the
// coordinate notation spoken by chess GUIs and the verbose long algebraic
// form used for display.
package notation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
	"github.com/lgbarn/minimax-chess-go/internal/engine"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
)

// NullMove is the coordinate text for "no move".
const NullMove = "0000"

// Castling in verbose form.
const (
	KingsideCastle  = "O-O"
	QueensideCastle = "O-O-O"
)

// castleAliases maps rook-square castling spellings to the king move.
var castleAliases = map[string]string{
	"e1h1": "e1g1",
	"e1a1": "e1c1",
	"e8h8": "e8g8",
	"e8a8": "e8c8",
}

// FormatUCI renders a move in coordinate notation, e.g. e2e4 or e7e8q.
// Castling is written as the king's move. The null move is 0000.
func FormatUCI(m chess.Move) string {
	if m.IsNull() {
		return NullMove
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(unicode.ToLower(rune(m.Promotion.Letter())))
	}
	return s
}

// FormatLAN renders a move in verbose long algebraic form: Ng1-f3, e2-e4,
// e5xd6, e7-e8Q, O-O. Pawn moves carry no piece letter.
func FormatLAN(m chess.Move) string {
	switch m.Class {
	case chess.KingsideCastle:
		return KingsideCastle
	case chess.QueensideCastle:
		return QueensideCastle
	}

	sep := "-"
	if m.Capture {
		sep = "x"
	}
	if m.IsPromotion() {
		return m.From.String() + sep + m.To.String() + string(m.Promotion.Letter())
	}
	if m.Piece == chess.Pawn {
		return m.From.String() + sep + m.To.String()
	}
	return string(m.Piece.Letter()) + m.From.String() + sep + m.To.String()
}

// ParseUCI resolves coordinate text against the legal moves of pos.
func ParseUCI(pos chess.Position, text string) (chess.Move, error) {
	canonical := strings.ToLower(strings.TrimSpace(text))
	if alias, ok := castleAliases[canonical]; ok && kingOnHome(pos, canonical) {
		canonical = alias
	}

	if len(canonical) != 4 && len(canonical) != 5 {
		return chess.Move{}, moveError(pos, text, errors.ErrInvalidMove, "expected 4 or 5 characters")
	}
	if _, ok := chess.ParseSquare(canonical[0:2]); !ok {
		return chess.Move{}, moveError(pos, text, errors.ErrInvalidMove, "bad source square")
	}
	if _, ok := chess.ParseSquare(canonical[2:4]); !ok {
		return chess.Move{}, moveError(pos, text, errors.ErrInvalidMove, "bad target square")
	}
	if len(canonical) == 5 && !strings.ContainsRune("qrbn", rune(canonical[4])) {
		return chess.Move{}, moveError(pos, text, errors.ErrInvalidMove, "bad promotion piece")
	}

	for _, m := range engine.LegalMoves(pos) {
		if FormatUCI(m) == canonical {
			return m, nil
		}
	}
	return chess.Move{}, moveError(pos, text, errors.ErrIllegalMove, "not legal in this position")
}

// kingOnHome reports whether the side to move's king stands on the source
// square of a castling alias.
func kingOnHome(pos chess.Position, text string) bool {
	from, _ := chess.ParseSquare(text[0:2])
	return from.Rank == chess.HomeRank(pos.ToMove) &&
		pos.Board.Get(from) == chess.MakeColouredPiece(pos.ToMove, chess.King)
}

// ParseLAN resolves verbose long algebraic text against the legal moves of
// pos. The leading piece letter is optional; when present it must match.
func ParseLAN(pos chess.Position, text string) (chess.Move, error) {
	s := strings.TrimSpace(text)

	switch s {
	case KingsideCastle, QueensideCastle:
		class := chess.KingsideCastle
		if s == QueensideCastle {
			class = chess.QueensideCastle
		}
		for _, m := range engine.LegalMoves(pos) {
			if m.Class == class {
				return m, nil
			}
		}
		return chess.Move{}, moveError(pos, text, errors.ErrIllegalMove, "castling not available")
	}

	piece := chess.Empty
	if s != "" && unicode.IsUpper(rune(s[0])) {
		piece = engine.ConvertFENCharToPiece(s[0])
		if piece == chess.Empty {
			return chess.Move{}, moveError(pos, text, errors.ErrInvalidMove, "unknown piece letter %q", s[0])
		}
		s = s[1:]
	}

	if len(s) != 5 && len(s) != 6 {
		return chess.Move{}, moveError(pos, text, errors.ErrInvalidMove, "malformed move")
	}
	if s[2] != '-' && s[2] != 'x' {
		return chess.Move{}, moveError(pos, text, errors.ErrInvalidMove, "expected - or x after the source square")
	}

	coord := s[0:2] + s[3:5]
	if len(s) == 6 {
		promo := engine.ConvertFENCharToPiece(s[5])
		if promo == chess.Empty || promo == chess.Pawn || promo == chess.King {
			return chess.Move{}, moveError(pos, text, errors.ErrInvalidMove, "bad promotion piece")
		}
		coord += strings.ToLower(s[5:6])
	}

	m, err := ParseUCI(pos, coord)
	if err != nil {
		cause := errors.ErrInvalidMove
		if errors.Is(err, errors.ErrIllegalMove) {
			cause = errors.ErrIllegalMove
		}
		return chess.Move{}, moveError(pos, text, cause, "resolving %s", coord)
	}
	if piece != chess.Empty && piece != m.Piece {
		return chess.Move{}, moveError(pos, text, errors.ErrIllegalMove, "no %s on %s", piece, m.From)
	}
	return m, nil
}

// LANToUCI translates verbose text to coordinate text in the context of pos.
func LANToUCI(pos chess.Position, text string) (string, error) {
	m, err := ParseLAN(pos, text)
	if err != nil {
		return "", err
	}
	return FormatUCI(m), nil
}

// UCIToLAN translates coordinate text to verbose text in the context of pos.
func UCIToLAN(pos chess.Position, text string) (string, error) {
	m, err := ParseUCI(pos, text)
	if err != nil {
		return "", err
	}
	return FormatLAN(m), nil
}

// FormatMoves renders a move list in coordinate notation.
func FormatMoves(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = FormatUCI(m)
	}
	return out
}

// FormatScore renders a white-perspective score for display. Mobility is
// shown in hundredths, like centipawns; the mate extremes are +M and -M.
func FormatScore(score int) string {
	switch score {
	case engine.MaxScore:
		return "+M"
	case engine.MinScore:
		return "-M"
	}
	return fmt.Sprintf("%+.2f", float64(score)/100)
}

func moveError(pos chess.Position, text string, err error, format string, args ...interface{}) error {
	return &errors.MoveError{
		Err:  errors.Wrapf(err, format, args...),
		Move: text,
		FEN:  engine.PositionToFEN(pos),
	}
}
