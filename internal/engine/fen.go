// Package engine provides chess move generation, move application and
// position evaluation over value-typed positions.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ConvertFENCharToPiece converts a FEN character to a piece type.
func ConvertFENCharToPiece(c byte) chess.Piece {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.Empty
	}
}

// ColouredPieceToFENLetter returns the FEN letter for a coloured piece.
func ColouredPieceToFENLetter(colouredPiece chess.Piece) byte {
	letter := colouredPiece.Letter()
	if chess.ExtractColour(colouredPiece) == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

func fenError(field, value, format string, args ...interface{}) error {
	return &errors.FieldError{
		Err:   errors.Wrapf(errors.ErrInvalidFEN, format, args...),
		Field: field,
		Value: value,
	}
}

// NewPositionFromFEN parses a FEN string. The halfmove and fullmove fields
// may be omitted; every other field is required.
func NewPositionFromFEN(fen string) (chess.Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return chess.Position{}, fenError("fen", fen, "expected 4 to 6 fields, got %d", len(parts))
	}

	pos := chess.NewPosition()

	if err := parsePiecePositions(&pos, parts[0]); err != nil {
		return chess.Position{}, err
	}
	if err := parseSideToMove(&pos, parts[1]); err != nil {
		return chess.Position{}, err
	}
	if err := parseCastlingRights(&pos, parts[2]); err != nil {
		return chess.Position{}, err
	}
	if err := parseEnPassant(&pos, parts[3]); err != nil {
		return chess.Position{}, err
	}
	if err := parseClocks(&pos, parts[4:]); err != nil {
		return chess.Position{}, err
	}
	return pos, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(pos *chess.Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return fenError("placement", placement, "expected 8 ranks, got %d", len(ranks))
	}

	kings := map[chess.Colour]int{}
	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				piece := ConvertFENCharToPiece(byte(c))
				if piece == chess.Empty {
					return fenError("placement", placement, "invalid piece character %q", c)
				}
				if file >= chess.BoardSize {
					return fenError("placement", placement, "rank %d overflows", rank+1)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				if piece == chess.King {
					kings[colour]++
				}
				pos.Board[rank][file] = chess.MakeColouredPiece(colour, piece)
				file++
			}
		}
		if file != chess.BoardSize {
			return fenError("placement", placement, "rank %d has %d files", rank+1, file)
		}
	}

	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return &errors.FieldError{
			Err:   errors.Wrapf(errors.ErrMissingKing, "white %d, black %d", kings[chess.White], kings[chess.Black]),
			Field: "placement",
			Value: placement,
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(pos *chess.Position, side string) error {
	switch side {
	case "w":
		pos.ToMove = chess.White
	case "b":
		pos.ToMove = chess.Black
	default:
		return fenError("side", side, "expected w or b")
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(pos *chess.Position, castling string) error {
	pos.Castling = chess.CastlingRights{}
	if castling == "-" {
		return nil
	}
	for _, c := range castling {
		switch c {
		case 'K':
			pos.Castling.WhiteKingside = true
		case 'Q':
			pos.Castling.WhiteQueenside = true
		case 'k':
			pos.Castling.BlackKingside = true
		case 'q':
			pos.Castling.BlackQueenside = true
		default:
			return fenError("castling", castling, "unexpected %q", c)
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(pos *chess.Position, target string) error {
	pos.EnPassantFile = chess.NoFile
	if target == "-" {
		return nil
	}
	sq, ok := chess.ParseSquare(target)
	if !ok {
		return fenError("en passant", target, "not a square")
	}
	wantRank := 5
	if pos.ToMove == chess.Black {
		wantRank = 2
	}
	if sq.Rank != wantRank {
		return fenError("en passant", target, "target must be on rank %d", wantRank+1)
	}
	pos.EnPassantFile = sq.File
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(pos *chess.Position, fields []string) error {
	if len(fields) >= 1 {
		n, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fenError("halfmove clock", fields[0], "not a number")
		}
		pos.HalfmoveClock = uint(n)
	}
	if len(fields) >= 2 {
		n, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil || n == 0 {
			return fenError("fullmove number", fields[1], "not a positive number")
		}
		pos.MoveNumber = uint(n)
	}
	return nil
}

// PositionToFEN converts a position to a FEN string.
func PositionToFEN(pos chess.Position) string {
	var sb strings.Builder

	writePiecePositions(&sb, &pos)
	sb.WriteByte(' ')
	writeSideToMove(&sb, &pos)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, &pos)
	sb.WriteByte(' ')
	writeEnPassant(&sb, &pos)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", pos.HalfmoveClock, pos.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, pos *chess.Position) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := pos.Board[rank][file]
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(ColouredPieceToFENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, pos *chess.Position) {
	if pos.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, pos *chess.Position) {
	c := pos.Castling
	if !c.Any() {
		sb.WriteByte('-')
		return
	}
	if c.WhiteKingside {
		sb.WriteByte('K')
	}
	if c.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if c.BlackKingside {
		sb.WriteByte('k')
	}
	if c.BlackQueenside {
		sb.WriteByte('q')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, pos *chess.Position) {
	if pos.EnPassantFile == chess.NoFile {
		sb.WriteByte('-')
		return
	}
	sb.WriteString(pos.EnPassantTarget().String())
}
