package engine

import (
	"testing"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
)

// Reference positions with well known perft counts.
const (
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	endgameFEN   = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	mirrorFEN    = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	promotionFEN = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

func mustFEN(t testing.TB, fen string) chess.Position {
	t.Helper()
	pos, err := NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("NewPositionFromFEN(%q): %v", fen, err)
	}
	return pos
}

// coord renders a move as from-to squares plus a lowercase promotion letter.
func coord(m chess.Move) string {
	s := m.From.String() + m.To.String()
	if m.Promotion != chess.Empty {
		s += string(rune(m.Promotion.Letter() + 'a' - 'A'))
	}
	return s
}

func coords(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = coord(m)
	}
	return out
}

// findMove returns the legal move with the given coordinate text.
func findMove(t testing.TB, pos chess.Position, text string) chess.Move {
	t.Helper()
	for _, m := range LegalMoves(pos) {
		if coord(m) == text {
			return m
		}
	}
	t.Fatalf("%s is not legal in %s", text, PositionToFEN(pos))
	return chess.Move{}
}

// play applies a sequence of coordinate moves.
func play(t testing.TB, pos chess.Position, moves ...string) chess.Position {
	t.Helper()
	for _, text := range moves {
		pos = ApplyMove(pos, findMove(t, pos, text))
	}
	return pos
}
