package engine

import "github.com/lgbarn/minimax-chess-go/internal/chess"

// PerftEntry is the leaf count below one root move.
type PerftEntry struct {
	Move  chess.Move
	Nodes uint64
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(pos chess.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(pos)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(ApplyMove(pos, m), depth-1)
	}
	return nodes
}

// Divide returns the perft count below each root move, in generation order.
func Divide(pos chess.Position, depth int) []PerftEntry {
	if depth < 1 {
		return nil
	}
	moves := LegalMoves(pos)
	entries := make([]PerftEntry, 0, len(moves))
	for _, m := range moves {
		entries = append(entries, PerftEntry{Move: m, Nodes: Perft(ApplyMove(pos, m), depth-1)})
	}
	return entries
}
