package config

import (
	"fmt"

	"github.com/lgbarn/minimax-chess-go/internal/errors"
)

// Search limits.
const (
	DefaultDepth = 3
	MaxDepth     = 8
)

// SearchConfig holds settings for the minimax search.
type SearchConfig struct {
	// Depth is the number of plies searched below the root.
	Depth int

	// Workers is the number of goroutines searching root moves. One
	// searches sequentially.
	Workers int
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		Depth:   DefaultDepth,
		Workers: 1,
	}
}

// Validate checks that the search configuration is valid.
func (s *SearchConfig) Validate() error {
	if s.Depth < 0 || s.Depth > MaxDepth {
		return fmt.Errorf("depth %d outside 0..%d: %w", s.Depth, MaxDepth, errors.ErrInvalidConfig)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers %d < 1: %w", s.Workers, errors.ErrInvalidConfig)
	}
	return nil
}
