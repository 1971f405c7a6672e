package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/minimax-chess-go/internal/errors"
)

// ServerConfig holds settings for the HTTP and websocket front end.
type ServerConfig struct {
	// ListenAddr is the address to serve on; empty runs the line protocol
	// on standard input instead.
	ListenAddr string

	// AllowedOrigins is the comma separated CORS origin list.
	AllowedOrigins string

	// MaxSessions caps concurrently open sessions. Zero means no cap.
	MaxSessions int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		AllowedOrigins: "*",
		MaxSessions:    1000,
	}
}

// Enabled reports whether the server front end was requested.
func (s *ServerConfig) Enabled() bool {
	return s.ListenAddr != ""
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.MaxSessions < 0 {
		return fmt.Errorf("max sessions %d < 0: %w", s.MaxSessions, errors.ErrInvalidConfig)
	}
	if s.Enabled() && strings.TrimSpace(s.AllowedOrigins) == "" {
		return fmt.Errorf("empty CORS origin list: %w", errors.ErrInvalidConfig)
	}
	return nil
}
