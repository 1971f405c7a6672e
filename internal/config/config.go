// Package config provides configuration for the chess engine and its
// front ends.
package config

import (
	"fmt"
	"io"
	"os"
)

// Engine identity reported to protocol clients.
const (
	DefaultEngineName   = "chessbot"
	DefaultEngineAuthor = "minimax-chess-go authors"
)

// Verbosity levels for LogFile output.
const (
	Silent  = 0
	Normal  = 1
	Verbose = 2
)

// Config holds all program configuration.
type Config struct {
	Search SearchConfig
	Server ServerConfig

	Verbosity int // 0=nothing, 1=normal, 2=running commentary

	EngineName   string
	EngineAuthor string

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Search:       *NewSearchConfig(),
		Server:       *NewServerConfig(),
		Verbosity:    Normal,
		EngineName:   DefaultEngineName,
		EngineAuthor: DefaultEngineAuthor,
		OutputFile:   os.Stdout,
		LogFile:      os.Stderr,
	}
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if err := c.Search.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// SetOutput sets the writer protocol responses go to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the diagnostics writer.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Logf writes a diagnostic line when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}
