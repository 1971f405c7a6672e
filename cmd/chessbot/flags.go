// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/minimax-chess-go/internal/config"
)

var (
	// Search options
	depth   = flag.Int("depth", config.DefaultDepth, "Search depth in plies")
	workers = flag.Int("workers", 1, "Number of goroutines searching root moves")

	// One-shot analysis
	fenFlag = flag.String("fen", "", "Print the best move for this position and exit (\"startpos\" for the initial position)")

	// Server options
	serveAddr   = flag.String("serve", "", "Serve HTTP and websocket on this address instead of reading stdin")
	origins     = flag.String("origins", "*", "Comma separated CORS origins for the server")
	maxSessions = flag.Int("maxsessions", 1000, "Maximum open server sessions (0 = unlimited)")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbose   = flag.Bool("v", false, "Verbose diagnostics")
	quiet     = flag.Bool("s", false, "Silent mode (no diagnostics)")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applySearchFlags(cfg)
	applyServerFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = config.Silent
	case *verbose:
		cfg.Verbosity = config.Verbose
	}
}

// applySearchFlags configures the search.
func applySearchFlags(cfg *config.Config) {
	cfg.Search.Depth = *depth
	cfg.Search.Workers = *workers
}

// applyServerFlags configures the HTTP front end.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.ListenAddr = *serveAddr
	cfg.Server.AllowedOrigins = *origins
	cfg.Server.MaxSessions = *maxSessions
}
