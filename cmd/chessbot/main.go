// chessbot is a minimax chess engine speaking a UCI-style line protocol on
// standard input, or serving the same engine over HTTP and websockets.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/minimax-chess-go/internal/config"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
	"github.com/lgbarn/minimax-chess-go/internal/notation"
	"github.com/lgbarn/minimax-chess-go/internal/server"
	"github.com/lgbarn/minimax-chess-go/internal/uci"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessbot version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "chessbot: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case *fenFlag != "":
		err = analyse(ctx, cfg, *fenFlag, cfg.OutputFile)
	case cfg.Server.Enabled():
		err = serve(ctx, cfg)
	default:
		err = uci.NewSession(cfg).Run(ctx, os.Stdin, cfg.OutputFile)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "chessbot: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessbot [options]\n\n")
	fmt.Fprintf(os.Stderr, "Reads protocol commands from standard input unless -serve or -fen is given.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

// analyse searches one position at the configured depth and prints the
// result.
func analyse(ctx context.Context, cfg *config.Config, fen string, w io.Writer) error {
	sess := uci.NewSession(cfg)
	if err := sess.SetPosition(fen, nil); err != nil {
		return err
	}
	res, err := sess.Search(ctx, -1)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "bestmove %s score %s nodes %d\n", notation.FormatUCI(res.Move), notation.FormatScore(res.Score), res.Nodes)
	return nil
}

// serve runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config) error {
	srv := server.New(cfg)
	errc := make(chan error, 1)
	go func() { errc <- srv.Listen() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		cfg.Logf(config.Normal, "shutting down")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		return <-errc
	}
}
