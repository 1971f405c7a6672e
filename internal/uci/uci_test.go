package uci

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
	"github.com/lgbarn/minimax-chess-go/internal/config"
	"github.com/lgbarn/minimax-chess-go/internal/engine"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
	"github.com/lgbarn/minimax-chess-go/internal/notation"
	"github.com/lgbarn/minimax-chess-go/internal/testutil"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	cfg := config.NewConfigBuilder().WithDepth(1).WithLog(&bytes.Buffer{}).Build()
	return NewSession(cfg)
}

// exec runs one line and returns the output lines.
func exec(t *testing.T, s *Session, line string) ([]string, error) {
	t.Helper()
	var out bytes.Buffer
	_, err := s.Execute(context.Background(), line, &out)
	return testutil.Lines(out.String()), err
}

func TestExecute_Handshake(t *testing.T) {
	s := newSession(t)

	lines, err := exec(t, s, "uci")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, lines, []string{
		"id name " + config.DefaultEngineName,
		"id author " + config.DefaultEngineAuthor,
		"option name Depth type spin default 1 min 0 max 8",
		"option name Workers type spin default 1 min 1 max 64",
		"uciok",
	})

	lines, err = exec(t, s, "isready")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, lines, []string{"readyok"})
}

func TestExecute_Position(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "startpos",
			line: "position startpos",
			want: engine.InitialFEN,
		},
		{
			name: "startpos with moves",
			line: "position startpos moves e2e4 e7e5 g1f3",
			want: "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
		},
		{
			name: "fen",
			line: "position fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1",
			want: "4k3/8/8/8/8/8/8/4K2R w K - 0 1",
		},
		{
			name: "fen with castling alias",
			line: "position fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1 moves e1h1",
			want: "4k3/8/8/8/8/8/8/5RK1 b - - 1 1",
		},
		{
			name: "four field fen",
			line: "position fen 4k3/8/8/8/8/8/8/4K2R w K - moves e1f1",
			want: "4k3/8/8/8/8/8/8/5K1R b - - 1 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			lines, err := exec(t, s, tt.line)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, len(lines), 0)
			testutil.AssertEqual(t, engine.PositionToFEN(s.Position()), tt.want)
		})
	}
}

func TestExecute_PositionErrorsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		target error
	}{
		{"no arguments", "position", errors.ErrInvalidFEN},
		{"unknown kind", "position somewhere", errors.ErrInvalidFEN},
		{"empty fen", "position fen moves e2e4", errors.ErrInvalidFEN},
		{"bad fen", "position fen 8/8/8 w - - 0 1", errors.ErrInvalidFEN},
		{"missing king", "position fen 8/8/8/8/8/8/8/4K3 w - - 0 1", errors.ErrMissingKing},
		{"illegal move", "position startpos moves e2e4 e2e4", errors.ErrIllegalMove},
		{"bad move text", "position startpos moves e2e4 zz", errors.ErrInvalidMove},
		{"junk after fen", "position startpos e2e4", errors.ErrInvalidMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			_, err := exec(t, s, "position startpos moves d2d4")
			testutil.AssertNoError(t, err)
			before := s.Position()

			lines, err := exec(t, s, tt.line)
			testutil.AssertErrorIs(t, err, tt.target)
			testutil.AssertEqual(t, len(lines), 1)
			testutil.AssertContains(t, lines[0], "info string position:")
			testutil.AssertEqual(t, s.Position(), before)
			testutil.AssertEqual(t, len(s.History()), 1)
		})
	}
}

func TestExecute_Go(t *testing.T) {
	s := newSession(t)
	_, err := exec(t, s, "position startpos moves e2e4")
	testutil.AssertNoError(t, err)
	before := s.Position()

	want, err := s.Search(context.Background(), 2)
	testutil.AssertNoError(t, err)

	lines, err := exec(t, s, "go depth 2 wtime 1000 btime 1000")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(lines), 2)
	testutil.AssertTrue(t, strings.HasPrefix(lines[0], "info depth 2 score cp "), lines[0])
	testutil.AssertEqual(t, lines[1], "bestmove "+notation.FormatUCI(want.Move))
	testutil.AssertEqual(t, s.Position(), before, "go must not change the position")
}

func TestExecute_GoUsesConfiguredDepth(t *testing.T) {
	s := newSession(t)
	lines, err := exec(t, s, "go")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, strings.HasPrefix(lines[0], "info depth 1 "), lines[0])
	testutil.AssertTrue(t, strings.HasSuffix(lines[0], " nodes 21"), lines[0])
}

func TestExecute_GoWithoutMoves(t *testing.T) {
	s := newSession(t)
	_, err := exec(t, s, "position fen rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	testutil.AssertNoError(t, err)

	lines, err := exec(t, s, "go depth 2")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(lines), 2)
	testutil.AssertTrue(t, strings.HasPrefix(lines[0], "info depth 2 score mate -1 "), lines[0])
	testutil.AssertEqual(t, lines[1], "bestmove 0000")
}

func TestExecute_GoReportsMate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		best string
	}{
		{"white mates", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8"},
		{"black mates", "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1", "a8a1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			_, err := exec(t, s, "position fen "+tt.fen)
			testutil.AssertNoError(t, err)

			lines, err := exec(t, s, "go depth 1")
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, len(lines), 2)
			testutil.AssertTrue(t, strings.HasPrefix(lines[0], "info depth 1 score mate 1 "), lines[0])
			testutil.AssertEqual(t, lines[1], "bestmove "+tt.best)
		})
	}
}

func TestExecute_GoBadDepth(t *testing.T) {
	s := newSession(t)
	for _, line := range []string{"go depth x", "go depth 99", "go depth -1"} {
		_, err := exec(t, s, line)
		testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig, line)
	}
}

func TestExecute_SetOption(t *testing.T) {
	s := newSession(t)

	_, err := exec(t, s, "setoption name Depth value 2")
	testutil.AssertNoError(t, err)
	_, err = exec(t, s, "setoption name Workers value 4")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, s.SearchConfig(), config.SearchConfig{Depth: 2, Workers: 4})

	for _, line := range []string{
		"setoption name Depth value 99",
		"setoption name Workers value 0",
		"setoption name Workers value 1000",
		"setoption name Depth value deep",
		"setoption name Hash value 16",
		"setoption name Depth",
	} {
		_, err := exec(t, s, line)
		testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig, line)
	}
	testutil.AssertEqual(t, s.SearchConfig(), config.SearchConfig{Depth: 2, Workers: 4})
}

func TestSession_OptionsAreLocal(t *testing.T) {
	cfg := config.NewConfigBuilder().WithLog(&bytes.Buffer{}).Build()
	a, b := NewSession(cfg), NewSession(cfg)

	testutil.AssertNoError(t, a.SetOption("depth", 5))
	testutil.AssertEqual(t, a.SearchConfig().Depth, 5)
	testutil.AssertEqual(t, b.SearchConfig().Depth, config.DefaultDepth)
	testutil.AssertEqual(t, cfg.Search.Depth, config.DefaultDepth)
}

func TestExecute_Perft(t *testing.T) {
	s := newSession(t)
	lines, err := exec(t, s, "perft 2")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(lines), 21)
	testutil.AssertEqual(t, lines[0], "b1a3: 20")
	testutil.AssertEqual(t, lines[20], "Nodes searched: 400")

	_, err = exec(t, s, "perft")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
	_, err = exec(t, s, "perft 0")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestExecute_Display(t *testing.T) {
	s := newSession(t)
	lines, err := exec(t, s, "d")
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, lines[1], "8 | r n b q k b n r |")
	testutil.AssertEqual(t, lines[8], "1 | R N B Q K B N R |")
	testutil.AssertContains(t, strings.Join(lines, "\n"), "Fen: "+engine.InitialFEN)
	testutil.AssertEqual(t, lines[len(lines)-1], "Status: ongoing")
}

func TestExecute_EvalAndMoves(t *testing.T) {
	s := newSession(t)

	lines, err := exec(t, s, "eval")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, lines, []string{"info string eval 0 (+0.00)"})

	lines, err = exec(t, s, "moves")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(lines), 1)
	fields := strings.Fields(strings.TrimPrefix(lines[0], "info string moves "))
	testutil.AssertEqual(t, len(fields), 20)
}

func TestExecute_Unknown(t *testing.T) {
	s := newSession(t)
	lines, err := exec(t, s, "xyzzy now")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownCommand)
	testutil.AssertEqual(t, lines, []string{"info string xyzzy: unknown command"})

	var cmdErr *errors.CommandError
	testutil.AssertTrue(t, errors.As(err, &cmdErr))
	testutil.AssertEqual(t, cmdErr.Command, "xyzzy")
}

func TestExecute_BlankAndQuit(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer

	quit, err := s.Execute(context.Background(), "   ", &out)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, quit)

	quit, err = s.Execute(context.Background(), "stop", &out)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, quit)

	quit, err = s.Execute(context.Background(), "quit", &out)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, quit)
	testutil.AssertEqual(t, out.Len(), 0)
}

func TestRun(t *testing.T) {
	s := newSession(t)
	input := strings.Join([]string{
		"uci",
		"isready",
		"bogus",
		"ucinewgame",
		"position startpos moves e2e4",
		"go depth 1",
		"quit",
		"isready",
	}, "\n")

	var out bytes.Buffer
	err := s.Run(context.Background(), strings.NewReader(input), &out)
	testutil.AssertNoError(t, err)

	lines := testutil.Lines(out.String())
	readyCount := 0
	for _, line := range lines {
		if line == "readyok" {
			readyCount++
		}
	}
	testutil.AssertEqual(t, readyCount, 1, "commands after quit must not run")
	testutil.AssertTrue(t, strings.HasPrefix(lines[len(lines)-1], "bestmove "), lines[len(lines)-1])
	testutil.AssertContains(t, out.String(), "info string bogus: unknown command")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newSession(t).Run(ctx, strings.NewReader("isready\n"), &bytes.Buffer{})
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestSession_Go(t *testing.T) {
	s := newSession(t)

	res, err := s.Go(context.Background(), 1)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, res.Move.IsNull())
	testutil.AssertEqual(t, s.History(), []chess.Move{res.Move})
	testutil.AssertEqual(t, s.Position(), engine.ApplyMove(chess.NewInitialPosition(), res.Move))
}

func TestSession_CommitRejectsChangedPosition(t *testing.T) {
	s := newSession(t)
	searched := s.Position()
	m, err := notation.ParseUCI(searched, "g1f3")
	testutil.AssertNoError(t, err)

	// The position moves on between searching and committing; g1f3 would
	// still be legal for white after the replacement.
	testutil.AssertNoError(t, s.SetPosition("", []string{"e2e4", "e7e5"}))
	before := s.Position()

	err = s.commit(searched, m)
	testutil.AssertErrorIs(t, err, errors.ErrPositionChanged)
	testutil.AssertEqual(t, s.Position(), before)
	testutil.AssertEqual(t, len(s.History()), 2)

	testutil.AssertNoError(t, s.commit(before, m))
	testutil.AssertEqual(t, len(s.History()), 3)
}

func TestSession_Play(t *testing.T) {
	s := newSession(t)

	m, err := s.Play("g1f3")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m.Piece, chess.Knight)

	_, err = s.Play("g1f3")
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	testutil.AssertEqual(t, len(s.History()), 1)

	s.NewGame()
	testutil.AssertEqual(t, s.Position(), chess.NewInitialPosition())
	testutil.AssertEqual(t, len(s.History()), 0)
}

func TestFormatScore(t *testing.T) {
	testutil.AssertEqual(t, formatScore(12), "cp 12")
	testutil.AssertEqual(t, formatScore(-3), "cp -3")
	testutil.AssertEqual(t, formatScore(engine.MaxScore), "mate 1")
	testutil.AssertEqual(t, formatScore(engine.MinScore), "mate -1")
}

func TestMoverScore(t *testing.T) {
	testutil.AssertEqual(t, moverScore(7, chess.White), 7)
	testutil.AssertEqual(t, moverScore(7, chess.Black), -7)
	testutil.AssertEqual(t, moverScore(engine.MinScore, chess.Black), engine.MaxScore)
	testutil.AssertEqual(t, moverScore(engine.MaxScore, chess.Black), engine.MinScore)
}
