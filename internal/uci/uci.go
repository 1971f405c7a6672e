package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
	"github.com/lgbarn/minimax-chess-go/internal/config"
	"github.com/lgbarn/minimax-chess-go/internal/engine"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
	"github.com/lgbarn/minimax-chess-go/internal/notation"
)

// MaxWorkers bounds the Workers option advertised to GUIs.
const MaxWorkers = 64

// Run reads commands from r until quit, end of input or cancellation and
// writes responses to w. Command errors are reported to the GUI and the
// loop continues.
func (s *Session) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := s.Execute(ctx, scanner.Text(), w)
		if err != nil {
			s.cfg.Logf(config.Normal, "%v", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute handles a single protocol line. It reports whether the line asked
// the engine to quit. Errors are also written to w as info strings.
func (s *Session) Execute(ctx context.Context, line string, w io.Writer) (bool, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false, nil
	}
	s.cfg.Logf(config.Verbose, "< %s", line)

	cmd, args := strings.ToLower(tokens[0]), tokens[1:]
	var err error
	switch cmd {
	case "uci":
		s.identify(w)
	case "isready":
		fmt.Fprintln(w, "readyok")
	case "ucinewgame":
		s.NewGame()
	case "position":
		err = s.position(args)
	case "go":
		err = s.goCommand(ctx, args, w)
	case "setoption":
		err = s.setOption(args)
	case "d":
		s.display(w)
	case "eval":
		s.eval(w)
	case "moves":
		s.moves(w)
	case "perft":
		err = s.perft(args, w)
	case "stop":
		// Searches run synchronously; there is nothing to stop.
	case "quit":
		return true, nil
	default:
		err = errors.ErrUnknownCommand
	}

	if err != nil {
		err = &errors.CommandError{Err: err, Command: cmd}
		fmt.Fprintf(w, "info string %v\n", err)
	}
	return false, err
}

func (s *Session) identify(w io.Writer) {
	sc := s.SearchConfig()
	fmt.Fprintf(w, "id name %s\n", s.cfg.EngineName)
	fmt.Fprintf(w, "id author %s\n", s.cfg.EngineAuthor)
	fmt.Fprintf(w, "option name Depth type spin default %d min 0 max %d\n", sc.Depth, config.MaxDepth)
	fmt.Fprintf(w, "option name Workers type spin default %d min 1 max %d\n", sc.Workers, MaxWorkers)
	fmt.Fprintln(w, "uciok")
}

// position handles "position startpos|fen <FEN> [moves ...]".
func (s *Session) position(args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrInvalidFEN, "missing startpos or fen")
	}

	var fen string
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		fen = strings.Join(rest[:end], " ")
		if fen == "" {
			return errors.Wrap(errors.ErrInvalidFEN, "empty fen")
		}
		rest = rest[end:]
	default:
		return errors.Wrapf(errors.ErrInvalidFEN, "unknown position kind %q", args[0])
	}

	var moves []string
	if len(rest) > 0 {
		if strings.ToLower(rest[0]) != "moves" {
			return errors.Wrapf(errors.ErrInvalidMove, "expected moves, got %q", rest[0])
		}
		moves = rest[1:]
	}
	return s.SetPosition(fen, moves)
}

// goCommand handles "go [depth N]". Time controls are accepted and ignored.
func (s *Session) goCommand(ctx context.Context, args []string, w io.Writer) error {
	depth := -1
	for i := 0; i < len(args); i++ {
		if strings.ToLower(args[i]) != "depth" || i+1 >= len(args) {
			continue
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil || n < 0 {
			return &errors.FieldError{Err: errors.ErrInvalidConfig, Field: "depth", Value: args[i+1]}
		}
		depth = n
		i++
	}

	pos := s.Position()
	res, err := s.Search(ctx, depth)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "info depth %d score %s nodes %d\n", res.Depth, formatScore(moverScore(res.Score, pos.ToMove)), res.Nodes)
	fmt.Fprintf(w, "bestmove %s\n", notation.FormatUCI(res.Move))
	return nil
}

// moverScore converts a white-perspective score to the side to move's.
func moverScore(score int, toMove chess.Colour) int {
	if toMove == chess.White {
		return score
	}
	switch score {
	case engine.MinScore:
		return engine.MaxScore
	case engine.MaxScore:
		return engine.MinScore
	}
	return -score
}

// formatScore renders a side-to-move score for an info line. The search
// does not track mate distance, so mates are reported as one move away.
func formatScore(score int) string {
	switch score {
	case engine.MaxScore:
		return "mate 1"
	case engine.MinScore:
		return "mate -1"
	}
	return "cp " + strconv.Itoa(score)
}

// setOption handles "setoption name <Name> value <N>".
func (s *Session) setOption(args []string) error {
	var name, value string
	for i := 0; i+1 < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "name":
			name = args[i+1]
		case "value":
			value = args[i+1]
		}
	}
	if name == "" || value == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "expected name <option> value <n>")
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return &errors.FieldError{Err: errors.ErrInvalidConfig, Field: name, Value: value}
	}
	return s.SetOption(name, n)
}

// display prints the board, the FEN and the game status.
func (s *Session) display(w io.Writer) {
	pos := s.Position()

	fmt.Fprintln(w, "  +-----------------+")
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		var sb strings.Builder
		for file := 0; file < chess.BoardSize; file++ {
			sb.WriteByte(' ')
			if piece := pos.Board[rank][file]; piece == chess.Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(engine.ColouredPieceToFENLetter(piece))
			}
		}
		fmt.Fprintf(w, "%d |%s |\n", rank+1, sb.String())
	}
	fmt.Fprintln(w, "  +-----------------+")
	fmt.Fprintln(w, "    a b c d e f g h")
	fmt.Fprintf(w, "Fen: %s\n", engine.PositionToFEN(pos))
	fmt.Fprintf(w, "Status: %s\n", engine.Status(pos))
}

func (s *Session) eval(w io.Writer) {
	score := engine.Evaluate(s.Position())
	fmt.Fprintf(w, "info string eval %d (%s)\n", score, notation.FormatScore(score))
}

func (s *Session) moves(w io.Writer) {
	moves := engine.LegalMoves(s.Position())
	fmt.Fprintf(w, "info string moves %s\n", strings.Join(notation.FormatMoves(moves), " "))
}

// perft handles "perft N", printing the count below each root move.
func (s *Session) perft(args []string, w io.Writer) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "perft needs a depth")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 || depth > config.MaxDepth {
		return &errors.FieldError{Err: errors.ErrInvalidConfig, Field: "depth", Value: args[0]}
	}

	var total uint64
	for _, e := range engine.Divide(s.Position(), depth) {
		fmt.Fprintf(w, "%s: %d\n", notation.FormatUCI(e.Move), e.Nodes)
		total += e.Nodes
	}
	fmt.Fprintf(w, "\nNodes searched: %d\n", total)
	return nil
}
