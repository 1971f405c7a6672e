// Package uci implements the line protocol spoken between the engine and a
// chess GUI, on top of a Session that owns the current position.
package uci

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/lgbarn/minimax-chess-go/internal/chess"
	"github.com/lgbarn/minimax-chess-go/internal/config"
	"github.com/lgbarn/minimax-chess-go/internal/engine"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
	"github.com/lgbarn/minimax-chess-go/internal/notation"
	"github.com/lgbarn/minimax-chess-go/internal/search"
)

// Session holds one game: the current position, the moves played since it
// was installed and a searcher. It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	cfg     *config.Config
	start   chess.Position
	pos     chess.Position
	history []chess.Move
}

// NewSession creates a session at the initial position. The session works
// on its own copy of cfg so that option changes stay local to it.
func NewSession(cfg *config.Config) *Session {
	own := *cfg
	s := &Session{cfg: &own}
	s.reset(chess.NewInitialPosition())
	return s
}

func (s *Session) reset(pos chess.Position) {
	s.start = pos
	s.pos = pos
	s.history = nil
}

// SearchConfig returns the session's current search settings.
func (s *Session) SearchConfig() config.SearchConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Search
}

// Position returns the current position.
func (s *Session) Position() chess.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// History returns the moves played since the position was installed.
func (s *Session) History() []chess.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chess.Move(nil), s.history...)
}

// NewGame resets the session to the initial position.
func (s *Session) NewGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(chess.NewInitialPosition())
}

// SetPosition installs the position described by fen, or the initial
// position when fen is empty or "startpos", then plays moves in coordinate
// notation. On any error the session is left unchanged.
func (s *Session) SetPosition(fen string, moves []string) error {
	pos := chess.NewInitialPosition()
	if fen = strings.TrimSpace(fen); fen != "" && fen != "startpos" {
		parsed, err := engine.NewPositionFromFEN(fen)
		if err != nil {
			return err
		}
		pos = parsed
	}

	start := pos
	history := make([]chess.Move, 0, len(moves))
	for _, text := range moves {
		m, err := notation.ParseUCI(pos, text)
		if err != nil {
			return err
		}
		pos = engine.ApplyMove(pos, m)
		history = append(history, m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.start, s.pos, s.history = start, pos, history
	return nil
}

// Play applies one move in coordinate notation to the current position.
func (s *Session) Play(text string) (chess.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := notation.ParseUCI(s.pos, text)
	if err != nil {
		return chess.Move{}, err
	}
	s.pos = engine.ApplyMove(s.pos, m)
	s.history = append(s.history, m)
	return m, nil
}

// Search finds the best move in the current position at the given depth,
// or at the configured depth when depth is negative. The position is not
// changed.
func (s *Session) Search(ctx context.Context, depth int) (search.Result, error) {
	_, res, err := s.search(ctx, depth)
	return res, err
}

// search returns the searched position along with the result.
func (s *Session) search(ctx context.Context, depth int) (chess.Position, search.Result, error) {
	s.mu.Lock()
	pos := s.pos
	cfg := *s.cfg
	s.mu.Unlock()

	searcher := search.NewSearcher(&cfg)
	var (
		res search.Result
		err error
	)
	if depth < 0 {
		res, err = searcher.Search(ctx, pos)
	} else {
		res, err = searcher.SearchDepth(ctx, pos, depth)
	}
	return pos, res, err
}

// Go searches like Search and then plays the chosen move, if any. If the
// position was changed while searching, nothing is played and
// ErrPositionChanged is returned.
func (s *Session) Go(ctx context.Context, depth int) (search.Result, error) {
	searched, res, err := s.search(ctx, depth)
	if err != nil || res.Move.IsNull() {
		return res, err
	}
	if err := s.commit(searched, res.Move); err != nil {
		return search.Result{}, err
	}
	return res, nil
}

// commit plays m, which was chosen for searched, on the current position.
func (s *Session) commit(searched chess.Position, m chess.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos != searched {
		return errors.Wrapf(errors.ErrPositionChanged, "discarding %s", notation.FormatUCI(m))
	}
	next, err := engine.MakeMove(s.pos, m)
	if err != nil {
		return errors.Wrap(err, "committing search result")
	}
	s.pos = next
	s.history = append(s.history, m)
	return nil
}

// SetOption changes a numeric engine option by name. Names are matched
// case-insensitively; the new configuration must validate.
func (s *Session) SetOption(name string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg.Search
	switch strings.ToLower(name) {
	case "depth":
		next.Depth = value
	case "workers", "threads":
		if value > MaxWorkers {
			return &errors.FieldError{Err: errors.ErrInvalidConfig, Field: name, Value: strconv.Itoa(value)}
		}
		next.Workers = value
	default:
		return &errors.FieldError{Err: errors.ErrInvalidConfig, Field: "option", Value: name}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.cfg.Search = next
	return nil
}
