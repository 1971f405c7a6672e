package server

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/minimax-chess-go/internal/config"
	"github.com/lgbarn/minimax-chess-go/internal/engine"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
	"github.com/lgbarn/minimax-chess-go/internal/notation"
	"github.com/lgbarn/minimax-chess-go/internal/search"
	"github.com/lgbarn/minimax-chess-go/internal/uci"
)

// PositionRequest describes a position as a FEN plus moves played from it.
// An empty FEN means the initial position.
type PositionRequest struct {
	FEN   string   `json:"fen"`
	Moves []string `json:"moves"`
}

// BestMoveRequest asks for a one-off search.
type BestMoveRequest struct {
	PositionRequest
	Depth *int `json:"depth"`
}

// GoRequest asks a session to search and play.
type GoRequest struct {
	Depth *int `json:"depth"`
}

// MoveRequest plays one move in coordinate notation.
type MoveRequest struct {
	Move string `json:"move"`
}

// SearchResponse reports a search result. Score is from white's point of
// view; Move is "0000" when there was nothing to play.
type SearchResponse struct {
	Move  string `json:"move"`
	LAN   string `json:"lan"`
	Score int    `json:"score"`
	Eval  string `json:"eval"`
	Nodes uint64 `json:"nodes"`
	Depth int    `json:"depth"`
}

// SessionView is the externally visible state of a session.
type SessionView struct {
	ID         string   `json:"id"`
	FEN        string   `json:"fen"`
	Status     string   `json:"status"`
	ToMove     string   `json:"to_move"`
	LegalMoves []string `json:"legal_moves"`
	History    []string `json:"history"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) bestMove(c *fiber.Ctx) error {
	var req BestMoveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	sess := uci.NewSession(s.cfg)
	if err := sess.SetPosition(req.FEN, req.Moves); err != nil {
		return err
	}
	depth, err := depthOf(req.Depth)
	if err != nil {
		return err
	}
	res, err := sess.Search(c.UserContext(), depth)
	if err != nil {
		return err
	}
	return c.JSON(searchResponse(res))
}

func (s *Server) createSession(c *fiber.Ctx) error {
	id, sess, err := s.sessions.Create()
	if err != nil {
		return err
	}
	s.cfg.Logf(config.Verbose, "session %s opened", id)
	return c.Status(fiber.StatusCreated).JSON(sessionView(id, sess))
}

func (s *Server) getSession(c *fiber.Ctx) error {
	id := c.Params("id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(sessionView(id, sess))
}

func (s *Server) deleteSession(c *fiber.Ctx) error {
	if err := s.sessions.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) setPosition(c *fiber.Ctx) error {
	id := c.Params("id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	var req PositionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := sess.SetPosition(req.FEN, req.Moves); err != nil {
		return err
	}
	return c.JSON(sessionView(id, sess))
}

func (s *Server) playMove(c *fiber.Ctx) error {
	id := c.Params("id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	var req MoveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Move == "" {
		return &errors.MoveError{Err: errors.ErrInvalidMove}
	}
	if _, err := sess.Play(req.Move); err != nil {
		return err
	}
	return c.JSON(sessionView(id, sess))
}

func (s *Server) goSession(c *fiber.Ctx) error {
	sess, err := s.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	var req GoRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	depth, err := depthOf(req.Depth)
	if err != nil {
		return err
	}
	res, err := sess.Go(c.UserContext(), depth)
	if err != nil {
		return err
	}
	return c.JSON(searchResponse(res))
}

// parseBody decodes a JSON body. An empty body leaves v at its zero value.
func parseBody(c *fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body: "+err.Error())
	}
	return nil
}

// depthOf maps an absent depth to -1, which selects the configured one.
func depthOf(depth *int) (int, error) {
	if depth == nil {
		return -1, nil
	}
	if *depth < 0 {
		return 0, &errors.FieldError{Err: errors.ErrInvalidConfig, Field: "depth", Value: strconv.Itoa(*depth)}
	}
	return *depth, nil
}

func searchResponse(res search.Result) SearchResponse {
	out := SearchResponse{
		Move:  notation.FormatUCI(res.Move),
		Score: res.Score,
		Eval:  notation.FormatScore(res.Score),
		Nodes: res.Nodes,
		Depth: res.Depth,
	}
	if !res.Move.IsNull() {
		out.LAN = notation.FormatLAN(res.Move)
	}
	return out
}

func sessionView(id string, sess *uci.Session) SessionView {
	pos := sess.Position()
	history := sess.History()

	view := SessionView{
		ID:         id,
		FEN:        engine.PositionToFEN(pos),
		Status:     engine.Status(pos).String(),
		ToMove:     strings.ToLower(pos.ToMove.String()),
		LegalMoves: notation.FormatMoves(engine.LegalMoves(pos)),
		History:    make([]string, 0, len(history)),
	}
	for _, m := range history {
		view.History = append(view.History, notation.FormatUCI(m))
	}
	return view
}

// statusFor maps an engine error to an HTTP status.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, errors.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errors.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrInvalidFEN),
		errors.Is(err, errors.ErrMissingKing),
		errors.Is(err, errors.ErrInvalidMove),
		errors.Is(err, errors.ErrInvalidConfig):
		return fiber.StatusBadRequest
	case errors.Is(err, errors.ErrPositionChanged):
		return fiber.StatusConflict
	case errors.Is(err, errors.ErrSessionLimit):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func errorHandler(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(errorResponse{Error: err.Error()})
}
