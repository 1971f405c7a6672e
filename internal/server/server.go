// Package server exposes the engine over HTTP and websockets.
package server

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/minimax-chess-go/internal/config"
)

// Server wires the REST and websocket routes to a session manager.
type Server struct {
	cfg      *config.Config
	app      *fiber.App
	sessions *SessionManager
}

// New builds a server from cfg. Nothing listens until Listen is called.
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: NewSessionManager(cfg),
		app: fiber.New(fiber.Config{
			AppName:               cfg.EngineName,
			DisableStartupMessage: true,
			ErrorHandler:          errorHandler,
		}),
	}
	s.routes()
	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.cfg.Logf(config.Normal, "listening on %s", s.cfg.Server.ListenAddr)
	return s.app.Listen(s.cfg.Server.ListenAddr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) routes() {
	logOut := s.cfg.LogFile
	if logOut == nil || s.cfg.Verbosity < config.Normal {
		logOut = io.Discard
	}

	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{Output: logOut}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.Server.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	api := s.app.Group("/api")
	api.Post("/bestmove", s.bestMove)

	sessions := api.Group("/sessions")
	sessions.Post("/", s.createSession)
	sessions.Get("/:id", s.getSession)
	sessions.Delete("/:id", s.deleteSession)
	sessions.Post("/:id/position", s.setPosition)
	sessions.Post("/:id/move", s.playMove)
	sessions.Post("/:id/go", s.goSession)

	s.app.Get("/ws/:id", s.upgrade, websocket.New(s.protocolLoop, websocket.Config{
		Origins:         s.origins(),
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))
}

func (s *Server) origins() []string {
	var out []string
	for _, o := range strings.Split(s.cfg.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
