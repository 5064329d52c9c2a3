// Package http exposes the two delivery paths at the system boundary: the
// streaming subscribe/publish surface over WebSocket and the synchronous
// request/response surfaces for uploads, history and login.
package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"chatroom/services"
)

type Server struct {
	app                  *fiber.App
	log                  *slog.Logger
	chat                 services.IChatService
	attachments          services.IAttachmentService
	auth                 services.IAuthService
	connectionBufferSize int
	uploadTimeout        time.Duration
	historyWindow        time.Duration
}

func NewServer(log *slog.Logger, chat services.IChatService, attachments services.IAttachmentService,
	auth services.IAuthService, connectionBufferSize int, maxUploadBytes int64,
	uploadTimeout, historyWindow time.Duration) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			// Leave headroom above the gateway ceiling so an oversized
			// payload reaches the gateway's own size check instead of
			// being cut off mid-parse.
			BodyLimit: int(maxUploadBytes) + 1<<20,
		}),
		log:                  log,
		chat:                 chat,
		attachments:          attachments,
		auth:                 auth,
		connectionBufferSize: connectionBufferSize,
		uploadTimeout:        uploadTimeout,
		historyWindow:        historyWindow,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws", websocket.New(s.handleSocket))

	api := s.app.Group("/api")
	api.Post("/auth/login", s.handleLogin)
	api.Post("/files/upload", s.handleUpload)
	api.Get("/files/:fileId", s.handleFile)
	api.Get("/messages", s.handleHistory)
}

func (s *Server) Listen(address string) error {
	return s.app.Listen(address)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App is exposed for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}
