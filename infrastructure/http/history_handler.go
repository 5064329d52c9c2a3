package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"chatroom/domain"
)

type messageResponse struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	FileName  string    `json:"fileName,omitempty"`
	FileURL   string    `json:"fileUrl,omitempty"`
}

// handleHistory answers the time-window query. Without explicit bounds the
// window defaults to the configured trailing period ending now.
func (s *Server) handleHistory(c *fiber.Ctx) error {
	now := time.Now().UTC()
	from := now.Add(-s.historyWindow)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from timestamp"})
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to timestamp"})
		}
		to = parsed
	}

	events, err := s.chat.History(from, to)
	if err != nil {
		s.log.Error("history query failed", "error", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(lo.Map(events, func(evt domain.ChatEvent, _ int) messageResponse {
		resp := messageResponse{
			Sender:    evt.Sender,
			Content:   evt.Content,
			Timestamp: evt.CreatedAt,
		}
		if evt.Attachment != nil {
			resp.FileName = evt.Attachment.FileName
			resp.FileURL = evt.Attachment.FileURL
		}
		return resp
	}))
}
