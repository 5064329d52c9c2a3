package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"chatroom/errors"
)

// handleUpload is the request/response half of the two-phase attachment
// protocol. It only stores and answers; the announcing CHAT event comes
// later over the stream, carrying the reference returned here.
func (s *Server) handleUpload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	file, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file"})
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), s.uploadTimeout)
	defer cancel()

	ref, err := s.attachments.Upload(ctx, data, header.Filename, header.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return s.uploadError(c, err)
	}

	return c.JSON(fiber.Map{
		"fileId":   ref.FileID,
		"fileName": ref.FileName,
		"fileType": ref.FileType,
		"fileUrl":  ref.FileURL,
	})
}

func (s *Server) uploadError(c *fiber.Ctx, err error) error {
	switch err {
	case errors.ErrEmptyPayload:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.ErrPayloadTooLarge:
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": err.Error()})
	case errors.ErrUnsupportedMediaType:
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	default:
		s.log.Error("upload failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store file"})
	}
}

// handleFile dereferences an attachment URL back into the stored bytes.
func (s *Server) handleFile(c *fiber.Ctx) error {
	data, contentType, err := s.attachments.Fetch(c.Params("fileId"))
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, "inline")
	return c.Send(data)
}
