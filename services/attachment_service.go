//go:generate go run go.uber.org/mock/mockgen -source=attachment_service.go -destination=../mocks/mock_attachment_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"chatroom/domain"
	"chatroom/errors"
	"chatroom/storage"
)

// DefaultMaxUploadBytes is the upload ceiling when none is configured.
const DefaultMaxUploadBytes = 10 << 20 // 10 MiB

// Accepted attachments. A candidate passes if EITHER its declared MIME type
// or its file extension matches: clients routinely send a correct file under
// a generic application/octet-stream, and vice versa.
var (
	allowedTypes = map[string]struct{}{
		"image/jpeg":      {},
		"image/jpg":       {},
		"image/png":       {},
		"application/pdf": {},
	}
	allowedExtensions = map[string]struct{}{
		".jpg":  {},
		".jpeg": {},
		".png":  {},
		".pdf":  {},
	}
)

type IAttachmentService interface {
	Upload(ctx context.Context, data []byte, fileName, declaredType string) (domain.AttachmentRef, error)
	Fetch(fileID string) ([]byte, string, error)
}

// AttachmentService is the gateway for the out-of-band upload path. It
// validates, persists via the content store and mints an AttachmentRef.
// It never broadcasts: announcing the file is the caller's job through a
// subsequent CHAT intent carrying the returned reference.
type AttachmentService struct {
	store    storage.IBlobStore
	maxBytes int64
	log      *slog.Logger
}

func NewAttachmentService(log *slog.Logger, store storage.IBlobStore, maxBytes int64) *AttachmentService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &AttachmentService{store: store, maxBytes: maxBytes, log: log}
}

// Upload validates size first, then media type, then persists. A rejected
// upload leaves no trace: no blob, no reference, no event.
func (s *AttachmentService) Upload(ctx context.Context, data []byte, fileName, declaredType string) (domain.AttachmentRef, error) {
	if len(data) == 0 {
		return domain.AttachmentRef{}, errors.ErrEmptyPayload
	}
	if int64(len(data)) > s.maxBytes {
		return domain.AttachmentRef{}, errors.ErrPayloadTooLarge
	}
	if !typeAllowed(fileName, declaredType) {
		return domain.AttachmentRef{}, errors.ErrUnsupportedMediaType
	}

	// A generic declared type gets replaced by what the bytes actually look
	// like, so the reference advertises something renderable. Sniffing never
	// rejects; acceptance was decided above.
	fileType := normalizeType(declaredType)
	if fileType == "" || fileType == "application/octet-stream" {
		fileType = mimetype.Detect(data).String()
	}

	id, err := s.store.Put(ctx, data)
	if err != nil {
		return domain.AttachmentRef{}, err
	}

	ref := domain.AttachmentRef{
		FileID:   id,
		FileName: fileName,
		FileType: fileType,
		FileURL:  s.store.URLFor(id),
	}
	s.log.Info("attachment stored", "file_id", id, "file_name", fileName, "file_type", fileType, "size", len(data))
	return ref, nil
}

// Fetch returns the stored bytes and a content type sniffed from them. The
// content store keeps opaque bytes only, so the type is re-detected on the
// way out.
func (s *AttachmentService) Fetch(fileID string) ([]byte, string, error) {
	data, err := s.store.Get(fileID)
	if err != nil {
		return nil, "", err
	}
	return data, mimetype.Detect(data).String(), nil
}

func typeAllowed(fileName, declaredType string) bool {
	if _, ok := allowedTypes[normalizeType(declaredType)]; ok {
		return true
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	_, ok := allowedExtensions[ext]
	return ok
}

// normalizeType strips parameters and case from a declared MIME type.
// Unparseable declarations come back empty and fall through to the
// extension check.
func normalizeType(declared string) string {
	if declared == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}
