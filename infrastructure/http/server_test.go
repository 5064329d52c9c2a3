package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chatroom/contract"
	"chatroom/domain"
	"chatroom/errors"
	"chatroom/runtime"
	"chatroom/services"
)

type stubChat struct {
	events []domain.ChatEvent
}

func (s *stubChat) Join(_ context.Context, _ string, _ contract.EventSink) (*runtime.Session, error) {
	return nil, errors.ErrDuplicateIdentifier
}
func (s *stubChat) Chat(_ context.Context, _ *runtime.Session, _ domain.Intent) error { return nil }
func (s *stubChat) Leave(_ context.Context, _ *runtime.Session)                       {}
func (s *stubChat) History(_, _ time.Time) ([]domain.ChatEvent, error)                { return s.events, nil }

type stubAttachments struct {
	ref domain.AttachmentRef
	err error
}

func (s *stubAttachments) Upload(_ context.Context, _ []byte, _, _ string) (domain.AttachmentRef, error) {
	return s.ref, s.err
}
func (s *stubAttachments) Fetch(_ string) ([]byte, string, error) {
	return nil, "", errors.ErrNotFound
}

type stubAuth struct {
	result services.LoginResult
	err    error
}

func (s *stubAuth) Login(_, _ string) (services.LoginResult, error) { return s.result, s.err }
func (s *stubAuth) Seed(_ map[string]string) error                  { return nil }

func newTestServer(chat services.IChatService, attachments services.IAttachmentService, auth services.IAuthService) *Server {
	return NewServer(slog.Default(), chat, attachments, auth, 16, 10<<20, time.Second, 7*24*time.Hour)
}

func multipartBody(t *testing.T, fileName, contentType string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadHandler_Success_Envelope(t *testing.T) {
	req := require.New(t)
	server := newTestServer(&stubChat{}, &stubAttachments{ref: domain.AttachmentRef{
		FileID:   "f-1",
		FileName: "cat.png",
		FileType: "image/png",
		FileURL:  "/api/files/f-1",
	}}, &stubAuth{})

	body, contentType := multipartBody(t, "cat.png", "image/png", []byte("bytes"))
	request := httptest.NewRequest("POST", "/api/files/upload", body)
	request.Header.Set("Content-Type", contentType)

	resp, err := server.App().Test(request)
	req.NoError(err)
	req.Equal(200, resp.StatusCode)

	var payload map[string]string
	req.NoError(json.NewDecoder(resp.Body).Decode(&payload))
	req.Equal("f-1", payload["fileId"])
	req.Equal("cat.png", payload["fileName"])
	req.Equal("image/png", payload["fileType"])
	req.Equal("/api/files/f-1", payload["fileUrl"])
}

func TestUploadHandler_Rejection_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"payload too large", errors.ErrPayloadTooLarge, 413},
		{"unsupported media type", errors.ErrUnsupportedMediaType, 415},
		{"empty payload", errors.ErrEmptyPayload, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			server := newTestServer(&stubChat{}, &stubAttachments{err: tt.err}, &stubAuth{})

			body, contentType := multipartBody(t, "file.bin", "application/octet-stream", []byte("bytes"))
			request := httptest.NewRequest("POST", "/api/files/upload", body)
			request.Header.Set("Content-Type", contentType)

			resp, err := server.App().Test(request)
			req.NoError(err)
			req.Equal(tt.wantStatus, resp.StatusCode)

			var payload map[string]string
			req.NoError(json.NewDecoder(resp.Body).Decode(&payload))
			req.NotEmpty(payload["error"])
		})
	}
}

func TestHistoryHandler_Maps_Events(t *testing.T) {
	req := require.New(t)
	at := time.Now().UTC().Truncate(time.Second)
	server := newTestServer(&stubChat{events: []domain.ChatEvent{
		{Type: domain.EventChat, Sender: "alice", Content: "hi", CreatedAt: at},
		{Type: domain.EventChat, Sender: "bob", CreatedAt: at.Add(time.Second), Attachment: &domain.AttachmentRef{
			FileName: "cat.png",
			FileURL:  "/api/files/f-1",
		}},
	}}, &stubAttachments{}, &stubAuth{})

	resp, err := server.App().Test(httptest.NewRequest("GET", "/api/messages", nil))
	req.NoError(err)
	req.Equal(200, resp.StatusCode)

	var payload []map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&payload))
	req.Len(payload, 2)
	req.Equal("alice", payload[0]["sender"])
	req.Equal("hi", payload[0]["content"])
	req.Equal("cat.png", payload[1]["fileName"])
	req.Equal("/api/files/f-1", payload[1]["fileUrl"])
}

func TestHistoryHandler_Rejects_Bad_Bounds(t *testing.T) {
	req := require.New(t)
	server := newTestServer(&stubChat{}, &stubAttachments{}, &stubAuth{})

	resp, err := server.App().Test(httptest.NewRequest("GET", "/api/messages?from=yesterday", nil))
	req.NoError(err)
	req.Equal(400, resp.StatusCode)
}

func TestLoginHandler_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		stub       *stubAuth
		body       string
		wantStatus int
	}{
		{"accepted", &stubAuth{result: services.LoginResult{Username: "alice", Token: "tok"}}, `{"username":"alice","password":"pw"}`, 200},
		{"missing credentials", &stubAuth{err: errors.ErrMissingCredentials}, `{"username":"","password":""}`, 400},
		{"rejected", &stubAuth{err: errors.ErrInvalidCredentials}, `{"username":"alice","password":"bad"}`, 401},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			server := newTestServer(&stubChat{}, &stubAttachments{}, tt.stub)

			request := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(tt.body))
			request.Header.Set("Content-Type", "application/json")

			resp, err := server.App().Test(request)
			req.NoError(err)
			req.Equal(tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestFileHandler_Unknown_Id(t *testing.T) {
	req := require.New(t)
	server := newTestServer(&stubChat{}, &stubAttachments{}, &stubAuth{})

	resp, err := server.App().Test(httptest.NewRequest("GET", "/api/files/ghost", nil))
	req.NoError(err)
	req.Equal(404, resp.StatusCode)
}
