package http

import (
	"time"

	"chatroom/domain"
)

// wireEvent is the server-to-client shape on the shared topic, mirroring the
// fields clients submitted plus the server-assigned timestamp.
type wireEvent struct {
	Type      string    `json:"type"`
	Sender    string    `json:"sender,omitempty"`
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	FileID    string    `json:"fileId,omitempty"`
	FileName  string    `json:"fileName,omitempty"`
	FileType  string    `json:"fileType,omitempty"`
	FileURL   string    `json:"fileUrl,omitempty"`
}

// wireUserList carries the presence snapshot on membership changes.
type wireUserList struct {
	Type  string   `json:"type"`
	Users []string `json:"users"`
}

type wireError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func toWireEvent(e domain.Event) any {
	switch evt := e.(type) {
	case domain.ChatEvent:
		w := wireEvent{
			Type:      string(evt.Type),
			Sender:    evt.Sender,
			Content:   evt.Content,
			Timestamp: evt.CreatedAt,
		}
		if evt.Attachment != nil {
			w.FileID = evt.Attachment.FileID
			w.FileName = evt.Attachment.FileName
			w.FileType = evt.Attachment.FileType
			w.FileURL = evt.Attachment.FileURL
		}
		return w
	case domain.PresenceSnapshot:
		users := evt.Users
		if users == nil {
			users = []string{}
		}
		return wireUserList{Type: string(domain.EventUserList), Users: users}
	default:
		return wireError{Type: "ERROR", Error: "unknown event"}
	}
}
