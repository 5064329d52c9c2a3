package domain

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Intent is the client-to-server wire message on the streaming channel.
// The attachment fields are only meaningful on CHAT intents and must all
// come from a prior upload response.
type Intent struct {
	Type     EventType `json:"type" validate:"required,oneof=JOIN CHAT LEAVE"`
	Sender   string    `json:"sender" validate:"required"`
	Content  string    `json:"content"`
	FileID   string    `json:"fileId"`
	FileName string    `json:"fileName"`
	FileType string    `json:"fileType"`
	FileURL  string    `json:"fileUrl"`
}

func (i Intent) Validate() error {
	return validate.Struct(i)
}

// AttachmentRef returns the embedded reference, or nil when the intent
// carries none.
func (i Intent) AttachmentRef() *AttachmentRef {
	if i.FileID == "" {
		return nil
	}
	return &AttachmentRef{
		FileID:   i.FileID,
		FileName: i.FileName,
		FileType: i.FileType,
		FileURL:  i.FileURL,
	}
}
