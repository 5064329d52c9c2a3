package errors

import "fmt"

var (
	ErrDuplicateIdentifier  = fmt.Errorf("identifier already connected")
	ErrPayloadTooLarge      = fmt.Errorf("payload exceeds the upload ceiling")
	ErrUnsupportedMediaType = fmt.Errorf("media type not allowed")
	ErrEmptyPayload         = fmt.Errorf("file is empty")
	ErrMalformedIntent      = fmt.Errorf("malformed intent")
	ErrEmptyMessage         = fmt.Errorf("message has no content and no attachment")
	ErrSenderMismatch       = fmt.Errorf("sender does not match the session identifier")
	ErrSessionClosed        = fmt.Errorf("session is closed")
	ErrInvalidCredentials   = fmt.Errorf("invalid username or password")
	ErrMissingCredentials   = fmt.Errorf("username and password are required")
	ErrUserAlreadyExists    = fmt.Errorf("user already exists")
	ErrNotFound             = fmt.Errorf("not found")
)
