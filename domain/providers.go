package domain

import "time"

// UploadRequest asks the object store for a presigned upload slot.
type UploadRequest struct {
	Key       string
	MimeType  string
	Size      int64
	ExpiresIn time.Duration
}

// PresignedUpload is where the client uploads and where the file will be served from.
type PresignedUpload struct {
	UploadURL string    `json:"uploadUrl"`
	FileURL   string    `json:"fileUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PushMessage is the payload delivered to one device.
type PushMessage struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}
