package models

// Message roles. The remote API only knows these two.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ImageData holds inline image bytes as base64, the way the API ships them.
type ImageData struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}

// VideoData is a local resource handle for a downloaded video. FilePath
// points at a temp file that only exists for the current process; it is
// never persisted.
type VideoData struct {
	FilePath string `json:"filePath"`
	MimeType string `json:"mimeType"`
}

// Message is one turn of the conversation. Every message has a role and a
// (possibly empty) text. ImageData and VideoData are optional; in practice
// at most one of them is set.
type Message struct {
	ID        string     `json:"id,omitempty"`
	Role      string     `json:"role"`
	Text      string     `json:"text"`
	ImageData *ImageData `json:"image_data,omitempty"`
	VideoData *VideoData `json:"video_data,omitempty"`
}

// PersistedMessage is the persistable shape of a Message. Video resource
// handles do not survive a reload, so there is no video field at all.
type PersistedMessage struct {
	Role      string     `json:"role"`
	Text      string     `json:"text"`
	ImageData *ImageData `json:"image_data,omitempty"`
}

// ToPersisted maps a Message to its persistable shape, dropping VideoData.
func (m Message) ToPersisted() PersistedMessage {
	return PersistedMessage{
		Role:      m.Role,
		Text:      m.Text,
		ImageData: m.ImageData,
	}
}

// ToMessage rebuilds an in-memory Message from its persisted shape.
func (p PersistedMessage) ToMessage() Message {
	return Message{
		Role:      p.Role,
		Text:      p.Text,
		ImageData: p.ImageData,
	}
}
