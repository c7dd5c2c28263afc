package models

// Part is one atomic unit of a model request: either inline binary data or
// plain text. Exactly one of the two is populated.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Turn is one entry of the model's conversational context: a role plus the
// ordered parts for that turn.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// TurnFromMessage maps a stored message into a context turn: an inline
// image part first if the message carries one, then an explicit text part.
// The text part is always present, even when the text is empty, because the
// streaming endpoint rejects turns without one.
func TurnFromMessage(m Message) Turn {
	parts := []Part{}
	if m.ImageData != nil {
		parts = append(parts, Part{InlineData: &InlineData{
			MimeType: m.ImageData.MimeType,
			Data:     m.ImageData.Base64,
		}})
	}
	parts = append(parts, Part{Text: m.Text})
	return Turn{Role: m.Role, Parts: parts}
}
