package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"genchat/models"
	"genchat/sessions"
)

// ChatContext is one streaming conversation bound to a reconstructed
// history. A new context is created at login and whenever history is
// reloaded.
type ChatContext struct {
	chat *genai.Chat
}

// StartChat creates a chat bound to the given history of turns.
func (c *Client) StartChat(ctx context.Context, history []models.Turn) (sessions.ChatContext, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		parts, err := convertParts(turn.Parts)
		if err != nil {
			return nil, err
		}
		contents = append(contents, &genai.Content{Role: turn.Role, Parts: parts})
	}

	chat, err := c.genai.Chats.Create(ctx, c.opts.ChatModel, nil, contents)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return &ChatContext{chat: chat}, nil
}

// SendMessageStream submits the ordered parts and returns the response as a
// channel of incremental text fragments plus a buffered error channel. The
// stream is finite and cannot be restarted; any error terminates it.
func (cc *ChatContext) SendMessageStream(ctx context.Context, parts []models.Part) (<-chan string, <-chan error) {
	fragChan := make(chan string)
	errChan := make(chan error, 1)

	genaiParts, err := convertParts(parts)
	if err != nil {
		errChan <- err
		close(errChan)
		close(fragChan)
		return fragChan, errChan
	}

	go func() {
		defer close(fragChan)
		defer close(errChan)

		sendParts := make([]genai.Part, 0, len(genaiParts))
		for _, p := range genaiParts {
			sendParts = append(sendParts, *p)
		}

		for resp, err := range cc.chat.SendMessageStream(ctx, sendParts...) {
			if err != nil {
				errChan <- fmt.Errorf("chat stream error: %w", err)
				return
			}
			if text := resp.Text(); text != "" {
				fragChan <- text
			}
		}
	}()

	return fragChan, errChan
}

// convertParts maps wire parts to genai parts. Inline data travels as
// base64 in our model and as raw bytes in the SDK.
func convertParts(parts []models.Part) ([]*genai.Part, error) {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.InlineData != nil {
			raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode inline data: %w", err)
			}
			out = append(out, &genai.Part{InlineData: &genai.Blob{
				MIMEType: p.InlineData.MimeType,
				Data:     raw,
			}})
			continue
		}
		out = append(out, &genai.Part{Text: p.Text})
	}
	return out, nil
}
