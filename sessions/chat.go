package sessions

import (
	"context"

	"github.com/google/uuid"

	"genchat/models"
)

// runChat drives one streaming exchange: push the user turn, stream the
// response while accumulating it, then append and persist the final model
// message. On a stream error the partial text is discarded and the user
// turn is rolled back.
func (s *Session) runChat(ctx context.Context, text string) {
	attachment := s.State.Attachment
	s.State.Attachment = nil

	userMsg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Text:      text,
		ImageData: attachment,
	}
	s.appendMessage(userMsg)

	// Inline image part first when attached, then the text part if the
	// text is non-empty.
	parts := []models.Part{}
	if attachment != nil {
		parts = append(parts, models.Part{InlineData: &models.InlineData{
			MimeType: attachment.MimeType,
			Data:     attachment.Base64,
		}})
	}
	if text != "" {
		parts = append(parts, models.Part{Text: text})
	}

	chat, err := s.chatContext(ctx)
	if err != nil {
		s.reportFailure(err)
		return
	}

	fragChan, errChan := chat.SendMessageStream(ctx, parts)

	// The running accumulator is the canonical current model response.
	accumulated := ""
	for {
		select {
		case frag, ok := <-fragChan:
			if !ok {
				fragChan = nil
				break
			}
			accumulated += frag
			s.Renderer.StreamDelta(accumulated)

		case err, ok := <-errChan:
			if ok && err != nil {
				s.reportFailure(err)
				return
			}
			if !ok {
				errChan = nil
			}
		}

		if fragChan == nil && errChan == nil {
			break
		}
	}

	modelMsg := models.Message{
		ID:   uuid.NewString(),
		Role: models.RoleModel,
		Text: accumulated,
	}
	s.State.Conversation = append(s.State.Conversation, modelMsg)
	s.Renderer.ResolveLoading(modelMsg)
	s.persist()
}

// chatContext returns the current chat context, creating one bound to the
// conversation so far (excluding the just-pushed user turn) when none
// exists yet.
func (s *Session) chatContext(ctx context.Context) (ChatContext, error) {
	if s.chat != nil {
		return s.chat, nil
	}

	history := []models.Turn{}
	for _, msg := range s.State.Conversation[:len(s.State.Conversation)-1] {
		history = append(history, models.TurnFromMessage(msg))
	}

	chat, err := s.Chats.StartChat(ctx, history)
	if err != nil {
		return nil, err
	}
	s.chat = chat
	return chat, nil
}
