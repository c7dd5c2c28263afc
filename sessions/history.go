package sessions

import (
	"context"

	"github.com/google/uuid"

	"genchat/models"
)

// greetingText seeds every fresh conversation, so an identity always has at
// least one message.
const greetingText = "Hello! Ask me anything, or type `generate <prompt>` " +
	"to create an image and `generate video of <prompt>` to create a video."

// LoadHistory reconstructs the conversation for the session's identity. A
// non-empty snapshot is rendered message by message and fed back as the
// model's context; an absent or empty snapshot seeds a greeting message and
// persists it immediately.
func (s *Session) LoadHistory(ctx context.Context) error {
	stored, err := s.Store.Load(s.State.Identity)
	if err != nil {
		s.Logger.Printf("Error loading history: %v", err)
		return err
	}

	if len(stored) == 0 {
		greeting := models.Message{
			ID:   uuid.NewString(),
			Role: models.RoleModel,
			Text: greetingText,
		}
		s.appendMessage(greeting)
		s.persist()
		s.chat = nil
		return nil
	}

	history := make([]models.Turn, 0, len(stored))
	for _, msg := range stored {
		s.appendMessage(msg)
		history = append(history, models.TurnFromMessage(msg))
	}

	chat, err := s.Chats.StartChat(ctx, history)
	if err != nil {
		s.Logger.Printf("Error starting chat from history: %v", err)
		return err
	}
	s.chat = chat
	return nil
}

// Logout detaches the identity. The stored snapshot stays in place but is
// no longer the active one.
func (s *Session) Logout() {
	s.State = State{}
	s.chat = nil
}
