package sessions

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"genchat/commands"
	"genchat/models"
)

// usageText is shown when a generation command arrives with no prompt.
const usageText = "Usage: `generate <prompt> [--aspect-ratio 1:1|3:4|4:3|9:16|16:9]` " +
	"for images, or `generate video [of] <prompt> [--duration <seconds>]` for videos."

// Command is one discrete input event translated from whatever delivery
// mechanism is attached (HTTP, websocket, tests).
type Command interface {
	isCommand()
}

// Submit carries the raw input text of a send action.
type Submit struct {
	Text string
}

// UploadImage attaches an image to the next chat exchange.
type UploadImage struct {
	Base64   string
	MimeType string
}

// ClearAttachment removes the pending attachment.
type ClearAttachment struct{}

// ToggleMic flips the recording flag. Speech capture itself is wired
// outside this package.
type ToggleMic struct{}

// Logout detaches the identity from the session.
type Logout struct{}

func (Submit) isCommand()          {}
func (UploadImage) isCommand()     {}
func (ClearAttachment) isCommand() {}
func (ToggleMic) isCommand()       {}
func (Logout) isCommand()          {}

// HandleCommand consumes one command. Failures never propagate; they are
// reported through the renderer.
func (s *Session) HandleCommand(ctx context.Context, cmd Command) {
	switch c := cmd.(type) {
	case Submit:
		s.HandleSubmit(ctx, c.Text)
	case UploadImage:
		s.State.Attachment = &models.ImageData{Base64: c.Base64, MimeType: c.MimeType}
	case ClearAttachment:
		s.State.Attachment = nil
	case ToggleMic:
		s.State.Recording = !s.State.Recording
	case Logout:
		s.Logout()
	}
}

// HandleSubmit routes one raw input to its pathway and drives it to
// completion or terminal failure. Input controls are disabled for the
// duration and restored on every path.
func (s *Session) HandleSubmit(ctx context.Context, rawText string) {
	if s.busy {
		return
	}

	text := strings.TrimSpace(rawText)
	if text == "" && s.State.Attachment == nil {
		return
	}

	s.busy = true
	s.Renderer.SetBusy(true)
	s.Renderer.ClearInput()
	defer func() {
		s.busy = false
		s.Renderer.SetBusy(false)
	}()

	route := commands.ClassifyInput(text, s.State.Attachment != nil)

	switch route.Kind {
	case commands.KindUsageWarning:
		warning := models.Message{
			ID:   uuid.NewString(),
			Role: models.RoleModel,
			Text: usageText,
		}
		s.appendMessage(warning)
		s.persist()

	case commands.KindChat:
		s.runChat(ctx, route.Text)

	case commands.KindImage:
		s.pushGenerationRequest(text)
		s.runImageGeneration(ctx, route.Prompt, route.Params)

	case commands.KindVideo:
		s.pushGenerationRequest(text)
		s.runVideoGeneration(ctx, route.Prompt, route.Params)
	}
}

// pushGenerationRequest records the full original command text (including
// the prefix) as the user turn of a generation exchange.
func (s *Session) pushGenerationRequest(text string) {
	s.appendMessage(models.Message{
		ID:   uuid.NewString(),
		Role: models.RoleUser,
		Text: text,
	})
}
