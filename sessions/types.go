// Package sessions holds the orchestration core: routing a submitted input
// to the chat, image, or video pathway, driving each to completion or
// rollback, and keeping the per-identity conversation history in sync with
// its persisted snapshot.
package sessions

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"genchat/models"
	"genchat/stores"
)

// State is the explicit session-state record: everything mutable a session
// owns. The conversation is append-only except for rollback of the most
// recent user message after a failed exchange.
type State struct {
	Identity     string
	Conversation []models.Message
	Attachment   *models.ImageData
	Recording    bool
}

// Renderer is the boundary to whatever display surface is attached. The
// orchestration logic never touches a transport directly.
type Renderer interface {
	// AppendMessage renders a completed message.
	AppendMessage(msg models.Message)
	// StreamDelta renders the accumulated text of the in-progress model
	// response.
	StreamDelta(text string)
	// SetLoading updates the in-progress placeholder's status phrase.
	SetLoading(status string)
	// ResolveLoading replaces the placeholder with a completed message.
	ResolveLoading(msg models.Message)
	// FailLoading replaces the placeholder with an inline error.
	FailLoading(message string)
	// SetBusy disables or re-enables the input controls.
	SetBusy(busy bool)
	// ClearInput empties the input field.
	ClearInput()
}

// ChatContext is one streaming conversation bound to a history. The
// exchange yields a finite, non-restartable sequence of text fragments.
type ChatContext interface {
	SendMessageStream(ctx context.Context, parts []models.Part) (<-chan string, <-chan error)
}

// ChatStarter creates chat contexts from reconstructed history.
type ChatStarter interface {
	StartChat(ctx context.Context, history []models.Turn) (ChatContext, error)
}

// ImageGenerator produces one image per request. A nil result with a nil
// error means the API returned no usable image.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, aspectRatio string) (*models.ImageData, error)
}

// VideoOperation is the opaque handle of a long-running video job.
type VideoOperation interface {
	Done() bool
	// ResultURI is the generated video's source locator once done, or ""
	// when the API returned none.
	ResultURI() string
}

// VideoGenerator submits video jobs, re-queries their status, and fetches
// the finished media.
type VideoGenerator interface {
	SubmitVideo(ctx context.Context, prompt string, durationSecs int) (VideoOperation, error)
	PollVideo(ctx context.Context, handle VideoOperation) (VideoOperation, error)
	DownloadVideo(ctx context.Context, uri string) (data []byte, mimeType string, err error)
}

// SleepFunc suspends between polls. Injected so tests can use a fake clock.
type SleepFunc func(ctx context.Context, d time.Duration)

// Session drives one identity's conversation. All work is triggered by
// commands and runs to completion or terminal failure; the renderer's busy
// state guarantees at most one in-flight operation.
type Session struct {
	State    State
	Renderer Renderer
	Store    stores.HistoryStore
	Chats    ChatStarter
	Images   ImageGenerator
	Videos   VideoGenerator
	Logger   *log.Logger

	PollInterval time.Duration
	Sleep        SleepFunc
	VideoDir     string

	chat ChatContext
	busy bool
}

// NewSession creates a session for an identity with injected collaborators.
func NewSession(identity string, renderer Renderer, store stores.HistoryStore, chats ChatStarter, images ImageGenerator, videos VideoGenerator) *Session {
	logger := log.New(os.Stdout, fmt.Sprintf("[session %s] ", identity), log.LstdFlags)

	return &Session{
		State:        State{Identity: identity},
		Renderer:     renderer,
		Store:        store,
		Chats:        chats,
		Images:       images,
		Videos:       videos,
		Logger:       logger,
		PollInterval: 10 * time.Second,
		Sleep: func(ctx context.Context, d time.Duration) {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-timer.C:
			}
		},
		VideoDir: "videos",
	}
}

// persist mirrors the in-memory conversation into storage. Always called
// strictly after the corresponding append.
func (s *Session) persist() {
	if err := s.Store.Save(s.State.Identity, s.State.Conversation); err != nil {
		s.Logger.Printf("Error saving history: %v", err)
	}
}

// appendMessage appends to the conversation and renders the message.
func (s *Session) appendMessage(msg models.Message) {
	s.State.Conversation = append(s.State.Conversation, msg)
	s.Renderer.AppendMessage(msg)
}

// rollbackUserMessage removes the most recent user message after a failed
// exchange, so the conversation only ever contains completed exchanges.
func (s *Session) rollbackUserMessage() {
	n := len(s.State.Conversation)
	if n == 0 {
		return
	}
	if s.State.Conversation[n-1].Role != models.RoleUser {
		return
	}
	s.State.Conversation = s.State.Conversation[:n-1]
}

// reportFailure classifies, logs, and surfaces a failure, then rolls back
// the user message pushed for the failed exchange. Errors never escape to
// the caller.
func (s *Session) reportFailure(err error) {
	classified := classify(err)
	s.Logger.Printf("Exchange failed (kind %d): %v", classified.Kind, err)
	s.Renderer.FailLoading(classified.Message)
	s.rollbackUserMessage()
}
