package sessions

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"genchat/models"
)

// fakeRenderer records every render event in order.
type fakeRenderer struct {
	appended []models.Message
	deltas   []string
	statuses []string
	resolved []models.Message
	failures []string
	busy     []bool
	cleared  int
}

func (r *fakeRenderer) AppendMessage(msg models.Message)  { r.appended = append(r.appended, msg) }
func (r *fakeRenderer) StreamDelta(text string)           { r.deltas = append(r.deltas, text) }
func (r *fakeRenderer) SetLoading(status string)          { r.statuses = append(r.statuses, status) }
func (r *fakeRenderer) ResolveLoading(msg models.Message) { r.resolved = append(r.resolved, msg) }
func (r *fakeRenderer) FailLoading(message string)        { r.failures = append(r.failures, message) }
func (r *fakeRenderer) SetBusy(busy bool)                 { r.busy = append(r.busy, busy) }
func (r *fakeRenderer) ClearInput()                       { r.cleared++ }

// fakeStore keeps snapshots in memory, stripping video data the way the
// real stores do at the persistence boundary.
type fakeStore struct {
	snapshots map[string][]models.PersistedMessage
	saves     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{snapshots: map[string][]models.PersistedMessage{}}
}

func (s *fakeStore) Save(identity string, msgs []models.Message) error {
	if identity == "" {
		return nil
	}
	persisted := make([]models.PersistedMessage, 0, len(msgs))
	for _, m := range msgs {
		persisted = append(persisted, m.ToPersisted())
	}
	s.snapshots[identity] = persisted
	s.saves++
	return nil
}

func (s *fakeStore) Load(identity string) ([]models.Message, error) {
	if identity == "" {
		return nil, nil
	}
	persisted, ok := s.snapshots[identity]
	if !ok {
		return nil, nil
	}
	msgs := make([]models.Message, 0, len(persisted))
	for _, p := range persisted {
		msgs = append(msgs, p.ToMessage())
	}
	return msgs, nil
}

func (s *fakeStore) Connect() error { return nil }
func (s *fakeStore) Close() error   { return nil }
func (s *fakeStore) Ping() error    { return nil }

// fakeChatContext replays scripted fragments, optionally ending with an
// error partway through the stream.
type fakeChatContext struct {
	fragments []string
	err       error
	sent      [][]models.Part
}

func (c *fakeChatContext) SendMessageStream(ctx context.Context, parts []models.Part) (<-chan string, <-chan error) {
	c.sent = append(c.sent, parts)

	fragChan := make(chan string)
	errChan := make(chan error, 1)
	go func() {
		defer close(fragChan)
		defer close(errChan)
		for _, frag := range c.fragments {
			fragChan <- frag
		}
		if c.err != nil {
			errChan <- c.err
		}
	}()
	return fragChan, errChan
}

type fakeChatStarter struct {
	chat      *fakeChatContext
	histories [][]models.Turn
	err       error
}

func (s *fakeChatStarter) StartChat(ctx context.Context, history []models.Turn) (ChatContext, error) {
	s.histories = append(s.histories, history)
	if s.err != nil {
		return nil, s.err
	}
	return s.chat, nil
}

// fakeImageGenerator counts calls and returns a scripted result.
type fakeImageGenerator struct {
	calls  int
	result *models.ImageData
	err    error
}

func (g *fakeImageGenerator) GenerateImage(ctx context.Context, prompt, aspectRatio string) (*models.ImageData, error) {
	g.calls++
	return g.result, g.err
}

// fakeVideoOperation is a scripted operation handle.
type fakeVideoOperation struct {
	done bool
	uri  string
}

func (o *fakeVideoOperation) Done() bool        { return o.done }
func (o *fakeVideoOperation) ResultURI() string { return o.uri }

// fakeVideoGenerator reports pending for pendingPolls re-queries, then
// done with the scripted URI.
type fakeVideoGenerator struct {
	submits      int
	polls        int
	downloads    int
	pendingPolls int
	uri          string
	data         []byte
	mimeType     string
	submitErr    error
	downloadErr  error
}

func (g *fakeVideoGenerator) SubmitVideo(ctx context.Context, prompt string, durationSecs int) (VideoOperation, error) {
	g.submits++
	if g.submitErr != nil {
		return nil, g.submitErr
	}
	return &fakeVideoOperation{done: g.pendingPolls == 0, uri: g.uri}, nil
}

func (g *fakeVideoGenerator) PollVideo(ctx context.Context, handle VideoOperation) (VideoOperation, error) {
	g.polls++
	if g.polls >= g.pendingPolls {
		return &fakeVideoOperation{done: true, uri: g.uri}, nil
	}
	return &fakeVideoOperation{}, nil
}

func (g *fakeVideoGenerator) DownloadVideo(ctx context.Context, uri string) ([]byte, string, error) {
	g.downloads++
	if g.downloadErr != nil {
		return nil, "", g.downloadErr
	}
	return g.data, g.mimeType, nil
}

var errStreamBroken = errors.New("stream broke: connection reset")

// newTestSession wires a session with all fakes and a no-op clock.
func newTestSession(identity string) (*Session, *fakeRenderer, *fakeStore, *fakeChatStarter, *fakeImageGenerator, *fakeVideoGenerator) {
	renderer := &fakeRenderer{}
	store := newFakeStore()
	chats := &fakeChatStarter{chat: &fakeChatContext{}}
	images := &fakeImageGenerator{}
	videos := &fakeVideoGenerator{}

	session := NewSession(identity, renderer, store, chats, images, videos)
	session.Logger = log.New(os.Stdout, "[test] ", log.LstdFlags)
	session.Sleep = func(ctx context.Context, d time.Duration) {}
	session.PollInterval = time.Millisecond

	return session, renderer, store, chats, images, videos
}
