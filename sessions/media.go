package sessions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"genchat/models"
)

// supportedAspectRatios is the enumerated set accepted by --aspect-ratio.
var supportedAspectRatios = []string{"1:1", "3:4", "4:3", "9:16", "16:9"}

// pollStatusPhrases cycle on the loading indicator while a video operation
// is pending; index = poll count modulo phrase count.
var pollStatusPhrases = []string{
	"Warming up the video model...",
	"Rendering frames...",
	"Still working, videos can take a few minutes...",
	"Adding the finishing touches...",
}

// runImageGeneration drives the single-round-trip image pathway. The user
// message was already pushed by the dispatcher.
func (s *Session) runImageGeneration(ctx context.Context, prompt string, params map[string]string) {
	s.Renderer.SetLoading("Generating image...")

	aspectRatio := params["aspect-ratio"]
	if aspectRatio != "" && !isSupportedAspectRatio(aspectRatio) {
		s.reportFailure(invalidParameter(fmt.Sprintf(
			"Invalid aspect ratio %q. Supported values: %s.",
			aspectRatio, strings.Join(supportedAspectRatios, ", "))))
		return
	}

	image, err := s.Images.GenerateImage(ctx, prompt, aspectRatio)
	if err != nil {
		s.reportFailure(err)
		return
	}
	if image == nil || image.Base64 == "" {
		s.reportFailure(generationEmpty(
			"The API returned no image. This usually means the prompt was rejected by a safety policy."))
		return
	}

	modelMsg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleModel,
		Text:      fmt.Sprintf("Here is the image for: %q", prompt),
		ImageData: image,
	}
	s.State.Conversation = append(s.State.Conversation, modelMsg)
	s.Renderer.ResolveLoading(modelMsg)
	s.persist()
}

// runVideoGeneration drives the submit/poll/download video pathway. The
// remote side gives no termination guarantee, so the loop only ends when
// the operation reports done or the context is abandoned.
func (s *Session) runVideoGeneration(ctx context.Context, prompt string, params map[string]string) {
	s.Renderer.SetLoading("Starting video generation...")

	durationSecs := 0
	if raw, ok := params["duration"]; ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.reportFailure(invalidParameter(fmt.Sprintf(
				"Invalid duration %q. The duration must be a positive integer number of seconds.", raw)))
			return
		}
		durationSecs = parsed
	}

	handle, err := s.Videos.SubmitVideo(ctx, prompt, durationSecs)
	if err != nil {
		s.reportFailure(err)
		return
	}

	pollCount := 0
	for !handle.Done() {
		s.Renderer.SetLoading(pollStatusPhrases[pollCount%len(pollStatusPhrases)])
		pollCount++

		s.Sleep(ctx, s.PollInterval)
		if ctx.Err() != nil {
			s.reportFailure(ctx.Err())
			return
		}

		handle, err = s.Videos.PollVideo(ctx, handle)
		if err != nil {
			s.reportFailure(err)
			return
		}
	}

	uri := handle.ResultURI()
	if uri == "" {
		s.reportFailure(downloadFailed("API did not return a video link", nil))
		return
	}

	s.Renderer.SetLoading("Downloading video...")
	data, mimeType, err := s.Videos.DownloadVideo(ctx, uri)
	if err != nil {
		s.reportFailure(downloadFailed(fmt.Sprintf("Failed to download the video: %v", err), err))
		return
	}

	video, err := s.writeVideoFile(data, mimeType)
	if err != nil {
		s.reportFailure(downloadFailed(fmt.Sprintf("Failed to store the video: %v", err), err))
		return
	}

	modelMsg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleModel,
		Text:      fmt.Sprintf("Here is the video for: %q", prompt),
		VideoData: video,
	}
	s.State.Conversation = append(s.State.Conversation, modelMsg)
	s.Renderer.ResolveLoading(modelMsg)
	s.persist()
}

// writeVideoFile wraps fetched bytes as a local resource handle. The file
// only matters for the current session; the janitor purges old ones.
func (s *Session) writeVideoFile(data []byte, mimeType string) (*models.VideoData, error) {
	if err := os.MkdirAll(s.VideoDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create video directory: %w", err)
	}

	extension := "mp4"
	if strings.Contains(mimeType, "webm") {
		extension = "webm"
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("generated_video_%s_%s.%s", timestamp, uuid.NewString()[:8], extension)
	path := filepath.Join(s.VideoDir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save video: %w", err)
	}

	return &models.VideoData{FilePath: path, MimeType: mimeType}, nil
}

func isSupportedAspectRatio(value string) bool {
	for _, ratio := range supportedAspectRatios {
		if value == ratio {
			return true
		}
	}
	return false
}
