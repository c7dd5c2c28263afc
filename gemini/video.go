package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"genchat/sessions"
)

// videoOperation wraps the SDK's long-running operation as the opaque
// handle the orchestrator polls.
type videoOperation struct {
	op *genai.GenerateVideosOperation
}

func (v *videoOperation) Done() bool {
	return v.op.Done
}

// ResultURI returns the generated video's source locator, or "" while the
// operation is pending or when the API returned no video.
func (v *videoOperation) ResultURI() string {
	if v.op.Response == nil {
		return ""
	}
	for _, generated := range v.op.Response.GeneratedVideos {
		if generated.Video != nil && generated.Video.URI != "" {
			return generated.Video.URI
		}
	}
	return ""
}

// SubmitVideo starts a video generation job for the prompt. durationSecs
// of 0 leaves the duration to the model's default.
func (c *Client) SubmitVideo(ctx context.Context, prompt string, durationSecs int) (sessions.VideoOperation, error) {
	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
	}
	if durationSecs > 0 {
		cfg.DurationSeconds = genai.Ptr(int32(durationSecs))
	}

	op, err := c.genai.Models.GenerateVideos(ctx, c.opts.VideoModel, prompt, nil, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start video generation: %w", err)
	}
	return &videoOperation{op: op}, nil
}

// PollVideo re-queries the operation's status using the same handle.
func (c *Client) PollVideo(ctx context.Context, handle sessions.VideoOperation) (sessions.VideoOperation, error) {
	vo, ok := handle.(*videoOperation)
	if !ok {
		return nil, fmt.Errorf("unknown video operation handle type %T", handle)
	}

	op, err := c.genai.Operations.GetVideosOperation(ctx, vo.op, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to poll video operation: %w", err)
	}
	return &videoOperation{op: op}, nil
}

// DownloadVideo fetches the generated media. The URI must be authenticated,
// so the API key is appended to the request.
func (c *Client) DownloadVideo(ctx context.Context, uri string) ([]byte, string, error) {
	authenticated := uri
	if strings.Contains(uri, "?") {
		authenticated += "&key=" + c.opts.APIKey
	} else {
		authenticated += "?key=" + c.opts.APIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, authenticated, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("video download failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read video body: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "video/mp4"
	}
	return body, mimeType, nil
}
