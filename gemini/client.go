// Package gemini adapts the Google GenAI SDK to the session interfaces:
// streaming chat bound to a conversation context, single-shot image
// generation, and long-running video generation with polling and download.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// Options fixes the models used for each pathway.
type Options struct {
	APIKey     string
	ChatModel  string
	ImageModel string
	VideoModel string
}

// Client wraps a genai.Client for the three generation pathways.
type Client struct {
	genai *genai.Client
	opts  Options
	http  *http.Client
}

// NewClient creates a Gemini-backed client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		genai: client,
		opts:  opts,
		http:  &http.Client{Timeout: 5 * time.Minute},
	}, nil
}
