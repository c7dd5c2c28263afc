package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"genchat/models"
)

// outputImageMIME is the fixed encoding requested for generated images.
const outputImageMIME = "image/jpeg"

// GenerateImage requests exactly one image for the prompt. aspectRatio may
// be empty; validation against the supported set happens before this call.
// Returns nil when the API responded without any usable image, which the
// caller treats as a policy rejection.
func (c *Client) GenerateImage(ctx context.Context, prompt, aspectRatio string) (*models.ImageData, error) {
	cfg := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: outputImageMIME,
	}
	if aspectRatio != "" {
		cfg.AspectRatio = aspectRatio
	}

	resp, err := c.genai.Models.GenerateImages(ctx, c.opts.ImageModel, prompt, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	for _, generated := range resp.GeneratedImages {
		if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			continue
		}
		mimeType := generated.Image.MIMEType
		if mimeType == "" {
			mimeType = outputImageMIME
		}
		return &models.ImageData{
			Base64:   base64.StdEncoding.EncodeToString(generated.Image.ImageBytes),
			MimeType: mimeType,
		}, nil
	}

	return nil, nil
}
