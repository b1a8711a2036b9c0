package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"
)

// SourceImage implements heritage.ImageSourcer using Imagen generation. The
// generated image is returned inline as a data URI so no object storage is
// needed downstream.
func (c *Client) SourceImage(ctx context.Context, subject, descriptiveContext string) (string, error) {
	prompt := fmt.Sprintf("A respectful, photorealistic view of the heritage site %s.", subject)
	if descriptiveContext != "" {
		prompt += " " + descriptiveContext
	}

	resp, err := c.client.Models.GenerateImages(ctx, c.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil ||
		len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return "", ErrEmptyResponse
	}

	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.ImageBytes), nil
}

// Name implements heritage.ImageSourcer.
func (c *Client) Name() string {
	return "gemini"
}
