// Package openai implements the image-sourcer provider interface on OpenAI's
// image generation API, wired as an alternate candidate in the image fallback
// chain when credentials are configured.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/resilience"
)

// ErrInvalidAPIKey indicates an invalid or missing API key.
var ErrInvalidAPIKey = errors.New("invalid or missing API key")

// ErrEmptyResponse indicates the API returned no image.
var ErrEmptyResponse = errors.New("empty image response")

// Client sources images through OpenAI image generation.
type Client struct {
	client openai.Client
	model  openai.ImageModel
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithModel sets the image model (default DALL-E 3).
func WithModel(model openai.ImageModel) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// New creates an OpenAI-backed image sourcer.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	c := &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ImageModelDallE3,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SourceImage implements heritage.ImageSourcer.
func (c *Client) SourceImage(ctx context.Context, subject, descriptiveContext string) (string, error) {
	prompt := fmt.Sprintf("A respectful, photorealistic view of the heritage site %s.", subject)
	if descriptiveContext != "" {
		prompt += " " + descriptiveContext
	}

	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  c.model,
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrEmptyResponse
	}
	return resp.Data[0].URL, nil
}

// Name implements heritage.ImageSourcer.
func (c *Client) Name() string {
	return "openai"
}

// classify maps an API failure onto the shared error taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", resilience.ErrRateLimited, err)
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %v", resilience.ErrUnauthorized, err)
		default:
			return fmt.Errorf("%w: %v", resilience.ErrUpstreamError, err)
		}
	}
	return fmt.Errorf("%w: %v", resilience.ErrUpstreamError, err)
}
