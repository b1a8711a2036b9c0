package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/heritage"
)

// Model defaults. Flash favors latency over depth, which suits a per-request
// fan-out of four generations.
const (
	defaultTextModel   = "gemini-2.0-flash"
	defaultVisionModel = "gemini-2.0-flash"
	defaultImageModel  = "imagen-3.0-generate-002"
)

// Client implements the heritage provider interfaces (text generation, vision
// analysis, image sourcing) on Google's Generative AI API.
type Client struct {
	client      *genai.Client
	textModel   string
	visionModel string
	imageModel  string
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithTextModel sets the model used for metadata, sections, and experience.
func WithTextModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.textModel = model
		}
	}
}

// WithVisionModel sets the model used for image analysis.
func WithVisionModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.visionModel = model
		}
	}
}

// WithImageModel sets the model used for image generation.
func WithImageModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.imageModel = model
		}
	}
}

// New creates a Gemini-backed provider client with API key authentication.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	c := &Client{
		textModel:   defaultTextModel,
		visionModel: defaultVisionModel,
		imageModel:  defaultImageModel,
	}

	for _, opt := range opts {
		opt(c)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClientCreationFailed, err)
	}
	c.client = client

	return c, nil
}

// GenerateMetadata implements heritage.TextGenerator.
func (c *Client) GenerateMetadata(ctx context.Context, subject, language string) (heritage.Metadata, error) {
	prompt := fmt.Sprintf(`Provide factual metadata about the heritage subject %q in %s.
Respond with a single JSON object with exactly these string fields:
"name", "location", "period", "significance". No markdown, JSON only.`, subject, language)

	var metadata heritage.Metadata
	if err := c.generateJSON(ctx, prompt, &metadata); err != nil {
		return heritage.Metadata{}, err
	}
	if metadata.Name == "" {
		metadata.Name = subject
	}
	return metadata, nil
}

// GenerateSections implements heritage.TextGenerator.
func (c *Client) GenerateSections(ctx context.Context, subject, language string, focus heritage.SectionFocus) ([]heritage.Section, error) {
	angle := "its history, cultural context, and notable stories"
	if focus == heritage.FocusVisual {
		angle = "its architecture, visual highlights, and what a visitor sees"
	}

	prompt := fmt.Sprintf(`Write three short sections about the heritage subject %q in %s,
covering %s. Respond with a JSON array of objects, each with string fields
"title" and "body". No markdown, JSON only.`, subject, language, angle)

	var sections []heritage.Section
	if err := c.generateJSON(ctx, prompt, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// GenerateExperience implements heritage.TextGenerator.
func (c *Client) GenerateExperience(ctx context.Context, subject, language string) (string, error) {
	prompt := fmt.Sprintf(`In %s, write one evocative paragraph placing the reader at %q:
the sights, sounds, and atmosphere of standing there. Plain text only.`, language, subject)

	return c.generateText(ctx, prompt)
}

// generateText runs one text generation and returns the trimmed response.
func (c *Client) generateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// generateJSON runs one generation in JSON mode and unmarshals the response.
func (c *Client) generateJSON(ctx context.Context, prompt string, out any) error {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, genai.Text(prompt), config)
	if err != nil {
		return classify(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
