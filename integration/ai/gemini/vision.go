package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/heritage"
)

// AnalyzeImages implements heritage.VisionAnalyzer. Each image is attached as
// an inline part; the model answers with one section per observation.
func (c *Client) AnalyzeImages(ctx context.Context, images [][]byte, language string) ([]heritage.Section, error) {
	if len(images) == 0 {
		return nil, ErrEmptyResponse
	}

	prompt := fmt.Sprintf(`These photographs were taken at a heritage site. In %s, describe
what they show: identifiable structures, architectural styles, and historical
context. Respond with a JSON array of objects with string fields "title" and
"body". No markdown, JSON only.`, language)

	parts := make([]*genai.Part, 0, len(images)+1)
	parts = append(parts, genai.NewPartFromText(prompt))
	for _, img := range images {
		parts = append(parts, genai.NewPartFromBytes(img, http.DetectContentType(img)))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.visionModel, contents, config)
	if err != nil {
		return nil, classify(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var sections []heritage.Section
	if err := json.Unmarshal([]byte(text), &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return sections, nil
}
