package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/resilience"
)

const pexelsBaseURL = "https://api.pexels.com"

// Pexels sources photographs from the Pexels search API.
type Pexels struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// PexelsOption is a functional option for configuring Pexels.
type PexelsOption func(*Pexels)

// WithPexelsBaseURL overrides the API endpoint, mainly for tests.
func WithPexelsBaseURL(base string) PexelsOption {
	return func(p *Pexels) {
		if base != "" {
			p.baseURL = base
		}
	}
}

// WithPexelsHTTPClient sets a custom HTTP client.
func WithPexelsHTTPClient(client *http.Client) PexelsOption {
	return func(p *Pexels) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewPexels creates a Pexels-backed image sourcer.
func NewPexels(apiKey string, opts ...PexelsOption) (*Pexels, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	p := &Pexels{
		apiKey:     apiKey,
		baseURL:    pexelsBaseURL,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// SourceImage implements heritage.ImageSourcer.
func (p *Pexels) SourceImage(ctx context.Context, subject, descriptiveContext string) (string, error) {
	query := subject
	if descriptiveContext != "" {
		query += " " + descriptiveContext
	}

	endpoint := fmt.Sprintf("%s/v1/search?per_page=1&query=%s", p.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", resilience.ErrUpstreamError, err)
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", resilience.ErrUpstreamError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(p.Name(), resp.StatusCode)
	}

	var payload struct {
		Photos []struct {
			Src struct {
				Large string `json:"large"`
			} `json:"src"`
		} `json:"photos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", resilience.ErrUpstreamError, err)
	}

	if len(payload.Photos) == 0 || payload.Photos[0].Src.Large == "" {
		return "", ErrNoResults
	}
	return payload.Photos[0].Src.Large, nil
}

// Name implements heritage.ImageSourcer.
func (p *Pexels) Name() string {
	return "pexels"
}
