package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/resilience"
)

const unsplashBaseURL = "https://api.unsplash.com"

// Unsplash sources photographs from the Unsplash search API.
type Unsplash struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// UnsplashOption is a functional option for configuring Unsplash.
type UnsplashOption func(*Unsplash)

// WithUnsplashBaseURL overrides the API endpoint, mainly for tests.
func WithUnsplashBaseURL(base string) UnsplashOption {
	return func(u *Unsplash) {
		if base != "" {
			u.baseURL = base
		}
	}
}

// WithUnsplashHTTPClient sets a custom HTTP client.
func WithUnsplashHTTPClient(client *http.Client) UnsplashOption {
	return func(u *Unsplash) {
		if client != nil {
			u.httpClient = client
		}
	}
}

// NewUnsplash creates an Unsplash-backed image sourcer.
func NewUnsplash(apiKey string, opts ...UnsplashOption) (*Unsplash, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	u := &Unsplash{
		apiKey:     apiKey,
		baseURL:    unsplashBaseURL,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(u)
	}

	return u, nil
}

// SourceImage implements heritage.ImageSourcer.
func (u *Unsplash) SourceImage(ctx context.Context, subject, descriptiveContext string) (string, error) {
	query := subject
	if descriptiveContext != "" {
		query += " " + descriptiveContext
	}

	endpoint := fmt.Sprintf("%s/search/photos?per_page=1&query=%s", u.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", resilience.ErrUpstreamError, err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.apiKey)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", resilience.ErrUpstreamError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(u.Name(), resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", resilience.ErrUpstreamError, err)
	}

	if len(payload.Results) == 0 || payload.Results[0].URLs.Regular == "" {
		return "", ErrNoResults
	}
	return payload.Results[0].URLs.Regular, nil
}

// Name implements heritage.ImageSourcer.
func (u *Unsplash) Name() string {
	return "unsplash"
}
