package gemini

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/resilience"
)

var (
	// ErrInvalidAPIKey indicates an invalid or missing API key.
	ErrInvalidAPIKey = errors.New("invalid or missing API key")

	// ErrClientCreationFailed indicates a failure creating the API client.
	ErrClientCreationFailed = errors.New("failed to create Google AI client")

	// ErrEmptyResponse indicates the model answered with no usable content.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrMalformedResponse indicates the model ignored the JSON instruction.
	ErrMalformedResponse = errors.New("malformed model response")
)

// classify maps an API failure onto the shared error taxonomy so the retry
// and fallback layers can decide whether another attempt makes sense.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", resilience.ErrRateLimited, err)
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return fmt.Errorf("%w: %v", resilience.ErrUnauthorized, err)
		default:
			return fmt.Errorf("%w: %v", resilience.ErrUpstreamError, err)
		}
	}
	return fmt.Errorf("%w: %v", resilience.ErrUpstreamError, err)
}
