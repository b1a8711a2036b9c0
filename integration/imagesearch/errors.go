package imagesearch

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/resilience"
)

var (
	// ErrInvalidAPIKey indicates an invalid or missing API key.
	ErrInvalidAPIKey = errors.New("invalid or missing API key")

	// ErrNoResults indicates the search returned no photographs.
	ErrNoResults = errors.New("no search results")
)

// classifyStatus maps an HTTP response status onto the shared error taxonomy.
func classifyStatus(provider string, status int) error {
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s returned %d", resilience.ErrRateLimited, provider, status)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned %d", resilience.ErrUnauthorized, provider, status)
	default:
		return fmt.Errorf("%w: %s returned %d", resilience.ErrUpstreamError, provider, status)
	}
}
