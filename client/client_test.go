package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravigohel142996/itihas-heritage-assistant/client"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/heritage"
)

func newClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()
	c, err := client.New(baseURL,
		client.WithMaxAttempts(3),
		client.WithBaseDelay(time.Millisecond))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a base URL", func(t *testing.T) {
		t.Parallel()
		_, err := client.New("  ")
		assert.ErrorIs(t, err, client.ErrUnexpected)
	})

	t.Run("trims a trailing slash", func(t *testing.T) {
		t.Parallel()

		var path atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path.Store(r.URL.Path)
			_ = json.NewEncoder(w).Encode(heritage.CompositeResult{Status: heritage.StatusOK})
		}))
		defer srv.Close()

		c := newClient(t, srv.URL+"/")
		_, err := c.FetchComposite(context.Background(), "Taj Mahal", "English")
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/heritage/composite", path.Load())
	})
}

func TestClient_FetchComposite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Taj Mahal", req["subject"])

			_ = json.NewEncoder(w).Encode(heritage.CompositeResult{
				Composite:  heritage.Composite{Metadata: heritage.Metadata{Name: "Taj Mahal"}},
				ServedFrom: heritage.ServedFromLive,
				Status:     heritage.StatusOK,
			})
		}))
		defer srv.Close()

		result, err := newClient(t, srv.URL).FetchComposite(ctx, "Taj Mahal", "English")
		require.NoError(t, err)
		assert.Equal(t, "Taj Mahal", result.Metadata.Name)
	})

	t.Run("retries server errors until one succeeds", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(heritage.CompositeResult{Status: heritage.StatusOK})
		}))
		defer srv.Close()

		result, err := newClient(t, srv.URL).FetchComposite(ctx, "Taj Mahal", "English")
		require.NoError(t, err)
		assert.Equal(t, heritage.StatusOK, result.Status)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("exhausted retries classify as ErrUnavailable", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := newClient(t, srv.URL).FetchComposite(ctx, "Taj Mahal", "English")
		assert.ErrorIs(t, err, client.ErrUnavailable)
		assert.Equal(t, int32(3), calls.Load(), "full attempt budget consumed")
	})

	t.Run("429 is never retried", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := newClient(t, srv.URL).FetchComposite(ctx, "Taj Mahal", "English")
		assert.ErrorIs(t, err, client.ErrRateLimited)
		assert.Equal(t, int32(1), calls.Load(), "a rate-limited call must not be repeated")
	})

	t.Run("unexpected status is terminal", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newClient(t, srv.URL).FetchComposite(ctx, "Taj Mahal", "English")
		assert.ErrorIs(t, err, client.ErrUnexpected)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("connection failure classifies as ErrUnavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // deliberately dead

		_, err := newClient(t, srv.URL).FetchComposite(ctx, "Taj Mahal", "English")
		assert.ErrorIs(t, err, client.ErrUnavailable)
	})
}

func TestClient_FetchImage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(heritage.ImageResult{
				ImageRef:   "https://img.example.com/taj.jpg",
				Provider:   "unsplash",
				ServedFrom: heritage.ServedFromLive,
				Status:     heritage.StatusOK,
			})
		}))
		defer srv.Close()

		result, err := newClient(t, srv.URL).FetchImage(ctx, "Taj Mahal", "white marble")
		require.NoError(t, err)
		assert.Equal(t, "unsplash", result.Provider)
	})

	t.Run("terminal failure still yields a renderable placeholder", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		result, err := newClient(t, srv.URL).FetchImage(ctx, "Taj Mahal", "")
		require.ErrorIs(t, err, client.ErrUnavailable)
		assert.True(t, strings.HasPrefix(result.ImageRef, "data:image/svg+xml"))
		assert.Equal(t, "placeholder", result.Provider)
		assert.Equal(t, heritage.StatusDegraded, result.Status)
		assert.Equal(t, heritage.ReasonUpstreamExhausted, result.Reason)
	})

	t.Run("rate-limited failure carries the rate_limited reason", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		result, err := newClient(t, srv.URL).FetchImage(ctx, "Taj Mahal", "")
		require.ErrorIs(t, err, client.ErrRateLimited)
		assert.Equal(t, heritage.ReasonRateLimited, result.Reason)
		assert.NotEmpty(t, result.ImageRef)
	})
}

func TestClient_AnalyzeImages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Images   []string `json:"images"`
			Language string   `json:"language"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Images, 2)
		assert.Equal(t, "Hindi", req.Language)

		_ = json.NewEncoder(w).Encode(heritage.AnalysisResult{
			Sections: []heritage.Section{{Title: "Facade", Body: "sandstone"}},
			Status:   heritage.StatusOK,
		})
	}))
	defer srv.Close()

	result, err := newClient(t, srv.URL).AnalyzeImages(context.Background(),
		[][]byte{[]byte("a"), []byte("b")}, "Hindi")
	require.NoError(t, err)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "Facade", result.Sections[0].Title)
}
