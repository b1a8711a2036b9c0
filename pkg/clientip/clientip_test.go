package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravigohel142996/itihas-heritage-assistant/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	t.Run("falls back to RemoteAddr", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "203.0.113.5:41234"
		assert.Equal(t, "203.0.113.5", clientip.GetIP(r))
	})

	t.Run("CF-Connecting-IP has highest priority", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		r.Header.Set("CF-Connecting-IP", "198.51.100.7")
		r.Header.Set("X-Forwarded-For", "192.0.2.1")
		assert.Equal(t, "198.51.100.7", clientip.GetIP(r))
	})

	t.Run("X-Forwarded-For takes the leftmost entry", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		r.Header.Set("X-Forwarded-For", "192.0.2.1, 10.0.0.2, 10.0.0.3")
		assert.Equal(t, "192.0.2.1", clientip.GetIP(r))
	})

	t.Run("X-Real-IP is used when higher-priority headers are absent", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		r.Header.Set("X-Real-IP", "192.0.2.9")
		assert.Equal(t, "192.0.2.9", clientip.GetIP(r))
	})

	t.Run("malformed header falls through", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "203.0.113.5:41234"
		r.Header.Set("X-Forwarded-For", "not-an-ip")
		assert.Equal(t, "203.0.113.5", clientip.GetIP(r))
	})

	t.Run("unspecified address is rejected", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "203.0.113.5:41234"
		r.Header.Set("X-Real-IP", "0.0.0.0")
		assert.Equal(t, "203.0.113.5", clientip.GetIP(r))
	})

	t.Run("IPv6 with port", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "[2001:db8::1]:8080"
		assert.Equal(t, "2001:db8::1", clientip.GetIP(r))
	})
}
