// Package clientip extracts real client IP addresses from HTTP requests.
//
// The extracted IP is the system's client identity: it keys rate-limit windows
// and nothing else, so no PII is retained beyond process memory. Proxy headers
// are checked in priority order before falling back to the socket address:
//
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry, the original client)
//  4. X-Real-IP (nginx and other proxies)
//  5. RemoteAddr (direct connection)
//
// All candidates are validated and normalized with net.ParseIP; malformed
// headers are skipped and 0.0.0.0 is rejected. GetIP never panics and always
// returns a string, degrading to the raw RemoteAddr when nothing validates.
//
// These headers are client-supplied and a direct caller can spoof them. That
// is a known limitation accepted for rate-limit bucketing; do not use the
// result for authentication decisions.
//
//	key := clientip.GetIP(r)
//	result, err := limiter.Allow(r.Context(), key, "composite")
package clientip
