// Package httpapi exposes the heritage orchestrator over HTTP.
//
// The surface is deliberately thin: three POST endpoints mapped one-to-one to
// orchestrator operations, plus a health probe. The consuming layer only ever
// sees the three response classes (ok, degraded, rejected) carried in
// well-formed JSON bodies; a raw upstream or parsing error never crosses this
// boundary. Rejected responses use HTTP 429 so generic clients back off;
// degraded ones stay 200 because they carry renderable fallback content.
package httpapi
