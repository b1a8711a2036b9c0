// Package heritage is the request orchestrator for the heritage assistant.
//
// Every endpoint walks the same state machine: rate check, cache check,
// upstream resolution, cache write. Upstream resolution is a retried
// all-or-nothing fan-out for composite text generation and an ordered
// fallback chain for image sourcing. Failures never cross the boundary as
// errors: admission denials and exhausted budgets become well-formed degraded
// payloads with a machine-readable reason.
//
//	orch := heritage.New(cfg, limiter,
//		heritage.WithTextGenerator(gemini),
//		heritage.WithVisionAnalyzer(gemini),
//		heritage.WithImageSourcers(gemini, unsplash, pexels),
//		heritage.WithLogger(log),
//	)
//
//	result := orch.FetchComposite(ctx, clientIP, "Taj Mahal", "English")
//	switch result.Status {
//	case heritage.StatusOK:        // live or cached content
//	case heritage.StatusDegraded:  // fallback content, result.Reason says why
//	case heritage.StatusRejected:  // rate limited
//	}
package heritage
