// Package client is a resilient caller for the heritage API.
//
// Calls retry transient failures (connectivity errors and 5xx responses)
// with exponential backoff, never retry a 429, and classify terminal
// failures into a small error taxonomy so callers can branch on
// errors.Is instead of inspecting HTTP codes. FetchImage additionally
// degrades to a locally generated placeholder so image slots always
// render:
//
//	c, err := client.New("https://api.example.com")
//	if err != nil {
//		return err
//	}
//	result, err := c.FetchImage(ctx, "Taj Mahal", "white marble mausoleum")
//	// result.ImageRef is usable even when err != nil.
package client
