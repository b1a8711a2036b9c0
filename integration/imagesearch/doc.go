// Package imagesearch implements the image-sourcer provider interface against
// two independent stock-photo search APIs, Unsplash and Pexels. They serve as
// the middle candidates of the image fallback chain, between the generative
// primary provider and the deterministic placeholder terminal.
//
// Both providers classify HTTP failures into the shared resilience taxonomy
// and report ErrNoResults for empty searches, which moves the chain along.
package imagesearch
