package heritage

import "context"

// TextGenerator produces the members of a composite description. One request's
// members run concurrently, so implementations must be safe for concurrent
// use and should honor context cancellation on every call.
type TextGenerator interface {
	GenerateMetadata(ctx context.Context, subject, language string) (Metadata, error)
	GenerateSections(ctx context.Context, subject, language string, focus SectionFocus) ([]Section, error)
	GenerateExperience(ctx context.Context, subject, language string) (string, error)
}

// ImageSourcer is one candidate in the image fallback chain. SourceImage
// returns an image reference (URL or data URI); an empty reference moves the
// chain to the next candidate.
type ImageSourcer interface {
	Name() string
	SourceImage(ctx context.Context, subject, descriptiveContext string) (string, error)
}

// VisionAnalyzer describes uploaded site photographs.
type VisionAnalyzer interface {
	AnalyzeImages(ctx context.Context, images [][]byte, language string) ([]Section, error)
}
