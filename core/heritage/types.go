package heritage

// Endpoint names used for rate-limit bucketing and cache key prefixes.
const (
	EndpointComposite = "composite"
	EndpointImage     = "image"
	EndpointAnalysis  = "analysis"
)

// Status classifies every response the orchestrator produces. The UI layer
// only ever sees these three classes, never a raw error.
type Status string

const (
	// StatusOK carries a live or cached upstream result.
	StatusOK Status = "ok"
	// StatusDegraded carries fallback content with a machine-readable reason.
	StatusDegraded Status = "degraded"
	// StatusRejected is the admission-denied outcome.
	StatusRejected Status = "rejected"
)

// Reason explains a degraded or rejected response so the consumer can render
// an honest, non-fatal message.
type Reason string

const (
	ReasonRateLimited       Reason = "rate_limited"
	ReasonUpstreamExhausted Reason = "upstream_exhausted"
	ReasonNoCredentials     Reason = "no_credentials"
)

// ServedFrom reports where a payload came from.
type ServedFrom string

const (
	ServedFromCache    ServedFrom = "cache"
	ServedFromLive     ServedFrom = "live"
	ServedFromFallback ServedFrom = "fallback"
)

// Metadata is the short factual header of a heritage subject.
type Metadata struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	Period       string `json:"period"`
	Significance string `json:"significance"`
}

// Section is one titled block of generated content.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SectionFocus selects which aspect of a subject a section generation covers.
type SectionFocus string

const (
	FocusNarrative SectionFocus = "narrative"
	FocusVisual    SectionFocus = "visual"
)

// Composite is the full generated description of one subject. All members are
// produced in one fan-out so the composite stays internally consistent.
type Composite struct {
	Metadata          Metadata  `json:"metadata"`
	NarrativeSections []Section `json:"narrative_sections"`
	VisualSections    []Section `json:"visual_sections"`
	VisualExperience  string    `json:"visual_experience"`
}

// CompositeResult is the composite endpoint's response envelope.
type CompositeResult struct {
	Composite
	ServedFrom ServedFrom `json:"served_from"`
	Status     Status     `json:"status"`
	Reason     Reason     `json:"reason,omitempty"`
}

// ImageResult is the image endpoint's response envelope. Provider reports
// provenance: which chain candidate produced the reference.
type ImageResult struct {
	ImageRef   string     `json:"image_ref"`
	Provider   string     `json:"provider"`
	ServedFrom ServedFrom `json:"served_from"`
	Status     Status     `json:"status"`
	Reason     Reason     `json:"reason,omitempty"`
}

// AnalysisResult is the image-analysis endpoint's response envelope.
type AnalysisResult struct {
	Sections   []Section  `json:"sections"`
	ServedFrom ServedFrom `json:"served_from"`
	Status     Status     `json:"status"`
	Reason     Reason     `json:"reason,omitempty"`
}
