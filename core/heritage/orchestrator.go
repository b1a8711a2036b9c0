package heritage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/cache"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/logger"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/ratelimiter"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/resilience"
	"github.com/ravigohel142996/itihas-heritage-assistant/pkg/placeholder"
)

// Fan-out member roles. Results are keyed by role, never by completion order.
const (
	roleMetadata   = "metadata"
	roleNarrative  = "narrative"
	roleVisual     = "visual"
	roleExperience = "experience"
)

// SourcedImage is an image reference together with its provenance.
type SourcedImage struct {
	Ref      string `json:"ref"`
	Provider string `json:"provider"`
}

// Orchestrator composes the resilience primitives per endpoint: admission
// check, cache lookup, upstream resolution (retried fan-out or fallback
// chain), cache write. Every dependency is injected; there is no package
// state, so tests and tenants get isolated instances.
type Orchestrator struct {
	cfg     Config
	limiter *ratelimiter.Limiter

	composites cache.Store[Composite]
	images     cache.Store[SourcedImage]
	analyses   cache.Store[[]Section]

	text     TextGenerator
	vision   VisionAnalyzer
	sourcers []ImageSourcer

	logger *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTextGenerator wires the generative-text provider. Leaving it unset makes
// composite requests degrade with ReasonNoCredentials.
func WithTextGenerator(g TextGenerator) Option {
	return func(o *Orchestrator) {
		o.text = g
	}
}

// WithVisionAnalyzer wires the image-analysis provider. Leaving it unset makes
// analysis requests degrade with ReasonNoCredentials.
func WithVisionAnalyzer(v VisionAnalyzer) Option {
	return func(o *Orchestrator) {
		o.vision = v
	}
}

// WithImageSourcers sets the ordered image fallback chain. The deterministic
// placeholder terminal is appended automatically and must not be supplied.
func WithImageSourcers(sourcers ...ImageSourcer) Option {
	return func(o *Orchestrator) {
		o.sourcers = sourcers
	}
}

// WithCompositeCache replaces the default in-memory composite cache.
func WithCompositeCache(store cache.Store[Composite]) Option {
	return func(o *Orchestrator) {
		if store != nil {
			o.composites = store
		}
	}
}

// WithImageCache replaces the default in-memory image cache.
func WithImageCache(store cache.Store[SourcedImage]) Option {
	return func(o *Orchestrator) {
		if store != nil {
			o.images = store
		}
	}
}

// WithAnalysisCache replaces the default in-memory analysis cache.
func WithAnalysisCache(store cache.Store[[]Section]) Option {
	return func(o *Orchestrator) {
		if store != nil {
			o.analyses = store
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an orchestrator over the given admission limiter. Caches default
// to bounded in-memory LRU stores sized by cfg.CacheCapacity.
func New(cfg Config, limiter *ratelimiter.Limiter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:        cfg,
		limiter:    limiter,
		composites: cache.NewLRUCache[Composite](cfg.CacheCapacity),
		images:     cache.NewLRUCache[SourcedImage](cfg.CacheCapacity),
		analyses:   cache.NewLRUCache[[]Section](cfg.CacheCapacity),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// FetchComposite resolves the full description of a subject: metadata,
// narrative sections, visual sections, and the visual-experience descriptor,
// generated as one all-or-nothing fan-out and retried as a unit.
func (o *Orchestrator) FetchComposite(ctx context.Context, clientID, subject, language string) CompositeResult {
	start := time.Now()
	subject = normalizeSubject(subject)
	language = normalizeLanguage(language)

	if !o.admit(ctx, clientID, EndpointComposite) {
		return degradedComposite(subject, StatusRejected, ReasonRateLimited)
	}

	key := cacheKey(EndpointComposite, subject, language)
	if cached, ok := o.composites.Get(ctx, key); ok {
		o.logger.DebugContext(ctx, "composite cache hit", logger.Endpoint(EndpointComposite), logger.CacheHit(true))
		return CompositeResult{Composite: cached, ServedFrom: ServedFromCache, Status: StatusOK}
	}

	if o.text == nil {
		return degradedComposite(subject, StatusDegraded, ReasonNoCredentials)
	}

	ops := map[string]resilience.Operation[any]{
		roleMetadata: func(ctx context.Context) (any, error) {
			return o.text.GenerateMetadata(ctx, subject, language)
		},
		roleNarrative: func(ctx context.Context) (any, error) {
			return o.generateSections(ctx, subject, language, FocusNarrative)
		},
		roleVisual: func(ctx context.Context) (any, error) {
			return o.generateSections(ctx, subject, language, FocusVisual)
		},
		roleExperience: func(ctx context.Context) (any, error) {
			return o.text.GenerateExperience(ctx, subject, language)
		},
	}

	results, err := resilience.Retry(ctx, o.cfg.MaxAttempts, o.cfg.RetryBaseDelay,
		func(ctx context.Context) (map[string]any, error) {
			return resilience.FanOut(ctx, o.cfg.TextTimeout, ops)
		})
	if err != nil {
		o.logger.WarnContext(ctx, "composite generation exhausted",
			logger.Endpoint(EndpointComposite), logger.Error(err), logger.Elapsed(start))
		return degradedComposite(subject, StatusDegraded, ReasonUpstreamExhausted)
	}

	composite := Composite{
		Metadata:          results[roleMetadata].(Metadata),
		NarrativeSections: results[roleNarrative].([]Section),
		VisualSections:    results[roleVisual].([]Section),
		VisualExperience:  results[roleExperience].(string),
	}
	o.composites.Set(ctx, key, composite, o.cfg.CacheTTL)

	o.logger.InfoContext(ctx, "composite resolved live",
		logger.Endpoint(EndpointComposite), logger.CacheHit(false), logger.Elapsed(start))
	return CompositeResult{Composite: composite, ServedFrom: ServedFromLive, Status: StatusOK}
}

// FetchImage resolves an image reference for a subject through the ordered
// fallback chain. Each candidate gets one deadline-bounded attempt; the chain
// always terminates in the placeholder generator, so a reference is always
// returned.
func (o *Orchestrator) FetchImage(ctx context.Context, clientID, subject, descriptiveContext string) ImageResult {
	subject = normalizeSubject(subject)
	descriptiveContext = strings.TrimSpace(descriptiveContext)

	if !o.admit(ctx, clientID, EndpointImage) {
		return ImageResult{
			ImageRef:   placeholder.ImageURI(subject),
			Provider:   placeholder.Name,
			ServedFrom: ServedFromFallback,
			Status:     StatusRejected,
			Reason:     ReasonRateLimited,
		}
	}

	key := cacheKey(EndpointImage, subject, descriptiveContext)
	if cached, ok := o.images.Get(ctx, key); ok {
		return ImageResult{ImageRef: cached.Ref, Provider: cached.Provider, ServedFrom: ServedFromCache, Status: StatusOK}
	}

	chain := o.imageChain(subject, descriptiveContext)
	image, providerUsed, err := chain.Resolve(ctx)
	if err != nil {
		// Unreachable while the placeholder terminal holds, but never panic.
		o.logger.ErrorContext(ctx, "image chain returned no result", logger.Error(err))
		image = SourcedImage{Ref: placeholder.ImageURI(subject), Provider: placeholder.Name}
		providerUsed = placeholder.Name
	}

	if providerUsed == placeholder.Name {
		// Placeholders are cheap and pure; caching one would hide recovery of
		// the real providers for a whole TTL.
		return ImageResult{ImageRef: image.Ref, Provider: image.Provider, ServedFrom: ServedFromFallback, Status: StatusOK}
	}

	o.images.Set(ctx, key, image, o.cfg.CacheTTL)
	return ImageResult{ImageRef: image.Ref, Provider: image.Provider, ServedFrom: ServedFromLive, Status: StatusOK}
}

// AnalyzeImages describes up to five uploaded photographs in the requested
// language. The image list is truncated to the cap, never rejected.
func (o *Orchestrator) AnalyzeImages(ctx context.Context, clientID string, images [][]byte, language string) AnalysisResult {
	language = normalizeLanguage(language)
	if len(images) > maxImages {
		images = images[:maxImages]
	}

	if !o.admit(ctx, clientID, EndpointAnalysis) {
		return degradedAnalysis(StatusRejected, ReasonRateLimited)
	}

	key := cacheKey(EndpointAnalysis, imagesFingerprint(images), language)
	if cached, ok := o.analyses.Get(ctx, key); ok {
		return AnalysisResult{Sections: cached, ServedFrom: ServedFromCache, Status: StatusOK}
	}

	if o.vision == nil {
		return degradedAnalysis(StatusDegraded, ReasonNoCredentials)
	}

	sections, err := resilience.Retry(ctx, o.cfg.MaxAttempts, o.cfg.RetryBaseDelay,
		func(ctx context.Context) ([]Section, error) {
			return resilience.Invoke(ctx, o.cfg.VisionTimeout, func(ctx context.Context) ([]Section, error) {
				s, err := o.vision.AnalyzeImages(ctx, images, language)
				if err != nil {
					return nil, err
				}
				if len(s) == 0 {
					return nil, resilience.ErrEmptyResult
				}
				return s, nil
			})
		})
	if err != nil {
		o.logger.WarnContext(ctx, "image analysis exhausted",
			logger.Endpoint(EndpointAnalysis), logger.Error(err))
		return degradedAnalysis(StatusDegraded, ReasonUpstreamExhausted)
	}

	o.analyses.Set(ctx, key, sections, o.cfg.CacheTTL)
	return AnalysisResult{Sections: sections, ServedFrom: ServedFromLive, Status: StatusOK}
}

// admit runs the rate check. Storage failures fail open with a warning:
// serving an uncounted request beats refusing a legitimate one because Redis
// blinked.
func (o *Orchestrator) admit(ctx context.Context, clientID, endpoint string) bool {
	result, err := o.limiter.Allow(ctx, clientID, endpoint)
	if err != nil {
		o.logger.WarnContext(ctx, "rate limiter unavailable, failing open",
			logger.Endpoint(endpoint), logger.Error(err))
		return true
	}
	return result.Allowed
}

// generateSections wraps section generation with the non-empty check that
// moves an empty answer into the retriable error class.
func (o *Orchestrator) generateSections(ctx context.Context, subject, language string, focus SectionFocus) ([]Section, error) {
	sections, err := o.text.GenerateSections(ctx, subject, language, focus)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, resilience.ErrEmptyResult
	}
	return sections, nil
}

// imageChain assembles the per-request fallback chain: configured sourcers in
// order, then the placeholder terminal.
func (o *Orchestrator) imageChain(subject, descriptiveContext string) *resilience.Chain[SourcedImage] {
	providers := make([]resilience.Provider[SourcedImage], 0, len(o.sourcers)+1)
	for _, s := range o.sourcers {
		providers = append(providers, resilience.Provider[SourcedImage]{
			Name: s.Name(),
			Fetch: func(ctx context.Context) (SourcedImage, error) {
				ref, err := s.SourceImage(ctx, subject, descriptiveContext)
				if err != nil {
					return SourcedImage{}, err
				}
				return SourcedImage{Ref: ref, Provider: s.Name()}, nil
			},
			Usable: func(v SourcedImage) bool { return v.Ref != "" },
		})
	}
	providers = append(providers, resilience.Provider[SourcedImage]{
		Name: placeholder.Name,
		Fetch: func(ctx context.Context) (SourcedImage, error) {
			return SourcedImage{Ref: placeholder.ImageURI(subject), Provider: placeholder.Name}, nil
		},
	})

	return resilience.NewChain(o.cfg.VisionTimeout, providers, resilience.WithChainLogger[SourcedImage](o.logger))
}
