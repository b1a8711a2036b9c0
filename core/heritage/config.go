package heritage

import (
	"time"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/ratelimiter"
)

// Config tunes the orchestrator. The per-endpoint rate limits differ because
// the upstream cost differs, not the algorithm: a composite generation is four
// model calls, an analysis is a vision call over several images.
type Config struct {
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	CacheCapacity int           `env:"CACHE_CAPACITY" envDefault:"1000"`

	TextTimeout   time.Duration `env:"TEXT_TIMEOUT" envDefault:"15s"`
	VisionTimeout time.Duration `env:"VISION_TIMEOUT" envDefault:"20s"`

	MaxAttempts    int           `env:"MAX_ATTEMPTS" envDefault:"2"`
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY" envDefault:"500ms"`

	RateWindow     time.Duration `env:"RATE_WINDOW" envDefault:"60s"`
	CompositeLimit int           `env:"COMPOSITE_RATE_LIMIT" envDefault:"10"`
	ImageLimit     int           `env:"IMAGE_RATE_LIMIT" envDefault:"5"`
	AnalysisLimit  int           `env:"ANALYSIS_RATE_LIMIT" envDefault:"3"`
}

// EndpointLimits expands the config into per-endpoint window configurations
// for the rate limiter.
func (c Config) EndpointLimits() map[string]ratelimiter.Config {
	return map[string]ratelimiter.Config{
		EndpointComposite: {Limit: c.CompositeLimit, Window: c.RateWindow},
		EndpointImage:     {Limit: c.ImageLimit, Window: c.RateWindow},
		EndpointAnalysis:  {Limit: c.AnalysisLimit, Window: c.RateWindow},
	}
}
