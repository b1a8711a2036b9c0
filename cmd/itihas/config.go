package main

import (
	"github.com/ravigohel142996/itihas-heritage-assistant/core/heritage"
	"github.com/ravigohel142996/itihas-heritage-assistant/core/server"
	redisconn "github.com/ravigohel142996/itihas-heritage-assistant/integration/database/redis"
)

type appConfig struct {
	Heritage heritage.Config
	Server   server.Config
	Redis    redisconn.Config

	AppName  string `env:"APP_NAME" envDefault:"itihas"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// RedisEnabled switches the rate limiter and caches from in-process
	// structures to shared Redis, for multi-instance deployments.
	RedisEnabled bool `env:"REDIS_ENABLED" envDefault:"false"`

	// Provider credentials. Any of these may be empty: the orchestrator
	// degrades the affected endpoints instead of refusing to start.
	GeminiAPIKey   string `env:"GEMINI_API_KEY" envDefault:""`
	OpenAIAPIKey   string `env:"OPENAI_API_KEY" envDefault:""`
	UnsplashAPIKey string `env:"UNSPLASH_ACCESS_KEY" envDefault:""`
	PexelsAPIKey   string `env:"PEXELS_API_KEY" envDefault:""`
}
