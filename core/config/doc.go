// Package config provides type-safe environment variable loading with
// per-type caching. The first Load picks up .env files, then caarlos0/env
// parses the struct tags; each configuration type is parsed once per
// process, so every component that loads the same type sees the same
// values.
//
//	type redisConfig struct {
//		URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
//	}
//
//	var cfg redisConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package config
