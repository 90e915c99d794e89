// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use (github.com/joho/godotenv) and
// parses struct fields with github.com/caarlos0/env/v11:
//
//	type Config struct {
//		Secret string        `env:"JWT_SECRET,required"`
//		TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Nested structs are parsed recursively, so component configs compose into
// an application config without extra wiring.
package config
