// Package config loads typed configuration structs from environment variables.
//
// Values come from the process environment, optionally seeded from a .env file
// via github.com/joho/godotenv, and are decoded with github.com/caarlos0/env/v11
// using `env` and `envDefault` struct tags. Each struct type is parsed once per
// process and served from a cache afterwards.
//
//	var cfg email.Config
//	config.MustLoad(&cfg)
package config
