// Package config fills tagged structs from environment variables using
// github.com/caarlos0/env/v11.
//
// A .env file in the working directory is loaded once, before the first
// parse, through github.com/joho/godotenv. Variables already present in the
// process environment win over the file.
//
// Load caches the parsed value per struct type so that every component asking
// for the same configuration sees the same values:
//
//	type HTTPConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg HTTPConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Parse skips the cache, which is what tests and CLI commands that override
// variables between runs want.
package config
