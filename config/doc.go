// Package config loads layered configuration with Viper.
//
// Sources are applied lowest-first: an optional config.yml, an optional
// .env file (via godotenv), the process environment, then explicit
// overrides such as CLI flags. Environment variables are bound to nested
// keys by splitting on underscores, so HUITING_API_URL populates
// huiting.api_url.
//
// # Usage
//
//	var cfg bridge.Config
//	err := config.LoadConfig("mcp-huiting", &cfg, config.WithEnvPrefixes("HUITING_"))
package config
