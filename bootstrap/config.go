package bootstrap

import (
	"github.com/kbukum/mcp-huiting/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) satisfies
// GetServiceConfig through the promoted method; it still provides its own
// ApplyDefaults and Validate, calling the embedded ones first.
//
// Example:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Huiting HuitingConfig `yaml:"huiting" mapstructure:"huiting"`
//	}
//
//	app, err := bootstrap.NewApp[*Config](&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
