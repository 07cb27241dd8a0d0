package config

import (
	"github.com/creasty/defaults"
)

type Server struct {
	HTTPPort   int    `default:"8000" validate:"min=1,max=65535"`
	ServerMode string `default:"dev" validate:"oneof=dev prod"`
}

type Auth struct {
	Enabled bool `default:"false"`
	// SecretFile holds the HS256 key used to verify bearer tokens.
	SecretFile string
}

type Store struct {
	// Path of the DuckDB table registry. ":memory:" keeps it in memory.
	Path string `default:":memory:" validate:"required"`
}

// Translator holds the defaults applied to tables that are not registered.
type Translator struct {
	Flavor          string `default:"mssql" validate:"oneof=mssql sqlite"`
	Schema          string `default:"dbo"`
	ParameterPrefix string `default:"p" validate:"omitempty,alphanum"`
	ResultLimit     int64  `default:"0" validate:"min=0"`
	SoftDelete      bool   `default:"false"`
	OffsetFetch     bool   `default:"false"`
	// Workers bounds the concurrent translations of one batch.
	Workers int `default:"4" validate:"min=1"`
}

type Configuration struct {
	Server     Server
	Auth       Auth
	Store      Store
	Translator Translator
	LogLevel   string `default:"info" validate:"oneof=debug info warn error"`
	LogFormat  string `default:"console" validate:"oneof=console json"`
}

type ConfigurationOption func(*Configuration)

func WithHTTPPort(port int) ConfigurationOption {
	return func(c *Configuration) {
		c.Server.HTTPPort = port
	}
}

func WithStorePath(path string) ConfigurationOption {
	return func(c *Configuration) {
		c.Store.Path = path
	}
}

func WithFlavor(flavor string) ConfigurationOption {
	return func(c *Configuration) {
		c.Translator.Flavor = flavor
	}
}

func NewConfigurationWithOptions(opts ...ConfigurationOption) *Configuration {
	c := &Configuration{}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewConfigurationWithOptionsAndDefaults sets the tag defaults and then
// applies opts.
func NewConfigurationWithOptionsAndDefaults(opts ...ConfigurationOption) *Configuration {
	c := &Configuration{}
	defaults.MustSet(c)
	for _, o := range opts {
		o(c)
	}
	return c
}
