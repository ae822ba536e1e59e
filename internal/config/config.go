package config

import (
	"fmt"
	"strings"

	"github.com/esrun/esrun/internal/common"
	"github.com/esrun/esrun/internal/header"
	"github.com/esrun/esrun/internal/httpc"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// HeaderConfig is a default request header applied to every statement.
type HeaderConfig struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Value string `mapstructure:"value" yaml:"value"`
}

// ClientConfig holds explicit TLS client options.
type ClientConfig struct {
	Insecure      bool   `mapstructure:"insecure" yaml:"insecure"`
	MinTLSVersion string `mapstructure:"min_tls_version" yaml:"min_tls_version"`
	MaxTLSVersion string `mapstructure:"max_tls_version" yaml:"max_tls_version"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level"`   // error, warn, info, debug
	Format        string `mapstructure:"format" yaml:"format"` // text, json
	MaskSensitive *bool  `mapstructure:"mask_sensitive" yaml:"mask_sensitive"`
}

// StoreConfig configures the optional run history database.
type StoreConfig struct {
	Disabled         bool   `mapstructure:"disabled" yaml:"disabled"`
	Path             string `mapstructure:"path" yaml:"path"`
	SaveResponseBody bool   `mapstructure:"save_response_body" yaml:"save_response_body"`
}

// ToolsConfig locates the external post-processing tools.
type ToolsConfig struct {
	JQ    string `mapstructure:"jq" yaml:"jq"`
	Shell string `mapstructure:"shell" yaml:"shell"`
}

// Config is the process-wide configuration passed into the pipeline at
// invocation time. It is built once and never mutated afterwards.
type Config struct {
	URL     string            `mapstructure:"url" yaml:"url"`
	Method  string            `mapstructure:"method" yaml:"method"`
	Headers []HeaderConfig    `mapstructure:"headers" yaml:"headers"`
	Vars    map[string]string `mapstructure:"vars" yaml:"vars"`
	Client  ClientConfig      `mapstructure:"client" yaml:"client"`
	Logging LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	Store   StoreConfig       `mapstructure:"store" yaml:"store"`
	Tools   ToolsConfig       `mapstructure:"tools" yaml:"tools"`
}

// Default returns the built-in defaults: a local search cluster, GET, and
// tools resolved from PATH.
func Default() Config {
	return Config{
		URL:    "http://localhost:9200/_search",
		Method: "GET",
		Tools:  ToolsConfig{JQ: "jq", Shell: "sh"},
	}
}

// Load reads a YAML config file into a Config, applying defaults for absent
// keys. Environment variables with the ESRUN_ prefix override file values.
func Load(path string) (Config, error) {
	cfg := Default()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ESRUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv is only consulted for keys viper already knows about, so
	// every scalar key needs a default for ESRUN_ overrides to apply even
	// when the key is absent from the file.
	defaults := map[string]any{
		"url":                      cfg.URL,
		"method":                   cfg.Method,
		"client.insecure":          false,
		"client.min_tls_version":   "",
		"client.max_tls_version":   "",
		"logging.level":            "",
		"logging.format":           "",
		"store.disabled":           false,
		"store.path":               "",
		"store.save_response_body": false,
		"tools.jq":                 cfg.Tools.JQ,
		"tools.shell":              cfg.Tools.Shell,
	}
	for key, def := range defaults {
		v.SetDefault(key, def)
	}
	// mask_sensitive is tri-state (*bool), so a default would force it on or
	// off; bind the env var without one.
	_ = v.BindEnv("logging.mask_sensitive")

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	decodeOpts := []viper.DecoderConfigOption{
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		)),
		// env values arrive as strings, including booleans
		func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true },
	}
	if err := v.Unmarshal(&cfg, decodeOpts...); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	if strings.TrimSpace(cfg.Tools.JQ) == "" {
		cfg.Tools.JQ = "jq"
	}
	if strings.TrimSpace(cfg.Tools.Shell) == "" {
		cfg.Tools.Shell = "sh"
	}
	return cfg, nil
}

// DefaultHeaders converts configured headers into parser pairs, keeping order.
func (c Config) DefaultHeaders() []header.Pair {
	pairs := make([]header.Pair, 0, len(c.Headers))
	for _, h := range c.Headers {
		name := strings.TrimSpace(h.Name)
		if name == "" {
			continue
		}
		pairs = append(pairs, header.Pair{Name: name, Value: strings.TrimSpace(h.Value)})
	}
	return pairs
}

// Httpc builds the HTTP client factory for these client options.
func (c Config) Httpc() *httpc.Httpc {
	return &httpc.Httpc{
		TlsConfig: httpc.FromOptions(c.Client.Insecure, c.Client.MinTLSVersion, c.Client.MaxTLSVersion),
	}
}

// SetupLogger builds the process logger from the logging section.
func (c Config) SetupLogger() *common.Logger {
	level := common.ParseLogLevel(c.Logging.Level)

	var logger *common.Logger
	if strings.EqualFold(strings.TrimSpace(c.Logging.Format), "json") {
		logger = common.NewJSONLogger(level)
	} else {
		logger = common.NewLogger(level)
	}
	if c.Logging.MaskSensitive != nil {
		logger.SetMasking(*c.Logging.MaskSensitive)
	}
	return logger
}
