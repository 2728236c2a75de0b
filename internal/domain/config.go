package domain

import "time"

// Config mirrors ~/.chatty/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Server              ServerSettings    `yaml:"server"`
	Models              []ModelDefinition `yaml:"models"`
	Benchmark           BenchmarkSettings `yaml:"benchmark"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel    string `yaml:"default_model"`
	DefaultTask     string `yaml:"default_task"`
	Stream          *bool  `yaml:"stream,omitempty"`
	MaxContextChars int    `yaml:"max_context_chars"`
}

// StreamEnabled reports the streaming preference; unset means streaming on.
func (p Preferences) StreamEnabled() bool {
	if p.Stream == nil {
		return true
	}
	return *p.Stream
}

// ServerSettings describes the local inference endpoint and its timeouts.
type ServerSettings struct {
	BaseURL               string `yaml:"base_url"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout"`
	TotalTimeoutSeconds   int    `yaml:"total_timeout"`
}

// ConnectTimeout returns the dial timeout with default fallback.
func (s ServerSettings) ConnectTimeout() time.Duration {
	if s.ConnectTimeoutSeconds <= 0 {
		return DefaultConnectTimeout
	}
	return time.Duration(s.ConnectTimeoutSeconds) * time.Second
}

// TotalTimeout returns the whole-response deadline with default fallback.
func (s ServerSettings) TotalTimeout() time.Duration {
	if s.TotalTimeoutSeconds <= 0 {
		return DefaultTotalTimeout
	}
	return time.Duration(s.TotalTimeoutSeconds) * time.Second
}

// ModelDefinition describes one entry of the model allow-list.
type ModelDefinition struct {
	Name            string `yaml:"name"`
	MaxContextChars int    `yaml:"max_context_chars"`
}

// BenchmarkSettings controls benchmark recording.
type BenchmarkSettings struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// FindModel looks up a model by name on the allow-list.
func (c Config) FindModel(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}
