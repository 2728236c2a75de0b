package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/chatty-go/assets"
	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/pkg/filesystem"
	"github.com/doeshing/chatty-go/internal/ports"
)

// FileLoader loads YAML configuration from ~/.chatty/config.yaml
// (overridable via CHATTY_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing config file is seeded from
// the embedded defaults so the first run works against a stock Ollama.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("CHATTY_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".chatty", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:11434"
	}
	if cfg.Preferences.DefaultModel == "" {
		if len(cfg.Models) > 0 {
			cfg.Preferences.DefaultModel = cfg.Models[0].Name
		} else {
			cfg.Preferences.DefaultModel = domain.DefaultModelName
		}
	}
	if cfg.Preferences.DefaultTask == "" {
		cfg.Preferences.DefaultTask = string(domain.TaskGeneral)
	}
	if cfg.Preferences.MaxContextChars == 0 {
		cfg.Preferences.MaxContextChars = domain.DefaultMaxContextChars
	}
	if len(cfg.Models) == 0 {
		cfg.Models = []domain.ModelDefinition{{
			Name:            cfg.Preferences.DefaultModel,
			MaxContextChars: cfg.Preferences.MaxContextChars,
		}}
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
