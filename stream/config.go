package stream

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the file form of the construction options.
type Config struct {
	// Limit is the maximum number of identifiers; nil means unbounded.
	Limit *int `yaml:"limit" json:"limit"`
}

// LoadConfig reads a JSON or YAML file (by extension). An empty path returns
// the zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	default:
		return Config{}, fmt.Errorf("unsupported config extension %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Options() []Option {
	if c.Limit == nil {
		return nil
	}
	return []Option{WithLimit(*c.Limit)}
}
