package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/partsim/internal/scene"
)

const (
	DefaultDt       = 0.016
	DefaultDuration = 10.0
)

type Config struct {
	Scene       string      `yaml:"scene"`
	Dt          float64     `yaml:"dt"`
	Duration    float64     `yaml:"duration"`
	MaxContacts int         `yaml:"max_contacts"`
	Iterations  int         `yaml:"iterations"`
	Params      SceneParams `yaml:"params"`
}

type SceneParams struct {
	Mass        float64 `yaml:"mass"`
	Damping     float64 `yaml:"damping"`
	GravityY    float64 `yaml:"gravity_y"`
	Restitution float64 `yaml:"restitution"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:    "cube",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SceneParams converts the yaml view into scene construction
// parameters.
func (c *Config) SceneParams() scene.Params {
	return scene.Params{
		Mass:        c.Params.Mass,
		Damping:     c.Params.Damping,
		GravityY:    c.Params.GravityY,
		Restitution: c.Params.Restitution,
		MaxContacts: c.MaxContacts,
		Iterations:  c.Iterations,
	}
}
