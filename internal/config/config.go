// Package config loads the optional settings file. Missing values are
// filled with defaults by the caller's normalize step.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Settings struct {
	CatalogPath     string `yaml:"catalog"`
	ChaptersDir     string `yaml:"chapters_dir"`
	PDFDir          string `yaml:"pdf_dir"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	UserAgent       string `yaml:"user_agent"`
	Headless        *bool  `yaml:"headless"`
	BlockImages     *bool  `yaml:"block_images"`
	MinDelaySeconds int    `yaml:"min_delay_seconds"`
	MaxDelaySeconds int    `yaml:"max_delay_seconds"`
	Debug           bool   `yaml:"debug"`
}

func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func Marshal(s Settings) ([]byte, error) {
	return yaml.Marshal(s)
}
