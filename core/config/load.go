package config

import (
	"errors"
	"fmt"
	"io/fs"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := ioutil.ReadFile(filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, err
	}
	out.configurationDir = path

	if err := out.Validate(); err != nil {
		return nil, err
	}

	return &out, nil
}

// LoadOrDefault loads the configuration from the directory, falling back to
// the compiled-in defaults when no config.yaml exists there.
func LoadOrDefault(path string) (*Configuration, error) {
	out, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	return out, err
}

// Initialize writes the default configuration into the directory so it can
// be edited. Existing configurations aren't overwritten.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(path, ConfigurationName)
	if _, err := os.Stat(configPath); err == nil {
		return nil, fmt.Errorf("a configuration already exists at %s", configPath)
	}

	if err := ioutil.WriteFile(configPath, defaultConfigData, 0644); err != nil {
		return nil, err
	}
	logger.Printf("wrote %s", configPath)

	return Load(path)
}
