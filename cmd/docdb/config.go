package main

import (
	"os"

	"github.com/fwojciec/docdb"
	"gopkg.in/yaml.v3"
)

// Settings is the content of the YAML configuration file. Engine settings
// sit at the top level next to the program settings.
type Settings struct {
	// Name of the documentation set, reported by the MCP server and used in
	// prompts.
	Name string `yaml:"name"`

	// Gemini model for the ask command.
	Model string `yaml:"model"`

	docdb.Config `yaml:",inline"`
}

// LoadConfig reads the configuration file at path over the defaults. An
// empty path returns the defaults.
func LoadConfig(path string) (*Settings, error) {
	settings := &Settings{Config: docdb.DefaultConfig()}
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, docdb.Errorf(docdb.EINVALID, "read config: %v", err)
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, docdb.Errorf(docdb.EINVALID, "parse config %s: %v", path, err)
	}
	if err := settings.Config.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
