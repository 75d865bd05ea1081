package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyData      = "data"
	keyDashboard = "dashboard"
	keyLogging   = "logging"
	keyOutput    = "output"
	keyServer    = "server"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A key present in the file replaces that whole section; fields left
// out of the section take their default value, not the value target held.
// Unknown keys are ignored.
func ShallowMergeYAML(target *Config, path string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", path, err)
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying config section %q: %w", key, err)
		}
	}
	return nil
}

// decodeSection decodes node over the default value of the section named key
// and replaces that section of target.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	defaults := New()
	switch key {
	case keyData:
		v := defaults.Data
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Data = v
	case keyDashboard:
		v := defaults.Dashboard
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Dashboard = v
	case keyLogging:
		v := defaults.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyOutput:
		v := defaults.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyServer:
		v := defaults.Server
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Server = v
	}
	return nil
}
