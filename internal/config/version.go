package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 1

// legacyToastKeys are the top-level keys of unversioned configs, which
// held toast options without a "toast" section
var legacyToastKeys = []string{
	"alignment",
	"hideAfterMs",
	"backdrop",
	"backdropColor",
	"dismissOnTap",
	"dragToDismiss",
	"transition",
	"displayMode",
	"showCountdown",
}

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]interface{}) (map[string]interface{}, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// Migration 0 -> 1: move flat toast keys under "toast"
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]interface{}) (map[string]interface{}, error) {
			toast, _ := data["toast"].(map[string]interface{})
			if toast == nil {
				toast = make(map[string]interface{})
			}
			moved := false
			for _, k := range legacyToastKeys {
				v, ok := data[k]
				if !ok {
					continue
				}
				if _, exists := toast[k]; !exists {
					toast[k] = v
				}
				delete(data, k)
				moved = true
			}
			if moved || data["toast"] != nil {
				data["toast"] = toast
			}
			data["version"] = 1
			return data, nil
		},
	},
}

// ParseVersionedConfig parses JSON config data with version migration support
func ParseVersionedConfig(data []byte) (*Config, error) {
	var rawConfig map[string]interface{}
	if err := json.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return decodeVersioned(rawConfig)
}

// ParseVersionedYAML parses YAML config data through the same migrations
func ParseVersionedYAML(data []byte) (*Config, error) {
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if rawConfig == nil {
		rawConfig = make(map[string]interface{})
	}
	return decodeVersioned(rawConfig)
}

func decodeVersioned(rawConfig map[string]interface{}) (*Config, error) {
	// Detect version (0 if not present = legacy config)
	version := 0
	switch v := rawConfig["version"].(type) {
	case float64:
		version = int(v)
	case int:
		version = v
	}

	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}

	if version < CurrentVersion {
		var err error
		rawConfig, err = ApplyMigrations(rawConfig, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	// Re-marshal and unmarshal to get proper types
	migratedData, err := json.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(migratedData, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]interface{}, fromVersion int) (map[string]interface{}, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

// MarshalVersionedConfig serializes a config with version information
func MarshalVersionedConfig(cfg *Config) ([]byte, error) {
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var cfgMap map[string]interface{}
	if err := json.Unmarshal(cfgData, &cfgMap); err != nil {
		return nil, err
	}

	// Add version at the top
	cfgMap["version"] = CurrentVersion

	return json.MarshalIndent(cfgMap, "", "  ")
}
