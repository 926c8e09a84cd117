package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// GenerateSchemaFile generates a JSON schema file for the configuration.
func GenerateSchemaFile() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	schemaFile := filepath.Join(configDir, "config.schema.json")

	r := new(jsonschema.Reflector)
	schema := r.Reflect(&fileConfig{})
	schema.ID = "https://github.com/bnema/layoutcore/config.schema.json"
	schema.Title = "Layout Core Configuration"
	schema.Description = "Configuration schema for the layout core's gap, border, and default-layout settings"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	return nil
}
