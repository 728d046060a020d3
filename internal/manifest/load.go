package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the manifest at path.
func Load(path string) (*Application, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return Parse(content, path)
}

// Parse validates manifest content. file is only used in error messages.
func Parse(content []byte, file string) (*Application, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}

	return Validate(raw, file)
}
