// Package secrets loads SOPS-encrypted build arguments.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getsops/sops/v3/decrypt"
	"gopkg.in/yaml.v3"
)

// decryptFile is replaced in tests.
var decryptFile = decrypt.File

// format returns the sops store format for path.
func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// LoadBuildArgs decrypts a SOPS-encrypted YAML or JSON file and returns its
// top-level map. Values must be scalars or null.
func LoadBuildArgs(path string) (map[string]any, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("secrets file: %w", err)
	}

	plain, err := decryptFile(path, format(path))
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", path, err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(plain, &values); err != nil {
		return nil, fmt.Errorf("parse decrypted %s: %w", path, err)
	}

	var invalid []string
	for k, v := range values {
		switch v.(type) {
		case map[string]any, []any:
			invalid = append(invalid, k)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, fmt.Errorf("%s: build arguments must be scalar values: %s", path, strings.Join(invalid, ", "))
	}

	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

// Resolve returns the secrets path relative to appDir. Absolute paths are
// returned unchanged.
func Resolve(appDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(appDir, path)
}
