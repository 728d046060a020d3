// Package config resolves application directory layout and tool settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jarthianur/theia-builder/internal/manifest"
)

const (
	// PackageFile is the merged package descriptor written into the application directory.
	PackageFile = "package.json"

	// Dockerfile is the composed build file written into the application directory.
	Dockerfile = "Dockerfile"

	// OverrideModule is the application's own module directory, merged last.
	OverrideModule = "module"
)

// Layout holds the directories a prepare or build run works on.
type Layout struct {
	// AppDir is the application directory (contains application.yaml).
	AppDir string

	// ModuleDir is the builder root containing modules/ and base/.
	ModuleDir string
}

// NewLayout resolves appDir and moduleDir to absolute paths.
// moduleDir defaults to the parent of appDir.
func NewLayout(appDir, moduleDir string) (*Layout, error) {
	absApp, err := filepath.Abs(appDir)
	if err != nil {
		return nil, fmt.Errorf("resolve application directory: %w", err)
	}
	if err := requireDir(absApp); err != nil {
		return nil, fmt.Errorf("application directory: %w", err)
	}

	if moduleDir == "" {
		moduleDir = filepath.Dir(absApp)
	}
	absModules, err := filepath.Abs(moduleDir)
	if err != nil {
		return nil, fmt.Errorf("resolve module directory: %w", err)
	}
	if err := requireDir(absModules); err != nil {
		return nil, fmt.Errorf("module directory: %w", err)
	}

	return &Layout{AppDir: absApp, ModuleDir: absModules}, nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// ManifestFile returns the path to application.yaml.
func (l *Layout) ManifestFile() string {
	return filepath.Join(l.AppDir, manifest.FileName)
}

// ModulesDir returns the directory holding the available modules.
func (l *Layout) ModulesDir() string {
	return filepath.Join(l.ModuleDir, "modules")
}

// ModulePath returns the directory of a named module.
func (l *Layout) ModulePath(name string) string {
	return filepath.Join(l.ModulesDir(), name)
}

// BaseDir returns the directory holding the base templates.
func (l *Layout) BaseDir() string {
	return filepath.Join(l.ModuleDir, "base")
}

// OverrideDir returns the application's local override module directory.
func (l *Layout) OverrideDir() string {
	return filepath.Join(l.AppDir, OverrideModule)
}

// PackageFile returns the output path of the merged package descriptor.
func (l *Layout) PackageFile() string {
	return filepath.Join(l.AppDir, PackageFile)
}

// DockerfileFile returns the output path of the composed Dockerfile.
func (l *Layout) DockerfileFile() string {
	return filepath.Join(l.AppDir, Dockerfile)
}
