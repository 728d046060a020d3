package prepare

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jarthianur/theia-builder/internal/config"
	"github.com/jarthianur/theia-builder/internal/fileutil"
	"github.com/jarthianur/theia-builder/internal/manifest"
)

// DescriptorFile is the per-module dependency descriptor.
const DescriptorFile = "package.json"

// FragmentFile is the per-module Dockerfile fragment.
const FragmentFile = "Dockerfile"

// Module is a contributor of dependencies and Dockerfile fragments.
type Module struct {
	Name string
	Dir  string

	// Local marks the application's override module.
	Local bool
}

// Modules returns the modules of app in merge order: manifest order, then the
// application's override module.
func Modules(layout *config.Layout, app *manifest.Application) []Module {
	modules := make([]Module, 0, len(app.Modules)+1)
	for _, name := range app.Modules {
		modules = append(modules, Module{Name: name, Dir: layout.ModulePath(name)})
	}
	return append(modules, Module{
		Name:  config.OverrideModule,
		Dir:   layout.OverrideDir(),
		Local: true,
	})
}

// DescriptorPath returns the module's package.json path.
func (m Module) DescriptorPath() string {
	return filepath.Join(m.Dir, DescriptorFile)
}

// TemplateDir returns the directory holding the module's fragment for base.
// The override module keeps its fragment at the top level.
func (m Module) TemplateDir(base string) string {
	if m.Local {
		return m.Dir
	}
	return filepath.Join(m.Dir, base)
}

// ModuleInfo summarises an available module.
type ModuleInfo struct {
	Name string

	// Bases lists the base flavours the module has a Dockerfile fragment for.
	Bases []string

	// HasDescriptor reports whether the module contributes a package.json.
	HasDescriptor bool
}

// Supports reports whether the module has a fragment for base.
func (i ModuleInfo) Supports(base string) bool {
	for _, b := range i.Bases {
		if b == base {
			return true
		}
	}
	return false
}

// Discover lists the modules in modulesDir, sorted by name.
func Discover(modulesDir string) ([]ModuleInfo, error) {
	entries, err := os.ReadDir(modulesDir)
	if err != nil {
		return nil, fmt.Errorf("read modules directory: %w", err)
	}

	var infos []ModuleInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := Module{Name: e.Name(), Dir: filepath.Join(modulesDir, e.Name())}
		info := ModuleInfo{
			Name:          m.Name,
			HasDescriptor: fileutil.IsFile(m.DescriptorPath()),
		}

		subdirs, err := os.ReadDir(m.Dir)
		if err != nil {
			return nil, fmt.Errorf("read module %s: %w", m.Name, err)
		}
		for _, sub := range subdirs {
			if sub.IsDir() && fileutil.IsFile(filepath.Join(m.TemplateDir(sub.Name()), FragmentFile)) {
				info.Bases = append(info.Bases, sub.Name())
			}
		}

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}
