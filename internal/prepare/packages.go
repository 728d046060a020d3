package prepare

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/jarthianur/theia-builder/internal/fileutil"
)

// Merged descriptor sections.
const (
	SectionDependencies    = "dependencies"
	SectionDevDependencies = "devDependencies"
	SectionTheiaPlugins    = "theiaPlugins"
)

// Sections lists the descriptor sections that are merged across modules.
var Sections = []string{SectionDependencies, SectionDevDependencies, SectionTheiaPlugins}

// Entry is one key/value pair of a merged section.
type Entry struct {
	Key   string
	Value string
}

// Package accumulates descriptor sections across modules.
type Package struct {
	sections map[string]map[string]string
	owners   map[string]map[string]string
}

// NewPackage creates an empty accumulator.
func NewPackage() *Package {
	p := &Package{
		sections: make(map[string]map[string]string, len(Sections)),
		owners:   make(map[string]map[string]string, len(Sections)),
	}
	for _, s := range Sections {
		p.sections[s] = make(map[string]string)
		p.owners[s] = make(map[string]string)
	}
	return p
}

// Get returns the merged value of key in section.
func (p *Package) Get(section, key string) (string, bool) {
	v, ok := p.sections[section][key]
	return v, ok
}

// Owner returns the module that contributed the current value of key.
func (p *Package) Owner(section, key string) string {
	return p.owners[section][key]
}

// Entries returns a section's entries sorted by key.
func (p *Package) Entries(section string) []Entry {
	values := p.sections[section]
	entries := make([]Entry, 0, len(values))
	for k, v := range values {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// Len returns the number of entries in section.
func (p *Package) Len(section string) int {
	return len(p.sections[section])
}

// Merge applies one module's descriptor. Later calls win on collisions; a
// collision with a different value is logged as a warning.
func (p *Package) Merge(module string, descriptor map[string]map[string]string, logger *log.Logger) {
	for _, section := range Sections {
		for key, value := range descriptor[section] {
			if old, exists := p.sections[section][key]; exists && old != value {
				logger.Warn("overriding package entry",
					"module", module,
					"section", section,
					"key", key,
					"old", old,
					"new", value,
					"previous", p.owners[section][key],
				)
			}
			p.sections[section][key] = value
			p.owners[section][key] = module
		}
	}
}

// MergePackages merges the descriptors of modules in order.
// Missing modules and descriptors are skipped with a warning. An unreadable
// or unparsable descriptor returns *Error.
func MergePackages(modules []Module, logger *log.Logger) (*Package, error) {
	pkg := NewPackage()

	for _, m := range modules {
		if !fileutil.IsDir(m.Dir) {
			if m.Local {
				logger.Debug("no override module", "dir", m.Dir)
			} else {
				logger.Warn("module not found, skipping", "module", m.Name, "dir", m.Dir)
			}
			continue
		}

		descriptor, err := readDescriptor(m.DescriptorPath())
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("no package.json, skipping", "module", m.Name)
			continue
		}
		if err != nil {
			return nil, err
		}

		logger.Debug("merging package.json", "module", m.Name)
		pkg.Merge(m.Name, descriptor, logger)
	}

	return pkg, nil
}

// readDescriptor reads the merged sections of a package.json. Sections that
// are absent or null are omitted; other keys are ignored.
func readDescriptor(path string) (map[string]map[string]string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err != nil {
		return nil, &Error{Op: "read", Path: path, Err: err}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, &Error{Op: "parse", Path: path, Err: err}
	}

	descriptor := make(map[string]map[string]string, len(Sections))
	for _, section := range Sections {
		data, ok := raw[section]
		if !ok {
			continue
		}
		var values map[string]string
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, &Error{Op: "parse", Path: path, Err: fmt.Errorf("%s: %w", section, err)}
		}
		descriptor[section] = values
	}

	return descriptor, nil
}
