package prepare

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/jarthianur/theia-builder/internal/config"
	"github.com/jarthianur/theia-builder/internal/fileutil"
)

// Base template names.
const (
	PackageTemplate    = "package.json.tmpl"
	DockerfileTemplate = "Dockerfile.tmpl"
)

// Renderer renders base templates and module fragments.
type Renderer struct {
	searchPath []string
}

// NewRenderer creates a renderer searching <module-dir>/base, then
// <module-dir>/base/<base>.
func NewRenderer(layout *config.Layout, base string) *Renderer {
	return &Renderer{
		searchPath: []string{
			layout.BaseDir(),
			filepath.Join(layout.BaseDir(), base),
		},
	}
}

// Lookup returns the first search path entry containing name.
func (r *Renderer) Lookup(name string) (string, error) {
	for _, dir := range r.searchPath {
		path := filepath.Join(dir, name)
		if fileutil.IsFile(path) {
			return path, nil
		}
	}
	return "", &Error{Op: "lookup", Path: name, Err: fmt.Errorf("%w in %v", ErrTemplateNotFound, r.searchPath)}
}

// RenderBase renders the named base template.
func (r *Renderer) RenderBase(name string, data any) ([]byte, error) {
	path, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return r.RenderFile(path, data)
}

// RenderFile renders the template file at path.
func (r *Renderer) RenderFile(path string, data any) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Op: "read", Path: path, Err: err}
	}

	tmpl, err := template.New(filepath.Base(path)).
		Funcs(sprig.TxtFuncMap()).
		Funcs(templateFuncs(filepath.Dir(path))).
		Parse(string(content))
	if err != nil {
		return nil, &Error{Op: "parse", Path: path, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &Error{Op: "render", Path: path, Err: err}
	}

	return buf.Bytes(), nil
}

// templateFuncs returns functions resolving relative paths against dir,
// the directory of the template being rendered.
func templateFuncs(dir string) template.FuncMap {
	resolve := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(dir, path)
	}

	return template.FuncMap{
		"include": func(path string) (string, error) {
			data, err := os.ReadFile(resolve(path))
			if err != nil {
				return "", fmt.Errorf("include %s: %w", path, err)
			}
			return string(data), nil
		},
		"fromJsonFile": func(path string) (any, error) {
			data, err := os.ReadFile(resolve(path))
			if err != nil {
				return nil, fmt.Errorf("fromJsonFile %s: %w", path, err)
			}
			var result any
			if jsonErr := json.Unmarshal(data, &result); jsonErr != nil {
				return nil, fmt.Errorf("fromJsonFile %s: invalid JSON: %w", path, jsonErr)
			}
			return result, nil
		},
	}
}
