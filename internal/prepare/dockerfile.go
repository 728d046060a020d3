package prepare

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jarthianur/theia-builder/internal/fileutil"
	"github.com/jarthianur/theia-builder/internal/manifest"
)

// Fragment is a rendered module Dockerfile fragment.
type Fragment struct {
	Module  string
	Content string
}

// FragmentData is passed to module fragment templates.
type FragmentData struct {
	App    manifest.AppInfo
	Module string

	// Params are the module's entry of the manifest parameters.
	Params map[string]any
}

// DockerfileData is passed to the base Dockerfile template.
type DockerfileData struct {
	App manifest.AppInfo

	// Scripts holds fragment contents in module order.
	Scripts   []string
	Fragments []Fragment

	// Global is the "global" entry of the manifest parameters.
	Global     map[string]any
	Parameters map[string]map[string]any
	Build      manifest.BuildOptions
}

// ComposeDockerfile renders the Dockerfile fragments of modules in order.
// Modules without a template directory for the app's base are skipped with a
// warning.
func ComposeDockerfile(modules []Module, app *manifest.Application, r *Renderer, logger *log.Logger) ([]Fragment, error) {
	var fragments []Fragment

	for _, m := range modules {
		dir := m.TemplateDir(app.App.Base)
		if !fileutil.IsDir(dir) {
			if m.Local {
				logger.Debug("no override module", "dir", dir)
			} else {
				logger.Warn("module has no templates for base, skipping", "module", m.Name, "base", app.App.Base)
			}
			continue
		}

		path := filepath.Join(dir, FragmentFile)
		if !fileutil.IsFile(path) {
			logger.Debug("no Dockerfile fragment", "module", m.Name, "dir", dir)
			continue
		}

		out, err := r.RenderFile(path, FragmentData{
			App:    app.App,
			Module: m.Name,
			Params: app.ModuleParameters(m.Name),
		})
		if err != nil {
			return nil, err
		}

		logger.Debug("rendered Dockerfile fragment", "module", m.Name)
		fragments = append(fragments, Fragment{
			Module:  m.Name,
			Content: strings.TrimSpace(string(out)),
		})
	}

	return fragments, nil
}

// NewDockerfileData assembles the base template data.
func NewDockerfileData(app *manifest.Application, fragments []Fragment) DockerfileData {
	scripts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		scripts = append(scripts, f.Content)
	}
	return DockerfileData{
		App:        app.App,
		Scripts:    scripts,
		Fragments:  fragments,
		Global:     app.ModuleParameters(manifest.GlobalParameters),
		Parameters: app.Parameters,
		Build:      app.Build,
	}
}
