package prepare

import (
	"github.com/charmbracelet/log"

	"github.com/jarthianur/theia-builder/internal/config"
	"github.com/jarthianur/theia-builder/internal/fileutil"
	"github.com/jarthianur/theia-builder/internal/manifest"
)

// PackageSections is the merged descriptor as seen by package.json.tmpl.
type PackageSections struct {
	Dependencies    []Entry
	DevDependencies []Entry
	TheiaPlugins    []Entry
}

// PackageData is passed to the base package.json template.
type PackageData struct {
	App        manifest.AppInfo
	Package    PackageSections
	Parameters map[string]map[string]any
	Global     map[string]any
}

// Result describes a completed preparation.
type Result struct {
	PackageFile    string
	DockerfileFile string

	Modules   []Module
	Package   *Package
	Fragments []Fragment
}

// output is a rendered artifact waiting to be written.
type output struct {
	path    string
	content []byte
}

// Prepare merges module descriptors and renders package.json and Dockerfile
// into the application directory. Both outputs are rendered before anything
// is written. If a write fails, outputs already written by this call are
// removed.
func Prepare(layout *config.Layout, app *manifest.Application, logger *log.Logger) (*Result, error) {
	modules := Modules(layout, app)

	pkg, err := MergePackages(modules, logger)
	if err != nil {
		return nil, err
	}

	r := NewRenderer(layout, app.App.Base)

	pkgJSON, err := r.RenderBase(PackageTemplate, NewPackageData(app, pkg))
	if err != nil {
		return nil, err
	}

	fragments, err := ComposeDockerfile(modules, app, r, logger)
	if err != nil {
		return nil, err
	}

	dockerfile, err := r.RenderBase(DockerfileTemplate, NewDockerfileData(app, fragments))
	if err != nil {
		return nil, err
	}

	if err := writeOutputs([]output{
		{path: layout.PackageFile(), content: pkgJSON},
		{path: layout.DockerfileFile(), content: dockerfile},
	}, logger); err != nil {
		return nil, err
	}

	return &Result{
		PackageFile:    layout.PackageFile(),
		DockerfileFile: layout.DockerfileFile(),
		Modules:        modules,
		Package:        pkg,
		Fragments:      fragments,
	}, nil
}

// NewPackageData assembles the base package.json template data.
func NewPackageData(app *manifest.Application, pkg *Package) PackageData {
	return PackageData{
		App: app.App,
		Package: PackageSections{
			Dependencies:    pkg.Entries(SectionDependencies),
			DevDependencies: pkg.Entries(SectionDevDependencies),
			TheiaPlugins:    pkg.Entries(SectionTheiaPlugins),
		},
		Parameters: app.Parameters,
		Global:     app.ModuleParameters(manifest.GlobalParameters),
	}
}

func writeOutputs(outputs []output, logger *log.Logger) error {
	var written []string

	for _, o := range outputs {
		if err := fileutil.WriteFile(o.path, o.content, 0644); err != nil {
			for _, path := range written {
				if rmErr := fileutil.RemoveIfExists(path); rmErr != nil {
					logger.Warn("failed to remove partial output", "path", path, "error", rmErr)
				}
			}
			return &Error{Op: "write", Path: o.path, Err: err}
		}
		logger.Debug("wrote output", "path", o.path)
		written = append(written, o.path)
	}

	return nil
}

// Clean removes the generated package.json and Dockerfile.
func Clean(layout *config.Layout) error {
	for _, path := range []string{layout.PackageFile(), layout.DockerfileFile()} {
		if err := fileutil.RemoveIfExists(path); err != nil {
			return &Error{Op: "remove", Path: path, Err: err}
		}
	}
	return nil
}
