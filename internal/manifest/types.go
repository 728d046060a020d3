package manifest

import "fmt"

// FileName is the manifest file name inside an application directory.
const FileName = "application.yaml"

// GlobalParameters is the parameters key passed to base templates.
const GlobalParameters = "global"

// Application is a validated application manifest.
type Application struct {
	// App holds the required identity fields.
	App AppInfo `json:"app"`

	// Parameters maps module names to the parameters their template fragment is rendered with.
	Parameters map[string]map[string]any `json:"parameters,omitempty"`

	// Build holds image build options.
	Build BuildOptions `json:"build,omitempty"`

	// Modules lists module identifiers in merge order.
	Modules []string `json:"modules,omitempty"`
}

// AppInfo identifies the application image.
type AppInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Org     string `json:"org"`
	License string `json:"license"`
	Title   string `json:"title"`

	// Base selects the base image flavour; module fragments and base templates
	// are looked up in a subdirectory of this name.
	Base string `json:"base"`
}

// BuildOptions configures the image build.
type BuildOptions struct {
	// Registry, when set, receives an additional tag prefixed with it.
	Registry string `json:"registry,omitempty"`

	// Arguments are passed to the build as build args.
	Arguments map[string]any `json:"arguments,omitempty"`

	// Secrets is a path, relative to the application directory, to a
	// SOPS-encrypted YAML file with additional build args.
	Secrets string `json:"secrets,omitempty"`
}

// ImageRepository returns the image repository name, org/name.
func (a *Application) ImageRepository() string {
	return fmt.Sprintf("%s/%s", a.App.Org, a.App.Name)
}

// Ref returns the image reference for tag, optionally prefixed with registry.
func (a *Application) Ref(registry, tag string) string {
	if registry == "" {
		return fmt.Sprintf("%s:%s", a.ImageRepository(), tag)
	}
	return fmt.Sprintf("%s/%s:%s", registry, a.ImageRepository(), tag)
}

// VersionTag returns org/name:version.
func (a *Application) VersionTag() string {
	return a.Ref("", a.App.Version)
}

// ModuleParameters returns the parameters for a module. Never nil.
func (a *Application) ModuleParameters(module string) map[string]any {
	if params := a.Parameters[module]; params != nil {
		return params
	}
	return map[string]any{}
}
