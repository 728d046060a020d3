package docker

import (
	"fmt"
	"sort"

	"github.com/jarthianur/theia-builder/internal/manifest"
)

// LatestTag is the floating tag applied when latest tagging is enabled.
const LatestTag = "latest"

// Image label keys.
const (
	LabelTitle    = "org.opencontainers.image.title"
	LabelVersion  = "org.opencontainers.image.version"
	LabelVendor   = "org.opencontainers.image.vendor"
	LabelLicenses = "org.opencontainers.image.licenses"
	LabelRevision = "org.opencontainers.image.revision"
	LabelBuildID  = "io.theia-builder.build-id"
	LabelBase     = "io.theia-builder.base"
)

// TagPlan returns the references applied after the build, in order: the
// registry version tag when a registry is set, then the latest tags when
// latest is requested.
func TagPlan(app *manifest.Application, latest bool) []string {
	var refs []string
	registry := app.Build.Registry

	if registry != "" {
		refs = append(refs, app.Ref(registry, app.App.Version))
	}
	if latest {
		refs = append(refs, app.Ref("", LatestTag))
		if registry != "" {
			refs = append(refs, app.Ref(registry, LatestTag))
		}
	}

	return refs
}

// Labels returns the image labels for app. Empty revision and buildID are omitted.
func Labels(app *manifest.Application, revision, buildID string) map[string]string {
	labels := map[string]string{
		LabelTitle:    app.App.Title,
		LabelVersion:  app.App.Version,
		LabelVendor:   app.App.Org,
		LabelLicenses: app.App.License,
		LabelBase:     app.App.Base,
	}
	if revision != "" {
		labels[LabelRevision] = revision
	}
	if buildID != "" {
		labels[LabelBuildID] = buildID
	}
	return labels
}

// BuildArgs converts manifest build arguments to engine build args.
// A nil value is passed without a value, so the engine takes it from its
// environment.
func BuildArgs(args map[string]any) map[string]*string {
	if len(args) == 0 {
		return nil
	}

	out := make(map[string]*string, len(args))
	for k, v := range args {
		if v == nil {
			out[k] = nil
			continue
		}
		s := fmt.Sprint(v)
		out[k] = &s
	}
	return out
}

// MergeArgs returns base overlaid with override. Neither input is modified.
func MergeArgs(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// ArgNames returns the sorted build argument names, for logging without values.
func ArgNames(args map[string]*string) []string {
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
