package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/build"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jarthianur/theia-builder/internal/docker"
)

// resetFlags restores every flag of cmd and its children to its default.
// Cobra keeps parsed flag values between executions of the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCmd executes the root command with the given args and returns the output.
// This handles proper state reset between test executions.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	buf := new(bytes.Buffer)
	// Important: Set args BEFORE setting output buffers
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// fakeDockerAPI is a DockerAPI that reports a fixed image ID for every build.
type fakeDockerAPI struct {
	builds  int
	tags    []string
	options build.ImageBuildOptions
	tagErr  error
}

func (f *fakeDockerAPI) Ping(ctx context.Context) (types.Ping, error) {
	return types.Ping{APIVersion: "1.45"}, nil
}

func (f *fakeDockerAPI) ImageBuild(ctx context.Context, buildContext io.Reader, options build.ImageBuildOptions) (build.ImageBuildResponse, error) {
	f.builds++
	f.options = options
	if _, err := io.Copy(io.Discard, buildContext); err != nil {
		return build.ImageBuildResponse{}, err
	}
	body := `{"stream":"Step 1/1 : FROM node:20\n"}` + "\n" + `{"aux":{"ID":"sha256:c0ffee"}}`
	return build.ImageBuildResponse{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeDockerAPI) ImageTag(ctx context.Context, source, target string) error {
	f.tags = append(f.tags, target)
	return f.tagErr
}

func (f *fakeDockerAPI) Close() error {
	return nil
}

// useFakeDocker routes engine connections to a fake for the duration of the test.
func useFakeDocker(t *testing.T) *fakeDockerAPI {
	t.Helper()
	fake := &fakeDockerAPI{}
	orig := newDockerClient
	newDockerClient = func(docker.ClientOptions) (*docker.Client, error) {
		return docker.NewClientWithAPI(fake), nil
	}
	t.Cleanup(func() { newDockerClient = orig })
	return fake
}

const testManifest = `app:
  name: ide
  version: 1.2.0
  org: acme
  license: MIT
  title: Acme IDE
  base: theia
parameters:
  global:
    image: node:20-bookworm
  go:
    version: "1.23"
build:
  registry: registry.example.com
  arguments:
    NODE_OPTIONS: "--max-old-space-size=4096"
modules:
  - go
  - missing
`

// testWorkspace lays out a module root with one module and an application.
// It returns the application directory.
func testWorkspace(t *testing.T, manifestYAML string) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"base/package.json.tmpl": `{"name": {{ .App.Name | quote }}, "dependencies": {
{{- range $i, $e := .Package.Dependencies }}{{ if $i }},{{ end }}{{ $e.Key | quote }}: {{ $e.Value | quote }}{{ end -}}
}}
`,
		"base/Dockerfile.tmpl":        "FROM {{ .Global.image }}\n{{ range .Scripts }}{{ . }}\n{{ end }}",
		"modules/go/package.json":     `{"dependencies": {"@theia/go": "1.0.0"}}`,
		"modules/go/theia/Dockerfile": "RUN install-go {{ .Params.version }}",
		"app/application.yaml":        manifestYAML,
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return filepath.Join(root, "app")
}
