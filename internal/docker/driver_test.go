package docker

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/docker/docker/api/types/build"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T, mock *MockDockerAPI) (*Driver, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	d := NewDriver(NewClientWithAPI(mock), &bytes.Buffer{}, log.New(&logs))
	d.newBuildID = func() string { return "test-build" }
	return d, &logs
}

func contextDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM scratch\n"), 0644))
	return dir
}

func TestDriver_Run(t *testing.T) {
	t.Run("builds and tags", func(t *testing.T) {
		mock := NewMockDockerAPI()
		d, _ := newTestDriver(t, mock)
		app := testApp("registry.example.com")

		result, err := d.Run(context.Background(), Plan{
			App:        app,
			ContextDir: contextDir(t),
			Latest:     true,
			NoCache:    true,
			Args:       map[string]any{"NODE_VERSION": "20"},
			Revision:   "0a1b2c",
		})
		require.NoError(t, err)

		assert.Equal(t, "sha256:feedface", result.ImageID)
		assert.Equal(t, "test-build", result.BuildID)
		assert.Equal(t, []string{
			"acme/ide:1.2.0",
			"registry.example.com/acme/ide:1.2.0",
			"acme/ide:latest",
			"registry.example.com/acme/ide:latest",
		}, result.Tags)

		opts := mock.BuildOptions
		assert.Equal(t, []string{"acme/ide:1.2.0"}, opts.Tags)
		assert.True(t, opts.NoCache)
		assert.Equal(t, "20", *opts.BuildArgs["NODE_VERSION"])
		assert.Equal(t, "0a1b2c", opts.Labels[LabelRevision])
		assert.Equal(t, "test-build", opts.Labels[LabelBuildID])
		assert.Positive(t, mock.ContextSize)
		assert.Equal(t, 3, mock.ImageTagCalls)
	})

	t.Run("no latest tags only the version", func(t *testing.T) {
		mock := NewMockDockerAPI()
		d, _ := newTestDriver(t, mock)

		result, err := d.Run(context.Background(), Plan{
			App:        testApp(""),
			ContextDir: contextDir(t),
			Latest:     false,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"acme/ide:1.2.0"}, result.Tags)
		assert.Zero(t, mock.ImageTagCalls)
	})

	t.Run("tag failure does not stop other tags", func(t *testing.T) {
		mock := NewMockDockerAPI()
		mock.ImageTagFunc = func(ctx context.Context, source, target string) error {
			if target == "acme/ide:latest" {
				return errMockTag
			}
			return nil
		}
		d, logs := newTestDriver(t, mock)

		result, err := d.Run(context.Background(), Plan{
			App:        testApp("registry.example.com"),
			ContextDir: contextDir(t),
			Latest:     true,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errMockTag)

		var buildErr *BuildError
		require.ErrorAs(t, err, &buildErr)
		assert.Equal(t, "acme/ide:latest", buildErr.Ref)

		require.NotNil(t, result)
		assert.Equal(t, []string{
			"acme/ide:1.2.0",
			"registry.example.com/acme/ide:1.2.0",
			"registry.example.com/acme/ide:latest",
		}, result.Tags)
		assert.Equal(t, 3, mock.ImageTagCalls)
		assert.Contains(t, logs.String(), "tag failed")
	})

	t.Run("build failure skips tagging", func(t *testing.T) {
		mock := NewMockDockerAPI()
		mock.ImageBuildFunc = func(ctx context.Context, _ io.Reader, _ build.ImageBuildOptions) (build.ImageBuildResponse, error) {
			return buildResponse(`{"stream":"Step 1/1 : FROM scratch\n"}`), nil
		}
		d, _ := newTestDriver(t, mock)

		result, err := d.Run(context.Background(), Plan{
			App:        testApp("registry.example.com"),
			ContextDir: contextDir(t),
			Latest:     true,
		})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrNoImageID)
		assert.Zero(t, mock.ImageTagCalls)
	})

	t.Run("missing context directory", func(t *testing.T) {
		mock := NewMockDockerAPI()
		d, _ := newTestDriver(t, mock)

		_, err := d.Run(context.Background(), Plan{
			App:        testApp(""),
			ContextDir: filepath.Join(t.TempDir(), "missing"),
		})
		require.Error(t, err)
		assert.Zero(t, mock.ImageBuildCalls)
	})
}
