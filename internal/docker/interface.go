package docker

import (
	"context"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/client"
)

// DockerAPI defines the interface for Docker client operations.
// This interface enables mocking for unit tests without requiring a running Docker daemon.
type DockerAPI interface {
	// Ping tests the connection to the Docker daemon.
	Ping(ctx context.Context) (types.Ping, error)

	// ImageBuild sends a build context and returns the streamed build output.
	ImageBuild(ctx context.Context, buildContext io.Reader, options build.ImageBuildOptions) (build.ImageBuildResponse, error)

	// ImageTag adds target as a reference to source.
	ImageTag(ctx context.Context, source, target string) error

	// Close closes the client connection.
	Close() error
}

// Verify that the Docker SDK client implements our interface.
var _ DockerAPI = (*client.Client)(nil)
