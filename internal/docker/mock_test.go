package docker

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/build"
)

// Common test errors.
var (
	errMockPing  = errors.New("mock: ping failed")
	errMockBuild = errors.New("mock: image build failed")
	errMockTag   = errors.New("mock: image tag failed")
)

// MockDockerAPI is a mock implementation of DockerAPI for testing.
type MockDockerAPI struct {
	// Function overrides for each method
	PingFunc       func(ctx context.Context) (types.Ping, error)
	ImageBuildFunc func(ctx context.Context, buildContext io.Reader, options build.ImageBuildOptions) (build.ImageBuildResponse, error)
	ImageTagFunc   func(ctx context.Context, source, target string) error
	CloseFunc      func() error

	// Call tracking
	PingCalls       int
	ImageBuildCalls int
	ImageTagCalls   int
	CloseCalls      int

	// Recorded arguments
	BuildOptions build.ImageBuildOptions
	ContextSize  int64
	TagTargets   []string
}

// NewMockDockerAPI creates a new mock with default no-op implementations.
// The default build reports image ID sha256:feedface.
func NewMockDockerAPI() *MockDockerAPI {
	return &MockDockerAPI{}
}

// buildResponse returns a build response streaming the given JSON messages.
func buildResponse(messages ...string) build.ImageBuildResponse {
	return build.ImageBuildResponse{
		Body: io.NopCloser(strings.NewReader(strings.Join(messages, "\n"))),
	}
}

// Ping implements DockerAPI.
func (m *MockDockerAPI) Ping(ctx context.Context) (types.Ping, error) {
	m.PingCalls++
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return types.Ping{APIVersion: "1.45"}, nil
}

// ImageBuild implements DockerAPI.
func (m *MockDockerAPI) ImageBuild(ctx context.Context, buildContext io.Reader, options build.ImageBuildOptions) (build.ImageBuildResponse, error) {
	m.ImageBuildCalls++
	m.BuildOptions = options
	if buildContext != nil {
		n, err := io.Copy(io.Discard, buildContext)
		if err != nil {
			return build.ImageBuildResponse{}, err
		}
		m.ContextSize = n
	}
	if m.ImageBuildFunc != nil {
		return m.ImageBuildFunc(ctx, buildContext, options)
	}
	return buildResponse(
		`{"stream":"Step 1/1 : FROM scratch\n"}`,
		`{"aux":{"ID":"sha256:feedface"}}`,
	), nil
}

// ImageTag implements DockerAPI.
func (m *MockDockerAPI) ImageTag(ctx context.Context, source, target string) error {
	m.ImageTagCalls++
	m.TagTargets = append(m.TagTargets, target)
	if m.ImageTagFunc != nil {
		return m.ImageTagFunc(ctx, source, target)
	}
	return nil
}

// Close implements DockerAPI.
func (m *MockDockerAPI) Close() error {
	m.CloseCalls++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
