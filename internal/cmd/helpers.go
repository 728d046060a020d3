package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jarthianur/theia-builder/internal/config"
	"github.com/jarthianur/theia-builder/internal/docker"
	"github.com/jarthianur/theia-builder/internal/manifest"
)

// newDockerClient creates the engine client. Tests replace it to inject a mock.
var newDockerClient = docker.NewClient

// withDockerClient executes a function with a Docker client, handling connection and cleanup.
func withDockerClient(ctx context.Context, opts docker.ClientOptions, fn func(ctx context.Context, client *docker.Client) error) error {
	client, err := newDockerClient(opts)
	if err != nil {
		return fmt.Errorf("connect to docker: %w", err)
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("connect to docker: %w", err)
	}

	return fn(ctx, client)
}

// loadApplication resolves settings, the directory layout and the manifest for appDir.
func loadApplication(cmd *cobra.Command, appDir string) (*config.Settings, *config.Layout, *manifest.Application, error) {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}

	layout, err := config.NewLayout(appDir, settings.ModuleDir)
	if err != nil {
		return nil, nil, nil, err
	}

	app, err := manifest.Load(layout.ManifestFile())
	if err != nil {
		return nil, nil, nil, err
	}

	return settings, layout, app, nil
}
