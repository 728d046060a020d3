package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jarthianur/theia-builder/internal/docker"
	"github.com/jarthianur/theia-builder/internal/fileutil"
	"github.com/jarthianur/theia-builder/internal/lock"
	"github.com/jarthianur/theia-builder/internal/secrets"
	"github.com/jarthianur/theia-builder/internal/ui"
	"github.com/jarthianur/theia-builder/internal/vcs"
)

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build <app_dir>",
	Short: "Build and tag the application image",
	Long: `Build the application image through the Docker Engine API.

The application directory is the build context; run prepare first so it
contains the generated package.json and Dockerfile. The image is tagged
<org>/<name>:<version>. When build.registry is set the image is also tagged
<registry>/<org>/<name>:<version>, and unless --no-latest is given both
repositories receive a latest tag.

Build arguments come from build.arguments in application.yaml, overlaid
with the decrypted contents of build.secrets if set.

Examples:
  theia-builder build apps/ide
  theia-builder build apps/ide --no-latest --no-cache
  theia-builder build apps/ide --endpoint tcp://builder:2376 --tlscacert ca.pem --tlscert cert.pem --tlskey key.pem`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeAppDirs,
	RunE:              runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.Bool("latest", true, "Also tag the image as latest")
	f.Bool("no-latest", false, "Do not tag the image as latest")
	f.Bool("cache", true, "Use the build cache")
	f.Bool("no-cache", false, "Do not use the build cache")
	f.Bool("pull", false, "Always attempt to pull a newer base image")
	f.String("endpoint", "", "Docker Engine endpoint URI (default: DOCKER_HOST or the local socket)")
	f.String("tlscacert", "", "Trust certs signed only by this CA")
	f.String("tlscert", "", "Path to TLS certificate file")
	f.String("tlskey", "", "Path to TLS key file")

	buildCmd.MarkFlagsMutuallyExclusive("latest", "no-latest")
	buildCmd.MarkFlagsMutuallyExclusive("cache", "no-cache")
	buildCmd.MarkFlagsRequiredTogether("tlscert", "tlskey")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	settings, layout, app, err := loadApplication(cmd, args[0])
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), settings.Verbose)

	for _, path := range []string{layout.PackageFile(), layout.DockerfileFile()} {
		if !fileutil.IsFile(path) {
			return fmt.Errorf("%s not found, run 'theia-builder prepare %s' first", path, args[0])
		}
	}

	buildArgs := app.Build.Arguments
	if app.Build.Secrets != "" {
		secretArgs, err := secrets.LoadBuildArgs(secrets.Resolve(layout.AppDir, app.Build.Secrets))
		if err != nil {
			return err
		}
		buildArgs = docker.MergeArgs(buildArgs, secretArgs)
	}

	plan := docker.Plan{
		App:        app,
		ContextDir: layout.AppDir,
		Latest:     settings.Latest,
		NoCache:    !settings.Cache,
		Pull:       settings.Pull,
		Args:       buildArgs,
		Revision:   vcs.Revision(layout.AppDir),
	}

	opts := docker.ClientOptions{
		Host:      settings.Endpoint,
		TLSCACert: settings.TLSCACert,
		TLSCert:   settings.TLSCert,
		TLSKey:    settings.TLSKey,
	}

	return lock.WithLock(layout.AppDir, lockName, func() error {
		return withDockerClient(cmd.Context(), opts, func(ctx context.Context, client *docker.Client) error {
			ui.Image("Building %s", app.VersionTag())

			result, err := docker.NewDriver(client, cmd.OutOrStdout(), logger).Run(ctx, plan)
			if result != nil {
				ui.Success("Built image %s", result.ImageID)
				for _, tag := range result.Tags {
					ui.Tag("%s", tag)
				}
			}
			return err
		})
	})
}
