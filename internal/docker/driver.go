package docker

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jarthianur/theia-builder/internal/buildctx"
	"github.com/jarthianur/theia-builder/internal/manifest"
)

// Plan describes a build run for an application.
type Plan struct {
	App *manifest.Application

	// ContextDir is the build context root, the application directory.
	ContextDir string

	Latest  bool
	NoCache bool
	Pull    bool

	// Args are the build arguments, already merged with any secrets.
	Args map[string]any

	// Revision is recorded as the image revision label when set.
	Revision string
}

// Result is a completed build run.
type Result struct {
	ImageID string
	BuildID string

	// Tags are the references applied to the image, version tag first.
	Tags []string
}

// Driver builds and tags application images.
type Driver struct {
	client *Client
	out    io.Writer
	logger *log.Logger

	// newBuildID generates the build ID label.
	newBuildID func() string
}

// NewDriver creates a driver that relays build output to out.
func NewDriver(client *Client, out io.Writer, logger *log.Logger) *Driver {
	return &Driver{
		client:     client,
		out:        out,
		logger:     logger,
		newBuildID: uuid.NewString,
	}
}

// Run builds the image for plan and applies every tag from TagPlan.
// A failed tag does not stop the remaining ones; the returned error joins all
// tag failures and Result lists the tags that were applied.
func (d *Driver) Run(ctx context.Context, plan Plan) (*Result, error) {
	buildContext, err := buildctx.Tar(plan.ContextDir)
	if err != nil {
		return nil, err
	}
	defer buildContext.Close()

	versionTag := plan.App.VersionTag()
	buildID := d.newBuildID()
	args := BuildArgs(plan.Args)

	d.logger.Debug("starting build", "ref", versionTag, "build_id", buildID, "args", ArgNames(args))

	imageID, err := d.client.Build(ctx, BuildRequest{
		Context:   buildContext,
		Tags:      []string{versionTag},
		BuildArgs: args,
		Labels:    Labels(plan.App, plan.Revision, buildID),
		NoCache:   plan.NoCache,
		Pull:      plan.Pull,
	}, d.out)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ImageID: imageID,
		BuildID: buildID,
		Tags:    []string{versionTag},
	}

	var errs []error
	for _, ref := range TagPlan(plan.App, plan.Latest) {
		if err := d.client.Tag(ctx, imageID, ref); err != nil {
			d.logger.Warn("tag failed", "ref", ref, "error", err)
			errs = append(errs, err)
			continue
		}
		d.logger.Debug("tagged image", "ref", ref)
		result.Tags = append(result.Tags, ref)
	}

	return result, errors.Join(errs...)
}
