// Package update provides self-update functionality for theia-builder.
package update

import (
	"context"
	"fmt"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
)

const (
	// Repository owner and name for GitHub releases.
	repoOwner = "jarthianur"
	repoName  = "theia-builder"
)

// Release contains information about an available update.
type Release struct {
	Version     string
	ReleaseURL  string
	PublishedAt string
	Changelog   string
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("creating update source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("creating updater: %w", err)
	}
	return updater, nil
}

func newRelease(r *selfupdate.Release) *Release {
	return &Release{
		Version:     r.Version(),
		ReleaseURL:  r.URL,
		PublishedAt: r.PublishedAt.Format("2006-01-02"),
		Changelog:   r.ReleaseNotes,
	}
}

// CheckForUpdate checks if a newer version is available.
func CheckForUpdate(ctx context.Context, currentVersion string) (*Release, bool, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, false, err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, false, fmt.Errorf("detecting latest version: %w", err)
	}
	if !found || latest.LessOrEqual(currentVersion) {
		return nil, false, nil
	}

	return newRelease(latest), true, nil
}

// Update downloads and installs the latest version.
// It returns nil when already up to date.
func Update(ctx context.Context, currentVersion string) (*Release, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, fmt.Errorf("detecting latest version: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no releases found for %s/%s", repoOwner, repoName)
	}

	if latest.LessOrEqual(currentVersion) {
		return nil, nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return nil, fmt.Errorf("getting executable path: %w", err)
	}

	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return nil, fmt.Errorf("updating binary: %w", err)
	}

	return newRelease(latest), nil
}

// GetPlatformInfo returns the current platform information.
func GetPlatformInfo() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
