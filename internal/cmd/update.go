package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jarthianur/theia-builder/internal/ui"
	"github.com/jarthianur/theia-builder/internal/update"
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"upgrade", "selfupdate"},
	Short:   "Update theia-builder to the latest version",
	Long: `Update theia-builder to the latest version from GitHub releases.

This command will:
1. Check for a newer version on GitHub
2. Download the appropriate binary for your platform
3. Replace the current binary with the new version

Examples:
  theia-builder update           # Update to latest version
  theia-builder update --check   # Check for updates without installing`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().Bool("check", false, "Only check for updates, don't install")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ui.Blue.Printf("Current version: %s (%s)\n", version, update.GetPlatformInfo())
	ui.Blue.Println("Checking for updates...")

	if checkOnly, _ := cmd.Flags().GetBool("check"); checkOnly {
		release, available, err := update.CheckForUpdate(cmd.Context(), version)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !available {
			ui.Success("You're running the latest version!")
			return nil
		}

		ui.Success("New version available: %s (released %s)", release.Version, release.PublishedAt)
		fmt.Println()
		ui.Blue.Println("To update, run: theia-builder update")
		fmt.Println()
		printChangelog(release.Changelog)
		return nil
	}

	release, err := update.Update(cmd.Context(), version)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if release == nil {
		ui.Success("You're already running the latest version!")
		return nil
	}

	fmt.Println()
	ui.Success("Successfully updated to version %s!", release.Version)
	fmt.Println()
	printChangelog(release.Changelog)
	return nil
}

// printChangelog prints the first lines of a release changelog.
func printChangelog(changelog string) {
	if changelog == "" {
		return
	}

	ui.Yellow.Println("What's new:")
	lines := strings.Split(changelog, "\n")
	maxLines := min(len(lines), 10)
	for _, line := range lines[:maxLines] {
		fmt.Printf("  %s\n", line)
	}
	if len(lines) > maxLines {
		fmt.Printf("  ... (%d more lines)\n", len(lines)-maxLines)
	}
}
