package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jarthianur/theia-builder/internal/config"
	"github.com/jarthianur/theia-builder/internal/lock"
	"github.com/jarthianur/theia-builder/internal/prepare"
	"github.com/jarthianur/theia-builder/internal/ui"
)

// prepareCmd represents the prepare command.
var prepareCmd = &cobra.Command{
	Use:   "prepare <app_dir>",
	Short: "Merge module package.json files and compose the Dockerfile",
	Long: `Prepare an application for building.

The package.json of every module listed in application.yaml is merged, in
order, followed by the application's own module/ directory. A later module
wins when two modules declare the same package with different versions.
The Dockerfile fragment each module provides for the application's base is
rendered with that module's parameters and spliced into the base template.

package.json and Dockerfile are written into the application directory.

Examples:
  theia-builder prepare apps/ide
  theia-builder prepare apps/ide -m /opt/theia-modules
  theia-builder prepare apps/ide --clean`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeAppDirs,
	RunE:              runPrepare,
}

func init() {
	prepareCmd.Flags().StringP("module-dir", "m", "", "Builder root containing modules/ and base/ (default: parent of app_dir)")
	prepareCmd.Flags().Bool("clean", false, "Remove generated package.json and Dockerfile")
	prepareCmd.MarkFlagDirname("module-dir")

	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) error {
	if clean, _ := cmd.Flags().GetBool("clean"); clean {
		return runClean(cmd, args[0])
	}

	settings, layout, app, err := loadApplication(cmd, args[0])
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), settings.Verbose)

	ui.Header("Preparing %s %s", app.App.Title, app.App.Version)

	return lock.WithLock(layout.AppDir, lockName, func() error {
		result, err := prepare.Prepare(layout, app, logger)
		if err != nil {
			return fmt.Errorf("prepare '%s': %w", app.App.Name, err)
		}

		for i, f := range result.Fragments {
			ui.Step(i+1, "%s", f.Module)
		}
		ui.Info("%d dependencies, %d dev dependencies, %d plugins",
			result.Package.Len(prepare.SectionDependencies),
			result.Package.Len(prepare.SectionDevDependencies),
			result.Package.Len(prepare.SectionTheiaPlugins),
		)
		ui.Success("Successfully prepared '%s' at [%s]", app.App.Name, layout.AppDir)
		return nil
	})
}

func runClean(cmd *cobra.Command, appDir string) error {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return err
	}
	layout, err := config.NewLayout(appDir, settings.ModuleDir)
	if err != nil {
		return err
	}

	return lock.WithLock(layout.AppDir, lockName, func() error {
		if err := prepare.Clean(layout); err != nil {
			return err
		}
		ui.Success("Removed generated files from [%s]", layout.AppDir)
		return nil
	})
}
