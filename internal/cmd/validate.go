package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jarthianur/theia-builder/internal/fileutil"
	"github.com/jarthianur/theia-builder/internal/prepare"
	"github.com/jarthianur/theia-builder/internal/ui"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate <app_dir>",
	Short: "Validate application.yaml and module availability",
	Long: `Validate an application without writing anything.

The manifest is checked against the application schema and every issue is
reported. Each listed module is then looked up under the module directory;
modules that are missing or have no fragment for the application's base are
reported as warnings, since prepare skips them.

Examples:
  theia-builder validate apps/ide
  theia-builder validate apps/ide -m /opt/theia-modules`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeAppDirs,
	RunE:              runValidate,
}

func init() {
	validateCmd.Flags().StringP("module-dir", "m", "", "Builder root containing modules/ and base/ (default: parent of app_dir)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	_, layout, app, err := loadApplication(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ui.Successw(out, "%s is valid", layout.ManifestFile())
	fmt.Fprintf(out, "  Image:   %s\n", app.VersionTag())
	fmt.Fprintf(out, "  Base:    %s\n", app.App.Base)
	if app.Build.Registry != "" {
		fmt.Fprintf(out, "  Registry: %s\n", app.Build.Registry)
	}
	fmt.Fprintln(out)

	warnings := 0
	for _, m := range prepare.Modules(layout, app) {
		if m.Local {
			if fileutil.IsDir(m.Dir) {
				ui.Modulew(out, "%s (local override)", m.Name)
			}
			continue
		}

		var problems []string
		if !fileutil.IsDir(m.Dir) {
			problems = append(problems, "not found")
		} else {
			if !fileutil.IsFile(m.DescriptorPath()) {
				problems = append(problems, "no package.json")
			}
			if !fileutil.IsDir(m.TemplateDir(app.App.Base)) {
				problems = append(problems, fmt.Sprintf("no templates for base %q", app.App.Base))
			}
		}

		if len(problems) > 0 {
			ui.Warningw(out, "%s: %s", m.Name, strings.Join(problems, ", "))
			warnings++
			continue
		}
		ui.Modulew(out, "%s", m.Name)
	}

	if warnings > 0 {
		fmt.Fprintln(out)
		ui.Yellow.Fprintf(out, "%d module(s) will be skipped by prepare.\n", warnings)
	}
	return nil
}
