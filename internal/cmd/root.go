// Package cmd provides the CLI commands for theia-builder.
package cmd

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jarthianur/theia-builder/internal/ui"
)

const version = "0.3.0"

// lockName is shared by prepare and build so they never overlap on one application.
const lockName = "builder"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "theia-builder",
	Short: "Compose and build Theia IDE images from modules",
	Long: `theia-builder - modular Theia IDE images

An application directory holds an application.yaml that names the modules
the IDE is made of. Modules live under <module-dir>/modules and contribute
package.json entries and Dockerfile fragments; base templates live under
<module-dir>/base.

COMMANDS
  prepare <app_dir>     Merge package.json files and compose the Dockerfile
    --module-dir, -m    Builder root (default: parent of app_dir)
    --clean             Remove generated files instead
  build <app_dir>       Build and tag the image through the Docker Engine
    --no-latest         Do not tag as latest
    --no-cache          Do not use the layer cache
    --endpoint <uri>    Engine endpoint (default: DOCKER_HOST)
  validate <app_dir>    Check application.yaml and module availability
  modules               List available modules and their bases
  update                Update theia-builder from GitHub releases

Settings may also be given as THEIA_BUILDER_<FLAG> environment variables,
e.g. THEIA_BUILDER_MODULE_DIR or THEIA_BUILDER_ENDPOINT.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Fatal("%v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	// Version template
	rootCmd.SetVersionTemplate("theia-builder version {{.Version}}\n")
}

// newLogger returns the logger for diagnostics raised while preparing and building.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "theia-builder",
		Level:  level,
	})
}
