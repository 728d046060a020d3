package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jarthianur/theia-builder/internal/config"
	"github.com/jarthianur/theia-builder/internal/prepare"
	"github.com/jarthianur/theia-builder/internal/ui"
)

// modulesCmd represents the modules command.
var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List available modules",
	Long: `List the modules under <module-dir>/modules with the bases each one
provides a Dockerfile fragment for.

Examples:
  theia-builder modules -m /opt/theia-modules
  theia-builder modules --base theia`,
	Args: cobra.NoArgs,
	RunE: runModules,
}

func init() {
	modulesCmd.Flags().StringP("module-dir", "m", ".", "Builder root containing modules/ and base/")
	modulesCmd.Flags().String("base", "", "Only list modules supporting this base")
	modulesCmd.MarkFlagDirname("module-dir")

	rootCmd.AddCommand(modulesCmd)
}

func runModules(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return err
	}
	base, _ := cmd.Flags().GetString("base")

	moduleDir := settings.ModuleDir
	if moduleDir == "" {
		moduleDir = "."
	}
	layout := &config.Layout{ModuleDir: moduleDir}

	infos, err := prepare.Discover(layout.ModulesDir())
	if err != nil {
		return err
	}

	shown := 0
	for _, info := range infos {
		if base != "" && !info.Supports(base) {
			continue
		}
		shown++

		bases := "-"
		if len(info.Bases) > 0 {
			bases = strings.Join(info.Bases, ", ")
		}
		deps := ""
		if info.HasDescriptor {
			deps = " [package.json]"
		}
		ui.Module("%-20s %s%s", info.Name, bases, deps)
	}

	if shown == 0 {
		ui.Warning("No modules found in %s", layout.ModulesDir())
		return nil
	}
	fmt.Println()
	ui.Info("%d module(s)", shown)
	return nil
}
