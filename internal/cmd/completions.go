package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jarthianur/theia-builder/internal/fileutil"
	"github.com/jarthianur/theia-builder/internal/manifest"
)

// completeAppDirs completes directories that contain an application manifest.
// Other directories are offered with a trailing separator so the shell can descend.
func completeAppDirs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Don't complete if we already have an argument
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	dir, prefix := filepath.Split(toComplete)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), prefix) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := dir + e.Name()
		if fileutil.IsFile(filepath.Join(readDir, e.Name(), manifest.FileName)) {
			names = append(names, path)
		} else {
			names = append(names, path+string(filepath.Separator))
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
