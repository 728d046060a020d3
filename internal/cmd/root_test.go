package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Execute(t *testing.T) {
	t.Run("root command shows help", func(t *testing.T) {
		_, err := executeCmd(t)
		assert.NoError(t, err)
	})

	t.Run("help flag", func(t *testing.T) {
		output, err := executeCmd(t, "--help")
		assert.NoError(t, err)
		assert.Contains(t, output, "theia-builder")
		assert.Contains(t, output, "prepare <app_dir>")
	})

	t.Run("version flag", func(t *testing.T) {
		output, err := executeCmd(t, "--version")
		assert.NoError(t, err)
		assert.Equal(t, "theia-builder version "+version+"\n", output)
	})

	t.Run("unknown command", func(t *testing.T) {
		_, err := executeCmd(t, "deploy")
		assert.Error(t, err)
	})
}

func TestRootCmd_Structure(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	for _, name := range []string{"prepare", "build", "validate", "modules", "update"} {
		assert.Contains(t, commandNames, name)
	}

	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, "info", newLogger(nil, false).GetLevel().String())
	assert.Equal(t, "debug", newLogger(nil, true).GetLevel().String())
}
