package ui

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// captureColorOutput captures output from the color package.
// The color package uses color.Output which defaults to os.Stdout.
func captureColorOutput(fn func()) string {
	// Save original state
	oldNoColor := color.NoColor
	oldOutput := color.Output

	// Configure for testing
	color.NoColor = true

	// Create pipe
	r, w, _ := os.Pipe()

	// Set color.Output to our pipe
	color.Output = w

	// Also redirect os.Stdout for fmt.Printf calls
	oldStdout := os.Stdout
	os.Stdout = w

	// Run the function
	fn()

	// Close writer
	w.Close()

	// Restore
	color.Output = oldOutput
	color.NoColor = oldNoColor
	os.Stdout = oldStdout

	// Read output
	var buf bytes.Buffer
	io.Copy(&buf, r)
	r.Close()

	return buf.String()
}

func TestSuccess(t *testing.T) {
	output := captureColorOutput(func() {
		Success("operation completed")
	})
	assert.Contains(t, output, "operation completed")
	assert.Contains(t, output, "\n")
}

func TestSuccess_WithArgs(t *testing.T) {
	output := captureColorOutput(func() {
		Success("processed %d items", 42)
	})
	assert.Contains(t, output, "processed 42 items")
}

func TestWarning(t *testing.T) {
	output := captureColorOutput(func() {
		Warning("be careful")
	})
	assert.Contains(t, output, "be careful")
	assert.Contains(t, output, "\n")
}

func TestWarning_WithArgs(t *testing.T) {
	output := captureColorOutput(func() {
		Warning("deprecated: use %s instead", "newFunc")
	})
	assert.Contains(t, output, "deprecated: use newFunc instead")
}

func TestInfo(t *testing.T) {
	output := captureColorOutput(func() {
		Info("informational message")
	})
	assert.Contains(t, output, "informational message")
	assert.Contains(t, output, "\n")
}

func TestInfo_WithArgs(t *testing.T) {
	output := captureColorOutput(func() {
		Info("version: %s", "1.0.0")
	})
	assert.Contains(t, output, "version: 1.0.0")
}

func TestStep(t *testing.T) {
	output := captureColorOutput(func() {
		Step(1, "first step")
	})
	assert.Contains(t, output, "[1]")
	assert.Contains(t, output, "first step")
	assert.Contains(t, output, "\n")
}

func TestStep_WithArgs(t *testing.T) {
	output := captureColorOutput(func() {
		Step(3, "processing %s", "data.yml")
	})
	assert.Contains(t, output, "[3]")
	assert.Contains(t, output, "processing data.yml")
}

func TestHeader(t *testing.T) {
	output := captureColorOutput(func() {
		Header("Section Title")
	})
	assert.Contains(t, output, "Section Title")
	assert.Contains(t, output, "\n")
}

func TestHeader_WithArgs(t *testing.T) {
	output := captureColorOutput(func() {
		Header("Building %s...", "project")
	})
	assert.Contains(t, output, "Building project...")
}

func TestModule(t *testing.T) {
	output := captureColorOutput(func() {
		Module("merging %s", "java")
	})
	assert.Contains(t, output, "merging java")
	assert.Contains(t, output, "\n")
}

func TestImage(t *testing.T) {
	output := captureColorOutput(func() {
		Image("built %s", "sha256:abc")
	})
	assert.Contains(t, output, "built sha256:abc")
}

func TestTag(t *testing.T) {
	output := captureColorOutput(func() {
		Tag("%s", "acme/ide:1.0.0")
	})
	assert.Contains(t, output, "acme/ide:1.0.0")
}

func TestErrorw(t *testing.T) {
	oldNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = oldNoColor }()

	var buf bytes.Buffer
	Errorw(&buf, "prepare %s: %v", "app", "boom")
	assert.Equal(t, "✗ prepare app: boom\n", buf.String())
}

func TestColorVariables(t *testing.T) {
	// Test that color variables are initialized
	assert.NotNil(t, Red)
	assert.NotNil(t, Green)
	assert.NotNil(t, Yellow)
	assert.NotNil(t, Blue)
	assert.NotNil(t, Cyan)
	assert.NotNil(t, Bold)
}

func TestSuccess_HasCheckmark(t *testing.T) {
	output := captureColorOutput(func() {
		Success("test")
	})
	// Output format includes checkmark prefix
	assert.Contains(t, output, "test")
}

func TestWarning_HasWarningSymbol(t *testing.T) {
	output := captureColorOutput(func() {
		Warning("test")
	})
	assert.Contains(t, output, "test")
}

func TestWriterVariants(t *testing.T) {
	oldNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = oldNoColor }()

	var buf bytes.Buffer
	Successw(&buf, "%s is valid", "application.yaml")
	Warningw(&buf, "%s: not found", "java")
	Modulew(&buf, "%s", "go")

	assert.Equal(t, "✓ application.yaml is valid\n⚠ java: not found\n📦 go\n", buf.String())
}

func TestMultipleMessages(t *testing.T) {
	output := captureColorOutput(func() {
		Info("line 1")
		Info("line 2")
		Info("line 3")
	})
	assert.Contains(t, output, "line 1")
	assert.Contains(t, output, "line 2")
	assert.Contains(t, output, "line 3")
}

func TestEmptyMessage(t *testing.T) {
	output := captureColorOutput(func() {
		Info("")
	})
	// Should just have a newline
	assert.Equal(t, "\n", output)
}

func TestSpecialCharacters(t *testing.T) {
	output := captureColorOutput(func() {
		Info("path: /home/user/file.txt")
	})
	assert.Contains(t, output, "/home/user/file.txt")
}

func TestUnicodeCharacters(t *testing.T) {
	output := captureColorOutput(func() {
		Info("hello: world")
	})
	assert.Contains(t, output, "hello: world")
}

func TestConcurrentOutput(t *testing.T) {
	// Test that the functions don't panic when called normally
	// (concurrent capture is problematic due to shared global state)
	for i := 0; i < 3; i++ {
		output := captureColorOutput(func() {
			Info("message %d", i)
		})
		assert.Contains(t, output, "message")
	}
}
