// Package ui provides colored console output for theia-builder.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Colors
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
)

// Success prints a green success message with checkmark.
func Success(format string, args ...any) {
	Green.Printf("✓ "+format+"\n", args...)
}

// Successw prints a green success message with checkmark to w.
func Successw(w io.Writer, format string, args ...any) {
	Green.Fprintf(w, "✓ "+format+"\n", args...)
}

// Errorw prints a red error message with X to w.
func Errorw(w io.Writer, format string, args ...any) {
	Red.Fprintf(w, "✗ "+format+"\n", args...)
}

// Warning prints a yellow warning message.
func Warning(format string, args ...any) {
	Yellow.Printf("⚠ "+format+"\n", args...)
}

// Warningw prints a yellow warning message to w.
func Warningw(w io.Writer, format string, args ...any) {
	Yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Info prints a blue info message.
func Info(format string, args ...any) {
	Blue.Printf(format+"\n", args...)
}

// Step prints a numbered step in cyan.
func Step(n int, format string, args ...any) {
	Cyan.Printf("[%d] ", n)
	fmt.Printf(format+"\n", args...)
}

// Header prints a bold header.
func Header(format string, args ...any) {
	Bold.Printf(format+"\n", args...)
}

// Module prints a module line.
func Module(format string, args ...any) {
	Cyan.Printf("📦 "+format+"\n", args...)
}

// Modulew prints a module line to w.
func Modulew(w io.Writer, format string, args ...any) {
	Cyan.Fprintf(w, "📦 "+format+"\n", args...)
}

// Image prints an image line.
func Image(format string, args ...any) {
	Green.Printf("🐳 "+format+"\n", args...)
}

// Tag prints an image tag line.
func Tag(format string, args ...any) {
	Blue.Printf("🏷  "+format+"\n", args...)
}

// Fatal prints an error to stderr and exits.
func Fatal(format string, args ...any) {
	Errorw(os.Stderr, format, args...)
	os.Exit(1)
}
