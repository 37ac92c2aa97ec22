package cmd

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Common styles used across commands
var (
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true) // Green
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")) // Blue
	headerStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle     = lipgloss.NewStyle().Faint(true)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "❯"
)

// applyColor maps the color setting onto lipgloss. "auto" keeps the
// usual terminal detection. The environment variables reach renderers
// bound to other writers, and child compilers that honor them.
func applyColor(mode string) {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
		os.Setenv("CLICOLOR_FORCE", "1")
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
		os.Setenv("NO_COLOR", "1")
	}
}
