// Package styles contains the shared styles for the terminal UI components.
package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
	Arrow = "→"
)

const (
	ColorSuccess = "#22c55e"
	ColorError   = "#d75f6b"
	ColorSubtle  = "#a3a3a3"
	ColorLabel   = "#7aa2f7"
	ColorName    = "#c0caf5"
	ColorDivider = "#565f89"
)

var (
	Bold      = lipgloss.NewStyle().Bold(true).Render
	Underline = lipgloss.NewStyle().Underline(true).Render

	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).PaddingLeft(1).Render
	Subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSubtle)).PaddingLeft(1).Render

	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLabel)).Bold(true)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorName))
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDivider))
)

// ErrorBox creates a bordered error box with title and message
func ErrorBox(title, message string) string {
	redStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSubtle))

	lines := []string{
		redStyle.Render("╭ " + title),
	}

	for _, line := range strings.Split(message, "\n") {
		lines = append(lines, redStyle.Render("│")+" "+subtleStyle.Render(line))
	}

	lines = append(lines, redStyle.Render("╵"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Header renders a "-- [LABEL] name ----" divider that fills width columns.
func Header(label, name string, width int) string {
	leftPart := fmt.Sprintf("%s %s%s%s %s ",
		dividerStyle.Render("--"),
		dividerStyle.Render("["),
		labelStyle.Render(label),
		dividerStyle.Render("]"),
		nameStyle.Render(name),
	)

	visibleLength := lipgloss.Width(leftPart)
	remainingSpace := max(width-visibleLength, 0)

	return leftPart + dividerStyle.Render(strings.Repeat("-", remainingSpace))
}
