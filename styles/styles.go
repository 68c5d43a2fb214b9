package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	TITLE = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7d56f4"))

	INFO = lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("#888888"))

	SUCCESS = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#28a745"))

	ERROR = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ee4b2b"))

	// LABEL and VALUE lay out the inspect report.
	LABEL = lipgloss.NewStyle().
		Width(14).
		Foreground(lipgloss.Color("#888888"))

	VALUE = lipgloss.NewStyle().
		Bold(true)
)

// Row renders one "label value" line of a report.
func Row(label string, value any) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LABEL.Render(label), VALUE.Render(fmt.Sprint(value)))
}
