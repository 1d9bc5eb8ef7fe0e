package executor

import "github.com/charmbracelet/lipgloss"

// Status colors, shown as a colored bullet before the status text: green
// for 2xx/3xx, yellow for 4xx, red for 5xx and anything unexpected.
var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func statusColor(class int) string {
	switch {
	case class == 2 || class == 3:
		return styleSuccess.Render("●")
	case class == 4:
		return styleWarn.Render("●")
	default:
		return styleError.Render("●")
	}
}
