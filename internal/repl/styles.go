package repl

import "github.com/charmbracelet/lipgloss"

var (
	greetingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	outputStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	failedStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
)

// renderOutput styles a command answer, highlighting failures.
func renderOutput(text string, failed bool) string {
	if failed {
		return failedStyle.Render(text)
	}
	return outputStyle.Render(text)
}
