package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// styles holds the lipgloss styles for one output writer. Colors are
// dropped automatically when w is not a terminal.
type styles struct {
	box       lipgloss.Style
	title     lipgloss.Style
	date      lipgloss.Style
	number    lipgloss.Style
	dim       lipgloss.Style
	section   lipgloss.Style
	header    lipgloss.Style
	bar       lipgloss.Style
	highlight lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1),
		title: r.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true),
		date: r.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true),
		number: r.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		dim: r.NewStyle().
			Faint(true).
			Italic(true),
		section: r.NewStyle().
			Foreground(lipgloss.Color("13")).
			Bold(true),
		header: r.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		bar: r.NewStyle().
			Foreground(lipgloss.Color("12")),
		highlight: r.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true),
	}
}

var printer = message.NewPrinter(language.English)

// formatCount renders n with thousands separators.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// formatPercent renders a ratio in [0, 1] as a percentage with two decimals.
func formatPercent(ratio float64) string {
	return printer.Sprintf("%.2f%%", ratio*100)
}
