package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orrery/internal/body"
)

type styles struct {
	canvas   lipgloss.Style
	stats    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	focus    lipgloss.Style
	graph    lipgloss.Style
	help     lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	recorder lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Text).Padding(1, 2),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(44),
		header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		focus:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:    lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 0),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		running:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		paused:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		recorder: lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}

// swatch renders a dot in the body's own colour.
func swatch(c body.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("●")
}

// Separator renders a muted divider of the given width.
func Separator(width int, t Theme) string {
	if width < 7 {
		return strings.Repeat("─", max(width, 0))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return lipgloss.NewStyle().Foreground(t.Muted).Render(left + " ◆ " + right)
}

// formatDuration renders simulated seconds as days or years.
func formatDuration(seconds float64) string {
	const day = 86400.0
	const year = 365.25 * day
	switch {
	case math.Abs(seconds) >= year:
		return fmt.Sprintf("%.2f yr", seconds/year)
	case math.Abs(seconds) >= day:
		return fmt.Sprintf("%.1f d", seconds/day)
	default:
		return fmt.Sprintf("%.0f s", seconds)
	}
}

// formatDistance renders metres in astronomical units.
func formatDistance(m float64) string {
	const au = 1.495978707e11
	return fmt.Sprintf("%.3f AU", m/au)
}
