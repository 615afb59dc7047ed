package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/sim"
)

// Menu lets the user pick a preset and then hands over to the live view.
type Menu struct {
	presets []string
	cursor  int
	opts    Options
	live    *Model
	err     error
	theme   Theme
}

func NewMenu(opts Options) Menu {
	return Menu{presets: config.ListPresets(), opts: opts, theme: GetTheme(opts.Theme)}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m Menu) start() (tea.Model, tea.Cmd) {
	name := m.presets[m.cursor]
	sys, err := sim.FromConfig(config.GetPreset(name))
	if err != nil {
		m.err = err
		return m, nil
	}
	opts := m.opts
	opts.Name = name
	live := NewModel(sys, opts)
	m.live = &live
	return m, live.Init()
}

// Selected returns the highlighted preset name.
func (m Menu) Selected() string { return m.presets[m.cursor] }

// Live reports whether a preset has been started.
func (m Menu) Live() bool { return m.live != nil }

func (m Menu) View() string {
	if m.live != nil {
		return m.live.View()
	}

	title := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true)
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	active := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)

	var b strings.Builder
	b.WriteString("\n\n    " + title.Render("ORRERY") + "\n    " + muted.Render("n-body gravity") + "\n    " + Separator(25, m.theme) + "\n\n")
	for i, name := range m.presets {
		cfg := config.GetPreset(name)
		desc := fmt.Sprintf("%d bodies, %s, dt=%gs", len(cfg.Bodies), cfg.Integrator, cfg.Timestep)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", active.Render("▸"), active.Render(fmt.Sprintf("%-14s", name)), muted.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", muted.Render(fmt.Sprintf("%-14s", name)), muted.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + muted.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

// RunMenu starts the preset picker in the alternate screen.
func RunMenu(opts Options) error {
	_, err := tea.NewProgram(NewMenu(opts), tea.WithAltScreen()).Run()
	return err
}
