package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/pokedex/internal/catalog"
)

// renderHeader renders the status bar: logo, catalog state and counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("pokedex", styles.Logo)}

	switch m.snapshot.Catalog.Phase() {
	case catalog.PhaseIdle, catalog.PhaseLoading:
		parts = append(parts, m.spinner.View()+bg.Space()+bg.Render("Loading catalog...", styles.WarningText.Bold(true)))
	default:
		total := int64(len(m.snapshot.Entries()))
		parts = append(parts,
			bg.Render("Entries:", styles.MutedText)+bg.Space()+
				bg.Render(humanize.Comma(total), styles.Text))
		if m.list.query != "" {
			parts = append(parts,
				bg.Render("Showing:", styles.MutedText)+bg.Space()+
					bg.Render(humanize.Comma(int64(len(m.list.filtered))), styles.AccentText))
		}
		if !compact && !m.snapshot.FinishedAt.IsZero() {
			parts = append(parts, bg.Render("loaded "+humanize.Time(m.snapshot.FinishedAt), styles.FaintText))
		}
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the current screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var bindings []key.Binding
	switch {
	case m.currentView == ViewList && m.list.searching:
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Open")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Done")),
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "Move")),
		}
	case m.currentView == ViewDetail:
		bindings = []key.Binding{m.keys.Back, m.keys.Up, m.keys.Down, m.keys.Help}
	case m.currentView == ViewLogs:
		bindings = []key.Binding{m.keys.ToggleFollow, m.keys.Back, m.keys.Up, m.keys.Down, m.keys.Help}
	default:
		bindings = []key.Binding{m.keys.Search, m.keys.Open, m.keys.Up, m.keys.Down, m.keys.Logs, m.keys.Help, m.keys.Quit}
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		segments = append(segments, bg.Render(h.Key, styles.AccentText)+colon+bg.Render(h.Desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
