package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokedex/internal/catalog"
)

// listState holds the search box and the filtered view of the catalog.
type listState struct {
	input     textinput.Model
	searching bool
	query     string
	filtered  []catalog.Entry
	selected  int
}

func newListState() listState {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search by name or number"
	ti.CharLimit = 64
	return listState{input: ti}
}

// refilter recomputes the visible entries from the current snapshot and
// query, keeping the selection on the same entry when it is still visible.
func (m *Model) refilter() {
	var selectedID int
	if e, ok := m.selectedEntry(); ok {
		selectedID = e.ID
	}

	m.list.filtered = catalog.Filter(m.snapshot.Entries(), m.list.query)

	m.list.selected = 0
	for i, e := range m.list.filtered {
		if e.ID == selectedID {
			m.list.selected = i
			break
		}
	}
}

func (m *Model) setQuery(q string) {
	if q == m.list.query {
		return
	}
	m.list.query = q
	m.refilter()
}

func (m Model) selectedEntry() (catalog.Entry, bool) {
	if m.list.selected < 0 || m.list.selected >= len(m.list.filtered) {
		return catalog.Entry{}, false
	}
	return m.list.filtered[m.list.selected], true
}

func (m *Model) moveSelection(delta int) {
	n := len(m.list.filtered)
	if n == 0 {
		m.list.selected = 0
		return
	}
	m.list.selected = min(max(m.list.selected+delta, 0), n-1)
}

func (m Model) listPageSize() int {
	return max(m.paneInnerSize().height-2, 1)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.list.searching = true
		return m, m.list.input.Focus()

	case key.Matches(msg, m.keys.Back):
		m.list.input.SetValue("")
		m.setQuery("")
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.currentView = ViewLogs
		return m, m.forceRefreshLogs()

	case key.Matches(msg, m.keys.Open):
		if e, ok := m.selectedEntry(); ok {
			return m, m.openDetail(e.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Top):
		m.list.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(len(m.list.filtered))
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-m.listPageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(m.listPageSize())
	}
	return m, nil
}

// handleSearchKey feeds the focused search box. The filter is recomputed on
// every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.list.searching = false
		m.list.input.Blur()
		if e, ok := m.selectedEntry(); ok {
			return m, m.openDetail(e.ID)
		}
		return m, nil
	case tea.KeyEsc:
		m.list.searching = false
		m.list.input.Blur()
		return m, nil
	case tea.KeyUp:
		m.moveSelection(-1)
		return m, nil
	case tea.KeyDown:
		m.moveSelection(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.list.input, cmd = m.list.input.Update(msg)
	m.setQuery(m.list.input.Value())
	return m, cmd
}

func (m Model) renderList() string {
	inner := m.paneInnerSize()
	focused := !m.list.searching
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	var lines []string
	lines = append(lines, m.list.input.View())
	lines = append(lines, bg.Render(strings.Repeat("─", inner.width), styles.FaintText))

	rows := max(inner.height-2, 0)
	switch {
	case m.snapshot.Loading() || m.snapshot.Catalog.Phase() == catalog.PhaseIdle:
		lines = append(lines, bg.Spaces(1)+m.spinner.View()+bg.Space()+bg.Render("Loading catalog...", styles.MutedText))
	case len(m.list.filtered) == 0 && m.list.query != "":
		lines = append(lines, bg.Space()+bg.Render(fmt.Sprintf("No matches for %q", m.list.query), styles.MutedText))
	default:
		start := scrollOffset(m.list.selected, len(m.list.filtered), rows)
		end := min(start+rows, len(m.list.filtered))
		for i := start; i < end; i++ {
			lines = append(lines, m.formatEntryRow(m.list.filtered[i], inner.width, bgColor, i == m.list.selected))
		}
	}

	return m.renderTitledBox(m.listTitle(), strings.Join(lines, "\n"), m.width, m.height-2, focused)
}

func (m Model) listTitle() string {
	total := len(m.snapshot.Entries())
	if m.list.query == "" {
		return fmt.Sprintf("Pokédex (%d)", total)
	}
	return fmt.Sprintf("Pokédex (%d/%d)", len(m.list.filtered), total)
}

// formatEntryRow renders "#025 pikachu". Selected rows use the selection
// colors for every segment so contrast is kept.
func (m Model) formatEntryRow(e catalog.Entry, width int, bgColor string, selected bool) string {
	if selected {
		sel := m.theme.Styles().Selected
		return sel.Width(width).Render(" " + e.Label())
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	row := bg.Space() +
		bg.Render("#"+catalog.PaddedID(e.ID), styles.MutedText) +
		bg.Space() +
		bg.Render(truncate(e.Name, max(width-7, 1)), styles.Text)
	return bg.FillLine(row, width)
}

// scrollOffset returns the first visible row that keeps selected in view.
func scrollOffset(selected, total, rows int) int {
	if rows <= 0 || total <= rows {
		return 0
	}
	start := selected - rows/2
	start = max(start, 0)
	start = min(start, total-rows)
	return start
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	padded := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		padded = append(padded,
			bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(padded, "\n") + "\n" + bottomBorder
}
