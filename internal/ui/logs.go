package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokedex/internal/diag"
)

// logState holds the diagnostics log screen.
type logState struct {
	lines       []string
	follow      bool
	lastRefresh time.Time
	viewport    viewport.Model
	dirty       bool
}

func newLogState() logState {
	return logState{
		follow:   true,
		viewport: viewport.New(0, 0),
	}
}

// refreshLogs re-reads the log file unless it was read very recently.
func (m *Model) refreshLogs() tea.Cmd {
	if m.logPath == "" || time.Since(m.logs.lastRefresh) < LogRefreshDebounce {
		return nil
	}
	return m.forceRefreshLogs()
}

func (m *Model) forceRefreshLogs() tea.Cmd {
	if m.logPath == "" {
		return nil
	}
	m.logs.lastRefresh = time.Now()
	return tailLogCmd(m.logPath)
}

func (m *Model) handleLogTail(msg logTailMsg) {
	m.logs.lines = msg.lines
	m.logs.dirty = true
	m.updateLogViewport()
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.currentView = ViewList
		return m, nil
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			m.logs.viewport.GotoBottom()
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logs.follow = false
		m.logs.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logs.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logs.viewport, cmd = m.logs.viewport.Update(msg)
	return m, cmd
}

func (m *Model) updateLogViewport() {
	if m.logs.viewport.Width == 0 {
		return
	}
	if m.logs.dirty {
		m.logs.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
		m.logs.viewport.SetContent(m.renderLogContent())
		m.logs.dirty = false
	}
	if m.logs.follow {
		m.logs.viewport.GotoBottom()
	}
}

func (m Model) renderLogs() string {
	title := "Diagnostics"
	if m.logPath != "" {
		title += " · " + truncateMiddle(m.logPath, 48)
	}
	if !m.logs.follow {
		title += " (paused)"
	}
	return m.renderTitledBox(title, m.logs.viewport.View(), m.width, m.height-2, true)
}

func (m Model) renderLogContent() string {
	bgColor := m.theme.FocusBg
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	if len(m.logs.lines) == 0 {
		return bg.Space() + bg.Render("No log records yet.", styles.MutedText)
	}

	out := make([]string, 0, len(m.logs.lines))
	for _, line := range m.logs.lines {
		out = append(out, m.formatLogLine(line, styles, bg))
	}
	return strings.Join(out, "\n")
}

// formatLogLine renders a JSON record as "15:04:05 LEVEL message key=value".
// Lines that are not records are shown as-is.
func (m Model) formatLogLine(line string, styles Styles, bg BgStyle) string {
	rec, ok := diag.ParseRecord(line)
	if !ok {
		return bg.Render(line, styles.Text)
	}

	var b strings.Builder
	if !rec.Time.IsZero() {
		b.WriteString(bg.Render(rec.Time.Local().Format("15:04:05"), styles.FaintText))
		b.WriteString(bg.Space())
	}
	b.WriteString(bg.Render(padRight(rec.Level, 5), levelStyle(rec.Level, styles).Bold(true)))
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(rec.Message, styles.Text))
	if rec.LoadID != "" {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render("load="+shortID(rec.LoadID), styles.AccentText))
	}
	if rec.Error != "" {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(rec.Error, styles.DangerText))
	}
	return b.String()
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR":
		return styles.DangerText
	case "DEBUG":
		return styles.InfoText
	default:
		return styles.Text
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Messages

type logTailMsg struct {
	lines []string
}

type logErrorMsg struct {
	err error
}

// Commands

func tailLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := diag.Tail(path, LogTailLimit)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logTailMsg{lines: lines}
	}
}
