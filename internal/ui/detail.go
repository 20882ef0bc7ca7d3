package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/pokedex/internal/catalog"
)

// detailState is one visit to the detail screen. visit increases on every
// navigation so results belonging to an earlier visit can be recognized.
type detailState struct {
	visit    int
	id       int
	state    catalog.State[catalog.Detail]
	cancel   context.CancelFunc
	viewport viewport.Model
	dirty    bool
}

func newDetailState() detailState {
	return detailState{
		state:    catalog.Idle[catalog.Detail](),
		viewport: viewport.New(0, 0),
	}
}

// openDetail navigates to the detail screen for id and starts its fetch.
func (m *Model) openDetail(id int) tea.Cmd {
	m.leaveDetail()

	ctx, cancel := context.WithCancel(m.ctx)
	m.detail.visit++
	m.detail.id = id
	m.detail.cancel = cancel
	m.detail.state = catalog.Idle[catalog.Detail]()
	m.detail.viewport.GotoTop()
	m.detail.dirty = true
	m.currentView = ViewDetail

	cmd := m.startDetailFetch(ctx)
	m.updateDetailViewport()
	return cmd
}

// startDetailFetch moves an Idle detail to Loading and returns the command
// that performs the fetch. It does nothing once a fetch has started.
func (m *Model) startDetailFetch(ctx context.Context) tea.Cmd {
	if m.details == nil || m.detail.state.Phase() != catalog.PhaseIdle {
		return nil
	}
	m.detail.state = catalog.Loading[catalog.Detail]()

	loader, visit, id := m.details, m.detail.visit, m.detail.id
	return func() tea.Msg {
		d, err := loader.LoadDetail(ctx, id)
		if err != nil {
			return detailErrorMsg{visit: visit, id: id, err: err}
		}
		return detailLoadedMsg{visit: visit, detail: d}
	}
}

// leaveDetail cancels any in-flight fetch for the current visit.
func (m *Model) leaveDetail() {
	if m.detail.cancel != nil {
		m.detail.cancel()
		m.detail.cancel = nil
	}
}

func (m *Model) handleDetailLoaded(msg detailLoadedMsg) {
	if msg.visit != m.detail.visit || m.currentView != ViewDetail {
		return
	}
	m.detail.state = catalog.Loaded(msg.detail)
	m.detail.dirty = true
	m.updateDetailViewport()
}

// handleDetailError logs the failure. A failed detail renders exactly like
// a loading one and is not retried.
func (m *Model) handleDetailError(msg detailErrorMsg) {
	if msg.visit != m.detail.visit || m.currentView != ViewDetail {
		return
	}
	m.logger.Error("detail fetch failed", "id", msg.id, "error", msg.err)
	m.detail.state = catalog.Failed[catalog.Detail](msg.err)
	m.detail.dirty = true
	m.updateDetailViewport()
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.leaveDetail()
		m.currentView = ViewList
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.detail.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detail.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.detail.viewport, cmd = m.detail.viewport.Update(msg)
	return m, cmd
}

func (m *Model) updateDetailViewport() {
	if !m.detail.dirty || m.detail.viewport.Width == 0 {
		return
	}
	m.detail.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.detail.viewport.SetContent(m.renderDetailContent())
	m.detail.dirty = false
}

func (m Model) renderDetail() string {
	var body string
	if _, ok := m.detail.state.Data(); ok {
		body = m.detail.viewport.View()
	} else {
		// Loading and Failed look the same.
		bg := NewBgStyle(m.theme.FocusBg)
		styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
		body = bg.Space() + m.spinner.View() + bg.Space() + bg.Render("Loading...", styles.MutedText)
	}
	return m.renderTitledBox(m.detailTitle(), body, m.width, m.height-2, true)
}

func (m Model) detailTitle() string {
	if d, ok := m.detail.state.Data(); ok {
		return d.Label()
	}
	return "#" + catalog.PaddedID(m.detail.id)
}

func (m Model) renderDetailContent() string {
	d, ok := m.detail.state.Data()
	if !ok {
		return ""
	}

	bgColor := m.theme.FocusBg
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	width := m.detail.viewport.Width

	const labelWidth = 11
	field := func(label, value string, style lipgloss.Style) string {
		return bg.Space() + bg.Render(padRight(label, labelWidth), styles.MutedText) + bg.Render(value, style)
	}

	var b strings.Builder
	b.WriteString(bg.Space() + bg.Render(titleCase(d.Name), styles.Text.Bold(true)) +
		bg.Space() + bg.Render("#"+catalog.PaddedID(d.ID), styles.AccentText))
	b.WriteString("\n\n")

	if d.ArtworkURL != "" {
		b.WriteString(field("Artwork", truncateMiddle(d.ArtworkURL, max(width-labelWidth-2, 10)), styles.InfoText))
		b.WriteString("\n")
	}
	b.WriteString(field("Height", fmt.Sprintf("%s m", humanize.FtoaWithDigits(d.HeightMeters(), 1)), styles.Text))
	b.WriteString("\n")
	b.WriteString(field("Weight", fmt.Sprintf("%s kg", humanize.FtoaWithDigits(d.WeightKilograms(), 1)), styles.Text))
	b.WriteString("\n")

	abilities := "none"
	if len(d.Abilities) > 0 {
		abilities = strings.Join(d.Abilities, ", ")
	}
	b.WriteString(field("Abilities", abilities, styles.Text))
	b.WriteString("\n\n")

	b.WriteString(bg.Space() + bg.Render("Base stats", styles.AccentText.Bold(true)))
	b.WriteString("\n")

	barMax := max(width-labelWidth-8, 4)
	for _, s := range d.Stats {
		filled := barWidth(s.Value, statCeiling, barMax)
		barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatColor(s.Name)))
		line := bg.Space() +
			bg.Render(padRight(statLabel(s.Name), labelWidth), styles.MutedText) +
			bg.Render(fmt.Sprintf("%3d", s.Value), styles.Text) + bg.Space() +
			bg.Render(strings.Repeat("█", filled), barStyle) +
			bg.Render(strings.Repeat("░", barMax-filled), styles.FaintText)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(bg.Space() + bg.Render(padRight("Total", labelWidth), styles.MutedText) +
		bg.Render(fmt.Sprintf("%3d", d.StatTotal()), styles.Text.Bold(true)))

	return b.String()
}

// Messages

type detailLoadedMsg struct {
	visit  int
	detail catalog.Detail
}

type detailErrorMsg struct {
	visit int
	id    int
	err   error
}
