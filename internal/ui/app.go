package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/diag"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/state"
)

// View represents the current screen.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewLogs
)

// DetailLoader fetches the full record shown on the detail screen.
type DetailLoader interface {
	LoadDetail(ctx context.Context, id int) (catalog.Detail, error)
}

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	Details     DetailLoader
	Logger      *slog.Logger
	LogPath     string
	RefreshTick time.Duration
	ThemeName   string
	PrefsPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	details     DetailLoader
	logger      *slog.Logger
	logPath     string
	prefsPath   string
	refreshTick time.Duration

	// UI state
	keys        keyMap
	help        help.Model
	spinner     spinner.Model
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot    state.Snapshot
	version     uint64
	lastUpdated time.Time

	list   listState
	detail detailState
	logs   logState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.RefreshTick
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = diag.Discard()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		details:     opts.Details,
		logger:      logger,
		logPath:     opts.LogPath,
		prefsPath:   prefsPath,
		refreshTick: refresh,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		currentView: ViewList,
		list:        newListState(),
		detail:      newDetailState(),
		logs:        newLogState(),
	}
	m.applyTheme(GetTheme(themeName))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.refreshTick),
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeViewports()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case detailLoadedMsg:
		m.handleDetailLoaded(msg)
		return m, nil

	case detailErrorMsg:
		m.handleDetailError(msg)
		return m, nil

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil

	case logErrorMsg:
		m.logger.Debug("log tail failed", "error", msg.err)
		return m, nil

	case themeMsg:
		m.applyTheme(GetTheme(string(msg)))
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.leaveDetail()
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// The search box swallows printable keys while focused.
	if m.currentView == ViewList && m.list.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs failed", "error", err)
		}
		return m, nil
	}

	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	if m.currentView == ViewLogs && m.logs.follow {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, tickCmd(m.refreshTick))
	return m, tea.Batch(cmds...)
}

// applySnapshot stores the latest catalog snapshot and re-filters when the
// collection changed.
func (m *Model) applySnapshot(msg snapshotMsg) {
	m.snapshot = msg.snapshot
	m.lastUpdated = time.Now()
	if msg.version != m.version {
		m.version = msg.version
		m.refilter()
	}
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))
	m.help.Styles.FullKey = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))
	m.help.Styles.FullDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
	m.help.Styles.FullSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint))
	m.list.input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))
	m.list.input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
	m.list.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint))
	m.detail.dirty = true
	m.logs.dirty = true
	m.refreshViewports()
}

func (m *Model) resizeViewports() {
	inner := m.paneInnerSize()
	m.detail.viewport.Width = inner.width
	m.detail.viewport.Height = inner.height
	m.logs.viewport.Width = inner.width
	m.logs.viewport.Height = inner.height
	m.detail.dirty = true
	m.logs.dirty = true
	m.refreshViewports()
}

func (m *Model) refreshViewports() {
	m.updateDetailViewport()
	m.updateLogViewport()
}

type size struct{ width, height int }

// paneInnerSize is the content area inside the single bordered pane below
// the header and command bar.
func (m Model) paneInnerSize() size {
	return size{
		width:  max(m.width-2, 0),
		height: max(m.height-4, 0),
	}
}

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.renderDetail()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderList()
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg struct {
	snapshot state.Snapshot
	version  uint64
}

type themeMsg string

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		version := store.Version()
		return snapshotMsg{snapshot: store.Snapshot(), version: version}
	}
}

// Run starts the Bubble Tea program and blocks until it exits. Edits to the
// preferences file made while it runs are applied live.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))

	watchCtx, cancel := context.WithCancel(m.ctx)
	defer cancel()
	go func() {
		err := prefs.Watch(watchCtx, m.prefsPath, func(pr prefs.Prefs) {
			p.Send(themeMsg(pr.Theme))
		})
		if err != nil {
			m.logger.Warn("prefs watch stopped", "error", err)
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
