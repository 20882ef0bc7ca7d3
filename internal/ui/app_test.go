package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/diag"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/state"
)

type fakeDetails struct {
	mu      sync.Mutex
	details map[int]catalog.Detail
	err     error
	calls   []int
}

func (f *fakeDetails) LoadDetail(_ context.Context, id int) (catalog.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	if f.err != nil {
		return catalog.Detail{}, f.err
	}
	d, ok := f.details[id]
	if !ok {
		return catalog.Detail{}, errors.New("not found")
	}
	return d, nil
}

type logBuffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

var sampleEntries = []catalog.Entry{
	{ID: 1, Name: "bulbasaur"},
	{ID: 7, Name: "squirtle"},
	{ID: 25, Name: "pikachu"},
	{ID: 26, Name: "raichu"},
	{ID: 107, Name: "hitmonchan"},
}

func pikachuDetail() catalog.Detail {
	return catalog.Detail{
		Entry:      catalog.Entry{ID: 25, Name: "pikachu"},
		ArtworkURL: "https://img.example/25.png",
		Height:     4,
		Weight:     60,
		Abilities:  []string{"static", "lightning-rod"},
		Stats: []catalog.Stat{
			{Name: "hp", Value: 35},
			{Name: "attack", Value: 55},
			{Name: "speed", Value: 90},
		},
	}
}

type testEnv struct {
	store     *state.Store
	details   *fakeDetails
	logs      *logBuffer
	prefsPath string
}

func newTestModel(t *testing.T, opts ...func(*Options)) (Model, *testEnv) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	env := &testEnv{
		store: &state.Store{},
		details: &fakeDetails{details: map[int]catalog.Detail{
			7:  {Entry: catalog.Entry{ID: 7, Name: "squirtle"}},
			25: pikachuDetail(),
		}},
		logs:      &logBuffer{},
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	env.store.Begin("test-load")
	env.store.Finish(sampleEntries, nil)

	o := Options{
		Store:     env.store,
		Details:   env.details,
		Logger:    diag.New(env.logs, "debug"),
		PrefsPath: env.prefsPath,
	}
	for _, fn := range opts {
		fn(&o)
	}

	m := New(o)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, fetchSnapshotCmd(o.Store)())
	return m, env
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, string(r))
	}
	return m
}

func filteredIDs(m Model) []int {
	ids := make([]int, 0, len(m.list.filtered))
	for _, e := range m.list.filtered {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestList_ShowsWholeCatalogForEmptyQuery(t *testing.T) {
	m, _ := newTestModel(t)
	if diff := cmp.Diff([]int{1, 7, 25, 26, 107}, filteredIDs(m)); diff != "" {
		t.Fatalf("filtered mismatch (-want +got):\n%s", diff)
	}
	view := m.View()
	if !strings.Contains(view, "#025") || !strings.Contains(view, "pikachu") {
		t.Fatalf("list view missing pikachu row:\n%s", view)
	}
}

func TestList_FiltersOnEveryKeystroke(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "/")
	if !m.list.searching {
		t.Fatal("search box not focused after /")
	}

	m = typeText(t, m, "p")
	if diff := cmp.Diff([]int{25}, filteredIDs(m)); diff != "" {
		t.Fatalf("after 'p' (-want +got):\n%s", diff)
	}
	m = typeText(t, m, "I")
	if m.list.query != "pI" {
		t.Fatalf("query = %q, want pI", m.list.query)
	}
	if diff := cmp.Diff([]int{25}, filteredIDs(m)); diff != "" {
		t.Fatalf("case-insensitive match (-want +got):\n%s", diff)
	}
}

func TestList_PaddedNumberQuery(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "/")
	m = typeText(t, m, "07")
	if diff := cmp.Diff([]int{7, 107}, filteredIDs(m)); diff != "" {
		t.Fatalf("'07' (-want +got):\n%s", diff)
	}
	m, _ = press(t, m, "esc")
	m, _ = press(t, m, "esc")
	if m.list.query != "" || len(m.list.filtered) != len(sampleEntries) {
		t.Fatalf("esc should clear the query, got %q with %d entries", m.list.query, len(m.list.filtered))
	}
}

func TestEnter_OpensDetailAndRendersLoadedRecord(t *testing.T) {
	m, env := newTestModel(t)
	m, _ = press(t, m, "/")
	m = typeText(t, m, "pika")
	m, cmd := press(t, m, "enter")

	if m.currentView != ViewDetail {
		t.Fatalf("currentView = %v, want detail", m.currentView)
	}
	if !m.detail.state.Pending() {
		t.Fatalf("detail phase = %v, want loading", m.detail.state.Phase())
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Fatalf("pending detail should render loading:\n%s", m.View())
	}
	if cmd == nil {
		t.Fatal("enter returned no fetch command")
	}

	m = update(t, m, cmd())
	if _, ok := m.detail.state.Data(); !ok {
		t.Fatalf("detail phase = %v, want loaded", m.detail.state.Phase())
	}
	view := m.View()
	for _, want := range []string{"Pikachu", "#025", "lightning-rod", "0.4 m", "6 kg", "Speed"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}
	if diff := cmp.Diff([]int{25}, env.details.calls); diff != "" {
		t.Fatalf("fetch calls (-want +got):\n%s", diff)
	}
}

func TestDetail_RefetchesOnEveryVisit(t *testing.T) {
	m, env := newTestModel(t)
	m, _ = press(t, m, "G")
	m, _ = press(t, m, "k")
	m, _ = press(t, m, "k")
	for i := 0; i < 2; i++ {
		var cmd tea.Cmd
		m, cmd = press(t, m, "enter")
		m = update(t, m, cmd())
		m, _ = press(t, m, "esc")
	}
	if diff := cmp.Diff([]int{25, 25}, env.details.calls); diff != "" {
		t.Fatalf("fetch calls (-want +got):\n%s", diff)
	}
}

func TestDetail_DropsResultFromEarlierVisit(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "/")
	m = typeText(t, m, "pika")
	m, first := press(t, m, "enter")

	m, _ = press(t, m, "esc") // back to list
	m, _ = press(t, m, "esc") // clear query, selection stays on pikachu
	m, _ = press(t, m, "k")   // squirtle
	m, second := press(t, m, "enter")

	m = update(t, m, first())
	if m.detail.id != 7 || !m.detail.state.Pending() {
		t.Fatalf("stale result applied: id=%d phase=%v", m.detail.id, m.detail.state.Phase())
	}

	m = update(t, m, second())
	d, ok := m.detail.state.Data()
	if !ok || d.ID != 7 {
		t.Fatalf("detail = %+v ok=%v, want squirtle", d, ok)
	}
}

func TestDetail_FailureRendersAsLoadingAndLogs(t *testing.T) {
	m, env := newTestModel(t)
	env.details.err = errors.New("upstream down")

	m, _ = press(t, m, "/")
	m = typeText(t, m, "pika")
	m, cmd := press(t, m, "enter")
	m = update(t, m, cmd())

	if m.detail.state.Phase() != catalog.PhaseFailed {
		t.Fatalf("phase = %v, want failed", m.detail.state.Phase())
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Fatalf("failed detail should look like loading:\n%s", m.View())
	}
	logs := env.logs.String()
	if strings.Count(logs, `"level":"ERROR"`) != 1 || !strings.Contains(logs, "upstream down") {
		t.Fatalf("expected one error record, got:\n%s", logs)
	}

	// No retry on re-render or tick.
	m = update(t, m, tickMsg{})
	if len(env.details.calls) != 1 {
		t.Fatalf("calls = %v, want a single attempt", env.details.calls)
	}
}

func TestList_ShowsLoadingWhileCatalogPending(t *testing.T) {
	m, _ := newTestModel(t, func(o *Options) {
		store := &state.Store{}
		store.Begin("pending")
		o.Store = store
	})
	view := m.View()
	if !strings.Contains(view, "Loading catalog...") {
		t.Fatalf("view missing loading indicator:\n%s", view)
	}
	if len(m.list.filtered) != 0 {
		t.Fatalf("filtered = %v, want empty while loading", m.list.filtered)
	}
}

func TestSnapshot_RefiltersWhenCollectionChanges(t *testing.T) {
	store := &state.Store{}
	store.Begin("pending")
	m, _ := newTestModel(t, func(o *Options) { o.Store = store })

	store.Finish(sampleEntries[:2], nil)
	m = update(t, m, fetchSnapshotCmd(store)())
	if diff := cmp.Diff([]int{1, 7}, filteredIDs(m)); diff != "" {
		t.Fatalf("filtered after load (-want +got):\n%s", diff)
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q command returned %T, want tea.QuitMsg", cmd())
	}
}

func TestTheme_CyclePersistsAndMessageApplies(t *testing.T) {
	m, env := newTestModel(t)
	m, _ = press(t, m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	saved, err := prefs.Load(env.prefsPath)
	if err != nil || saved.Theme != "Kanagawa" {
		t.Fatalf("saved prefs = %+v, %v", saved, err)
	}

	m = update(t, m, themeMsg("Slate"))
	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q after themeMsg, want Slate", m.theme.Name)
	}
}

func TestHelp_ToggleAndClose(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "?")
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not shown")
	}
	m, _ = press(t, m, "x")
	if m.showHelp {
		t.Fatal("help overlay not closed by any key")
	}
}

func TestLogs_ShowsTailedRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "pokedex.log")
	line := `{"time":"2026-01-02T03:04:05Z","level":"ERROR","msg":"catalog load failed","load_id":"0123456789abcdef","error":"boom"}`
	if err := os.WriteFile(logPath, []byte(line+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, _ := newTestModel(t, func(o *Options) { o.LogPath = logPath })
	m, cmd := press(t, m, "l")
	if m.currentView != ViewLogs || cmd == nil {
		t.Fatalf("view = %v cmd nil = %v", m.currentView, cmd == nil)
	}
	m = update(t, m, cmd())
	view := m.View()
	for _, want := range []string{"catalog load failed", "load=01234567", "boom"} {
		if !strings.Contains(view, want) {
			t.Errorf("logs view missing %q:\n%s", want, view)
		}
	}

	m, _ = press(t, m, "esc")
	if m.currentView != ViewList {
		t.Fatalf("esc from logs: view = %v, want list", m.currentView)
	}
}
