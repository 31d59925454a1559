package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

const (
	maxScores       = 100 // Max runs to load per variant
	sideBySideWidth = 96  // Narrower terminals show one table at a time
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextVariant key.Binding
	PrevVariant key.Binding
	SwitchPane  key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevVariant, k.NextVariant, k.SwitchPane, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchPane},
		{k.PrevVariant, k.NextVariant, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right", "next variant"),
		),
		PrevVariant: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left", "prev variant"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("v", " "),
			key.WithHelp("v", "runs/levels"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type scorePane int

const (
	paneRuns scorePane = iota
	paneLevels
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardActiveTab  = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardFocusStyle = boardPaneStyle.BorderForeground(lipgloss.Color("212"))
)

// ScoreboardModel shows, per variant, the best runs and how far runs got
// through the level catalog.
type ScoreboardModel struct {
	store    *storage.Store
	catalog  *levels.Catalog
	variants []registry.GameInfo
	played   map[string]*storage.GameStats // Aggregates of every played variant
	cursor   int
	best     int

	runTable   table.Model
	levelTable table.Model
	pane       scorePane

	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over store. A nil store shows empty
// tables and a nil catalog selects the built-in levels.
func NewScoreboardModel(store *storage.Store, catalog *levels.Catalog, width, height int) ScoreboardModel {
	if catalog == nil {
		catalog = levels.Builtin()
	}
	m := ScoreboardModel{
		store:    store,
		catalog:  catalog,
		variants: registry.List(),
		played:   map[string]*storage.GameStats{},
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	if store != nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			m.played = all
		}
	}
	m.buildTables()
	m.load()
	return m
}

// buildTables sizes both tables for the current terminal.
func (m *ScoreboardModel) buildTables() {
	height := max(m.height-11, 3) // Title, tabs, stats, borders and help

	m.runTable = newBoardTable(height,
		table.Column{Title: "#", Width: 4},
		table.Column{Title: "Score", Width: 8},
		table.Column{Title: "Reached", Width: 18},
		table.Column{Title: "Date", Width: 12},
	)
	m.levelTable = newBoardTable(height,
		table.Column{Title: "Lvl", Width: 4},
		table.Column{Title: "Name", Width: 16},
		table.Column{Title: "Best", Width: 8},
		table.Column{Title: "Ended", Width: 6},
	)
	m.focusPane()
}

func newBoardTable(height int, columns ...table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) focusPane() {
	if m.pane == paneRuns {
		m.runTable.Focus()
		m.levelTable.Blur()
		return
	}
	m.levelTable.Focus()
	m.runTable.Blur()
}

// load fills both tables for the selected variant. Query errors show as empty rows.
func (m *ScoreboardModel) load() {
	var runs []storage.ScoreEntry
	var bests []storage.LevelBest
	m.best = 0
	if m.store != nil && len(m.variants) > 0 {
		id := m.variants[m.cursor].ID
		runs, _ = m.store.TopScores(id, maxScores)
		bests, _ = m.store.LevelBests(id)
		m.best, _ = m.store.HighScore(id)
	}

	runRows := make([]table.Row, len(runs))
	for i, r := range runs {
		runRows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			m.levelLabel(r.Level),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.runTable.SetRows(runRows)
	m.runTable.GotoTop()

	m.levelTable.SetRows(m.levelRows(bests))
	m.levelTable.GotoTop()
}

// levelRows lists every catalog level, then any level a run reached that the
// current catalog no longer has.
func (m *ScoreboardModel) levelRows(bests []storage.LevelBest) []table.Row {
	byLevel := make(map[int]storage.LevelBest, len(bests))
	for _, b := range bests {
		byLevel[b.Level] = b
	}

	row := func(index int, name string) table.Row {
		b, ok := byLevel[index]
		if !ok {
			return table.Row{fmt.Sprintf("%d", index+1), name, "-", "0"}
		}
		return table.Row{fmt.Sprintf("%d", index+1), name, fmt.Sprintf("%d", b.Best), fmt.Sprintf("%d", b.Runs)}
	}

	rows := make([]table.Row, 0, m.catalog.Len())
	for i, lvl := range m.catalog.Levels() {
		rows = append(rows, row(i, lvl.Name))
	}
	for _, b := range bests {
		if b.Level >= m.catalog.Len() {
			rows = append(rows, row(b.Level, "?"))
		}
	}
	return rows
}

// levelLabel names a zero-based level index from the catalog.
func (m ScoreboardModel) levelLabel(index int) string {
	if index >= 0 && index < m.catalog.Len() {
		return fmt.Sprintf("%d %s", index+1, m.catalog.Level(index).Name)
	}
	return fmt.Sprintf("%d", index+1)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextVariant):
			m.moveVariant(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevVariant):
			m.moveVariant(-1)
			return m, nil

		case key.Matches(msg, m.keys.SwitchPane):
			m.pane = 1 - m.pane
			m.focusPane()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.buildTables()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	if m.pane == paneRuns {
		m.runTable, cmd = m.runTable.Update(msg)
	} else {
		m.levelTable, cmd = m.levelTable.Update(msg)
	}
	return m, cmd
}

func (m *ScoreboardModel) moveVariant(delta int) {
	n := len(m.variants)
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.variantTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	runs := m.renderPane(paneRuns, "Top runs", m.runTable)
	lvls := m.renderPane(paneLevels, "By level", m.levelTable)
	switch {
	case m.width >= sideBySideWidth:
		b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, runs, " ", lvls), m.width))
	case m.pane == paneRuns:
		b.WriteString(centerText(runs, m.width))
	default:
		b.WriteString(centerText(lvls, m.width))
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderPane(p scorePane, title string, t table.Model) string {
	style := boardPaneStyle
	if p == m.pane {
		style = boardFocusStyle
	}
	body := t.View()
	if p == paneRuns && len(t.Rows()) == 0 {
		body = boardDimStyle.Italic(true).Render("No runs recorded yet.\nFinish a game to set a high score!")
	}
	return style.Render(title + "\n" + body)
}

// variantTabs lists the variants with their run counts.
func (m ScoreboardModel) variantTabs() string {
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		label := v.Title
		if stats, ok := m.played[v.ID]; ok {
			label = fmt.Sprintf("%s (%d)", v.Title, stats.GamesCount)
		}
		if i == m.cursor {
			tabs[i] = boardActiveTab.Render(label)
		} else {
			tabs[i] = boardDimStyle.Render(" " + label + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// statsLine summarises the selected variant.
func (m ScoreboardModel) statsLine() string {
	if len(m.variants) == 0 {
		return boardDimStyle.Render("No variants registered")
	}
	stats, ok := m.played[m.variants[m.cursor].ID]
	if !ok || stats.GamesCount == 0 {
		return boardDimStyle.Render(fmt.Sprintf("Best: %d", m.best))
	}
	return boardDimStyle.Render(fmt.Sprintf("Best: %d  Runs: %d  Avg: %.0f  Furthest: %s",
		m.best, stats.GamesCount, stats.AvgScore, m.levelLabel(stats.BestLevel)))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, catalog *levels.Catalog, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, catalog, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
