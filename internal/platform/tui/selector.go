package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Selection is the variant and start level picked in the selector.
type Selection struct {
	GameID string
	Level  int // Zero-based start level
}

var (
	selectorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectorCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectorHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// SelectorModel lets users choose a variant and then a start level.
type SelectorModel struct {
	variants      []registry.GameInfo
	catalog       *levels.Catalog
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     Selection
	choosing      bool
	quitting      bool
	back          bool
	scoreboard    bool
}

// NewSelectorModel creates a selector over the registered variants and catalog.
// A nil catalog selects the built-in levels.
func NewSelectorModel(catalog *levels.Catalog, width, height int) SelectorModel {
	if catalog == nil {
		catalog = levels.Builtin()
	}
	return SelectorModel{
		variants:  registry.List(),
		catalog:   catalog,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m SelectorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "tab" && !m.inLevelSelect {
			m.scoreboard = true
			return m, tea.Quit
		}
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if action == MenuActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		if m.inLevelSelect {
			return m.handleLevelKey(action)
		}
		return m.handleVariantKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m SelectorModel) handleVariantKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.variants)-1 {
			m.cursor++
		}
	case MenuActionSelect, MenuActionRight:
		if len(m.variants) > 0 {
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SelectorModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < m.catalog.Len()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = Selection{GameID: m.variants[m.cursor].ID, Level: m.levelCursor}
		return m, tea.Quit
	case MenuActionBack, MenuActionLeft:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the variant or level list.
func (m SelectorModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(selectorTitleStyle.Render("B R E A K O U T"), m.width))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		b.WriteString(centerText(fmt.Sprintf("%s - select start level", m.variants[m.cursor].Title), m.width))
		b.WriteString("\n\n")
		for i, lvl := range m.catalog.Levels() {
			b.WriteString(centerText(m.item(i == m.levelCursor, fmt.Sprintf("%2d. %s", i+1, lvl.Name)), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText("Select variant:", m.width))
		b.WriteString("\n\n")
		for i, v := range m.variants {
			b.WriteString(centerText(m.item(i == m.cursor, v.Title), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(selectorHintStyle.Render("Enter: Select  |  Tab: Scores  |  Esc: Back  |  Q: Quit"), m.width))
	return b.String()
}

func (m SelectorModel) item(selected bool, label string) string {
	if selected {
		return selectorCursor.Render("> " + label)
	}
	return "  " + label
}

// Selected returns the selection, or nil if still choosing.
func (m SelectorModel) Selected() *Selection {
	if m.choosing {
		return nil
	}
	sel := m.selection
	return &sel
}

// IsQuitting returns true if user wants to quit.
func (m SelectorModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back on the variant list.
func (m SelectorModel) WantsBack() bool {
	return m.back
}

// WantsScoreboard returns true if user asked for the high score table.
func (m SelectorModel) WantsScoreboard() bool {
	return m.scoreboard
}

// RunSelector runs the selector and returns the choice, or nil if the user left.
// Tab opens the scoreboard over store and returns to the selector afterwards.
func RunSelector(catalog *levels.Catalog, store *storage.Store, cfg core.RuntimeConfig) (*Selection, error) {
	for {
		p := tea.NewProgram(
			NewSelectorModel(catalog, cfg.ScreenW, cfg.ScreenH),
			tea.WithAltScreen(),
		)

		finalModel, err := p.Run()
		if err != nil {
			return nil, err
		}

		m, ok := finalModel.(SelectorModel)
		if !ok || m.IsQuitting() || m.WantsBack() {
			return nil, nil
		}
		if !m.WantsScoreboard() {
			return m.Selected(), nil
		}

		goBack, err := RunScoreboard(store, catalog, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			return nil, err
		}
		if !goBack {
			return nil, nil
		}
	}
}
