package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/storage"
)

// Stats screen constants
const (
	recentLimit = 100 // Max recent touches to load
	statsChrome = 8   // Lines taken by title, tabs, borders and help
)

// StatsView selects the table shown on the stats screen.
type StatsView int

const (
	StatsByToy StatsView = iota
	StatsRecent
)

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Switch, k.Quit}}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "by toy / recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the interaction stats screen.
type StatsModel struct {
	stats  []storage.InteractionStat
	recent []storage.Interaction
	now    time.Time
	view   StatsView
	table  table.Model
	help   help.Model
	keys   StatsKeyMap
	width  int
	height int
	done   bool
}

// NewStatsModel creates a stats screen over already loaded data. Times are
// shown relative to now.
func NewStatsModel(stats []storage.InteractionStat, recent []storage.Interaction, now time.Time, width, height int) StatsModel {
	m := StatsModel{
		stats:  stats,
		recent: recent,
		now:    now,
		help:   help.New(),
		keys:   DefaultStatsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable builds the table for the current view.
func (m StatsModel) createTable() table.Model {
	var columns []table.Column
	var rows []table.Row

	switch m.view {
	case StatsRecent:
		columns = []table.Column{
			{Title: "Toy", Width: 14},
			{Title: "Session", Width: 10},
			{Title: "When", Width: 16},
		}
		for _, in := range m.recent {
			rows = append(rows, table.Row{
				toyTitle(in.ToyID),
				shortSession(in.SessionID),
				humanize.RelTime(in.CreatedAt, m.now, "ago", "from now"),
			})
		}
	default:
		columns = []table.Column{
			{Title: "Toy", Width: 14},
			{Title: "Touches", Width: 9},
			{Title: "Sessions", Width: 9},
			{Title: "Last used", Width: 16},
		}
		for _, st := range m.stats {
			rows = append(rows, table.Row{
				toyTitle(st.ToyID),
				humanize.Comma(int64(st.Count)),
				humanize.Comma(int64(st.Sessions)),
				humanize.RelTime(st.LastUsed, m.now, "ago", "from now"),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-statsChrome)),
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

// toyTitle returns the display name of a registered toy, or its id.
func toyTitle(id string) string {
	for _, info := range registry.List() {
		if info.ID == id {
			return info.Title
		}
	}
	return id
}

// shortSession trims a session id to its first block.
func shortSession(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// Init implements tea.Model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			m.view = (m.view + 1) % 2
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("FIDGET STATS"))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := []string{"By toy", "Recent"}
	for i, name := range tabs {
		if StatsView(i) == m.view {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.tableContent()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m StatsModel) tableContent() string {
	empty := len(m.stats) == 0
	if m.view == StatsRecent {
		empty = len(m.recent) == 0
	}
	if empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		return emptyStyle.Render("No touches recorded yet.\nRun 'fidget' and play with a toy!")
	}
	return m.table.View()
}

// CurrentView returns the table on screen.
func (m StatsModel) CurrentView() StatsView {
	return m.view
}

// Rows returns the rows of the table on screen.
func (m StatsModel) Rows() []table.Row {
	return m.table.Rows()
}

// RunStats loads interaction stats and shows them until the user quits.
func RunStats(store *storage.Store, width, height int) error {
	stats, err := store.Interactions()
	if err != nil {
		return err
	}
	recent, err := store.RecentInteractions(recentLimit)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewStatsModel(stats, recent, time.Now(), width, height),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	return nil
}
