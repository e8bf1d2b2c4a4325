package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/shelf/internal/catalog"
	"github.com/jeanpaul/shelf/internal/readinglist"
)

// EmptyListText is shown in the reading list pane when nothing is listed.
const EmptyListText = "No books added yet. Search for a book to add."

type focus int

const (
	focusSearch focus = iota
	focusCatalog
	focusReading
)

type catalogMsg struct {
	snap *catalog.Snapshot
	err  error
}

// Model is the interactive reading-list browser. The catalog is fetched
// once on start; every mutation goes through the store.
type Model struct {
	width, height int

	store   *readinglist.Store
	src     catalog.Source
	session *readinglist.Session
	log     *slog.Logger

	search  textinput.Model
	books   list.Model
	spinner spinner.Model
	focus   focus
	cursor  int

	loading bool
	err     error
	status  string
	failed  bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewModel(store *readinglist.Store, src catalog.Source, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Search titles..."
	ti.Prompt = "Search: "
	ti.PromptStyle = LabelStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(current.Text)
	ti.PlaceholderStyle = HelpStyle
	ti.CharLimit = 120
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		store:   store,
		src:     src,
		log:     log.With("component", "tui"),
		search:  ti,
		books:   newCatalogList(40, 20),
		spinner: sp,
		loading: true,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Err is the catalog failure that blocked the session, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		snap, err := catalog.Load(ctx, src)
		return catalogMsg{snap: snap, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.log.Error("catalog unavailable", "source", m.src.Name(), "error", msg.err)
			return m, nil
		}
		m.session = readinglist.NewSession(m.store, msg.snap.Records())
		m.log.Info("catalog loaded", "source", msg.snap.Source(), "books", msg.snap.Len())
		cmd := m.refilter()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	// A failed catalog blocks the UI until the user leaves.
	if m.err != nil || m.loading {
		switch msg.String() {
		case "q", "esc", "enter":
			return m.quit()
		}
		return m, nil
	}

	switch m.focus {
	case focusSearch:
		switch msg.Type {
		case tea.KeyEsc:
			if m.search.Value() == "" {
				return m.quit()
			}
			m.search.Reset()
			cmd := m.refilter()
			return m, cmd
		case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
			m.setFocus(focusCatalog)
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			refilter := m.refilter()
			return m, tea.Batch(cmd, refilter)
		}
		return m, cmd

	case focusCatalog:
		switch msg.String() {
		case "q", "esc":
			return m.quit()
		case "/":
			m.setFocus(focusSearch)
			return m, nil
		case "tab":
			m.setFocus(focusReading)
			return m, nil
		case "enter", "a":
			cmd := m.addSelected()
			return m, cmd
		}
		var cmd tea.Cmd
		m.books, cmd = m.books.Update(msg)
		return m, cmd

	case focusReading:
		switch msg.String() {
		case "q", "esc":
			return m.quit()
		case "/":
			m.setFocus(focusSearch)
			return m, nil
		case "tab":
			m.setFocus(focusSearch)
			return m, nil
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.store.Len()-1 {
				m.cursor++
			}
		case "d", "x", "delete":
			cmd := m.removeSelected()
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusSearch {
		m.search.Focus()
	} else {
		m.search.Blur()
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func (m *Model) refilter() tea.Cmd {
	if m.session == nil {
		return nil
	}
	found := m.session.Search(m.search.Value())
	return m.books.SetItems(catalogItems(found, m.session.Listed))
}

func (m *Model) addSelected() tea.Cmd {
	it, ok := m.books.SelectedItem().(bookItem)
	if !ok {
		return nil
	}
	if m.session.Listed(it.rec) {
		m.setStatus(fmt.Sprintf("%q is already on your list", it.rec.Title), false)
		return nil
	}
	_, err := m.session.Add(it.rec)
	switch {
	case err != nil && !m.session.Listed(it.rec):
		m.log.Warn("book rejected", "title", it.rec.Title, "error", err)
		m.setStatus("Could not add: "+err.Error(), true)
	case err != nil:
		m.log.Warn("reading list not saved", "op", "add", "title", it.rec.Title, "error", err)
		m.setStatus("Added, but could not save: "+err.Error(), true)
	default:
		m.setStatus(fmt.Sprintf("Added %q", it.rec.Title), false)
	}
	return m.refilter()
}

func (m *Model) removeSelected() tea.Cmd {
	entries := m.store.Current()
	if len(entries) == 0 {
		return nil
	}
	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	title := entries[m.cursor].Title
	next, err := m.session.Remove(title)
	if err != nil {
		m.log.Warn("reading list not saved", "op", "remove", "title", title, "error", err)
		m.setStatus("Removed, but could not save: "+err.Error(), true)
	} else {
		m.setStatus(fmt.Sprintf("Removed %q", title), false)
	}
	if m.cursor >= len(next) && m.cursor > 0 {
		m.cursor = max(len(next)-1, 0)
	}
	return m.refilter()
}

func (m *Model) setStatus(s string, failed bool) {
	m.status, m.failed = s, failed
}

func (m *Model) resize() {
	half := max(m.width/2-4, 20)
	m.search.Width = max(m.width-14, 10)
	m.books.SetSize(half, max(m.height-10, 5))
}

func (m Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		BannerStyle.Render(strings.TrimPrefix(Banner, "\n")),
		"  ",
		m.counts(),
	)

	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("  %s Loading catalog from %s...", m.spinner.View(), m.src.Name()),
		)
	}

	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			"  "+ErrorStyle.Render("✗ "+m.err.Error()),
			"",
			"  "+HelpStyle.Render("Run 'shelf doctor' to check your catalog settings. Press q to quit."),
		)
	}

	left := PaneStyle
	right := PaneStyle
	switch m.focus {
	case focusCatalog, focusSearch:
		left = PaneActiveStyle
	case focusReading:
		right = PaneActiveStyle
	}
	half := max(m.width/2-2, 24)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		left.Width(half).Render(m.books.View()),
		right.Width(half).Render(m.readingView()),
	)

	status := ""
	if m.status != "" {
		if m.failed {
			status = ErrorStyle.Render(m.status)
		} else {
			status = OKStyle.Render(m.status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		" "+m.search.View(),
		panes,
		" "+status,
		" "+HelpStyle.Render(m.helpLine()),
	)
}

func (m Model) counts() string {
	listed := m.store.Len()
	if m.session == nil {
		return StatusBarStyle.Render(fmt.Sprintf("%d on your list", listed))
	}
	return StatusBarStyle.Render(fmt.Sprintf("%d in catalog · %d on your list", len(m.session.Catalog()), listed))
}

func (m Model) readingView() string {
	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("My Reading List"))
	b.WriteString("\n")

	entries := m.store.Current()
	if len(entries) == 0 {
		b.WriteString(EmptyStyle.Render(EmptyListText))
		return b.String()
	}
	for i, e := range entries {
		line := EntryStyle.Render(e.Title) + " " + AuthorStyle.Render("by "+e.Author)
		if !e.ReadingLevel.IsZero() {
			line += HelpStyle.Render(" (level " + e.ReadingLevel.String() + ")")
		}
		if m.focus == focusReading && i == m.cursor {
			line = SelectedStyle.Render(line) + " " + RemoveStyle.Render("d remove")
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) helpLine() string {
	switch m.focus {
	case focusSearch:
		return "type to search  •  enter: browse results  •  esc: clear/quit"
	case focusCatalog:
		return "↑/↓: move  •  enter/a: add  •  /: search  •  tab: reading list  •  q: quit"
	default:
		return "↑/↓: move  •  d/x: remove  •  tab: search  •  q: quit"
	}
}
