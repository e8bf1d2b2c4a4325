package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/shelf/internal/book"
)

type bookItem struct {
	rec    book.Record
	listed bool
}

func (i bookItem) Title() string {
	if i.listed {
		return i.rec.Title + " ✓"
	}
	return i.rec.Title
}

func (i bookItem) Description() string {
	if i.rec.ReadingLevel.IsZero() {
		return "by " + i.rec.Author
	}
	return fmt.Sprintf("by %s · level %s", i.rec.Author, i.rec.ReadingLevel)
}

func (i bookItem) FilterValue() string { return i.rec.Title }

// newCatalogList builds the catalog pane. Filtering is done by the model
// so the list's own filter and quit bindings are off.
func newCatalogList(width, height int) list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.NormalTitle = lipgloss.NewStyle().Foreground(current.Text).PaddingLeft(2)
	d.Styles.NormalDesc = lipgloss.NewStyle().Foreground(current.Muted).PaddingLeft(2)
	d.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(current.Text).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(current.Header).
		PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Bold(false).Foreground(current.Muted)

	l := list.New(nil, d, width, height)
	l.Title = "Catalog"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().Foreground(current.Header).Bold(true)
	l.Styles.NoItems = EmptyStyle
	return l
}

func catalogItems(recs []book.Record, listed func(book.Record) bool) []list.Item {
	items := make([]list.Item, len(recs))
	for i, r := range recs {
		items[i] = bookItem{rec: r, listed: listed(r)}
	}
	return items
}
