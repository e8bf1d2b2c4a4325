package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette is a named set of colors the styles below are built from.
type Palette struct {
	Text      lipgloss.Color
	Header    lipgloss.Color
	Muted     lipgloss.Color
	AddFG     lipgloss.Color
	AddBG     lipgloss.Color
	RemoveFG  lipgloss.Color
	RemoveBG  lipgloss.Color
	Error     lipgloss.Color
	Highlight lipgloss.Color
}

var palettes = map[string]Palette{
	"teal": {
		Text:      lipgloss.Color("#335C6E"),
		Header:    lipgloss.Color("#5ACCCC"),
		Muted:     lipgloss.Color("#7F9AA6"),
		AddFG:     lipgloss.Color("#335C6E"),
		AddBG:     lipgloss.Color("#CFFAFA"),
		RemoveFG:  lipgloss.Color("#F76434"),
		RemoveBG:  lipgloss.Color("#FFE6DC"),
		Error:     lipgloss.Color("#F76434"),
		Highlight: lipgloss.Color("#FAAD00"),
	},
	"plain": {
		Text:      lipgloss.Color("#e0e0e0"),
		Header:    lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		AddFG:     lipgloss.Color("#0a0a0f"),
		AddBG:     lipgloss.Color("#aaaaaa"),
		RemoveFG:  lipgloss.Color("#0a0a0f"),
		RemoveBG:  lipgloss.Color("#e0e0e0"),
		Error:     lipgloss.Color("#FF4136"),
		Highlight: lipgloss.Color("#ffffff"),
	},
}

var (
	current Palette

	// Header bar
	BannerStyle    lipgloss.Style
	StatusBarStyle lipgloss.Style

	// Panes
	PaneStyle       lipgloss.Style
	PaneActiveStyle lipgloss.Style
	PaneTitleStyle  lipgloss.Style

	// Reading list rows
	EntryStyle    lipgloss.Style
	AuthorStyle   lipgloss.Style
	RemoveStyle   lipgloss.Style
	ListedStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	SelectedStyle lipgloss.Style

	// CLI output
	LabelStyle  lipgloss.Style
	BulletStyle lipgloss.Style
	OKStyle     lipgloss.Style

	ErrorStyle   lipgloss.Style
	HelpStyle    lipgloss.Style
	SpinnerStyle lipgloss.Style
)

func init() {
	applyPalette(palettes["teal"])
}

// SetTheme switches every style to the named palette.
func SetTheme(name string) error {
	if name == "" {
		name = "teal"
	}
	p, ok := palettes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: teal, plain)", name)
	}
	applyPalette(p)
	return nil
}

func applyPalette(p Palette) {
	current = p

	BannerStyle = lipgloss.NewStyle().Foreground(p.Header).Bold(true)
	StatusBarStyle = lipgloss.NewStyle().
		Background(p.Header).
		Foreground(p.Text).
		Bold(true).
		Padding(0, 1)

	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1)
	PaneActiveStyle = PaneStyle.BorderForeground(p.Header)
	PaneTitleStyle = lipgloss.NewStyle().Foreground(p.Header).Bold(true).MarginBottom(1)

	EntryStyle = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	AuthorStyle = lipgloss.NewStyle().Foreground(p.Muted)
	RemoveStyle = lipgloss.NewStyle().Foreground(p.RemoveFG).Background(p.RemoveBG).Padding(0, 1)
	ListedStyle = lipgloss.NewStyle().Foreground(p.AddFG).Background(p.AddBG).Padding(0, 1)
	EmptyStyle = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	SelectedStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(p.RemoveFG).
		PaddingLeft(1)

	LabelStyle = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	BulletStyle = lipgloss.NewStyle().Foreground(p.Header)
	OKStyle = lipgloss.NewStyle().Foreground(p.Header).Bold(true)

	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	HelpStyle = lipgloss.NewStyle().Foreground(p.Muted)
	SpinnerStyle = lipgloss.NewStyle().Foreground(p.Highlight)
}

const Banner = `
 ┌─┐┬ ┬┌─┐┬  ┌─┐
 └─┐├─┤├┤ │  ├┤
 └─┘┴ ┴└─┘┴─┘└
`
