package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeanpaul/shelf/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive catalog and reading list browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.browse(cmd)
		},
	}
}

func (a *app) browse(cmd *cobra.Command) error {
	store, closeStore, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	src, err := a.source()
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
	if isTerminal() {
		opts = append(opts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(tui.NewModel(store, src, a.log), opts...).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
