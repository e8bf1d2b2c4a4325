package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jeanpaul/shelf/internal/book"
	"github.com/jeanpaul/shelf/internal/catalog"
	"github.com/jeanpaul/shelf/internal/readinglist"
	"github.com/jeanpaul/shelf/internal/tui"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the reading list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			printEntries(cmd.OutOrStdout(), store.Current())
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var rec book.Record
	var level string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the reading list",
		Example: `  shelf add --title "Dune" --author "Frank Herbert" --level YA
  shelf add --title "Matilda" --author "Roald Dahl" --level 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if level != "" {
				rec.ReadingLevel = book.ParseLevel(level)
			}
			if err := rec.Validate(); err != nil {
				return err
			}

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			if store.Contains(rec) {
				fmt.Fprintf(out, "  %s\n", tui.HelpStyle.Render(fmt.Sprintf("%q by %s is already on your list", rec.Title, rec.Author)))
				return nil
			}
			if _, err := store.Add(rec); err != nil {
				return fmt.Errorf("save reading list: %w", err)
			}
			fmt.Fprintf(out, "  %s %s\n", tui.OKStyle.Render("✓ Added"), rec.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&rec.Title, "title", "", "book title (required)")
	cmd.Flags().StringVar(&rec.Author, "author", "", "book author (required)")
	cmd.Flags().StringVar(&rec.CoverPhotoURL, "cover", "", "cover photo URL")
	cmd.Flags().StringVar(&level, "level", "", "reading level; numbers are stored as numbers")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove every entry with this exact title, whatever the author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			before := store.Len()
			after, err := store.Remove(args[0])
			if err != nil {
				return fmt.Errorf("save reading list: %w", err)
			}

			out := cmd.OutOrStdout()
			n := before - len(after)
			if n == 0 {
				fmt.Fprintf(out, "  %s\n", tui.HelpStyle.Render(fmt.Sprintf("nothing titled %q on your list", args[0])))
				return nil
			}
			fmt.Fprintf(out, "  %s %s (%d %s)\n", tui.OKStyle.Render("✓ Removed"), args[0], n, plural(n, "entry", "entries"))
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search catalog titles (case-insensitive); no query lists everything",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			snap, err := catalog.Load(cmd.Context(), src)
			if err != nil {
				return err
			}

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			sess := readinglist.NewSession(store, snap.Records())
			found := sess.Search(strings.Join(args, " "))

			out := cmd.OutOrStdout()
			if len(found) == 0 {
				fmt.Fprintf(out, "  %s\n", tui.HelpStyle.Render("no matching titles"))
				return nil
			}
			listed := tui.ListedStyle.Render("✓")
			blank := strings.Repeat(" ", lipgloss.Width(listed))
			for _, r := range found {
				mark := blank
				if sess.Listed(r) {
					mark = listed
				}
				fmt.Fprintf(out, "%s %s\n", mark, describe(r))
			}
			fmt.Fprintf(out, "\n  %s\n", tui.HelpStyle.Render(fmt.Sprintf("%d of %d books", len(found), snap.Len())))
			return nil
		},
	}
}

func printEntries(w io.Writer, entries []book.Record) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "  %s\n", tui.EmptyStyle.Render(tui.EmptyListText))
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%3d. %s\n", i+1, describe(e))
	}
}

func describe(r book.Record) string {
	s := tui.EntryStyle.Render(r.Title) + " " + tui.AuthorStyle.Render("by "+r.Author)
	if !r.ReadingLevel.IsZero() {
		s += tui.HelpStyle.Render(" (level " + r.ReadingLevel.String() + ")")
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
