package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/shelf/internal/config"
	"github.com/jeanpaul/shelf/internal/health"
	"github.com/jeanpaul/shelf/internal/tui"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the catalog, the reading list storage and the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tui.BannerStyle.Render("  Shelf Health Check"))
			fmt.Fprintln(out)

			healthy := true
			line := func(label string, s health.Status, ok string) {
				fmt.Fprintf(out, "  %s %s ... ", tui.BulletStyle.Render("●"), tui.LabelStyle.Render(label))
				if !s.Reachable {
					healthy = false
					fmt.Fprintln(out, tui.ErrorStyle.Render("✗ "+s.Error))
					return
				}
				fmt.Fprintf(out, "%s %s\n", tui.OKStyle.Render("✓ "+ok), tui.HelpStyle.Render(s.Latency.Round(time.Millisecond).String()))
			}

			src, err := a.source()
			if err != nil {
				line("catalog", health.Status{Error: err.Error()}, "")
			} else {
				s := health.CheckCatalog(cmd.Context(), src)
				line("catalog", s, fmt.Sprintf("%s (%d books)", s.Target, s.Books))
			}

			st := health.CheckStorage(a.cfg.Storage.Backend, a.cfg.Storage.Path, a.cfg.Storage.Key)
			line("storage", st, fmt.Sprintf("%s (%d bytes under %q)", st.Target, st.Bytes, a.cfg.Storage.Key))

			fmt.Fprintf(out, "  %s %s ... ", tui.BulletStyle.Render("●"), tui.LabelStyle.Render("config"))
			if path := a.configFile(); path != "" {
				fmt.Fprintln(out, tui.OKStyle.Render("✓ "+path))
			} else {
				fmt.Fprintln(out, tui.HelpStyle.Render("- Using defaults (run 'shelf config init' to create "+config.Path()+")"))
			}

			fmt.Fprintln(out)
			if !healthy {
				fmt.Fprintln(out, tui.ErrorStyle.Render("  Some checks failed."))
				return errors.New("health check failed")
			}
			fmt.Fprintln(out, tui.OKStyle.Render("  All checks passed!"))
			return nil
		},
	}
}

// configFile reports which config.yaml Load would have read, if any.
func (a *app) configFile() string {
	if a.configPath != "" {
		return a.configPath
	}
	for _, p := range []string{"config.yaml", config.Path()} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
