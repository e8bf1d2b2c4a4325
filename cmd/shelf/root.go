package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jeanpaul/shelf/internal/catalog"
	"github.com/jeanpaul/shelf/internal/config"
	"github.com/jeanpaul/shelf/internal/kv"
	"github.com/jeanpaul/shelf/internal/logging"
	"github.com/jeanpaul/shelf/internal/readinglist"
	"github.com/jeanpaul/shelf/internal/tui"
)

// app carries the global flags and what PersistentPreRunE derives from them.
type app struct {
	configPath string
	storage    string
	catalog    string
	ephemeral  bool

	cfg     *config.Config
	log     *slog.Logger
	logFile io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "shelf",
		Short: "Browse a book catalog and keep a personal reading list",
		Long: `Shelf fetches a book catalog (from a GraphQL endpoint or local YAML/JSON
files), lets you search it by title, and keeps a reading list that survives
across sessions.

Run without a subcommand to open the interactive browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logFile != nil {
				a.logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.browse(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "config file (default ./config.yaml, then "+config.Path()+")")
	f.StringVar(&a.storage, "storage", "", "reading list file; a .db extension selects the bolt backend")
	f.StringVar(&a.catalog, "catalog", "", "catalog GraphQL endpoint (http/https) or glob of YAML/JSON files")
	f.BoolVar(&a.ephemeral, "ephemeral", false, "keep the reading list in memory for this run only")

	cmd.AddCommand(
		newBrowseCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newSearchCmd(a),
		newExportCmd(a),
		newDoctorCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if err := tui.SetTheme(cfg.Theme); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The interactive browser owns the terminal, so it logs to a file.
	if cmd.Name() == "shelf" || cmd.Name() == "browse" {
		a.log, a.logFile = logging.NewFile(cfg.Log)
	} else {
		a.log = logging.New(cfg.Log, cmd.ErrOrStderr())
	}
	a.log.Debug("config loaded", "command", cmd.CommandPath(), "storage", cfg.Storage.Backend, "catalog", catalogTarget(cfg.Catalog))
	return nil
}

func (a *app) applyFlags(cfg *config.Config) {
	if a.storage != "" {
		cfg.Storage.Path = a.storage
		switch strings.ToLower(filepath.Ext(a.storage)) {
		case ".db", ".bolt":
			cfg.Storage.Backend = kv.BackendBolt
		default:
			cfg.Storage.Backend = kv.BackendFile
		}
	}
	if a.ephemeral {
		cfg.Storage.Backend = kv.BackendMemory
	}
	if a.catalog != "" {
		if strings.HasPrefix(a.catalog, "http://") || strings.HasPrefix(a.catalog, "https://") {
			cfg.Catalog.Endpoint, cfg.Catalog.Files = a.catalog, ""
		} else {
			cfg.Catalog.Endpoint, cfg.Catalog.Files = "", a.catalog
		}
	}
}

// openStore opens the persistence channel and loads the reading list. A
// corrupt stored list has already been logged and reset by the store.
func (a *app) openStore() (*readinglist.Store, func(), error) {
	ch, err := kv.Open(a.cfg.Storage.Backend, a.cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open reading list storage: %w", err)
	}
	store, err := readinglist.Open(ch,
		readinglist.WithKey(a.cfg.Storage.Key),
		readinglist.WithLogger(a.log),
	)
	if err != nil {
		ch.Close()
		return nil, nil, err
	}
	return store, func() { ch.Close() }, nil
}

func (a *app) source() (catalog.Source, error) {
	return catalog.NewSource(a.cfg.Catalog)
}

func catalogTarget(c config.CatalogConfig) string {
	if c.Files != "" {
		return c.Files
	}
	return c.Endpoint
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
