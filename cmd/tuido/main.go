package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hverdal/tuido/internal/adapters/storage/jsonfile"
	"github.com/hverdal/tuido/internal/adapters/storage/sqlite"
	"github.com/hverdal/tuido/internal/app"
	"github.com/hverdal/tuido/internal/config"
	"github.com/hverdal/tuido/internal/export"
	"github.com/hverdal/tuido/internal/platform"
	"github.com/hverdal/tuido/internal/shell"
	"github.com/hverdal/tuido/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// cliApp carries the flags and resolved runtime state shared by the
// subcommands.
type cliApp struct {
	configPath string
	storePath  string
	devMode    bool

	stdout io.Writer
	stderr io.Writer

	cfg    config.Config
	paths  platform.Paths
	logger *charmLog.Logger
	closer func() error
}

// main handles main.
func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// newRootCmd constructs the CLI. No subcommand starts the interactive list.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	a := &cliApp{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:          "tuido",
		Short:        "vim-style terminal todo list",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.resolve()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a.closer != nil {
			return a.closer()
		}
		return nil
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config TOML")
	cmd.PersistentFlags().StringVar(&a.storePath, "store", "", "path to the todo store")
	cmd.PersistentFlags().BoolVar(&a.devMode, "dev", false, "use dev paths (tuido-dev) and file logging")

	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newImportCmd(a))
	cmd.AddCommand(newPathsCmd(a))
	return cmd
}

// resolve loads paths, config and the logger before any command runs.
func (a *cliApp) resolve() error {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{AppName: "tuido", DevMode: a.devMode})
	if err != nil {
		return err
	}
	a.paths = paths

	configPath := a.configPath
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("TUIDO_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	a.configPath = configPath

	storeOverridden := strings.TrimSpace(a.storePath) != ""
	if !storeOverridden {
		if envPath := strings.TrimSpace(os.Getenv("TUIDO_STORE")); envPath != "" {
			a.storePath = envPath
			storeOverridden = true
		}
	}

	defaults := config.Default(paths.StorePath)
	cfg, err := config.Load(configPath, defaults)
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}
	if storeOverridden {
		cfg.Store.Path = a.storePath
	} else if cfg.Store.Backend == config.BackendSQLite && cfg.Store.Path == paths.StorePath {
		// The JSON default makes no sense for the sqlite backend.
		cfg.Store.Path = paths.DBPath
	}
	a.cfg = cfg

	logger, closer, err := newLogger(paths, cfg.Logging, a.devMode)
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	a.logger = logger
	a.closer = closer
	logger.Debug("configuration resolved",
		"config_path", configPath, "backend", cfg.Store.Backend, "store_path", cfg.Store.Path)
	return nil
}

// openStore opens the configured backend. The returned close func is nil
// for backends without one.
func (a *cliApp) openStore() (app.Store, func() error, error) {
	switch a.cfg.Store.Backend {
	case config.BackendSQLite:
		repo, err := sqlite.Open(a.cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return repo, repo.Close, nil
	default:
		store, err := jsonfile.New(a.cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open json store: %w", err)
		}
		return store, nil, nil
	}
}

// runTUI starts the interactive program loop.
func (a *cliApp) runTUI() error {
	store, closeStore, err := a.openStore()
	if err != nil {
		a.logger.Error("store open failed", "err", err)
		return err
	}
	if closeStore != nil {
		defer func() {
			if closeErr := closeStore(); closeErr != nil {
				a.logger.Warn("store close failed", "err", closeErr)
			}
		}()
	}

	ctrl := app.NewController(store, app.Deps{
		Files:     jsonfile.Codec{},
		Exporter:  export.New(),
		Shell:     shell.New(),
		Clipboard: tui.SystemClipboard{},
		IDGen:     uuid.NewString,
		Matcher: app.NewMatcher(app.MatcherConfig{
			ShortQueryLen:    a.cfg.Search.ShortQueryLen,
			ShortMaxDistance: a.cfg.Search.ShortMaxDistance,
			LongMaxDistance:  a.cfg.Search.LongMaxDistance,
		}),
	}, app.Config{
		Autosave: a.cfg.Store.Autosave,
		UndoKey:  a.cfg.Keys.Undo,
		RedoKey:  a.cfg.Keys.Redo,
	})
	if err := ctrl.LoadInitial(); err != nil {
		// The session starts empty; surface the cause in the log.
		a.logger.Warn("initial load failed", "store_path", a.cfg.Store.Path, "err", err)
	}

	m := tui.NewModel(ctrl, tui.WithKeys(a.cfg.Keys.Undo, a.cfg.Keys.Redo))
	a.logger.Info("starting tui program loop", "store_path", a.cfg.Store.Path)
	if _, err := programFactory(m).Run(); err != nil {
		a.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	a.logger.Info("tui program loop complete")
	return nil
}

// newExportCmd renders the list to todo.txt or Markdown.
func newExportCmd(a *cliApp) *cobra.Command {
	var (
		outPath string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "export todos as todo.txt or Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			if closeStore != nil {
				defer func() { _ = closeStore() }()
			}
			items, err := store.Load()
			if err != nil {
				return fmt.Errorf("load store: %w", err)
			}

			if outPath == "-" {
				var content string
				switch app.ExportFormat(format) {
				case app.ExportTodoTxt:
					content = export.TodoTxt(items)
				case app.ExportMarkdown:
					content = export.Markdown(items)
				default:
					return fmt.Errorf("%w: %s", app.ErrUnsupportedFormat, format)
				}
				_, err := io.WriteString(a.stdout, content)
				return err
			}

			exportFormat, err := app.FormatForPath(outPath)
			if err != nil {
				return err
			}
			if err := export.New().Export(items, exportFormat, outPath); err != nil {
				return err
			}
			a.logger.Info("export complete", "path", outPath, "format", exportFormat, "todos", len(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "-", "output path ('-' for stdout)")
	cmd.Flags().StringVar(&format, "format", string(app.ExportTodoTxt), "stdout format (todotxt|markdown)")
	return cmd
}

// newImportCmd replaces the store contents from a JSON list file.
func newImportCmd(a *cliApp) *cobra.Command {
	var inPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "replace the store from a JSON todo list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPath == "" {
				return fmt.Errorf("--in is required")
			}
			items, err := jsonfile.Codec{}.ReadList(inPath)
			if err != nil {
				return err
			}
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			if closeStore != nil {
				defer func() { _ = closeStore() }()
			}
			if err := store.Save(items); err != nil {
				return fmt.Errorf("save store: %w", err)
			}
			a.logger.Info("import complete", "path", inPath, "todos", len(items))
			_, _ = fmt.Fprintf(a.stdout, "imported %d todos\n", len(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input JSON file")
	return cmd
}

// newPathsCmd prints the resolved runtime paths.
func newPathsCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "print resolved config and data paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintf(a.stdout, "config: %s\n", a.configPath)
			_, _ = fmt.Fprintf(a.stdout, "data_dir: %s\n", a.paths.DataDir)
			_, _ = fmt.Fprintf(a.stdout, "store: %s\n", a.cfg.Store.Path)
			_, _ = fmt.Fprintf(a.stdout, "backend: %s\n", a.cfg.Store.Backend)
			return nil
		},
	}
}

// newLogger builds the runtime logger. The interactive list owns the
// terminal, so logs go to a file in dev mode and are discarded otherwise
// unless logging.file names a sink.
func newLogger(paths platform.Paths, cfg config.LoggingConfig, devMode bool) (*charmLog.Logger, func() error, error) {
	level, err := charmLog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}

	logPath := strings.TrimSpace(cfg.File)
	if logPath == "" && devMode {
		logPath = filepath.Join(paths.DataDir, "logs", "tuido.log")
	}
	if logPath == "" {
		logger := charmLog.NewWithOptions(io.Discard, charmLog.Options{Level: level, Prefix: "tuido"})
		return logger, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	// Keep file output parseable and unstyled.
	logger := charmLog.NewWithOptions(logFile, charmLog.Options{
		Level:           level,
		Prefix:          "tuido",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	return logger, logFile.Close, nil
}
