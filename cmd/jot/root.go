// ABOUTME: Root command wiring config, storage, and the lifecycle controller.
// ABOUTME: Every subcommand runs against the controller built here.

package main

import (
	"fmt"
	"os"

	"github.com/harper/jot/internal/config"
	"github.com/harper/jot/internal/logging"
	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/notes"
	"github.com/harper/jot/internal/storage"
	"github.com/harper/jot/internal/store"
	"github.com/harper/jot/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// skipStorage marks commands that run without opening a backend.
const skipStorage = "skip-storage"

var (
	viewFlag    string
	backendFlag string
	dataDirFlag string
	configFlag  string
	verboseFlag bool

	cfg     *config.Config
	logger  *logrus.Logger
	backend storage.Backend
	ctrl    *notes.Controller
)

var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "Keep notes moving between active, archive, and trash",
	Long: `jot is a small note keeper. Notes live in one of three collections:
active, archive, or trash. Anything can be archived or trashed, and only
trashed notes can be deleted forever.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and closes storage whether or not the
// command succeeded, so queued async writes are not lost.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeBackend(); cerr != nil {
		fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("failed to close storage: %v", cerr)))
		if err == nil {
			err = cerr
		}
	}
	return err
}

func setup(cmd *cobra.Command, args []string) error {
	logger = logging.New(os.Stderr, verboseFlag)

	c, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if backendFlag != "" {
		c.Backend = backendFlag
	}
	if dataDirFlag != "" {
		c.DataDir = dataDirFlag
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	if cmd.Annotations[skipStorage] != "" {
		return nil
	}

	backend, err = storage.Open(cfg.StorageOptions(func(err error) {
		logger.WithError(err).Warn("background write failed")
	}))
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	s := store.New(backend, store.WithLogger(logger))
	s.Load()

	ctrl = notes.New(s, notes.WithLogger(logger))

	view, err := models.ParseView(viewFlag)
	if err != nil {
		return err
	}
	return ctrl.SwitchView(view)
}

// closeBackend closes the open backend, if any. Async backends flush
// pending writes first.
func closeBackend() error {
	if backend == nil {
		return nil
	}
	err := backend.Close()
	backend = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&viewFlag, "view", string(models.ViewActive), "view to operate on (active|archive|trash)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend (file|sqlite|badger|charm|memory)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory for local storage")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: $XDG_CONFIG_HOME/jot/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug output to stderr")
	rootCmd.SetVersionTemplate(fmt.Sprintf("jot %s (%s, %s)\n", version, commit, date))
}
