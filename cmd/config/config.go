// Package config wires viper configuration to an opened workspace.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chelle-c/second-brain/internal/storage"
	"github.com/chelle-c/second-brain/pkg/dragdrop"
	"github.com/chelle-c/second-brain/pkg/workspace"
)

var (
	cfgFile string
	verbose bool
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "sb")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SB")

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "sb"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("history_limit", 100)
	viper.SetDefault("autosave_delay", workspace.DefaultAutosaveDelay)
	viper.SetDefault("hold_delay", dragdrop.DefaultHoldDelay)

	// Missing config file is fine, defaults apply.
	_ = viper.ReadInConfig()
}

// Workspace bundles the open database with the store built on top of it.
type Workspace struct {
	Store *workspace.Store
	DB    *storage.Store
	Path  string
}

// Open loads the workspace database into a store. Every mutation the store
// applies is written back through its save hook.
func Open() (*Workspace, error) {
	dataDir := viper.GetString("data_dir")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "workspace.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open workspace database: %w", err)
	}

	snap, err := db.Load()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load workspace: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel) // Keep it quiet unless there are issues.
	if verbose || viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}

	store := workspace.New(snap, workspace.Options{
		HistoryLimit:  viper.GetInt("history_limit"),
		AutosaveDelay: viper.GetDuration("autosave_delay"),
		Logger:        logger,
		SaveHook:      db.Save,
	})

	return &Workspace{Store: store, DB: db, Path: dbPath}, nil
}

// Close releases the database handle.
func (w *Workspace) Close() error {
	return w.DB.Close()
}

// Editor returns the configured editor command, falling back to vi.
func Editor() string {
	if editor := viper.GetString("editor"); editor != "" {
		return editor
	}
	return "vi"
}

// HoldDelay returns the configured press-and-hold delay for drag gestures.
func HoldDelay() time.Duration {
	return viper.GetDuration("hold_delay")
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/sb/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
