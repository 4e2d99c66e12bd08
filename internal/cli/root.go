// Package cli holds the partnerctl command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/gravadigital/partnerships-api/internal/config"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/services"
	"github.com/gravadigital/partnerships-api/internal/storage"
)

// Opener builds the storage container a command runs against
type Opener func(cfg *config.Config) (storage.Container, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Storage    string
	FilePath   string
	SQLitePath string
	Format     string // "text" | "json" | "yaml"
	Verbose    bool

	open Opener
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for partnerctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(storage.NewFromConfig)
}

func newRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "partnerctl",
		Short: "partnerctl - operate the partnerships store",
		Long:  "Inspect partners, empty the recycle bin and export workbooks straight from the configured store.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Storage, "storage", "", "storage backend (postgres|sqlite|file|memory), defaults to STORAGE_TYPE")
	cmd.PersistentFlags().StringVar(&opts.FilePath, "file", "", "JSON store path, defaults to STORAGE_FILE or the XDG data dir")
	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite", "", "SQLite database path, defaults to SQLITE_PATH or the XDG data dir")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewBinCommand(opts))
	cmd.AddCommand(NewPartnersCommand(opts))
	cmd.AddCommand(NewEventsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// DataDir is where partnerctl keeps local stores when no path is configured
func DataDir() string {
	return filepath.Join(xdg.DataHome, "partnerships")
}

// config resolves flags over environment over XDG defaults
func (o *RootOptions) config() *config.Config {
	cfg := config.Load()
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	logger.Configure(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if o.Storage != "" {
		cfg.Storage.Type = o.Storage
	}
	switch {
	case o.FilePath != "":
		cfg.Storage.FilePath = o.FilePath
	case os.Getenv("STORAGE_FILE") == "":
		cfg.Storage.FilePath = filepath.Join(DataDir(), "partnerships.json")
	}
	switch {
	case o.SQLitePath != "":
		cfg.Storage.SQLitePath = o.SQLitePath
	case os.Getenv("SQLITE_PATH") == "":
		cfg.Storage.SQLitePath = filepath.Join(DataDir(), "partnerships.db")
	}
	return cfg
}

// session opens the store, runs fn with services bound to it and closes it
func (o *RootOptions) session(fn func(svc *services.Services) error) error {
	cfg := o.config()
	var path string
	switch storage.StorageType(cfg.Storage.Type) {
	case storage.StorageTypeFile:
		path = cfg.Storage.FilePath
	case storage.StorageTypeSQLite:
		path = cfg.Storage.SQLitePath
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	container, err := o.open(cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Type, err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.CLI().Warn("Failed to close storage", "error", err)
		}
	}()

	return fn(services.New(container))
}
