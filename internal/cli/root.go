// Package cli is the command-line front end: serving the API, loading a
// corpus and reading, searching and annotating from the terminal.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrlokans/biblereader/internal/config"
	"github.com/mrlokans/biblereader/internal/entrypoint"
)

type rootOptions struct {
	cfg      *config.Config
	dbPath   string
	language string
}

// NewRootCmd builds the command tree. cfg supplies flag defaults.
func NewRootCmd(cfg *config.Config, version string) *cobra.Command {
	opts := &rootOptions{cfg: cfg}

	root := &cobra.Command{
		Use:           "biblereader",
		Short:         "Offline Bible reader with bookmarks and highlights",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", cfg.Database.Path, "Path to the reader database")
	root.PersistentFlags().StringVarP(&opts.language, "language", "l", "",
		"Language code or id (default: DEFAULT_LANGUAGE_ID)")

	root.AddCommand(
		newServeCmd(opts, version),
		newLoadCmd(opts),
		newBooksCmd(opts),
		newReadCmd(opts),
		newSearchCmd(opts),
		newLookupCmd(opts),
		newBookmarkCmd(opts),
		newHighlightCmd(opts),
		newAnnotationsCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
	)
	return root
}

// Execute runs the command line and returns the first error.
func Execute(ctx context.Context, cfg *config.Config, version string, args []string) error {
	root := NewRootCmd(cfg, version)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (o *rootOptions) openApp() (*entrypoint.App, error) {
	return entrypoint.NewApp(o.dbPath)
}

// languageID resolves --language, which may be a code ("en") or an id.
func (o *rootOptions) languageID(ctx context.Context, app *entrypoint.App) (uint, error) {
	if o.language == "" {
		return o.cfg.Reader.DefaultLanguageID, nil
	}
	if id, err := strconv.ParseUint(o.language, 10, 32); err == nil {
		return uint(id), nil
	}
	lang, err := app.Queries.LanguageByCode(ctx, o.language)
	if err != nil {
		return 0, fmt.Errorf("language %q: %w", o.language, err)
	}
	return lang.ID, nil
}

func newServeCmd(opts *rootOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.cfg.Database.Path = opts.dbPath
			entrypoint.Run(opts.cfg, version)
			return nil
		},
	}
}
