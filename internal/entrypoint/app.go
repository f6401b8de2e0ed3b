package entrypoint

import (
	"context"
	"fmt"

	annotationservice "github.com/mrlokans/biblereader/internal/annotations"
	"github.com/mrlokans/biblereader/internal/corpus"
	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/database/annotations"
	"github.com/mrlokans/biblereader/internal/database/content"
	"github.com/mrlokans/biblereader/internal/live"
	"github.com/mrlokans/biblereader/internal/query"
	"github.com/mrlokans/biblereader/internal/reader"
)

// App is the reader core wired onto one database. Every component shares
// the same change bus, so writes made through Mutator or Loader reach the
// projections behind Queries and Engine.
type App struct {
	DB      *database.Database
	Changes *live.Bus

	Content     *content.Repository
	Annotations *annotations.Repository

	Queries *query.Service
	Engine  *reader.Engine
	Mutator *annotationservice.Mutator
	Loader  *corpus.Loader
}

func NewApp(dbPath string) (*App, error) {
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return newApp(db), nil
}

func newApp(db *database.Database) *App {
	changes := live.NewBus()
	contentRepo := content.NewRepository(db.DB)
	annotationRepo := annotations.NewRepository(db.DB)
	queries := query.NewService(contentRepo, annotationRepo, changes)

	return &App{
		DB:          db,
		Changes:     changes,
		Content:     contentRepo,
		Annotations: annotationRepo,
		Queries:     queries,
		Engine:      reader.NewEngine(queries),
		Mutator:     annotationservice.NewMutator(annotationRepo, changes),
		Loader:      corpus.NewLoader(contentRepo, changes),
	}
}

// LoadCorpus reads a YAML or JSON corpus file and writes it to the store.
func (a *App) LoadCorpus(ctx context.Context, path string) (corpus.Stats, error) {
	c, err := corpus.ReadFile(path)
	if err != nil {
		return corpus.Stats{}, err
	}
	return a.Loader.Load(ctx, c)
}

func (a *App) Close() error {
	return a.DB.Close()
}
