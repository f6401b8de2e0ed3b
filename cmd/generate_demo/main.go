// Command generate_demo creates a demo reader database: a corpus plus a
// handful of bookmarks and highlights so the UI has something to show.
// Usage: go run ./cmd/generate_demo -corpus path/to/corpus.yaml [-db path/to/demo.db]
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/mrlokans/biblereader/internal/database"
	"github.com/mrlokans/biblereader/internal/entrypoint"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoAnnotation struct {
	Reference string
	Bookmark  bool
	Color     string // empty: no highlight
}

func demoAnnotations() []demoAnnotation {
	return []demoAnnotation{
		{Reference: "Genesis 1:1", Bookmark: true, Color: "#FFEB3B"},
		{Reference: "Genesis 1:3", Color: "#90CAF9"},
		{Reference: "Psalms 23:1", Bookmark: true},
		{Reference: "John 3:16", Bookmark: true, Color: "#A5D6A7"},
		{Reference: "Romans 8:28", Color: "#F48FB1"},
		{Reference: "1 John 4:8", Color: "#FFCC80"},
	}
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	corpusPath := flag.String("corpus", "", "corpus file to load (YAML or JSON)")
	flag.Parse()

	if *corpusPath == "" {
		log.Fatal("-corpus is required")
	}

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	app, err := entrypoint.NewApp(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	if _, err := app.LoadCorpus(ctx, *corpusPath); err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}

	for _, a := range demoAnnotations() {
		if err := annotate(ctx, app, a); err != nil {
			// Corpora are often partial; skip verses they do not carry.
			log.Printf("Skipped %s: %v", a.Reference, err)
			continue
		}
		log.Printf("Annotated %s", a.Reference)
	}

	log.Println("Demo database generated successfully!")
}

func annotate(ctx context.Context, app *entrypoint.App, a demoAnnotation) error {
	res, err := app.Queries.LookupReference(ctx, a.Reference, 1)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errors.New("not in corpus")
		}
		return err
	}

	if a.Bookmark {
		if _, err := app.Mutator.ToggleBookmark(ctx, res.Verse.ID); err != nil {
			return err
		}
	}
	if a.Color != "" {
		color := a.Color
		if _, err := app.Mutator.SetHighlightColor(ctx, res.Verse.ID, &color); err != nil {
			return err
		}
	}
	return nil
}
