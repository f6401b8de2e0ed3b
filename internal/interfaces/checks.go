package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/biblereader/internal/annotations"
	"github.com/mrlokans/biblereader/internal/database"
	annotationstore "github.com/mrlokans/biblereader/internal/database/annotations"
	"github.com/mrlokans/biblereader/internal/database/content"
	"github.com/mrlokans/biblereader/internal/http"
	"github.com/mrlokans/biblereader/internal/query"
	"github.com/mrlokans/biblereader/internal/reader"
	"github.com/mrlokans/biblereader/internal/scheduler"
	"github.com/mrlokans/biblereader/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Query service store dependencies
var _ query.ContentReader = (*content.Repository)(nil)
var _ query.AnnotationReader = (*annotationstore.Repository)(nil)

// =============================================================================
// Reader Core
// =============================================================================

// Projections feeding the chapter display engine
var _ reader.Projections = (*query.Service)(nil)

// HTTP read and write surfaces
var _ http.Queries = (*query.Service)(nil)
var _ http.DisplaySource = (*reader.Engine)(nil)
var _ http.AnnotationWriter = (*annotations.Mutator)(nil)

// =============================================================================
// Background Work
// =============================================================================

// Task queue
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ http.MaintenanceRunner = (*scheduler.MaintenanceScheduler)(nil)

// Task processors
var _ tasks.AnnotationImporter = (*annotations.Mutator)(nil)
var _ tasks.OrphanPruner = (*annotationstore.Repository)(nil)
var _ tasks.Optimizer = (*database.Database)(nil)
