package http

import (
	"github.com/mrlokans/biblereader/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database    *database.Database
	Queries     Queries
	Display     DisplaySource
	Annotations AnnotationWriter

	// Language used when a request does not name one
	DefaultLanguageID uint

	// Task queue (optional). Without it imports always run inline and
	// the task endpoints are not registered.
	TaskQueue   TaskQueue
	Maintenance MaintenanceRunner

	// Application info
	Version string
}
