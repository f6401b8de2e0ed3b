package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	health := NewHealthController(cfg.Database, cfg.Version)
	content := NewContentController(cfg.Queries)
	chapters := NewChaptersController(cfg.Queries, cfg.Display, cfg.DefaultLanguageID)
	search := NewSearchController(cfg.Queries, cfg.DefaultLanguageID)
	annotations := NewAnnotationsController(cfg.Annotations, cfg.Queries, cfg.TaskQueue, cfg.DefaultLanguageID)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	api := router.Group("/api")

	// Content
	api.GET("/languages", content.GetLanguages)
	api.GET("/languages/:code", content.GetLanguage)
	api.GET("/books", content.GetBooks)
	api.GET("/books/search", content.SearchBooks)
	api.GET("/books/search/stream", content.StreamBookSearch)
	api.GET("/books/:id/chapters", content.GetChapters)
	api.GET("/chapters/:id", chapters.GetChapter)
	api.GET("/chapters/:id/stream", chapters.StreamChapter)
	api.GET("/search", search.Search)
	api.GET("/search/stream", search.StreamSearch)
	api.GET("/reference", search.Lookup)

	// Annotations
	api.POST("/verses/:id/bookmark/toggle", annotations.ToggleBookmark)
	api.POST("/verses/:id/highlight/toggle", annotations.ToggleHighlight)
	api.PUT("/verses/:id/highlight", annotations.SetHighlight)
	api.GET("/verses/:id/highlight", annotations.GetHighlight)
	api.GET("/verses/:id/highlight/stream", annotations.StreamHighlight)
	api.GET("/bookmarks", annotations.ListBookmarks)
	api.GET("/highlights", annotations.ListHighlights)
	api.GET("/annotations/export", annotations.Export)
	api.POST("/annotations/import", annotations.Import)

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.Maintenance)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
