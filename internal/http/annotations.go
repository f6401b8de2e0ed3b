package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/tasks"
)

// AnnotationsController handles bookmarks, highlights and their
// export/import document.
type AnnotationsController struct {
	writer          AnnotationWriter
	reader          AnnotationReader
	queue           TaskQueue
	defaultLanguage uint
}

func NewAnnotationsController(writer AnnotationWriter, reader AnnotationReader, queue TaskQueue, defaultLanguage uint) *AnnotationsController {
	return &AnnotationsController{
		writer:          writer,
		reader:          reader,
		queue:           queue,
		defaultLanguage: defaultLanguage,
	}
}

// HighlightRequest is the optional body of highlight mutations.
type HighlightRequest struct {
	Color *string `json:"color"`
}

// ToggleBookmark handles POST /api/verses/:id/bookmark/toggle
func (ac *AnnotationsController) ToggleBookmark(c *gin.Context) {
	verseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bookmarked, err := ac.writer.ToggleBookmark(c.Request.Context(), verseID)
	if err != nil {
		respondStoreError(c, err, "verse")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verse_id":      verseID,
		"is_bookmarked": bookmarked,
	})
}

// ToggleHighlight handles POST /api/verses/:id/highlight/toggle
func (ac *AnnotationsController) ToggleHighlight(c *gin.Context) {
	verseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := bindHighlightRequest(c)
	if !ok {
		return
	}

	highlighted, err := ac.writer.ToggleHighlight(c.Request.Context(), verseID, req.Color)
	if err != nil {
		respondStoreError(c, err, "verse")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verse_id":       verseID,
		"is_highlighted": highlighted,
	})
}

// SetHighlight handles PUT /api/verses/:id/highlight
func (ac *AnnotationsController) SetHighlight(c *gin.Context) {
	verseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := bindHighlightRequest(c)
	if !ok {
		return
	}

	highlight, err := ac.writer.SetHighlightColor(c.Request.Context(), verseID, req.Color)
	if err != nil {
		respondStoreError(c, err, "verse")
		return
	}
	c.JSON(http.StatusOK, highlight)
}

// GetHighlight handles GET /api/verses/:id/highlight
func (ac *AnnotationsController) GetHighlight(c *gin.Context) {
	verseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	highlight, err := ac.reader.Highlight(c.Request.Context(), verseID)
	if err != nil {
		respondStoreError(c, err, "highlight")
		return
	}
	if highlight == nil {
		respondNotFound(c, "highlight")
		return
	}
	c.JSON(http.StatusOK, highlight)
}

// HighlightState is one emission of a verse's highlight stream. Highlight
// is null while the verse has none.
type HighlightState struct {
	VerseID   uint                `json:"verse_id"`
	Highlight *entities.Highlight `json:"highlight"`
}

// StreamHighlight handles GET /api/verses/:id/highlight/stream
// The verse's highlight is re-sent after every highlight mutation.
func (ac *AnnotationsController) StreamHighlight(c *gin.Context) {
	verseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	updates := ac.reader.WatchHighlight(c.Request.Context(), verseID)
	streamSnapshots(c, fmt.Sprintf("highlight %d", verseID), "highlight", updates, func(h *entities.Highlight) any {
		return HighlightState{VerseID: verseID, Highlight: h}
	})
}

// ListBookmarks handles GET /api/bookmarks?language=
func (ac *AnnotationsController) ListBookmarks(c *gin.Context) {
	languageID, ok := languageParam(c, ac.defaultLanguage)
	if !ok {
		return
	}

	bookmarks, err := ac.reader.BookmarksWithContext(c.Request.Context(), languageID)
	if err != nil {
		respondStoreError(c, err, "bookmarks")
		return
	}
	respondList(c, bookmarks)
}

// ListHighlights handles GET /api/highlights?language=
func (ac *AnnotationsController) ListHighlights(c *gin.Context) {
	languageID, ok := languageParam(c, ac.defaultLanguage)
	if !ok {
		return
	}

	highlights, err := ac.reader.HighlightsWithContext(c.Request.Context(), languageID)
	if err != nil {
		respondStoreError(c, err, "highlights")
		return
	}
	respondList(c, highlights)
}

// Export handles GET /api/annotations/export
func (ac *AnnotationsController) Export(c *gin.Context) {
	doc, err := ac.writer.Export(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "annotations")
		return
	}

	filename := "annotations-" + time.Now().Format("20060102") + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, doc)
}

// Import handles POST /api/annotations/import?async=true|false
// With async=true the document is handed to the task queue and the
// response carries the task id.
func (ac *AnnotationsController) Import(c *gin.Context) {
	var doc entities.AnnotationDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		respondBadRequest(c, "invalid annotation document: "+err.Error())
		return
	}

	async, _ := strconv.ParseBool(c.DefaultQuery("async", "false"))
	if async {
		ac.enqueueImport(c, doc)
		return
	}

	result, err := ac.writer.Import(c.Request.Context(), doc)
	if err != nil {
		respondStoreError(c, err, "verse")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ac *AnnotationsController) enqueueImport(c *gin.Context, doc entities.AnnotationDocument) {
	if ac.queue == nil {
		respondBadRequest(c, "background tasks are disabled")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	taskID, err := ac.queue.Enqueue(ctx, tasks.ImportAnnotationsTask{Document: doc})
	if err != nil {
		respondInternalError(c, err, "enqueue import")
		return
	}

	log.Printf("[TASK] Request %s enqueued annotation import %s", c.GetString(requestIDHeader), taskID)
	c.JSON(http.StatusAccepted, gin.H{
		"task_id": taskID,
		"type":    tasks.ImportAnnotationsQueue,
		"message": "task enqueued",
	})
}

// bindHighlightRequest reads the optional JSON body. An empty body means no colour.
func bindHighlightRequest(c *gin.Context) (HighlightRequest, bool) {
	var req HighlightRequest
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return req, false
	}
	return req, true
}
