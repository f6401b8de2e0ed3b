package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/reader"
)

// ChapterResponse is one rendering of a chapter with its title.
type ChapterResponse struct {
	Reference *entities.ChapterReference `json:"reference"`
	Title     string                     `json:"title"`
	reader.Display
}

// ChaptersController renders chapter displays, once or as a live stream.
type ChaptersController struct {
	catalog         CatalogReader
	display         DisplaySource
	defaultLanguage uint
}

func NewChaptersController(catalog CatalogReader, display DisplaySource, defaultLanguage uint) *ChaptersController {
	return &ChaptersController{
		catalog:         catalog,
		display:         display,
		defaultLanguage: defaultLanguage,
	}
}

// GetChapter handles GET /api/chapters/:id?language=
func (cc *ChaptersController) GetChapter(c *gin.Context) {
	ref, languageID, ok := cc.resolve(c)
	if !ok {
		return
	}

	display, err := cc.display.Chapter(c.Request.Context(), ref.ChapterID, languageID)
	if err != nil {
		respondStoreError(c, err, "chapter")
		return
	}

	c.JSON(http.StatusOK, ChapterResponse{Reference: ref, Title: ref.String(), Display: display})
}

// StreamChapter handles GET /api/chapters/:id/stream?language=
// Every change to the chapter's content or annotations is pushed as a
// "display" server-sent event until the client goes away.
func (cc *ChaptersController) StreamChapter(c *gin.Context) {
	ref, languageID, ok := cc.resolve(c)
	if !ok {
		return
	}

	updates := cc.display.Watch(c.Request.Context(), ref.ChapterID, languageID)
	streamSnapshots(c, fmt.Sprintf("chapter %d", ref.ChapterID), "display", updates, func(d reader.Display) any {
		return ChapterResponse{Reference: ref, Title: ref.String(), Display: d}
	})
}

func (cc *ChaptersController) resolve(c *gin.Context) (*entities.ChapterReference, uint, bool) {
	chapterID, ok := parseIDParam(c, "id")
	if !ok {
		return nil, 0, false
	}
	languageID, ok := languageParam(c, cc.defaultLanguage)
	if !ok {
		return nil, 0, false
	}

	ref, err := cc.catalog.ChapterReference(c.Request.Context(), chapterID)
	if err != nil {
		respondStoreError(c, err, "chapter")
		return nil, 0, false
	}
	return ref, languageID, true
}
