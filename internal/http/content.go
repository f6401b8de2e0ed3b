package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblereader/internal/entities"
)

// ContentController serves the read-only corpus: languages, books and chapters.
type ContentController struct {
	catalog CatalogReader
}

func NewContentController(catalog CatalogReader) *ContentController {
	return &ContentController{catalog: catalog}
}

// GetLanguages handles GET /api/languages
func (cc *ContentController) GetLanguages(c *gin.Context) {
	languages, err := cc.catalog.Languages(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "languages")
		return
	}
	respondList(c, languages)
}

// GetLanguage handles GET /api/languages/:code
func (cc *ContentController) GetLanguage(c *gin.Context) {
	language, err := cc.catalog.LanguageByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondStoreError(c, err, "language")
		return
	}
	c.JSON(http.StatusOK, language)
}

// GetBooks handles GET /api/books?testament=Old|New
func (cc *ContentController) GetBooks(c *gin.Context) {
	var testament entities.Testament
	switch strings.ToLower(c.Query("testament")) {
	case "":
	case "old":
		testament = entities.TestamentOld
	case "new":
		testament = entities.TestamentNew
	default:
		respondBadRequest(c, "testament must be Old or New")
		return
	}

	books, err := cc.catalog.Books(c.Request.Context(), testament)
	if err != nil {
		respondStoreError(c, err, "books")
		return
	}
	respondList(c, books)
}

// SearchBooks handles GET /api/books/search?q=
func (cc *ContentController) SearchBooks(c *gin.Context) {
	books, err := cc.catalog.SearchBooksByName(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondStoreError(c, err, "books")
		return
	}
	respondList(c, books)
}

// StreamBookSearch handles GET /api/books/search/stream?q=
// The matching books are re-sent whenever the book table changes.
func (cc *ContentController) StreamBookSearch(c *gin.Context) {
	updates := cc.catalog.WatchBookSearch(c.Request.Context(), c.Query("q"))
	streamSnapshots(c, "book search", "books", updates, func(books []entities.Book) any {
		return listOf(books)
	})
}

// GetChapters handles GET /api/books/:id/chapters
func (cc *ContentController) GetChapters(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := cc.catalog.Book(ctx, bookID)
	if err != nil {
		respondStoreError(c, err, "book")
		return
	}

	chapters, err := cc.catalog.Chapters(ctx, bookID)
	if err != nil {
		respondStoreError(c, err, "chapters")
		return
	}
	if chapters == nil {
		chapters = []entities.Chapter{}
	}

	c.JSON(http.StatusOK, gin.H{
		"book":     book,
		"chapters": chapters,
		"count":    len(chapters),
	})
}
