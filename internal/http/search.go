package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblereader/internal/entities"
	"github.com/mrlokans/biblereader/internal/query"
)

// SearchController handles keyword search and reference lookup.
type SearchController struct {
	finder          VerseFinder
	defaultLanguage uint
}

func NewSearchController(finder VerseFinder, defaultLanguage uint) *SearchController {
	return &SearchController{finder: finder, defaultLanguage: defaultLanguage}
}

// Search handles GET /api/search?q=&language=
// Queries shorter than two characters return an empty list.
func (sc *SearchController) Search(c *gin.Context) {
	languageID, ok := languageParam(c, sc.defaultLanguage)
	if !ok {
		return
	}

	results, err := sc.finder.SearchByKeyword(c.Request.Context(), c.Query("q"), languageID)
	if err != nil {
		respondStoreError(c, err, "verses")
		return
	}
	respondList(c, results)
}

// StreamSearch handles GET /api/search/stream?q=&language=
// Results are re-sent when translations change. Queries shorter than two
// characters send one empty result and end the stream.
func (sc *SearchController) StreamSearch(c *gin.Context) {
	languageID, ok := languageParam(c, sc.defaultLanguage)
	if !ok {
		return
	}

	updates := sc.finder.WatchKeywordSearch(c.Request.Context(), c.Query("q"), languageID)
	streamSnapshots(c, "keyword search", "results", updates, func(results []entities.VerseSearchResult) any {
		return listOf(results)
	})
}

// ReferenceResponse is a resolved reference.
type ReferenceResponse struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
	*query.Resolution
}

// Lookup handles GET /api/reference?ref=John+3:16 and
// GET /api/reference?book=John&chapter=3&verse=16
func (sc *SearchController) Lookup(c *gin.Context) {
	languageID, ok := languageParam(c, sc.defaultLanguage)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var (
		res *query.Resolution
		err error
	)
	if ref := strings.TrimSpace(c.Query("ref")); ref != "" {
		res, err = sc.finder.LookupReference(ctx, ref, languageID)
	} else {
		book := strings.TrimSpace(c.Query("book"))
		if book == "" {
			respondBadRequest(c, "ref or book is required")
			return
		}
		chapter, ok := parsePositiveQuery(c, "chapter")
		if !ok {
			return
		}
		verse, ok := parsePositiveQuery(c, "verse")
		if !ok {
			return
		}
		res, err = sc.finder.ResolveReference(ctx, book, chapter, verse, languageID)
	}
	if err != nil {
		respondStoreError(c, err, "reference")
		return
	}

	c.JSON(http.StatusOK, ReferenceResponse{
		Reference:  res.Reference(),
		Text:       res.Translation.Text,
		Resolution: res,
	})
}
