package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/biblereader/internal/annotations"
	"github.com/mrlokans/biblereader/internal/database"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeStorageFailure = "STORAGE_FAILURE"

	requestIDHeader = "X-Request-ID"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context
}

// ListResponse wraps a collection with its size.
type ListResponse struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeInvalidRequest})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound})
}

// respondInternalError logs the error and sends a 500 response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s, request %s): %v", context, c.GetString(requestIDHeader), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeStorageFailure})
}

// respondStoreError maps reader errors to responses. Absent rows and
// unknown verses are 404, a bad colour is 400, anything else is a
// storage failure.
func respondStoreError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound, Details: err.Error()})
	case errors.Is(err, annotations.ErrUnknownVerse):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: CodeNotFound})
	case errors.Is(err, annotations.ErrInvalidColor):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest})
	default:
		respondInternalError(c, err, resource)
	}
}

func respondList[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, listOf(items))
}

func listOf[T any](items []T) ListResponse {
	if items == nil {
		items = []T{}
	}
	return ListResponse{Data: items, Count: len(items)}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePositiveQuery reads a required positive integer query parameter.
func parsePositiveQuery(c *gin.Context, paramName string) (int, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		respondBadRequest(c, paramName+" is required")
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return n, true
}

// languageParam returns the ?language= id, or fallback when absent.
func languageParam(c *gin.Context, fallback uint) (uint, bool) {
	raw := strings.TrimSpace(c.Query("language"))
	if raw == "" {
		return fallback, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid language")
		return 0, false
	}
	return uint(id), true
}

// --- Middleware ---

// RequestIDMiddleware tags every request with an id, reusing the caller's
// X-Request-ID when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
