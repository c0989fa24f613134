package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"imidok/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusUnprocessableEntity, "EMPTY_DOCUMENT", "no text could be read from the document"
	case errors.Is(err, domain.ErrInvalidLayoutHint):
		return http.StatusBadRequest, "INVALID_LAYOUT_HINT", "unknown document_type; see /api/v1/layouts"
	case errors.Is(err, domain.ErrInvalidExportType):
		return http.StatusBadRequest, "INVALID_EXPORT_FORMAT", "invalid export_format; allowed: xlsx, csv"
	case errors.Is(err, domain.ErrNoFilesProvided):
		return http.StatusBadRequest, "NO_FILES_PROVIDED", "at least one file is required"
	case errors.Is(err, domain.ErrNoSuccessfulItems):
		return http.StatusUnprocessableEntity, "NO_SUCCESSFUL_ITEMS", "no documents could be processed"
	case domain.IsUnsupportedLayout(err):
		return http.StatusUnprocessableEntity, "UNSUPPORTED_LAYOUT", "document layout is not supported"
	case errors.Is(err, domain.ErrTextExtractFailed):
		return http.StatusBadGateway, "TEXT_EXTRACT_FAILED", "text extraction service failed"
	case errors.Is(err, domain.ErrArtifactUploadFail):
		return http.StatusInternalServerError, "ARTIFACT_UPLOAD_FAILED", "artifact upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
