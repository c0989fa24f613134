package handler

import (
	"github.com/gin-gonic/gin"

	"imidok/internal/domain"
)

// LayoutHandler serves the static catalog of supported document layouts.
type LayoutHandler struct{}

// NewLayoutHandler creates a new LayoutHandler.
func NewLayoutHandler() *LayoutHandler {
	return &LayoutHandler{}
}

// List handles GET /api/v1/layouts
// @Summary List supported document layouts
// @Tags layouts
// @Produce json
// @Success 200 {object} APIResponse
// @Router /layouts [get]
func (h *LayoutHandler) List(c *gin.Context) {
	RespondOK(c, domain.LayoutCatalog)
}
