package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festapass/pricing-service/internal/service"
	"github.com/festapass/pricing-service/pkg/response"
)

// AvailabilityHandler handles availability HTTP requests
type AvailabilityHandler struct {
	availService service.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler
func NewAvailabilityHandler(availService service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		availService: availService,
	}
}

// Get handles GET /events/:slug/availability - current availability signals
func (h *AvailabilityHandler) Get(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Slug is required"))
		return
	}

	availability, err := h.availService.GetAvailability(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, err, "Failed to get availability")
		return
	}

	c.JSON(http.StatusOK, response.Success(availability))
}
