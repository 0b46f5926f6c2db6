package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/festapass/pricing-service/internal/dto"
	"github.com/festapass/pricing-service/internal/service"
	"github.com/festapass/pricing-service/pkg/response"
	"github.com/festapass/pricing-service/pkg/telemetry"
)

// QuoteHandler handles buyer-facing pricing HTTP requests
type QuoteHandler struct {
	quoteService service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// Quote handles POST /events/:slug/quote - prices a selection
func (h *QuoteHandler) Quote(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Slug is required"))
		return
	}

	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	ctx, span := telemetry.StartSpan(c.Request.Context(), "QuoteHandler.Quote",
		attribute.String("event.slug", slug),
		attribute.String("batch.id", req.BatchID),
		attribute.Int("lines", len(req.Lines)))
	defer span.End()

	quote, err := h.quoteService.Quote(ctx, slug, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to compute quote")
		return
	}

	c.JSON(http.StatusOK, response.Success(quote))
}

// QuoteDirect handles POST /quote - same as Quote but takes the event slug
// from the request body
func (h *QuoteHandler) QuoteDirect(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	if req.EventSlug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event slug is required"))
		return
	}

	ctx, span := telemetry.StartSpan(c.Request.Context(), "QuoteHandler.QuoteDirect",
		attribute.String("event.slug", req.EventSlug),
		attribute.String("batch.id", req.BatchID))
	defer span.End()

	quote, err := h.quoteService.Quote(ctx, req.EventSlug, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to compute quote")
		return
	}

	c.JSON(http.StatusOK, response.Success(quote))
}

// PricingTable handles GET /events/:slug/pricing - the resolved price table.
// An empty batch_id query selects the batch currently on sale.
func (h *QuoteHandler) PricingTable(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Slug is required"))
		return
	}
	batchID := c.Query("batch_id")

	ctx, span := telemetry.StartSpan(c.Request.Context(), "QuoteHandler.PricingTable",
		attribute.String("event.slug", slug))
	defer span.End()

	table, err := h.quoteService.PricingTable(ctx, slug, batchID)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve pricing table")
		return
	}

	c.JSON(http.StatusOK, response.Success(table))
}
