package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/internal/dto"
	"github.com/festapass/pricing-service/internal/service"
	"github.com/festapass/pricing-service/pkg/middleware"
	"github.com/festapass/pricing-service/pkg/response"
)

// EventHandler handles event authoring HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// List handles GET /events - lists events with pagination and filters
func (h *EventHandler) List(c *gin.Context) {
	var filter dto.EventListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	events, total, err := h.eventService.ListEvents(c.Request.Context(), &filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to list events"))
		return
	}

	eventResponses := make([]*dto.EventResponse, len(events))
	for i, event := range events {
		eventResponses[i] = toEventResponse(event)
	}

	filter.SetDefaults()
	c.JSON(http.StatusOK, response.Paginated(eventResponses, filter.Offset/filter.Limit+1, filter.Limit, int64(total)))
}

// GetBySlug handles GET /events/:slug - retrieves an event by slug
func (h *EventHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Slug is required"))
		return
	}

	event, err := h.eventService.GetEventBySlug(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, err, "Failed to get event")
		return
	}

	c.JSON(http.StatusOK, response.Success(toEventResponse(event)))
}

// GetByID handles GET /events/id/:id - retrieves an event by ID
func (h *EventHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("ID is required"))
		return
	}

	event, err := h.eventService.GetEventByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to get event")
		return
	}

	c.JSON(http.StatusOK, response.Success(toEventResponse(event)))
}

// Create handles POST /events - creates a new event (organizer only)
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	organizerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("User ID not found in token"))
		return
	}
	req.OrganizerID = organizerID

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, response.Success(toEventResponse(event)))
}

// Update handles PUT /events/:slug - updates an event
func (h *EventHandler) Update(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Slug is required"))
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), slug, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, response.Success(toEventResponse(event)))
}

// Delete handles DELETE /events/:slug - soft deletes an event
func (h *EventHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Slug is required"))
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), slug); err != nil {
		respondServiceError(c, err, "Failed to delete event")
		return
	}

	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Event deleted successfully"}))
}

// Publish handles POST /events/:slug/publish - publishes a draft event
func (h *EventHandler) Publish(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Slug is required"))
		return
	}

	event, err := h.eventService.PublishEvent(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEventStatus) {
			c.JSON(http.StatusBadRequest, response.BadRequest("Only draft events can be published"))
			return
		}
		respondServiceError(c, err, "Failed to publish event")
		return
	}

	c.JSON(http.StatusOK, response.Success(toEventResponse(event)))
}

// respondServiceError maps service errors to HTTP responses
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
	case domain.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, response.NotFound(err.Error()))
	case errors.Is(err, domain.ErrBatchNotOnSale):
		c.JSON(http.StatusUnprocessableEntity, response.UnprocessableEntity("Batch is not on sale"))
	case errors.Is(err, domain.ErrPriceNotConfigured):
		c.JSON(http.StatusUnprocessableEntity, response.UnprocessableEntity("No price configured for the requested combination"))
	default:
		c.JSON(http.StatusInternalServerError, response.InternalError(fallback))
	}
}

// toEventResponse converts a domain event to its response DTO
func toEventResponse(event *domain.Event) *dto.EventResponse {
	now := time.Now()

	typeNames := make(map[string]string, len(event.TicketTypes))
	resp := &dto.EventResponse{
		ID:               event.ID,
		OrganizerID:      event.OrganizerID,
		Name:             event.Name,
		Slug:             event.Slug,
		Description:      event.Description,
		Status:           event.Status,
		IsFree:           event.IsFree,
		IsClientTaxed:    event.IsClientTaxed,
		PriceCents:       event.PriceCents,
		PricingMode:      event.Mode().String(),
		MaxTicketsPerBuy: event.MaxTicketsPerBuy,
		CreatedAt:        event.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        event.UpdatedAt.Format(time.RFC3339),
	}
	if event.PublishedAt != nil {
		s := event.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &s
	}

	for _, tt := range event.TicketTypes {
		typeNames[tt.ID] = tt.Name
		resp.TicketTypes = append(resp.TicketTypes, dto.TicketTypeResponse{
			ID:          tt.ID,
			Name:        tt.Name,
			Description: tt.Description,
		})
	}

	for _, b := range event.Batches {
		batch := dto.BatchResponse{
			ID:         b.ID,
			Name:       b.Name,
			StartDate:  b.StartDate.Format(time.RFC3339),
			Status:     b.Status(now),
			PriceCents: b.PriceCents,
		}
		if b.EndDate != nil {
			s := b.EndDate.Format(time.RFC3339)
			batch.EndDate = &s
		}
		for _, bt := range b.TicketTypes {
			batch.TicketTypes = append(batch.TicketTypes, dto.BatchTypePriceResponse{
				TicketTypeID:   bt.TicketTypeID,
				TicketTypeName: typeNames[bt.TicketTypeID],
				PriceCents:     bt.PriceCents,
				Amount:         bt.Amount,
			})
		}
		resp.Batches = append(resp.Batches, batch)
	}

	for _, d := range event.Dates {
		date := dto.DateResponse{
			ID:               d.ID,
			Date:             d.Date.Format("2006-01-02"),
			HourStart:        d.HourStart,
			HourEnd:          d.HourEnd,
			HasSpecificPrice: d.HasSpecificPrice,
			PriceCents:       d.PriceCents,
		}
		for _, tp := range d.TicketTypePrices {
			date.TicketTypePrices = append(date.TicketTypePrices, dto.DateTypePriceResponse{
				TicketTypeID:   tp.TicketTypeID,
				TicketTypeName: typeNames[tp.TicketTypeID],
				PriceCents:     tp.PriceCents,
			})
		}
		resp.Dates = append(resp.Dates, date)
	}

	return resp
}
