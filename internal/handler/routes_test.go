package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/internal/dto"
	"github.com/festapass/pricing-service/pkg/middleware"
)

// setupAPIRouter registers the same /api/v1 route tree as main.go. Gin
// panics at registration time when wildcard names differ within one method
// tree, so building this router is itself part of the test.
func setupAPIRouter(eh *EventHandler, qh *QuoteHandler, ah *AvailabilityHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Stand-in for the JWT middleware
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, "org-1")
		c.Set(middleware.ContextKeyUserRole, "organizer")
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/quote", qh.QuoteDirect)

		events := v1.Group("/events")
		{
			events.GET("", eh.List)
			events.GET("/id/:id", eh.GetByID)
			events.GET("/:slug/pricing", qh.PricingTable)
			events.GET("/:slug/availability", ah.Get)
			events.POST("/:slug/quote", qh.Quote)

			protected := events.Group("")
			{
				protected.POST("", eh.Create)
				protected.PUT("/:slug", eh.Update)
				protected.DELETE("/:slug", eh.Delete)
				protected.POST("/:slug/publish", eh.Publish)
			}

			events.GET("/:slug", eh.GetBySlug)
		}
	}

	return router
}

func TestAPIRoutes_RegisterAndResolve(t *testing.T) {
	eventSvc := NewMockEventService()
	eventSvc.AddEvent(&domain.Event{ID: "event-1", Slug: "festival", Status: domain.EventStatusDraft})
	quoteSvc := &MockQuoteService{quote: &dto.QuoteResponse{EventID: "event-1"}}
	availSvc := &MockAvailabilityService{resp: &dto.AvailabilityResponse{EventID: "event-1"}}

	router := setupAPIRouter(
		NewEventHandler(eventSvc),
		NewQuoteHandler(quoteSvc),
		NewAvailabilityHandler(availSvc),
	)

	// Publish and quote live in the same POST tree; both must resolve
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/festival/publish", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("publish status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/events/festival/quote", bytes.NewReader(quoteBody()))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("quote status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/events/festival", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("get by slug status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/events/id/event-1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("get by id status = %d, want 200", w.Code)
	}
}
