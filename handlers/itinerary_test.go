package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"routed/models"
	"routed/services/itinerary"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubItineraryService struct {
	itinerary *models.Itinerary
	err       error
	lastIndex int
}

func (s *stubItineraryService) Generate(ctx context.Context, userID string, req models.ItineraryRequest) (*models.Itinerary, error) {
	return s.itinerary, s.err
}

func (s *stubItineraryService) RegenerateStop(ctx context.Context, userID string, index int) (*models.Itinerary, error) {
	s.lastIndex = index
	return s.itinerary, s.err
}

func (s *stubItineraryService) RemoveStop(ctx context.Context, userID string, index int) (*models.Itinerary, error) {
	s.lastIndex = index
	return s.itinerary, s.err
}

func (s *stubItineraryService) Last(ctx context.Context, userID string) (*models.Itinerary, error) {
	return s.itinerary, s.err
}

func (s *stubItineraryService) MapsURL(it *models.Itinerary) string {
	if it == nil {
		return ""
	}
	return "https://www.google.com/maps/dir/stubbed"
}

func itineraryRouter(svc itinerary.ItineraryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := func(c *gin.Context) { c.Set("userID", "user-1") }
	group := router.Group("/api/itinerary", auth)
	group.POST("", GenerateItineraryHandler(svc))
	group.GET("", GetItineraryHandler(svc))
	group.POST("/stops/:index/regenerate", RegenerateStopHandler(svc))
	group.DELETE("/stops/:index", RemoveStopHandler(svc))
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validItineraryBody = `{
	"activity_type": "first date",
	"location": "San Francisco",
	"start_time": "2025-06-07T14:00:00Z",
	"end_time": "2025-06-07T18:00:00Z"
}`

func testItinerary() *models.Itinerary {
	return &models.Itinerary{
		Stops:       []string{"Ferry Building", "Golden Gate Park"},
		DesiredType: "tourist_attraction",
		Keyword:     "sightseeing",
	}
}

func TestGenerateItineraryHandler(t *testing.T) {
	router := itineraryRouter(&stubItineraryService{itinerary: testItinerary()})

	w := doJSON(router, http.MethodPost, "/api/itinerary", validItineraryBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ferry Building")
	assert.Contains(t, w.Body.String(), "maps_url")
}

func TestGenerateItineraryHandlerMissingFields(t *testing.T) {
	router := itineraryRouter(&stubItineraryService{itinerary: testItinerary()})

	w := doJSON(router, http.MethodPost, "/api/itinerary", `{"location": "San Francisco"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateItineraryHandlerRejectedOutput(t *testing.T) {
	svc := &stubItineraryService{err: &models.PayloadError{Field: "stops", Reason: "must contain at least 2 entries"}}
	router := itineraryRouter(svc)

	w := doJSON(router, http.MethodPost, "/api/itinerary", validItineraryBody)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "stops")
}

func TestGenerateItineraryHandlerModelDown(t *testing.T) {
	router := itineraryRouter(&stubItineraryService{err: assert.AnError})

	w := doJSON(router, http.MethodPost, "/api/itinerary", validItineraryBody)
	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetItineraryHandlerNotFound(t *testing.T) {
	router := itineraryRouter(&stubItineraryService{})

	w := doJSON(router, http.MethodGet, "/api/itinerary", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegenerateStopHandler(t *testing.T) {
	svc := &stubItineraryService{itinerary: testItinerary()}
	router := itineraryRouter(svc)

	w := doJSON(router, http.MethodPost, "/api/itinerary/stops/1/regenerate", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.lastIndex)
}

func TestRegenerateStopHandlerBadIndex(t *testing.T) {
	router := itineraryRouter(&stubItineraryService{itinerary: testItinerary()})

	w := doJSON(router, http.MethodPost, "/api/itinerary/stops/abc/regenerate", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveStopHandlerNoItinerary(t *testing.T) {
	router := itineraryRouter(&stubItineraryService{err: itinerary.ErrNoItinerary})

	w := doJSON(router, http.MethodDelete, "/api/itinerary/stops/0", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}
