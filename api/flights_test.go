package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFlightHandler_home(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, "Ho Chi Minh", []string{"Hà Nội"})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?page=2&departure=H%C3%A0%20N%E1%BB%99i", nil)

	page := &flights.Page{Flights: []domain.FlightDetails{{Flight: domain.Flight{ID: 3}}}, Page: 2, TotalPages: 4}
	mockService.On("List", c.Request.Context(), 2).Return(page, nil)
	mockService.On("PopularRoutes", c.Request.Context(), "Hà Nội").Return([]domain.PopularRoute{{RouteID: 1}}, nil)
	mockService.On("Airports", c.Request.Context()).Return([]domain.Airport{{ID: 1, Name: "SGN"}}, nil)

	handler.home(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Pages         int      `json:"pages"`
		Page          int      `json:"page"`
		DepartureName string   `json:"departure_name"`
		Cities        []string `json:"cities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Pages)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, "Ha Noi", body.DepartureName)
	assert.Equal(t, []string{"Hà Nội"}, body.Cities)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_home_DefaultDeparture(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, "Ho Chi Minh", nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	mockService.On("List", c.Request.Context(), 1).Return(&flights.Page{Page: 1}, nil)
	mockService.On("PopularRoutes", c.Request.Context(), "Ho Chi Minh").Return([]domain.PopularRoute{}, nil)
	mockService.On("Airports", c.Request.Context()).Return([]domain.Airport{}, nil)

	handler.home(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, "", nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/search?departure=SGN&arrival=HAN&departure_date=2024-12-20&adult_count=2&infant_count=1", nil)

	want := flights.SearchQuery{
		Departure: "SGN",
		Arrival:   "HAN",
		Date:      time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
		Adults:    2,
		Infants:   1,
	}
	result := []domain.FlightDetails{{Flight: domain.Flight{ID: 7}}}
	mockService.On("Search", c.Request.Context(), want).Return(result, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Flights         []domain.FlightDetails `json:"flights"`
		TotalPassengers int                    `json:"total_passengers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Flights, 1)
	assert.Equal(t, 3, body.TotalPassengers)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_search_AirportNotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, "", nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/search?departure=SGN&arrival=Nowhere&departure_date=2024-12-20", nil)

	mockService.On("Search", c.Request.Context(), mock.Anything).
		Return([]domain.FlightDetails(nil), domain.ErrAirportNotFound)

	handler.search(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Airport not found"}`, w.Body.String())
}

func TestFlightHandler_search_BadInput(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, "", nil)
	gin.SetMode(gin.TestMode)

	for _, url := range []string{
		"/search?departure=SGN&arrival=HAN",
		"/search?departure=SGN&arrival=HAN&departure_date=20-12-2024",
		"/search?departure=SGN&arrival=HAN&departure_date=2024-12-20&adult_count=two",
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", url, nil)

		handler.search(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
	mockService.AssertNotCalled(t, "Search")
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, "", nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/1", nil)

	details := &domain.FlightDetails{Flight: domain.Flight{ID: 1}, PlaneName: "A321"}
	mockService.On("FlightDetails", c.Request.Context(), int64(1)).Return(details, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response domain.FlightDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "A321", response.PlaneName)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_InvalidID(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, "", nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "invalid"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/invalid", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlightHandler_list_ServiceError(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, "", nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights", nil)

	mockService.On("List", c.Request.Context(), 1).Return(nil, errors.New("db down"))

	handler.list(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
