package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightshop/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service          flights.FlightUseCase
	defaultDeparture string
	cities           []string
}

func NewFlightHandler(service flights.FlightUseCase, defaultDeparture string, cities []string) *FlightHandler {
	return &FlightHandler{service: service, defaultDeparture: defaultDeparture, cities: cities}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.home)
	router.GET("/booking", h.booking)
	router.GET("/search", h.search)
	router.GET("/api/flights", h.list)
	router.GET("/api/flights/:id", h.get)
}

// home is the storefront landing data: one listing page, popular routes from
// the chosen departure city and the airport list for the search form.
func (h *FlightHandler) home(c *gin.Context) {
	ctx := c.Request.Context()

	page, err := intQuery(c, "page", 1)
	if err != nil {
		badRequest(c, "page must be an integer")
		return
	}
	departure := c.DefaultQuery("departure", h.defaultDeparture)

	listing, err := h.service.List(ctx, page)
	if err != nil {
		respondError(c, err)
		return
	}
	routes, err := h.service.PopularRoutes(ctx, departure)
	if err != nil {
		respondError(c, err)
		return
	}
	airports, err := h.service.Airports(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"airports":       airports,
		"routes":         routes,
		"cities":         h.cities,
		"flights":        listing.Flights,
		"departure_name": flights.RemoveAccents(departure),
		"page":           listing.Page,
		"pages":          listing.TotalPages,
	})
}

func (h *FlightHandler) booking(c *gin.Context) {
	airports, err := h.service.Airports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"airports": airports})
}

func (h *FlightHandler) search(c *gin.Context) {
	date, err := flights.ParseSearchDate(c.Query("departure_date"))
	if err != nil {
		respondError(c, err)
		return
	}

	q := flights.SearchQuery{
		Departure: c.Query("departure"),
		Arrival:   c.Query("arrival"),
		Date:      date,
	}
	counts := []struct {
		param string
		def   int
		dst   *int
	}{
		{"adult_count", 1, &q.Adults},
		{"child_count", 0, &q.Children},
		{"infant_count", 0, &q.Infants},
	}
	for _, cnt := range counts {
		n, err := intQuery(c, cnt.param, cnt.def)
		if err != nil {
			badRequest(c, cnt.param+" must be an integer")
			return
		}
		*cnt.dst = n
	}

	result, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"flights":          result,
		"total_passengers": q.Needed(),
	})
}

func (h *FlightHandler) list(c *gin.Context) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		badRequest(c, "page must be an integer")
		return
	}
	listing, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	flight, err := h.service.FlightDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
