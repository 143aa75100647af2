package flights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/Domenick1991/flightshop/internal/cache"
	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/metrics"
	"github.com/Domenick1991/flightshop/internal/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const dateLayout = "2006-01-02"

type FlightUseCase interface {
	List(ctx context.Context, page int) (*Page, error)
	FlightDetails(ctx context.Context, id int64) (*domain.FlightDetails, error)
	Airports(ctx context.Context) ([]domain.Airport, error)
	PopularRoutes(ctx context.Context, departure string) ([]domain.PopularRoute, error)
	Search(ctx context.Context, q SearchQuery) ([]domain.FlightDetails, error)
}

// FlightCache is satisfied by cache.RedisCache.
type FlightCache interface {
	GetFlightPage(ctx context.Context, page, size int) (*cache.FlightPage, error)
	SetFlightPage(ctx context.Context, page, size int, fp *cache.FlightPage) error
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
}

// Page is one page of the flight listing.
type Page struct {
	Flights    []domain.FlightDetails `json:"flights"`
	Page       int                    `json:"page"`
	TotalPages int                    `json:"pages"`
}

// SearchQuery is a customer's flight search. Date carries only a calendar day.
type SearchQuery struct {
	Departure string
	Arrival   string
	Date      time.Time
	Adults    int
	Children  int
	Infants   int
}

// ParseSearchDate reads a YYYY-MM-DD departure date.
func ParseSearchDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.ErrInvalidSearchDate
	}
	return d, nil
}

// Needed is the number of seats the party occupies; infants count too.
func (q SearchQuery) Needed() int {
	return q.Adults + q.Children + q.Infants
}

func (q SearchQuery) Validate() error {
	if q.Date.IsZero() {
		return domain.ErrInvalidSearchDate
	}
	if q.Adults < 0 || q.Children < 0 || q.Infants < 0 || q.Needed() < 1 {
		return domain.ErrInvalidPassengers
	}
	return nil
}

type FlightService struct {
	flights  repository.FlightRepository
	airports repository.AirportRepository
	routes   repository.RouteRepository
	cache    FlightCache
	pageSize int
}

func NewFlightService(
	flights repository.FlightRepository,
	airports repository.AirportRepository,
	routes repository.RouteRepository,
	cache FlightCache,
	pageSize int,
) *FlightService {
	if pageSize <= 0 {
		pageSize = 6
	}
	return &FlightService{flights: flights, airports: airports, routes: routes, cache: cache, pageSize: pageSize}
}

func (s *FlightService) List(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	var fp *cache.FlightPage
	if s.cache != nil {
		if cached, err := s.cache.GetFlightPage(ctx, page, s.pageSize); err == nil && cached != nil {
			fp = cached
		}
	}

	if fp == nil {
		flights, err := s.flights.ListPage(ctx, (page-1)*s.pageSize, s.pageSize)
		if err != nil {
			return nil, err
		}
		total, err := s.flights.Count(ctx)
		if err != nil {
			return nil, err
		}
		fp = &cache.FlightPage{Flights: flights, Total: total}
		if s.cache != nil {
			if err := s.cache.SetFlightPage(ctx, page, s.pageSize, fp); err != nil {
				slog.WarnContext(ctx, "cache flight page", "page", page, "error", err)
			}
		}
	}

	return &Page{
		Flights:    fp.Flights,
		Page:       page,
		TotalPages: (fp.Total + s.pageSize - 1) / s.pageSize,
	}, nil
}

func (s *FlightService) FlightDetails(ctx context.Context, id int64) (*domain.FlightDetails, error) {
	f, err := s.flights.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	availability, err := s.flights.Availability(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	f.Availability = availability[id]
	return f, nil
}

func (s *FlightService) Airports(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.airports.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAirports(ctx, airports); err != nil {
			slog.WarnContext(ctx, "cache airports", "error", err)
		}
	}
	return airports, nil
}

// PopularRoutes matches departure against airport addresses with accents
// stripped, so "Hồ Chí Minh" and "Ho Chi Minh" find the same routes.
func (s *FlightService) PopularRoutes(ctx context.Context, departure string) ([]domain.PopularRoute, error) {
	return s.routes.Popular(ctx, RemoveAccents(strings.TrimSpace(departure)))
}

// RemoveAccents drops combining marks after canonical decomposition.
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Search resolves both airports by exact name, collects the routes between
// them and returns the flights leaving on q.Date where either seat class can
// hold the whole party.
func (s *FlightService) Search(ctx context.Context, q SearchQuery) (result []domain.FlightDetails, err error) {
	defer func() {
		metrics.FlightSearches.WithLabelValues(metrics.Outcome(err)).Inc()
	}()

	if err := q.Validate(); err != nil {
		return nil, err
	}

	departure, err := s.airportByName(ctx, q.Departure)
	if err != nil {
		return nil, err
	}
	arrival, err := s.airportByName(ctx, q.Arrival)
	if err != nil {
		return nil, err
	}

	routes, err := s.routes.Between(ctx, departure.ID, arrival.ID)
	if err != nil {
		return nil, fmt.Errorf("find routes: %w", err)
	}
	if len(routes) == 0 {
		return []domain.FlightDetails{}, nil
	}
	routeIDs := make([]int64, 0, len(routes))
	for _, r := range routes {
		routeIDs = append(routeIDs, r.ID)
	}

	day := time.Date(q.Date.Year(), q.Date.Month(), q.Date.Day(), 0, 0, 0, 0, time.UTC)
	candidates, err := s.flights.ListDeparting(ctx, routeIDs, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("find flights: %w", err)
	}

	onDay := make([]domain.FlightDetails, 0, len(candidates))
	ids := make([]int64, 0, len(candidates))
	for _, f := range candidates {
		if f.DepartsOn(day) {
			onDay = append(onDay, f)
			ids = append(ids, f.ID)
		}
	}

	availability, err := s.flights.Availability(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count seats: %w", err)
	}

	needed := q.Needed()
	result = make([]domain.FlightDetails, 0, len(onDay))
	for _, f := range onDay {
		f.Availability = availability[f.ID]
		if f.Availability.Fits(needed) {
			result = append(result, f)
		}
	}
	return result, nil
}

func (s *FlightService) airportByName(ctx context.Context, name string) (*domain.Airport, error) {
	a, err := s.airports.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAirportNotFound
		}
		return nil, err
	}
	return a, nil
}

var _ FlightUseCase = (*FlightService)(nil)
