package repository

import (
	"context"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteRepository interface {
	Between(ctx context.Context, departureAirportID, arrivalAirportID int64) ([]domain.FlightRoute, error)
	Popular(ctx context.Context, departureAddress string) ([]domain.PopularRoute, error)
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

func (r *PGRouteRepository) Between(ctx context.Context, departureAirportID, arrivalAirportID int64) ([]domain.FlightRoute, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, departure_airport_id, arrival_airport_id, COALESCE(description, '')
		FROM flight_routes
		WHERE departure_airport_id = $1 AND arrival_airport_id = $2
		ORDER BY id`, departureAirportID, arrivalAirportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []domain.FlightRoute
	for rows.Next() {
		var fr domain.FlightRoute
		if err := rows.Scan(&fr.ID, &fr.DepartureAirportID, &fr.ArrivalAirportID, &fr.Description); err != nil {
			return nil, err
		}
		routes = append(routes, fr)
	}
	return routes, rows.Err()
}

// Popular lists routes whose departure airport address contains
// departureAddress, case-insensitively. An empty filter lists every route.
func (r *PGRouteRepository) Popular(ctx context.Context, departureAddress string) ([]domain.PopularRoute, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, da.name, aa.name, COALESCE(aa.image, ''), COALESCE(r.description, '')
		FROM flight_routes r
		JOIN airports da ON da.id = r.departure_airport_id
		JOIN airports aa ON aa.id = r.arrival_airport_id
		WHERE $1 = '' OR da.address ILIKE '%' || $1 || '%'
		ORDER BY r.id`, departureAddress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.PopularRoute, 0)
	for rows.Next() {
		var pr domain.PopularRoute
		if err := rows.Scan(&pr.RouteID, &pr.Departure, &pr.Arrival, &pr.Image, &pr.Description); err != nil {
			return nil, err
		}
		routes = append(routes, pr)
	}
	return routes, rows.Err()
}

var _ RouteRepository = (*PGRouteRepository)(nil)
