package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	ListPage(ctx context.Context, offset, limit int) ([]domain.FlightDetails, error)
	Count(ctx context.Context) (int, error)
	GetDetails(ctx context.Context, id int64) (*domain.FlightDetails, error)
	ListDeparting(ctx context.Context, routeIDs []int64, from, to time.Time) ([]domain.FlightDetails, error)
	Availability(ctx context.Context, flightIDs []int64) (map[int64]domain.SeatAvailability, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightDetailsSelect = `
	SELECT f.id, f.flight_route_id, f.plane_id, f.departure_time, f.arrival_time,
		f.duration_minutes, f.price, f.flight_type,
		da.name, aa.name, p.name, c.name
	FROM flights f
	JOIN flight_routes r ON r.id = f.flight_route_id
	JOIN airports da ON da.id = r.departure_airport_id
	JOIN airports aa ON aa.id = r.arrival_airport_id
	JOIN planes p ON p.id = f.plane_id
	JOIN companies c ON c.id = p.company_id`

// availabilitySelect derives remaining seats per class; cancelled tickets
// give their seat back.
const availabilitySelect = `
	SELECT f.id,
		p.economy_seats - COUNT(t.id) FILTER (WHERE t.seat_class = 'ECONOMY'),
		p.business_seats - COUNT(t.id) FILTER (WHERE t.seat_class = 'BUSINESS')
	FROM flights f
	JOIN planes p ON p.id = f.plane_id
	LEFT JOIN tickets t ON t.flight_id = f.id
		AND NOT EXISTS (SELECT 1 FROM cancellations c WHERE c.ticket_id = t.id)
	WHERE f.id = ANY($1)
	GROUP BY f.id, p.economy_seats, p.business_seats`

func scanFlightDetails(row scanner) (domain.FlightDetails, error) {
	var f domain.FlightDetails
	err := row.Scan(&f.ID, &f.FlightRouteID, &f.PlaneID, &f.DepartureTime, &f.ArrivalTime,
		&f.DurationMinutes, &f.Price, &f.Type,
		&f.DepartureAirport, &f.ArrivalAirport, &f.PlaneName, &f.CompanyName)
	// pgx decodes timestamptz in time.Local; searches and receipts read UTC days.
	f.DepartureTime = f.DepartureTime.UTC()
	f.ArrivalTime = f.ArrivalTime.UTC()
	return f, err
}

func (r *PGFlightRepository) ListPage(ctx context.Context, offset, limit int) ([]domain.FlightDetails, error) {
	rows, err := r.db.Query(ctx, flightDetailsSelect+` ORDER BY f.id DESC OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.FlightDetails, 0, limit)
	for rows.Next() {
		f, err := scanFlightDetails(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights`).Scan(&n)
	return n, err
}

func (r *PGFlightRepository) GetDetails(ctx context.Context, id int64) (*domain.FlightDetails, error) {
	f, err := scanFlightDetails(r.db.QueryRow(ctx, flightDetailsSelect+` WHERE f.id = $1`, id))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &f, nil
}

// ListDeparting returns flights on the given routes leaving in [from, to).
func (r *PGFlightRepository) ListDeparting(ctx context.Context, routeIDs []int64, from, to time.Time) ([]domain.FlightDetails, error) {
	rows, err := r.db.Query(ctx, flightDetailsSelect+`
		WHERE f.flight_route_id = ANY($1) AND f.departure_time >= $2 AND f.departure_time < $3
		ORDER BY f.departure_time, f.id`, routeIDs, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []domain.FlightDetails
	for rows.Next() {
		f, err := scanFlightDetails(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) Availability(ctx context.Context, flightIDs []int64) (map[int64]domain.SeatAvailability, error) {
	result := make(map[int64]domain.SeatAvailability, len(flightIDs))
	if len(flightIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, availabilitySelect, flightIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var a domain.SeatAvailability
		if err := rows.Scan(&id, &a.Economy, &a.Business); err != nil {
			return nil, err
		}
		result[id] = a
	}
	return result, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
