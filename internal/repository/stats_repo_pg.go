package repository

import (
	"context"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository aggregates valid (status = TRUE) tickets.
type StatsRepository interface {
	MonthlyRevenue(ctx context.Context) ([]domain.MonthlyRevenue, error)
	RouteRevenue(ctx context.Context) ([]domain.RouteRevenue, error)
	RouteTicketCounts(ctx context.Context) ([]domain.RouteTicketCount, error)
}

type PGStatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) StatsRepository {
	return &PGStatsRepository{db: db}
}

const validTicketsByRoute = `
	FROM flight_routes r
	JOIN airports da ON da.id = r.departure_airport_id
	JOIN airports aa ON aa.id = r.arrival_airport_id
	JOIN flights f ON f.flight_route_id = r.id
	JOIN tickets t ON t.flight_id = f.id
	WHERE t.status = TRUE
	GROUP BY r.id, da.name, aa.name`

func (r *PGStatsRepository) MonthlyRevenue(ctx context.Context) ([]domain.MonthlyRevenue, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(issue_date, 'YYYY-MM') AS month, SUM(price)
		FROM tickets
		WHERE status = TRUE
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.MonthlyRevenue, 0)
	for rows.Next() {
		var m domain.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, m)
	}
	return stats, rows.Err()
}

func (r *PGStatsRepository) RouteRevenue(ctx context.Context) ([]domain.RouteRevenue, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, da.name || ' - ' || aa.name, SUM(t.price)`+validTicketsByRoute+`
		ORDER BY SUM(t.price) DESC, r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.RouteRevenue, 0)
	for rows.Next() {
		var s domain.RouteRevenue
		if err := rows.Scan(&s.RouteID, &s.RouteName, &s.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// RouteTicketCounts is ordered by the count it reports, highest first.
func (r *PGStatsRepository) RouteTicketCounts(ctx context.Context) ([]domain.RouteTicketCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, da.name || ' - ' || aa.name, COUNT(t.id)`+validTicketsByRoute+`
		ORDER BY COUNT(t.id) DESC, r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.RouteTicketCount, 0)
	for rows.Next() {
		var s domain.RouteTicketCount
		if err := rows.Scan(&s.RouteID, &s.RouteName, &s.TicketCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

var _ StatsRepository = (*PGStatsRepository)(nil)
