package repository

import (
	"context"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByName(ctx context.Context, name string) (*domain.Airport, error)
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, COALESCE(address, ''), COALESCE(image, '') FROM airports ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.Address, &a.Image); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

// GetByName matches the airport name exactly.
func (r *PGAirportRepository) GetByName(ctx context.Context, name string) (*domain.Airport, error) {
	var a domain.Airport
	err := r.db.QueryRow(ctx, `SELECT id, name, COALESCE(address, ''), COALESCE(image, '') FROM airports WHERE name = $1`, name).
		Scan(&a.ID, &a.Name, &a.Address, &a.Image)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &a, nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
