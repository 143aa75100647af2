// Package storage opens the Postgres pool shared by the pgx repositories and
// the gorm-backed admin store, and owns the schema.
package storage

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Company{},
		&domain.Plane{},
		&domain.Seat{},
		&domain.Airport{},
		&domain.FlightRoute{},
		&domain.Flight{},
		&domain.IntermediateAirport{},
		&domain.Payment{},
		&domain.Ticket{},
		&domain.Cancellation{},
		&domain.Luggage{},
		&domain.FlightSchedule{},
	}
}

type DB struct {
	Pool *pgxpool.Pool
	Gorm *gorm.DB
}

// Open connects to Postgres once; gorm runs on top of the same pgx pool.
func Open(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return &DB{Pool: pool, Gorm: gdb}, nil
}

func (db *DB) Migrate() error {
	if err := db.Gorm.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func (db *DB) Close() {
	if sqlDB, err := db.Gorm.DB(); err == nil {
		_ = sqlDB.Close()
	}
	db.Pool.Close()
}
