package repository

import (
	"reflect"
	"testing"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow []any

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r[i]))
	}
	return nil
}

func TestScanFlightDetails_NormalizesToUTC(t *testing.T) {
	local := time.FixedZone("ICT", 7*60*60)
	dep := time.Date(2024, 12, 21, 6, 30, 0, 0, local)
	row := fakeRow{int64(1), int64(2), int64(3), dep, dep.Add(2 * time.Hour),
		120, 99.5, domain.FlightTypeDirect, "SGN", "HAN", "A321", "Vietnam Airlines"}

	f, err := scanFlightDetails(row)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, f.DepartureTime.Location())
	assert.True(t, f.DepartureTime.Equal(dep))
	assert.True(t, f.DepartsOn(time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Vietnam Airlines", f.CompanyName)
}

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}

	assert.NotNil(t, NewFlightRepository(pool))
	assert.NotNil(t, NewAirportRepository(pool))
	assert.NotNil(t, NewRouteRepository(pool))
	assert.NotNil(t, NewUserRepository(pool))
	assert.NotNil(t, NewTicketRepository(pool))
	assert.NotNil(t, NewStatsRepository(pool))
}
