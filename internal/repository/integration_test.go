//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with FLIGHTSHOP_TEST_DSN pointing at a disposable database:
//
//	go test -tags integration ./internal/repository/...
func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	dsn := os.Getenv("FLIGHTSHOP_TEST_DSN")
	if dsn == "" {
		t.Skip("FLIGHTSHOP_TEST_DSN is not set")
	}

	ctx := context.Background()
	db, err := storage.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate())

	_, err = db.Pool.Exec(ctx, `TRUNCATE cancellations, luggage, flight_schedules, tickets, payments,
		intermediate_airports, flights, flight_routes, airports, seats, planes, companies, users
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}

type fixture struct {
	user   domain.User
	route  domain.FlightRoute
	flight domain.Flight
}

// seed creates one route SGN -> HAN served by a plane with two economy
// seats and one business seat.
func seed(t *testing.T, db *storage.DB, departure time.Time) fixture {
	t.Helper()
	g := db.Gorm

	user := domain.User{Name: "Alice", Username: "alice", Password: "x", Email: "alice@example.com", DOB: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC), Role: domain.UserRoleUser}
	require.NoError(t, g.Create(&user).Error)

	company := domain.Company{Name: "Vietnam Airlines"}
	require.NoError(t, g.Create(&company).Error)
	plane := domain.Plane{Name: "A321", CompanyID: company.ID, EconomySeats: 2, BusinessSeats: 1}
	require.NoError(t, g.Create(&plane).Error)

	sgn := domain.Airport{Name: "SGN", Address: "Ho Chi Minh"}
	han := domain.Airport{Name: "HAN", Address: "Ha Noi"}
	require.NoError(t, g.Create(&sgn).Error)
	require.NoError(t, g.Create(&han).Error)

	route := domain.FlightRoute{DepartureAirportID: sgn.ID, ArrivalAirportID: han.ID, Description: "capital run"}
	require.NoError(t, g.Create(&route).Error)

	flight := domain.Flight{
		FlightRouteID:   route.ID,
		PlaneID:         plane.ID,
		DepartureTime:   departure,
		ArrivalTime:     departure.Add(2 * time.Hour),
		DurationMinutes: 120,
		Price:           100,
		Type:            domain.FlightTypeDirect,
	}
	require.NoError(t, g.Create(&flight).Error)

	return fixture{user: user, route: route, flight: flight}
}

func TestIntegration_SearchByDay(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	departure := time.Date(2024, 12, 20, 8, 30, 0, 0, time.UTC)
	fx := seed(t, db, departure)

	airports := NewAirportRepository(db.Pool)
	sgn, err := airports.GetByName(ctx, "SGN")
	require.NoError(t, err)
	han, err := airports.GetByName(ctx, "HAN")
	require.NoError(t, err)
	_, err = airports.GetByName(ctx, "Nowhere")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	routes, err := NewRouteRepository(db.Pool).Between(ctx, sgn.ID, han.ID)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, fx.route.ID, routes[0].ID)

	flights := NewFlightRepository(db.Pool)
	day := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	found, err := flights.ListDeparting(ctx, []int64{fx.route.ID}, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "SGN", found[0].DepartureAirport)
	assert.Equal(t, "Vietnam Airlines", found[0].CompanyName)

	next := day.Add(24 * time.Hour)
	found, err = flights.ListDeparting(ctx, []int64{fx.route.ID}, next, next.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, found)

	popular, err := NewRouteRepository(db.Pool).Popular(ctx, "ho chi")
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, "HAN", popular[0].Arrival)
}

func TestIntegration_CheckoutPaymentLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fx := seed(t, db, time.Date(2024, 12, 20, 8, 30, 0, 0, time.UTC))

	flights := NewFlightRepository(db.Pool)
	tickets := NewTicketRepository(db.Pool)

	avail, err := flights.Availability(ctx, []int64{fx.flight.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.SeatAvailability{Economy: 2, Business: 1}, avail[fx.flight.ID])

	expires := time.Now().Add(15 * time.Minute)
	payment, issued, err := tickets.IssuePending(ctx, fx.user.ID, "ref-1", expires, []TicketOrder{
		{FlightID: fx.flight.ID, Class: domain.SeatClassEconomy, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.Equal(t, float64(200), payment.Amount)
	assert.Len(t, issued, 2)

	avail, err = flights.Availability(ctx, []int64{fx.flight.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, avail[fx.flight.ID].Economy)

	_, _, err = tickets.IssuePending(ctx, fx.user.ID, "ref-2", expires, []TicketOrder{
		{FlightID: fx.flight.ID, Class: domain.SeatClassEconomy, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrSoldOut)

	paid, err := tickets.MarkPaid(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	_, err = tickets.MarkPaid(ctx, payment.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentNotPending)

	ids, err := tickets.TicketIDs(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{issued[0].ID, issued[1].ID}, ids)
}

func TestIntegration_ExpireReleasesSeats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fx := seed(t, db, time.Date(2024, 12, 20, 8, 30, 0, 0, time.UTC))

	flights := NewFlightRepository(db.Pool)
	tickets := NewTicketRepository(db.Pool)

	deadline := time.Now().Add(-time.Minute)
	payment, _, err := tickets.IssuePending(ctx, fx.user.ID, "ref-late", deadline, []TicketOrder{
		{FlightID: fx.flight.ID, Class: domain.SeatClassBusiness, Quantity: 1},
	})
	require.NoError(t, err)

	expired, err := tickets.ExpirePendingBefore(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, payment.ID, expired[0].ID)
	assert.Equal(t, domain.PaymentStatusExpired, expired[0].Status)

	avail, err := flights.Availability(ctx, []int64{fx.flight.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, avail[fx.flight.ID].Business)

	again, err := tickets.ExpirePendingBefore(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, again)

	got, err := tickets.GetPayment(ctx, "ref-late")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusExpired, got.Status)
}

func TestIntegration_RevenueCountsOnlyPaidTickets(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fx := seed(t, db, time.Date(2024, 12, 20, 8, 30, 0, 0, time.UTC))

	tickets := NewTicketRepository(db.Pool)
	expires := time.Now().Add(time.Hour)

	paid, _, err := tickets.IssuePending(ctx, fx.user.ID, "ref-paid", expires, []TicketOrder{
		{FlightID: fx.flight.ID, Class: domain.SeatClassEconomy, Quantity: 2},
		{FlightID: fx.flight.ID, Class: domain.SeatClassBusiness, Quantity: 1},
	})
	require.NoError(t, err)
	_, err = tickets.MarkPaid(ctx, paid.ID)
	require.NoError(t, err)

	stats := NewStatsRepository(db.Pool)
	monthly, err := stats.MonthlyRevenue(ctx)
	require.NoError(t, err)
	require.Len(t, monthly, 1)
	assert.Equal(t, time.Now().Format("2006-01"), monthly[0].Month)
	assert.Equal(t, float64(300), monthly[0].Revenue)

	routes, err := stats.RouteRevenue(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "SGN - HAN", routes[0].RouteName)
	assert.Equal(t, float64(300), routes[0].Revenue)

	counts, err := stats.RouteTicketCounts(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, int64(3), counts[0].TicketCount)
}

func TestIntegration_Users(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db.Pool)

	u := &domain.User{Name: "Bob", Username: "bob", Password: "hash", DOB: time.Date(1985, 1, 2, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, users.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.Equal(t, domain.UserRoleUser, u.Role)

	dup := &domain.User{Name: "Bob", Username: "bob", Password: "hash", DOB: u.DOB}
	assert.ErrorIs(t, users.Create(ctx, dup), domain.ErrUsernameTaken)

	got, err := users.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
