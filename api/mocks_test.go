package api

import (
	"context"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/service/booking"
	"github.com/Domenick1991/flightshop/internal/service/cart"
	"github.com/Domenick1991/flightshop/internal/service/flights"
	"github.com/Domenick1991/flightshop/internal/service/stats"
	"github.com/Domenick1991/flightshop/internal/service/users"
	"github.com/Domenick1991/flightshop/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, page int) (*flights.Page, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.Page), args.Error(1)
}

func (m *MockFlightUseCase) FlightDetails(ctx context.Context, id int64) (*domain.FlightDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetails), args.Error(1)
}

func (m *MockFlightUseCase) Airports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockFlightUseCase) PopularRoutes(ctx context.Context, departure string) ([]domain.PopularRoute, error) {
	args := m.Called(ctx, departure)
	return args.Get(0).([]domain.PopularRoute), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, q flights.SearchQuery) ([]domain.FlightDetails, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.FlightDetails), args.Error(1)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Checkout(ctx context.Context, sess *session.Session) (*booking.Checkout, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Checkout), args.Error(1)
}

func (m *MockBookingUseCase) ConfirmPayment(ctx context.Context, userID int64, reference string) (*domain.Payment, error) {
	args := m.Called(ctx, userID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockBookingUseCase) ExpireUnpaid(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockBookingUseCase) PaymentInfo(ctx context.Context, flightID int64, quantity int, typeTicket string) (*booking.PaymentInfo, error) {
	args := m.Called(ctx, flightID, quantity, typeTicket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.PaymentInfo), args.Error(1)
}

type MockCartUseCase struct {
	mock.Mock
}

func (m *MockCartUseCase) Add(ctx context.Context, sess *session.Session, input cart.AddInput) (domain.CartStats, error) {
	args := m.Called(ctx, sess, input)
	return args.Get(0).(domain.CartStats), args.Error(1)
}

func (m *MockCartUseCase) Update(ctx context.Context, sess *session.Session, flightID, typeTicket string, quantity int) (domain.CartStats, error) {
	args := m.Called(ctx, sess, flightID, typeTicket, quantity)
	return args.Get(0).(domain.CartStats), args.Error(1)
}

func (m *MockCartUseCase) Delete(ctx context.Context, sess *session.Session, flightID, typeTicket string) (domain.CartStats, error) {
	args := m.Called(ctx, sess, flightID, typeTicket)
	return args.Get(0).(domain.CartStats), args.Error(1)
}

func (m *MockCartUseCase) Get(sess *session.Session) cart.View {
	args := m.Called(sess)
	return args.Get(0).(cart.View)
}

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input users.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Authenticate(ctx context.Context, username, password string, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, username, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockStatsUseCase struct {
	mock.Mock
}

func (m *MockStatsUseCase) TicketCounts(ctx context.Context) ([]domain.RouteTicketCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RouteTicketCount), args.Error(1)
}

func (m *MockStatsUseCase) Revenue(ctx context.Context) (*stats.RevenueReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.RevenueReport), args.Error(1)
}

func withSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionKey, sess)
}

func loggedInSession(userID int64) *session.Session {
	sess := session.New()
	sess.Login(&domain.User{ID: userID, Role: domain.UserRoleUser})
	return sess
}
