package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/kafka"
	"github.com/Domenick1991/flightshop/internal/metrics"
	"github.com/Domenick1991/flightshop/internal/repository"
	"github.com/Domenick1991/flightshop/internal/session"
	"github.com/google/uuid"
)

const (
	EventTicketsReserved  = "tickets_reserved"
	EventPaymentConfirmed = "payment_confirmed"
	EventPaymentExpired   = "payment_expired"
)

type BookingUseCase interface {
	Checkout(ctx context.Context, sess *session.Session) (*Checkout, error)
	ConfirmPayment(ctx context.Context, userID int64, reference string) (*domain.Payment, error)
	ExpireUnpaid(ctx context.Context) ([]domain.Payment, error)
	PaymentInfo(ctx context.Context, flightID int64, quantity int, typeTicket string) (*PaymentInfo, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// Checkout is the outcome of turning a cart into tickets.
type Checkout struct {
	Payment *domain.Payment `json:"payment"`
	Tickets []domain.Ticket `json:"tickets"`
}

type BookingService struct {
	tickets            repository.TicketRepository
	flights            repository.FlightRepository
	users              repository.UserRepository
	sessions           session.Store
	producer           Producer
	ticketTopic        string
	notificationsTopic string
	paymentTTL         time.Duration
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	tickets repository.TicketRepository,
	flights repository.FlightRepository,
	users repository.UserRepository,
	sessions session.Store,
	producer Producer,
	ticketTopic string,
	paymentTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		tickets:     tickets,
		flights:     flights,
		users:       users,
		sessions:    sessions,
		producer:    producer,
		ticketTopic: ticketTopic,
		paymentTTL:  paymentTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Checkout issues unpaid tickets for every cart line under one pending
// payment and empties the cart. Seats are checked again under a row lock, so
// a cart that no longer fits fails with domain.ErrSoldOut and is kept.
//
// The emptied cart is saved before tickets are issued; a session store
// failure aborts the checkout instead of leaving a cart that would book the
// same seats twice.
func (s *BookingService) Checkout(ctx context.Context, sess *session.Session) (*Checkout, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrLoginRequired
	}
	if sess.Cart.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}

	lines := sess.Cart.Lines()
	orders := make([]repository.TicketOrder, 0, len(lines))
	for _, line := range lines {
		flightID, err := strconv.ParseInt(line.FlightID, 10, 64)
		if err != nil {
			return nil, domain.Invalid(fmt.Sprintf("cart holds an invalid flight id %q", line.FlightID))
		}
		class, err := domain.ParseSeatClass(line.TypeTicket)
		if err != nil {
			return nil, err
		}
		orders = append(orders, repository.TicketOrder{FlightID: flightID, Class: class, Quantity: line.Quantity})
	}

	cart := sess.Cart
	sess.Cart = domain.NewCart()
	if err := s.sessions.Put(ctx, sess); err != nil {
		sess.Cart = cart
		return nil, fmt.Errorf("save session before checkout: %w", err)
	}

	payment, tickets, err := s.tickets.IssuePending(ctx, sess.UserID, uuid.NewString(), s.now().Add(s.paymentTTL), orders)
	if err != nil {
		sess.Cart = cart
		if perr := s.sessions.Put(ctx, sess); perr != nil {
			slog.ErrorContext(ctx, "restore cart after failed checkout", "error", perr)
		}
		return nil, err
	}
	metrics.TicketsIssued.Add(float64(len(tickets)))

	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID)
	}
	if err := s.publish(ctx, EventTicketsReserved, payment, ids); err != nil {
		slog.WarnContext(ctx, "publish event", "type", EventTicketsReserved, "reference", payment.Reference, "error", err)
	}
	return &Checkout{Payment: payment, Tickets: tickets}, nil
}

// ConfirmPayment marks a pending payment of userID as paid. Confirming a paid
// payment again returns it unchanged. Another user's payment reads as not
// found.
func (s *BookingService) ConfirmPayment(ctx context.Context, userID int64, reference string) (*domain.Payment, error) {
	current, err := s.tickets.GetPayment(ctx, reference)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	if current.UserID != userID {
		return nil, domain.ErrPaymentNotFound
	}

	switch current.Status {
	case domain.PaymentStatusPaid:
		return current, nil
	case domain.PaymentStatusExpired:
		return nil, domain.ErrPaymentExpired
	}
	if !s.now().Before(current.ExpiresAt) {
		return nil, domain.ErrPaymentExpired
	}

	updated, err := s.tickets.MarkPaid(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	metrics.PaymentsConfirmed.Inc()

	ids, err := s.tickets.TicketIDs(ctx, updated.ID)
	if err != nil {
		slog.WarnContext(ctx, "load ticket ids", "reference", updated.Reference, "error", err)
	}
	if err := s.publish(ctx, EventPaymentConfirmed, updated, ids); err != nil {
		slog.WarnContext(ctx, "publish event", "type", EventPaymentConfirmed, "reference", updated.Reference, "error", err)
	}
	return updated, nil
}

// ExpireUnpaid expires every pending payment past its deadline and cancels
// its tickets.
func (s *BookingService) ExpireUnpaid(ctx context.Context) ([]domain.Payment, error) {
	expired, err := s.tickets.ExpirePendingBefore(ctx, s.now())
	if err != nil {
		return nil, err
	}
	metrics.PaymentsExpired.Add(float64(len(expired)))

	for i := range expired {
		p := &expired[i]
		ids, err := s.tickets.TicketIDs(ctx, p.ID)
		if err != nil {
			slog.WarnContext(ctx, "load ticket ids", "reference", p.Reference, "error", err)
		}
		if err := s.publish(ctx, EventPaymentExpired, p, ids); err != nil {
			slog.WarnContext(ctx, "publish event", "type", EventPaymentExpired, "reference", p.Reference, "error", err)
		}
	}
	return expired, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, payment *domain.Payment, ticketIDs []int64) error {
	if s.producer == nil || s.ticketTopic == "" {
		return nil
	}
	event := kafka.TicketEvent{
		Type:      eventType,
		Reference: payment.Reference,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
		Status:    string(payment.Status),
		TicketIDs: ticketIDs,
		ExpiresAt: payment.ExpiresAt,
	}
	if user, err := s.users.GetByID(ctx, payment.UserID); err == nil {
		event.Email = user.Email
	}
	if err := s.producer.Publish(ctx, s.ticketTopic, payment.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, payment.Reference, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
