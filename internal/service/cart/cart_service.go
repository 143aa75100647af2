package cart

import (
	"context"
	"strings"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/metrics"
	"github.com/Domenick1991/flightshop/internal/session"
)

type CartUseCase interface {
	Add(ctx context.Context, sess *session.Session, input AddInput) (domain.CartStats, error)
	Update(ctx context.Context, sess *session.Session, flightID, typeTicket string, quantity int) (domain.CartStats, error)
	Delete(ctx context.Context, sess *session.Session, flightID, typeTicket string) (domain.CartStats, error)
	Get(sess *session.Session) View
}

// AddInput is a line as the storefront sends it. Price is what the customer
// saw; checkout charges the flight's current price.
type AddInput struct {
	FlightID   string
	PlaneName  string
	Departure  string
	Arrival    string
	Day        string
	TypeTicket string
	Price      float64
}

type View struct {
	Items []domain.CartItem `json:"items"`
	Stats domain.CartStats  `json:"stats"`
}

type CartService struct {
	sessions session.Store
}

func NewCartService(sessions session.Store) *CartService {
	return &CartService{sessions: sessions}
}

// Add creates the cart on first use.
func (s *CartService) Add(ctx context.Context, sess *session.Session, input AddInput) (stats domain.CartStats, err error) {
	defer countOp("add", &err)

	flightID := strings.TrimSpace(input.FlightID)
	if flightID == "" {
		return domain.CartStats{}, domain.Invalid("flight_id is required")
	}
	if input.Price < 0 {
		return domain.CartStats{}, domain.Invalid("price must not be negative")
	}
	class, err := domain.ParseSeatClass(input.TypeTicket)
	if err != nil {
		return domain.CartStats{}, err
	}

	if sess.Cart == nil {
		sess.Cart = domain.NewCart()
	}
	stats = sess.Cart.Add(domain.CartItem{
		FlightID:   flightID,
		PlaneName:  input.PlaneName,
		Departure:  input.Departure,
		Arrival:    input.Arrival,
		Day:        input.Day,
		TypeTicket: string(class),
		Price:      input.Price,
	})
	if err := s.sessions.Put(ctx, sess); err != nil {
		return domain.CartStats{}, err
	}
	return stats, nil
}

func (s *CartService) Update(ctx context.Context, sess *session.Session, flightID, typeTicket string, quantity int) (stats domain.CartStats, err error) {
	defer countOp("update", &err)

	if sess.Cart == nil {
		return domain.CartStats{}, domain.ErrCartNotFound
	}
	if quantity <= 0 {
		return domain.CartStats{}, domain.ErrInvalidQuantity
	}
	class, err := domain.ParseSeatClass(typeTicket)
	if err != nil {
		return domain.CartStats{}, err
	}
	if err := sess.Cart.Update(strings.TrimSpace(flightID), string(class), quantity); err != nil {
		return domain.CartStats{}, err
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return domain.CartStats{}, err
	}
	return sess.Cart.Stats(), nil
}

func (s *CartService) Delete(ctx context.Context, sess *session.Session, flightID, typeTicket string) (stats domain.CartStats, err error) {
	defer countOp("delete", &err)

	if sess.Cart == nil {
		return domain.CartStats{}, domain.ErrCartNotFound
	}
	class, err := domain.ParseSeatClass(typeTicket)
	if err != nil {
		return domain.CartStats{}, err
	}
	if err := sess.Cart.Delete(strings.TrimSpace(flightID), string(class)); err != nil {
		return domain.CartStats{}, err
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return domain.CartStats{}, err
	}
	return sess.Cart.Stats(), nil
}

func (s *CartService) Get(sess *session.Session) View {
	lines := sess.Cart.Lines()
	if lines == nil {
		lines = []domain.CartItem{}
	}
	return View{Items: lines, Stats: sess.Cart.Stats()}
}

func countOp(op string, err *error) {
	metrics.CartOperations.WithLabelValues(op, metrics.Outcome(*err)).Inc()
}

var _ CartUseCase = (*CartService)(nil)
