package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TicketOrder asks for Quantity seats of one class on one flight.
type TicketOrder struct {
	FlightID int64
	Class    domain.SeatClass
	Quantity int
}

type TicketRepository interface {
	IssuePending(ctx context.Context, userID int64, reference string, expiresAt time.Time, orders []TicketOrder) (*domain.Payment, []domain.Ticket, error)
	GetPayment(ctx context.Context, reference string) (*domain.Payment, error)
	TicketIDs(ctx context.Context, paymentID int64) ([]int64, error)
	MarkPaid(ctx context.Context, paymentID int64) (*domain.Payment, error)
	ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Payment, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

const paymentColumns = `id, reference, user_id, amount, status, expires_at, paid_at, created_at`

func scanPayment(row scanner) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.Reference, &p.UserID, &p.Amount, &p.Status, &p.ExpiresAt, &p.PaidAt, &p.CreatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &p, nil
}

// IssuePending creates one pending payment and its unpaid tickets. Each
// flight row is locked while its remaining seats are checked, so concurrent
// checkouts for the same flight cannot both take the last seats.
func (r *PGTicketRepository) IssuePending(ctx context.Context, userID int64, reference string, expiresAt time.Time, orders []TicketOrder) (*domain.Payment, []domain.Ticket, error) {
	sorted := make([]TicketOrder, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FlightID != sorted[j].FlightID {
			return sorted[i].FlightID < sorted[j].FlightID
		}
		return sorted[i].Class < sorted[j].Class
	})

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	prices := make([]float64, len(sorted))
	var amount float64
	for i, o := range sorted {
		var price float64
		var capacity domain.SeatAvailability
		if err := tx.QueryRow(ctx, `
			SELECT f.price, p.economy_seats, p.business_seats
			FROM flights f JOIN planes p ON p.id = f.plane_id
			WHERE f.id = $1
			FOR UPDATE OF f`, o.FlightID).Scan(&price, &capacity.Economy, &capacity.Business); err != nil {
			return nil, nil, fmt.Errorf("lock flight %d: %w", o.FlightID, mapNoRows(err))
		}

		var taken int
		if err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM tickets t
			WHERE t.flight_id = $1 AND t.seat_class = $2
				AND NOT EXISTS (SELECT 1 FROM cancellations c WHERE c.ticket_id = t.id)`,
			o.FlightID, o.Class).Scan(&taken); err != nil {
			return nil, nil, err
		}
		if capacity.Remaining(o.Class)-taken < o.Quantity {
			return nil, nil, fmt.Errorf("flight %d %s: %w", o.FlightID, o.Class, domain.ErrSoldOut)
		}

		prices[i] = price
		amount += price * float64(o.Quantity)
	}

	payment := &domain.Payment{
		Reference: reference,
		UserID:    userID,
		Amount:    amount,
		Status:    domain.PaymentStatusPending,
		ExpiresAt: expiresAt,
	}
	if err := tx.QueryRow(ctx, `INSERT INTO payments (reference, user_id, amount, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, created_at`, payment.Reference, payment.UserID, payment.Amount, payment.Status, payment.ExpiresAt).
		Scan(&payment.ID, &payment.CreatedAt); err != nil {
		return nil, nil, err
	}

	var tickets []domain.Ticket
	for i, o := range sorted {
		for n := 0; n < o.Quantity; n++ {
			t := domain.Ticket{
				UserID:    userID,
				FlightID:  o.FlightID,
				PaymentID: &payment.ID,
				SeatClass: o.Class,
				Price:     prices[i],
			}
			if err := tx.QueryRow(ctx, `INSERT INTO tickets (user_id, flight_id, payment_id, seat_class, price, status, gate, issue_date)
				VALUES ($1, $2, $3, $4, $5, FALSE, '', now())
				RETURNING id, issue_date`, t.UserID, t.FlightID, t.PaymentID, t.SeatClass, t.Price).
				Scan(&t.ID, &t.IssueDate); err != nil {
				return nil, nil, err
			}
			tickets = append(tickets, t)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return payment, tickets, nil
}

func (r *PGTicketRepository) GetPayment(ctx context.Context, reference string) (*domain.Payment, error) {
	return scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE reference = $1`, reference))
}

func (r *PGTicketRepository) TicketIDs(ctx context.Context, paymentID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM tickets WHERE payment_id = $1 ORDER BY id`, paymentID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// MarkPaid moves a pending payment to PAID and validates its tickets. A
// payment that is no longer pending is left alone.
func (r *PGTicketRepository) MarkPaid(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	payment, err := scanPayment(tx.QueryRow(ctx, `UPDATE payments SET status = $1, paid_at = now()
		WHERE id = $2 AND status = $3
		RETURNING `+paymentColumns, domain.PaymentStatusPaid, paymentID, domain.PaymentStatusPending))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPaymentNotPending
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE tickets SET status = TRUE WHERE payment_id = $1`, paymentID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return payment, nil
}

// ExpirePendingBefore expires overdue pending payments and cancels their
// tickets, which releases the seats.
func (r *PGTicketRepository) ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Payment, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `UPDATE payments SET status = $1
		WHERE status = $2 AND expires_at <= $3
		RETURNING `+paymentColumns, domain.PaymentStatusExpired, domain.PaymentStatusPending, deadline)
	if err != nil {
		return nil, err
	}

	var expired []domain.Payment
	var ids []int64
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		expired = append(expired, *p)
		ids = append(ids, p.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		if _, err := tx.Exec(ctx, `INSERT INTO cancellations (ticket_id, reason, cancelled_at)
			SELECT id, 'payment expired', now() FROM tickets WHERE payment_id = ANY($1)
			ON CONFLICT (ticket_id) DO NOTHING`, ids); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return expired, nil
}

var _ TicketRepository = (*PGTicketRepository)(nil)
