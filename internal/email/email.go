package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/flightshop/internal/kafka"
)

// Sender turns ticket events into customer notifications. Delivery is a
// structured log line; there is no mail transport.
type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	if event.Email == "" {
		return nil
	}
	s.logger.InfoContext(ctx, "send email",
		"to", event.Email,
		"subject", Subject(event),
		"reference", event.Reference,
		"tickets", len(event.TicketIDs),
	)
	return nil
}

func Subject(event kafka.TicketEvent) string {
	switch event.Type {
	case "tickets_reserved":
		return fmt.Sprintf("Your booking %s is reserved, please pay %.2f", event.Reference, event.Amount)
	case "payment_confirmed":
		return fmt.Sprintf("Payment received for booking %s", event.Reference)
	case "payment_expired":
		return fmt.Sprintf("Booking %s expired before payment", event.Reference)
	default:
		return fmt.Sprintf("Update on booking %s", event.Reference)
	}
}
