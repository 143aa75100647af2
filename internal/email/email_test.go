package email

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/Domenick1991/flightshop/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_Send(t *testing.T) {
	var buf bytes.Buffer
	sender := NewSender(slog.New(slog.NewTextHandler(&buf, nil)))

	err := sender.Send(context.Background(), kafka.TicketEvent{
		Type:      "payment_confirmed",
		Reference: "ref-1",
		Email:     "a@example.com",
		TicketIDs: []int64{1, 2},
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "to=a@example.com")
	assert.Contains(t, buf.String(), "Payment received for booking ref-1")
}

func TestSender_SkipsMissingAddress(t *testing.T) {
	var buf bytes.Buffer
	sender := NewSender(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, sender.Send(context.Background(), kafka.TicketEvent{Type: "payment_expired"}))
	assert.Empty(t, buf.String())
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Your booking r is reserved, please pay 200.00",
		Subject(kafka.TicketEvent{Type: "tickets_reserved", Reference: "r", Amount: 200}))
	assert.Equal(t, "Booking r expired before payment", Subject(kafka.TicketEvent{Type: "payment_expired", Reference: "r"}))
	assert.Equal(t, "Update on booking r", Subject(kafka.TicketEvent{Type: "other", Reference: "r"}))
}
