package booking

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightshop/internal/domain"
)

// PaymentInfo is the summary shown before paying for quantity tickets of one
// class on one flight.
type PaymentInfo struct {
	FlightID       int64             `json:"flight_id"`
	CompanyName    string            `json:"company_name"`
	DepartureTime  string            `json:"departure_time"`
	ArrivalTime    string            `json:"arrival_time"`
	DepartureLocal string            `json:"departure_local"`
	ArrivalLocal   string            `json:"arrival_local"`
	Duration       int               `json:"flight_duration"`
	FlightType     domain.FlightType `json:"flight_type"`
	FlightPrice    float64           `json:"flight_price"`
	DepartureDate  string            `json:"departure_date"`
	Quantity       int               `json:"quantity"`
	TypeTicket     domain.SeatClass  `json:"type_ticket"`
	Total          float64           `json:"total"`
	QRPayload      string            `json:"qr_payload,omitempty"`
}

func (s *BookingService) PaymentInfo(ctx context.Context, flightID int64, quantity int, typeTicket string) (*PaymentInfo, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	class, err := domain.ParseSeatClass(typeTicket)
	if err != nil {
		return nil, err
	}

	f, err := s.flights.GetDetails(ctx, flightID)
	if err != nil {
		return nil, err
	}

	// Flight days are UTC days, matching the search filter.
	dep, arr := f.DepartureTime.UTC(), f.ArrivalTime.UTC()
	return &PaymentInfo{
		FlightID:       f.ID,
		CompanyName:    f.CompanyName,
		DepartureTime:  dep.Format("15:04"),
		ArrivalTime:    arr.Format("15:04"),
		DepartureLocal: f.DepartureAirport,
		ArrivalLocal:   f.ArrivalAirport,
		Duration:       f.DurationMinutes,
		FlightType:     f.Type,
		FlightPrice:    f.Price,
		DepartureDate:  dep.Format("2006-01-02"),
		Quantity:       quantity,
		TypeTicket:     class,
		Total:          f.Price * float64(quantity),
	}, nil
}

// WithQR fills the text a payment QR code encodes.
func (p *PaymentInfo) WithQR() *PaymentInfo {
	p.QRPayload = fmt.Sprintf("FLIGHTSHOP|flight=%d|class=%s|qty=%d|amount=%.2f|date=%s",
		p.FlightID, p.TypeTicket, p.Quantity, p.Total, p.DepartureDate)
	return p
}
