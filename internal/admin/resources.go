package admin

import "github.com/Domenick1991/flightshop/internal/domain"

var (
	Flights = Resource[domain.Flight]{
		Name: "flights",
		Filters: map[string]Filter{
			"flight_route_id": {Column: "flight_route_id", Kind: IntFilter},
			"plane_id":        {Column: "plane_id", Kind: IntFilter},
			"flight_type":     {Column: "flight_type", Kind: ExactFilter},
			"price":           {Column: "price", Kind: FloatFilter},
		},
		ID: func(f *domain.Flight) *int64 { return &f.ID },
	}
	FlightRoutes = Resource[domain.FlightRoute]{
		Name: "flight-routes",
		Filters: map[string]Filter{
			"departure_airport_id": {Column: "departure_airport_id", Kind: IntFilter},
			"arrival_airport_id":   {Column: "arrival_airport_id", Kind: IntFilter},
			"description":          {Column: "description", Kind: TextFilter},
		},
		ID: func(r *domain.FlightRoute) *int64 { return &r.ID },
	}
	Planes = Resource[domain.Plane]{
		Name: "planes",
		Filters: map[string]Filter{
			"name":       {Column: "name", Kind: TextFilter},
			"company_id": {Column: "company_id", Kind: IntFilter},
		},
		ID: func(p *domain.Plane) *int64 { return &p.ID },
	}
	Airports = Resource[domain.Airport]{
		Name: "airports",
		Filters: map[string]Filter{
			"name":    {Column: "name", Kind: TextFilter},
			"address": {Column: "address", Kind: TextFilter},
		},
		ID: func(a *domain.Airport) *int64 { return &a.ID },
	}
	Tickets = Resource[domain.Ticket]{
		Name: "tickets",
		Filters: map[string]Filter{
			"user_id":    {Column: "user_id", Kind: IntFilter},
			"flight_id":  {Column: "flight_id", Kind: IntFilter},
			"payment_id": {Column: "payment_id", Kind: IntFilter},
			"seat_class": {Column: "seat_class", Kind: ExactFilter},
			"status":     {Column: "status", Kind: BoolFilter},
		},
		ID: func(t *domain.Ticket) *int64 { return &t.ID },
	}
	Luggage = Resource[domain.Luggage]{
		Name: "luggage",
		Filters: map[string]Filter{
			"user_id":   {Column: "user_id", Kind: IntFilter},
			"flight_id": {Column: "flight_id", Kind: IntFilter},
		},
		ID: func(l *domain.Luggage) *int64 { return &l.ID },
	}
	Cancellations = Resource[domain.Cancellation]{
		Name: "cancellations",
		Filters: map[string]Filter{
			"ticket_id": {Column: "ticket_id", Kind: IntFilter},
			"reason":    {Column: "reason", Kind: TextFilter},
		},
		ID: func(c *domain.Cancellation) *int64 { return &c.ID },
	}
	Payments = Resource[domain.Payment]{
		Name: "payments",
		Filters: map[string]Filter{
			"user_id":   {Column: "user_id", Kind: IntFilter},
			"reference": {Column: "reference", Kind: TextFilter},
			"status":    {Column: "status", Kind: ExactFilter},
		},
		ID: func(p *domain.Payment) *int64 { return &p.ID },
	}
	Seats = Resource[domain.Seat]{
		Name: "seats",
		Filters: map[string]Filter{
			"plane_id": {Column: "plane_id", Kind: IntFilter},
			"class":    {Column: "class", Kind: ExactFilter},
		},
		ID: func(s *domain.Seat) *int64 { return &s.ID },
	}
	FlightSchedules = Resource[domain.FlightSchedule]{
		Name: "flight-schedules",
		Filters: map[string]Filter{
			"flight_id": {Column: "flight_id", Kind: IntFilter},
			"user_id":   {Column: "user_id", Kind: IntFilter},
		},
		ID: func(s *domain.FlightSchedule) *int64 { return &s.ID },
	}
	Companies = Resource[domain.Company]{
		Name: "companies",
		Filters: map[string]Filter{
			"name": {Column: "name", Kind: TextFilter},
		},
		ID: func(c *domain.Company) *int64 { return &c.ID },
	}
	IntermediateAirports = Resource[domain.IntermediateAirport]{
		Name: "intermediate-airports",
		Filters: map[string]Filter{
			"flight_id":  {Column: "flight_id", Kind: IntFilter},
			"airport_id": {Column: "airport_id", Kind: IntFilter},
		},
		ID: func(i *domain.IntermediateAirport) *int64 { return &i.ID },
	}
)
