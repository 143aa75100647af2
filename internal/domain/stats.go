package domain

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"monthly_revenue"`
}

type RouteRevenue struct {
	RouteID   int64   `json:"id"`
	RouteName string  `json:"route_name"`
	Revenue   float64 `json:"revenue"`
}

type RouteTicketCount struct {
	RouteID     int64  `json:"id"`
	RouteName   string `json:"route_name"`
	TicketCount int64  `json:"ticket_count"`
}
