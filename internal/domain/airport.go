package domain

type Airport struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:150;uniqueIndex;not null" json:"name" binding:"required,max=150"`
	Address string `gorm:"size:255" json:"address" binding:"max=255"`
	Image   string `json:"image"`
}

func (Airport) TableName() string { return "airports" }

// FlightRoute is a directed pairing of two airports, independent of any
// concrete flight.
type FlightRoute struct {
	ID                 int64  `gorm:"primaryKey" json:"id"`
	DepartureAirportID int64  `gorm:"not null;index" json:"departure_airport_id" binding:"required,gt=0"`
	ArrivalAirportID   int64  `gorm:"not null;index" json:"arrival_airport_id" binding:"required,gt=0"`
	Description        string `json:"description"`

	DepartureAirport *Airport `gorm:"foreignKey:DepartureAirportID" json:"-"`
	ArrivalAirport   *Airport `gorm:"foreignKey:ArrivalAirportID" json:"-"`
}

func (FlightRoute) TableName() string { return "flight_routes" }

func (r *FlightRoute) Validate() error {
	if r.DepartureAirportID == r.ArrivalAirportID {
		return kindError(ErrInvalidInput, "departure and arrival airports must differ")
	}
	return nil
}

// IntermediateAirport is an ordered stopover on a flight.
type IntermediateAirport struct {
	ID              int64 `gorm:"primaryKey" json:"id"`
	FlightID        int64 `gorm:"not null;index" json:"flight_id" binding:"required,gt=0"`
	AirportID       int64 `gorm:"not null" json:"airport_id" binding:"required,gt=0"`
	StopoverMinutes int   `json:"stopover_minutes" binding:"gte=0"`
	StopOrder       int   `json:"stop_order" binding:"gte=1"`

	Flight  *Flight  `gorm:"foreignKey:FlightID" json:"-"`
	Airport *Airport `gorm:"foreignKey:AirportID" json:"-"`
}

func (IntermediateAirport) TableName() string { return "intermediate_airports" }

// PopularRoute is the storefront view of a route.
type PopularRoute struct {
	RouteID     int64  `json:"id"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	Image       string `json:"image"`
	Description string `json:"description"`
}
