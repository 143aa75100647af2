package domain

import (
	"strings"
	"time"
)

type FlightType string

const (
	FlightTypeDirect  FlightType = "DIRECT"
	FlightTypeTransit FlightType = "TRANSIT"
)

type SeatClass string

const (
	SeatClassEconomy  SeatClass = "ECONOMY"
	SeatClassBusiness SeatClass = "BUSINESS"
)

// ParseSeatClass accepts a ticket type in any letter case.
func ParseSeatClass(s string) (SeatClass, error) {
	switch class := SeatClass(strings.ToUpper(strings.TrimSpace(s))); class {
	case SeatClassEconomy, SeatClassBusiness:
		return class, nil
	default:
		return "", ErrInvalidSeatClass
	}
}

type Flight struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	FlightRouteID   int64      `gorm:"not null;index" json:"flight_route_id" binding:"required,gt=0"`
	PlaneID         int64      `gorm:"not null;index" json:"plane_id" binding:"required,gt=0"`
	DepartureTime   time.Time  `gorm:"not null;index" json:"departure_time" binding:"required"`
	ArrivalTime     time.Time  `gorm:"not null" json:"arrival_time" binding:"required"`
	DurationMinutes int        `json:"duration_minutes" binding:"gte=0"`
	Price           float64    `gorm:"type:numeric(12,2);not null" json:"price" binding:"gte=0"`
	Type            FlightType `gorm:"column:flight_type;size:10;not null;default:'DIRECT'" json:"flight_type" binding:"omitempty,oneof=DIRECT TRANSIT"`

	FlightRoute *FlightRoute `gorm:"foreignKey:FlightRouteID" json:"-"`
	Plane       *Plane       `gorm:"foreignKey:PlaneID" json:"-"`
}

func (Flight) TableName() string { return "flights" }

func (f *Flight) Validate() error {
	if !f.ArrivalTime.After(f.DepartureTime) {
		return kindError(ErrInvalidInput, "arrival time must be after departure time")
	}
	if f.Type == "" {
		f.Type = FlightTypeDirect
	}
	return nil
}

// DepartsOn reports whether the flight leaves on the calendar day of date,
// read in date's location.
func (f *Flight) DepartsOn(date time.Time) bool {
	fy, fm, fd := f.DepartureTime.In(date.Location()).Date()
	y, m, d := date.Date()
	return fy == y && fm == m && fd == d
}

// SeatAvailability is derived from plane capacity minus non-cancelled tickets.
type SeatAvailability struct {
	Economy  int `json:"available_economy_seats"`
	Business int `json:"available_business_seats"`
}

// Fits reports whether either class alone can hold needed passengers. It
// does not guarantee the class eventually booked has room.
func (a SeatAvailability) Fits(needed int) bool {
	return a.Economy >= needed || a.Business >= needed
}

func (a SeatAvailability) Remaining(class SeatClass) int {
	if class == SeatClassBusiness {
		return a.Business
	}
	return a.Economy
}

// FlightDetails is a flight joined with the names shown to customers.
type FlightDetails struct {
	Flight
	DepartureAirport string           `json:"departure_airport"`
	ArrivalAirport   string           `json:"arrival_airport"`
	PlaneName        string           `json:"plane_name"`
	CompanyName      string           `json:"company_name"`
	Availability     SeatAvailability `json:"availability"`
}
