package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeatAvailability_Fits(t *testing.T) {
	testCases := []struct {
		name   string
		avail  SeatAvailability
		needed int
		want   bool
	}{
		{name: "economy enough", avail: SeatAvailability{Economy: 3, Business: 0}, needed: 3, want: true},
		{name: "business enough", avail: SeatAvailability{Economy: 1, Business: 4}, needed: 4, want: true},
		{name: "neither class alone", avail: SeatAvailability{Economy: 2, Business: 2}, needed: 3, want: false},
		{name: "sold out", avail: SeatAvailability{}, needed: 1, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.avail.Fits(tc.needed))
		})
	}
}

func TestParseSeatClass(t *testing.T) {
	class, err := ParseSeatClass(" business ")
	assert.NoError(t, err)
	assert.Equal(t, SeatClassBusiness, class)

	_, err = ParseSeatClass("first")
	assert.ErrorIs(t, err, ErrInvalidSeatClass)
}

func TestFlight_DepartsOn(t *testing.T) {
	f := Flight{DepartureTime: time.Date(2026, 11, 2, 23, 30, 0, 0, time.UTC)}

	assert.True(t, f.DepartsOn(time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, f.DepartsOn(time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)))
}

func TestFlight_Validate(t *testing.T) {
	dep := time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC)

	f := Flight{DepartureTime: dep, ArrivalTime: dep.Add(-time.Hour)}
	assert.ErrorIs(t, f.Validate(), ErrInvalidInput)

	f = Flight{DepartureTime: dep, ArrivalTime: dep.Add(2 * time.Hour)}
	assert.NoError(t, f.Validate())
	assert.Equal(t, FlightTypeDirect, f.Type)
}

func TestFlightRoute_Validate(t *testing.T) {
	r := FlightRoute{DepartureAirportID: 1, ArrivalAirportID: 1}
	assert.ErrorIs(t, r.Validate(), ErrInvalidInput)
}
