package domain

import "time"

type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	CrewIDs       []int64
}

// ValidateSchedule requires the arrival to strictly follow the departure.
func (f Flight) ValidateSchedule() error {
	if !f.ArrivalTime.After(f.DepartureTime) {
		return ErrInvalidSchedule
	}
	return nil
}

// FlightSummary is the list projection of a flight. TicketsAvailable is
// computed by the store at query time.
type FlightSummary struct {
	ID               int64
	Route            string
	Airplane         string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	TicketsAvailable int
	Crew             []string
}

type FlightDetail struct {
	Flight
	Route            Route
	Airplane         Airplane
	TakenSeats       []Seat
	TicketsAvailable int
}
