package domain

import "time"

type Order struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID       int64
	Row      int
	Seat     int
	FlightID int64
	OrderID  int64
	// Route is the "Source - Destination" label of the ticket's flight.
	Route string
}

// TicketCandidate is a requested seat that has not been persisted yet.
type TicketCandidate struct {
	FlightID int64
	Row      int
	Seat     int
}

type Seat struct {
	Row  int
	Seat int
}
