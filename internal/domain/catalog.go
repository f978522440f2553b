package domain

import (
	"fmt"
	"strings"
)

type Airport struct {
	ID             int64
	Name           string
	ClosestBigCity string
	Country        *string
}

type AirportFilter struct {
	Name           string
	ClosestBigCity string
}

type AirportDetail struct {
	Airport
	DepartureRoutes []Route
	ArrivalRoutes   []Route
}

type Route struct {
	ID              int64
	SourceID        int64
	DestinationID   int64
	Distance        int
	SourceName      string
	DestinationName string
}

func (r Route) String() string {
	return fmt.Sprintf("%s - %s", r.SourceName, r.DestinationName)
}

type AirplaneType struct {
	ID   int64
	Name string
}

type Airplane struct {
	ID               int64
	Name             string
	Rows             int
	SeatsInRow       int
	AirplaneTypeID   int64
	AirplaneTypeName string
}

func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

type Crew struct {
	ID        int64
	FirstName string
	LastName  string
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Page is a limit/offset window over an ordered listing.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

func (a Airport) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return &FieldError{Field: "name", Message: "must not be empty"}
	}
	if strings.TrimSpace(a.ClosestBigCity) == "" {
		return &FieldError{Field: "closest_big_city", Message: "must not be empty"}
	}
	return nil
}

func (r Route) Validate() error {
	if r.Distance <= 0 {
		return &FieldError{Field: "distance", Message: "must be positive"}
	}
	if r.SourceID == r.DestinationID {
		return &FieldError{Field: "destination", Message: "must differ from source"}
	}
	return nil
}

func (t AirplaneType) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &FieldError{Field: "name", Message: "must not be empty"}
	}
	return nil
}

// Seat grid limits. Their product stays far below the INTEGER range of the
// capacity arithmetic in the store.
const (
	MaxAirplaneRows = 1000
	MaxSeatsInRow   = 100
)

func (a Airplane) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return &FieldError{Field: "name", Message: "must not be empty"}
	}
	if a.Rows < 1 {
		return &FieldError{Field: "rows", Message: "must be positive"}
	}
	if a.Rows > MaxAirplaneRows {
		return &FieldError{Field: "rows", Message: fmt.Sprintf("must be at most %d", MaxAirplaneRows)}
	}
	if a.SeatsInRow < 1 {
		return &FieldError{Field: "seats_in_row", Message: "must be positive"}
	}
	if a.SeatsInRow > MaxSeatsInRow {
		return &FieldError{Field: "seats_in_row", Message: fmt.Sprintf("must be at most %d", MaxSeatsInRow)}
	}
	return nil
}

func (c Crew) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return &FieldError{Field: "first_name", Message: "must not be empty"}
	}
	if strings.TrimSpace(c.LastName) == "" {
		return &FieldError{Field: "last_name", Message: "must not be empty"}
	}
	return nil
}
