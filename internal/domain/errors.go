package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrEmptyBatch       = errors.New("order must contain at least one ticket")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInvalidSchedule  = errors.New("arrival time must be after departure time")
)

// BoundsError reports a row or seat outside an airplane's grid. Index is the
// position of the offending candidate in its order, or -1 outside a batch.
type BoundsError struct {
	Index   int
	Field   string
	Value   int
	Max     int
	Message string
}

func (e *BoundsError) Error() string {
	return e.Message
}

// UniquenessError reports a seat that is already held on a flight, either by
// a persisted ticket or by an earlier candidate of the same order.
type UniquenessError struct {
	Index    int
	FlightID int64
	Row      int
	Seat     int
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) on flight %d is already taken", e.Row, e.Seat, e.FlightID)
}

// FieldError is an input validation failure attributed to a single field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
